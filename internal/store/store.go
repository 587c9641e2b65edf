// Package store persists the two books as a full SQLite snapshot. Every save
// replaces both tables in one transaction; a missing database yields empty
// books on load.
package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/obondar/pal/internal/config"
	"github.com/obondar/pal/internal/contact"
	"github.com/obondar/pal/internal/errors"
	"github.com/obondar/pal/internal/note"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Store wraps the snapshot database.
type Store struct {
	db *sql.DB
}

// Open initializes the SQLite database at baseDir/pal.db.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.pal.
func Open(baseDir string, cfg *config.Config) (*Store, error) {
	// Create base directory with restricted permissions
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	// Create exports subdirectory
	exportsDir := filepath.Join(baseDir, "exports")
	if err := os.MkdirAll(exportsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create exports directory: %w", err)
	}
	_ = os.Chmod(exportsDir, 0700)

	dbPath := filepath.Join(baseDir, "pal.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	// Set file permissions after file exists (best-effort)
	_ = os.Chmod(dbPath, 0600)

	if cfg != nil {
		if cfg.DBMaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.DBMaxOpenConns)
		}
		if cfg.DBMaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.DBMaxIdleConns)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := getUserVersion(db)
	if err != nil {
		return err
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS contacts (
		  position    INTEGER PRIMARY KEY,
		  name        TEXT NOT NULL UNIQUE,
		  phones_json TEXT NOT NULL,
		  email       TEXT,
		  address     TEXT,
		  birthday    TEXT
		);

		CREATE TABLE IF NOT EXISTS notes (
		  position  INTEGER PRIMARY KEY,
		  id        INTEGER NOT NULL UNIQUE,
		  content   TEXT NOT NULL,
		  tags_json TEXT
		);

		CREATE TABLE IF NOT EXISTS meta (
		  key   TEXT PRIMARY KEY,
		  value TEXT NOT NULL
		);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := setUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

func getUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

func setUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}

// Save writes a full snapshot of both books, replacing the previous one.
// Each snapshot generation is stamped with a fresh ULID revision.
func (s *Store) Save(contacts *contact.Book, notes *note.Book) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM contacts"); err != nil {
		return errors.NewInternal(err)
	}
	if _, err := tx.Exec("DELETE FROM notes"); err != nil {
		return errors.NewInternal(err)
	}

	for i, record := range contacts.Records() {
		phones := make([]string, len(record.Phones()))
		for j, phone := range record.Phones() {
			phones[j] = phone.String()
		}
		phonesJSON, err := json.Marshal(phones)
		if err != nil {
			return errors.NewInternal(err)
		}

		var email, address, birthday sql.NullString
		if record.Email() != nil {
			email = sql.NullString{String: record.Email().String(), Valid: true}
		}
		if record.Address() != nil {
			address = sql.NullString{String: *record.Address(), Valid: true}
		}
		if record.Birthday() != nil {
			birthday = sql.NullString{String: record.Birthday().String(), Valid: true}
		}

		_, err = tx.Exec(
			"INSERT INTO contacts (position, name, phones_json, email, address, birthday) VALUES (?, ?, ?, ?, ?, ?)",
			i, record.Name(), string(phonesJSON), email, address, birthday,
		)
		if err != nil {
			return errors.NewInternal(err)
		}
	}

	for i, n := range notes.Notes() {
		tags := make([]string, len(n.Tags()))
		for j, tag := range n.Tags() {
			tags[j] = tag.String()
		}
		var tagsJSON sql.NullString
		if len(tags) > 0 {
			data, err := json.Marshal(tags)
			if err != nil {
				return errors.NewInternal(err)
			}
			tagsJSON = sql.NullString{String: string(data), Valid: true}
		}

		_, err = tx.Exec(
			"INSERT INTO notes (position, id, content, tags_json) VALUES (?, ?, ?, ?)",
			i, n.ID(), n.Content().String(), tagsJSON,
		)
		if err != nil {
			return errors.NewInternal(err)
		}
	}

	revision, err := generateULID()
	if err != nil {
		return errors.NewInternal(err)
	}
	for key, value := range map[string]string{
		"note_next_id": strconv.Itoa(notes.NextID()),
		"revision":     revision,
	} {
		_, err := tx.Exec(
			"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			key, value,
		)
		if err != nil {
			return errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// Load rebuilds both books from the latest snapshot. An empty database is not
// an error; it yields empty books.
func (s *Store) Load() (*contact.Book, *note.Book, error) {
	contacts, err := s.loadContacts()
	if err != nil {
		return nil, nil, err
	}
	notes, err := s.loadNotes()
	if err != nil {
		return nil, nil, err
	}
	return contacts, notes, nil
}

func (s *Store) loadContacts() (*contact.Book, error) {
	rows, err := s.db.Query("SELECT name, phones_json, email, address, birthday FROM contacts ORDER BY position")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	book := contact.NewBook()
	for rows.Next() {
		var name, phonesJSON string
		var email, address, birthday sql.NullString
		if err := rows.Scan(&name, &phonesJSON, &email, &address, &birthday); err != nil {
			return nil, errors.NewInternal(err)
		}

		var phones []string
		if err := json.Unmarshal([]byte(phonesJSON), &phones); err != nil {
			return nil, errors.NewInternal(fmt.Errorf("contact %q: bad phones snapshot: %w", name, err))
		}

		record := contact.NewRecord(name)
		for _, phone := range phones {
			if err := record.AddPhone(phone); err != nil {
				return nil, errors.NewInternal(fmt.Errorf("contact %q: %w", name, err))
			}
		}
		if email.Valid {
			if err := record.SetEmail(email.String); err != nil {
				return nil, errors.NewInternal(fmt.Errorf("contact %q: %w", name, err))
			}
		}
		if address.Valid {
			record.SetAddress(address.String)
		}
		if birthday.Valid {
			if err := record.SetBirthday(birthday.String); err != nil {
				return nil, errors.NewInternal(fmt.Errorf("contact %q: %w", name, err))
			}
		}
		book.Add(record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return book, nil
}

func (s *Store) loadNotes() (*note.Book, error) {
	rows, err := s.db.Query("SELECT id, content, tags_json FROM notes ORDER BY position")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	book := note.NewBook()
	for rows.Next() {
		var id int
		var content string
		var tagsJSON sql.NullString
		if err := rows.Scan(&id, &content, &tagsJSON); err != nil {
			return nil, errors.NewInternal(err)
		}

		n, err := note.Restore(id, content)
		if err != nil {
			return nil, errors.NewInternal(fmt.Errorf("note #%d: %w", id, err))
		}
		if tagsJSON.Valid {
			var tags []string
			if err := json.Unmarshal([]byte(tagsJSON.String), &tags); err != nil {
				return nil, errors.NewInternal(fmt.Errorf("note #%d: bad tags snapshot: %w", id, err))
			}
			for _, tag := range tags {
				if err := n.AddTag(tag); err != nil {
					return nil, errors.NewInternal(fmt.Errorf("note #%d: %w", id, err))
				}
			}
		}
		book.Put(n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	var nextID sql.NullString
	err = s.db.QueryRow("SELECT value FROM meta WHERE key = 'note_next_id'").Scan(&nextID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.NewInternal(err)
	}
	if nextID.Valid {
		if parsed, err := strconv.Atoi(nextID.String); err == nil {
			book.SetNextID(parsed)
		}
	}

	return book, nil
}

// Revision returns the ULID stamped on the latest snapshot, or "" before the
// first save.
func (s *Store) Revision() (string, error) {
	var revision string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = 'revision'").Scan(&revision)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return revision, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
