package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/obondar/pal/internal/config"
	"github.com/obondar/pal/internal/contact"
	"github.com/obondar/pal/internal/dispatch"
	"github.com/obondar/pal/internal/export"
	"github.com/obondar/pal/internal/note"
	"github.com/obondar/pal/internal/store"
)

// newApp creates the CLI application. The default action starts the
// interactive assistant; subcommands cover one-shot operations.
func newApp() *cli.App {
	return &cli.App{
		Name:    "pal",
		Usage:   "Personal assistant for contacts and notes",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Directory for the database and exports (defaults to ~/.pal)",
			},
		},
		Action: runInteractive,
		Commands: []*cli.Command{
			{
				Name:   "export",
				Usage:  "Write a markdown and HTML snapshot of both books and exit",
				Action: runExport,
			},
		},
	}
}

// session holds everything the actions need after startup.
type session struct {
	baseDir  string
	cfg      *config.Config
	store    *store.Store
	contacts *contact.Book
	notes    *note.Book
}

func (s *session) exportDir() string {
	return filepath.Join(s.baseDir, "exports")
}

// resolveDataDir returns the --data-dir flag value or ~/.pal.
func resolveDataDir(c *cli.Context) (string, error) {
	if dir := c.String("data-dir"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pal"), nil
}

// openSession loads config, opens the snapshot store, and restores both books.
func openSession(c *cli.Context) (*session, error) {
	baseDir, err := resolveDataDir(c)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	st, err := store.Open(baseDir, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	contacts, notes, err := st.Load()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return &session{baseDir: baseDir, cfg: cfg, store: st, contacts: contacts, notes: notes}, nil
}

func runInteractive(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.store.Close()

	d := dispatch.New(s.contacts, s.notes, s.store, s.cfg, s.exportDir(), Version, os.Stdin, os.Stdout)
	return d.Run()
}

func runExport(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.store.Close()

	result, err := export.Write(s.exportDir(), s.contacts, s.notes)
	if err != nil {
		return err
	}
	fmt.Printf("Exported to %s and %s\n", result.MarkdownPath, result.HTMLPath)
	return nil
}
