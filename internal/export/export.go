// Package export writes point-in-time markdown and HTML renderings of the
// contact and note books.
package export

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/yuin/goldmark"

	"github.com/obondar/pal/internal/contact"
	"github.com/obondar/pal/internal/note"
)

// Result holds the paths of one export pair.
type Result struct {
	MarkdownPath string
	HTMLPath     string
}

// Write renders both books to markdown, converts the markdown to HTML, and
// writes both files to dir as pal-<ulid>.md / pal-<ulid>.html.
func Write(dir string, contacts *contact.Book, notes *note.Book) (*Result, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	id, err := newULID()
	if err != nil {
		return nil, fmt.Errorf("generate export id: %w", err)
	}

	md := renderMarkdown(contacts, notes)
	mdPath := filepath.Join(dir, fmt.Sprintf("pal-%s.md", id))
	if err := os.WriteFile(mdPath, []byte(md), 0600); err != nil {
		return nil, fmt.Errorf("write markdown export: %w", err)
	}

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(md), &html); err != nil {
		return nil, fmt.Errorf("convert export to html: %w", err)
	}
	htmlPath := filepath.Join(dir, fmt.Sprintf("pal-%s.html", id))
	if err := os.WriteFile(htmlPath, html.Bytes(), 0600); err != nil {
		return nil, fmt.Errorf("write html export: %w", err)
	}

	return &Result{MarkdownPath: mdPath, HTMLPath: htmlPath}, nil
}

func renderMarkdown(contacts *contact.Book, notes *note.Book) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Assistant snapshot %s\n\n", time.Now().UTC().Format(time.RFC3339))

	b.WriteString("## Contacts\n\n")
	if contacts.Len() == 0 {
		b.WriteString("No contacts.\n")
	}
	for _, rec := range contacts.Records() {
		fmt.Fprintf(&b, "### %s\n\n", rec.Name())
		phones := make([]string, 0, len(rec.Phones()))
		for _, p := range rec.Phones() {
			phones = append(phones, string(p))
		}
		if len(phones) > 0 {
			fmt.Fprintf(&b, "- Phones: %s\n", strings.Join(phones, ", "))
		}
		if email := rec.Email(); email != nil {
			fmt.Fprintf(&b, "- Email: %s\n", *email)
		}
		if addr := rec.Address(); addr != nil {
			fmt.Fprintf(&b, "- Address: %s\n", *addr)
		}
		if bday := rec.Birthday(); bday != nil {
			fmt.Fprintf(&b, "- Birthday: %s\n", bday)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Notes\n\n")
	if notes.Len() == 0 {
		b.WriteString("No notes.\n")
	}
	for _, n := range notes.Notes() {
		fmt.Fprintf(&b, "### Note %d\n\n", n.ID())
		fmt.Fprintf(&b, "%s\n", n.Content())
		if tags := n.Tags(); len(tags) > 0 {
			parts := make([]string, 0, len(tags))
			for _, t := range tags {
				parts = append(parts, string(t))
			}
			fmt.Fprintf(&b, "\nTags: %s\n", strings.Join(parts, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func newULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
