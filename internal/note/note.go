// Package note implements the note book: free-text notes with lowercase tags
// and an insertion-ordered collection keyed by an auto-incrementing id.
package note

import (
	"fmt"
	"strings"

	"github.com/obondar/pal/internal/field"
)

// Note holds one note's state. The id is assigned by the owning Book and
// never changes; content and tags are mutable.
type Note struct {
	id      int
	content field.NoteContent
	tags    []field.Tag
}

// Restore creates a note with a known id, used when rebuilding a book from a
// snapshot.
func Restore(id int, content string) (*Note, error) {
	c, err := field.NewNoteContent(content)
	if err != nil {
		return nil, err
	}
	return &Note{id: id, content: c}, nil
}

// ID returns the note's id.
func (n *Note) ID() int { return n.id }

// Content returns the note's content.
func (n *Note) Content() field.NoteContent { return n.content }

// Tags returns the tags in insertion order.
func (n *Note) Tags() []field.Tag { return n.tags }

// AddTag validates and appends the tag. Tags are lowercased, and adding one
// that is already present is a no-op.
func (n *Note) AddTag(raw string) error {
	tag, err := field.NewTag(raw)
	if err != nil {
		return err
	}
	if n.HasTag(tag.String()) {
		return nil
	}
	n.tags = append(n.tags, tag)
	return nil
}

// RemoveTag removes the matching tag (case-insensitive) and reports whether a
// removal happened.
func (n *Note) RemoveTag(raw string) bool {
	target := strings.ToLower(raw)
	for i, tag := range n.tags {
		if tag.String() == target {
			n.tags = append(n.tags[:i], n.tags[i+1:]...)
			return true
		}
	}
	return false
}

// HasTag reports case-insensitive exact tag membership.
func (n *Note) HasTag(raw string) bool {
	target := strings.ToLower(raw)
	for _, tag := range n.tags {
		if tag.String() == target {
			return true
		}
	}
	return false
}

// EditContent revalidates and replaces the content.
func (n *Note) EditContent(raw string) error {
	c, err := field.NewNoteContent(raw)
	if err != nil {
		return err
	}
	n.content = c
	return nil
}

// String renders the note for display.
func (n *Note) String() string {
	tagsStr := "No tags"
	if len(n.tags) > 0 {
		parts := make([]string, len(n.tags))
		for i, tag := range n.tags {
			parts[i] = tag.String()
		}
		tagsStr = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("[ID: %d] | Tags: [%s]\n  %s\n", n.id, tagsStr, n.content)
}
