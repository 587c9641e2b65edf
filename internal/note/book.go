package note

import (
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/obondar/pal/internal/errors"
)

// Book is the note book: an insertion-ordered mapping from id to note plus a
// next-id counter. Ids grow monotonically and are never reused, even after
// deletions.
type Book struct {
	notes  *orderedmap.OrderedMap[int, *Note]
	nextID int
}

// NewBook creates an empty note book.
func NewBook() *Book {
	return &Book{
		notes:  orderedmap.New[int, *Note](),
		nextID: 1,
	}
}

// Add validates content, stores a new note under the next id, and returns the
// assigned id.
func (b *Book) Add(content string) (int, error) {
	n, err := Restore(b.nextID, content)
	if err != nil {
		return 0, err
	}
	b.notes.Set(n.ID(), n)
	b.nextID++
	return n.ID(), nil
}

// Put inserts an already-built note, used when rebuilding from a snapshot.
// The counter is kept ahead of every stored id.
func (b *Book) Put(n *Note) {
	b.notes.Set(n.ID(), n)
	if n.ID() >= b.nextID {
		b.nextID = n.ID() + 1
	}
}

// NextID returns the id the next added note will receive.
func (b *Book) NextID() int { return b.nextID }

// SetNextID restores the counter from a snapshot. The counter never moves
// backwards past a stored id.
func (b *Book) SetNextID(id int) {
	if id > b.nextID {
		b.nextID = id
	}
}

// Find looks up a note by id. A miss is not an error.
func (b *Book) Find(id int) (*Note, bool) {
	return b.notes.Get(id)
}

// Delete removes the note and reports whether a deletion happened. The id is
// not reused afterwards.
func (b *Book) Delete(id int) bool {
	_, present := b.notes.Delete(id)
	return present
}

// EditContent replaces the content of the note with the given id. It reports
// whether the note existed; validation errors only arise for existing notes.
func (b *Book) EditContent(id int, content string) (bool, error) {
	n, ok := b.notes.Get(id)
	if !ok {
		return false, nil
	}
	if err := n.EditContent(content); err != nil {
		return true, err
	}
	return true, nil
}

// Len returns the number of notes.
func (b *Book) Len() int {
	return b.notes.Len()
}

// Notes returns all notes in insertion order.
func (b *Book) Notes() []*Note {
	out := make([]*Note, 0, b.notes.Len())
	for pair := b.notes.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// SearchByContent returns notes whose content contains query,
// case-insensitively, in insertion order. An empty query is rejected.
func (b *Book) SearchByContent(query string) ([]*Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewEmptyQuery()
	}

	queryLower := strings.ToLower(query)
	var results []*Note
	for pair := b.notes.Oldest(); pair != nil; pair = pair.Next() {
		if strings.Contains(strings.ToLower(pair.Value.Content().String()), queryLower) {
			results = append(results, pair.Value)
		}
	}
	return results, nil
}

// SearchByTag returns notes carrying the tag (exact, case-insensitive), in
// insertion order. An empty tag is rejected.
func (b *Book) SearchByTag(tag string) ([]*Note, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, errors.NewInvalidTag()
	}

	var results []*Note
	for pair := b.notes.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.HasTag(tag) {
			results = append(results, pair.Value)
		}
	}
	return results, nil
}

// SortByTags returns the notes stably sorted by their first tag. Notes with
// no tags sort after all tagged notes, keeping their relative order.
func (b *Book) SortByTags() []*Note {
	sorted := b.Notes()
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].Tags(), sorted[j].Tags()
		switch {
		case len(ti) == 0:
			return false
		case len(tj) == 0:
			return true
		default:
			return ti[0].String() < tj[0].String()
		}
	})
	return sorted
}

// String renders all notes, or a placeholder when the book is empty.
func (b *Book) String() string {
	if b.notes.Len() == 0 {
		return "Note book is empty."
	}

	lines := make([]string, 0, b.notes.Len())
	for pair := b.notes.Oldest(); pair != nil; pair = pair.Next() {
		lines = append(lines, pair.Value.String())
	}
	return strings.Join(lines, "\n")
}
