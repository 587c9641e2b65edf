package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/obondar/pal/internal/errors"
	"github.com/obondar/pal/internal/note"
)

// parseNoteID reads a note id from the first argument. A non-numeric id is an
// argument error, not a lookup miss.
func parseNoteID(args []string) (int, error) {
	if len(args) < 1 {
		return 0, errors.NewMissingArguments()
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errors.NewMissingArguments()
	}
	return id, nil
}

// AddNote creates a note from the rest of the line and reports its id.
func AddNote(args []string, book *note.Book) (string, error) {
	if len(args) < 1 {
		return "", errors.NewMissingArguments()
	}
	content := strings.Join(args, " ")

	id, err := book.Add(content)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Note #%d added.", id), nil
}

// GetNote renders one note by id.
func GetNote(args []string, book *note.Book) (string, error) {
	id, err := parseNoteID(args)
	if err != nil {
		return "", err
	}

	n, ok := book.Find(id)
	if !ok {
		return "", errors.NewRecordNotFound()
	}
	return n.String(), nil
}

// GetAllNotes renders the whole note book.
func GetAllNotes(_ []string, book *note.Book) (string, error) {
	return book.String(), nil
}

// ChangeNote replaces a note's content.
func ChangeNote(args []string, book *note.Book) (string, error) {
	id, err := parseNoteID(args)
	if err != nil {
		return "", err
	}
	if len(args) < 2 {
		return "", errors.NewMissingArguments()
	}
	content := strings.Join(args[1:], " ")

	ok, err := book.EditContent(id, content)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.NewRecordNotFound()
	}
	return fmt.Sprintf("Note #%d updated.", id), nil
}

// DeleteNote removes a note by id.
func DeleteNote(args []string, book *note.Book) (string, error) {
	id, err := parseNoteID(args)
	if err != nil {
		return "", err
	}

	if !book.Delete(id) {
		return "", errors.NewRecordNotFound()
	}
	return fmt.Sprintf("Note #%d deleted.", id), nil
}

// AddTag tags a note.
func AddTag(args []string, book *note.Book) (string, error) {
	id, err := parseNoteID(args)
	if err != nil {
		return "", err
	}
	if len(args) < 2 {
		return "", errors.NewMissingArguments()
	}
	tag := args[1]

	n, ok := book.Find(id)
	if !ok {
		return "", errors.NewRecordNotFound()
	}
	if err := n.AddTag(tag); err != nil {
		return "", err
	}
	return fmt.Sprintf("Tag %q added to note #%d.", strings.ToLower(tag), id), nil
}

// DeleteTag removes a tag from a note.
func DeleteTag(args []string, book *note.Book) (string, error) {
	id, err := parseNoteID(args)
	if err != nil {
		return "", err
	}
	if len(args) < 2 {
		return "", errors.NewMissingArguments()
	}
	tag := args[1]

	n, ok := book.Find(id)
	if !ok {
		return "", errors.NewRecordNotFound()
	}
	if n.RemoveTag(tag) {
		return fmt.Sprintf("Tag %q removed from note #%d.", strings.ToLower(tag), id), nil
	}
	return fmt.Sprintf("Tag %q not found on note #%d.", strings.ToLower(tag), id), nil
}

// SearchNotesByText searches note content for a substring.
func SearchNotesByText(args []string, book *note.Book) (string, error) {
	query := strings.Join(args, " ")

	found, err := book.SearchByContent(query)
	if err != nil {
		return "", err
	}
	return renderNotes(found), nil
}

// SearchNotesByTag lists notes carrying a tag.
func SearchNotesByTag(args []string, book *note.Book) (string, error) {
	if len(args) < 1 {
		return "", errors.NewMissingArguments()
	}

	found, err := book.SearchByTag(args[0])
	if err != nil {
		return "", err
	}
	return renderNotes(found), nil
}

// NotesSortedByTags lists all notes ordered by first tag, untagged last.
func NotesSortedByTags(_ []string, book *note.Book) (string, error) {
	sorted := book.SortByTags()
	if len(sorted) == 0 {
		return "Note book is empty.", nil
	}
	lines := make([]string, len(sorted))
	for i, n := range sorted {
		lines[i] = n.String()
	}
	return strings.Join(lines, "\n"), nil
}

func renderNotes(notes []*note.Note) string {
	if len(notes) == 0 {
		return "No matches."
	}
	lines := make([]string, len(notes))
	for i, n := range notes {
		lines[i] = n.String()
	}
	return strings.Join(lines, "\n")
}
