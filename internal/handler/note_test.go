package handler

import (
	"strings"
	"testing"

	"github.com/obondar/pal/internal/errors"
	"github.com/obondar/pal/internal/note"
)

func TestAddNote(t *testing.T) {
	book := note.NewBook()

	msg, err := AddNote([]string{"buy", "milk", "today"}, book)
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if msg != "Note #1 added." {
		t.Errorf("msg = %q", msg)
	}

	n, _ := book.Find(1)
	if n.Content().String() != "buy milk today" {
		t.Errorf("Content = %q, want tokens rejoined with spaces", n.Content())
	}
}

func TestAddNote_MissingArguments(t *testing.T) {
	book := note.NewBook()

	if _, err := AddNote(nil, book); !errors.Is(err, errors.ErrMissingArguments) {
		t.Errorf("error = %v, want ErrMissingArguments", err)
	}
}

func TestGetNote(t *testing.T) {
	book := note.NewBook()
	_, _ = AddNote([]string{"buy milk"}, book)

	msg, err := GetNote([]string{"1"}, book)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if !strings.Contains(msg, "[ID: 1]") {
		t.Errorf("msg = %q", msg)
	}
}

func TestGetNote_BadID(t *testing.T) {
	book := note.NewBook()

	if _, err := GetNote([]string{"abc"}, book); !errors.Is(err, errors.ErrMissingArguments) {
		t.Errorf("error = %v, want ErrMissingArguments for a non-numeric id", err)
	}
}

func TestGetNote_MissingRecord(t *testing.T) {
	book := note.NewBook()

	if _, err := GetNote([]string{"5"}, book); !errors.Is(err, errors.ErrRecordNotFound) {
		t.Errorf("error = %v, want ErrRecordNotFound", err)
	}
}

func TestChangeNote(t *testing.T) {
	book := note.NewBook()
	_, _ = AddNote([]string{"buy milk"}, book)

	msg, err := ChangeNote([]string{"1", "buy", "bread"}, book)
	if err != nil {
		t.Fatalf("ChangeNote failed: %v", err)
	}
	if msg != "Note #1 updated." {
		t.Errorf("msg = %q", msg)
	}

	if _, err := ChangeNote([]string{"9", "x"}, book); !errors.Is(err, errors.ErrRecordNotFound) {
		t.Errorf("error = %v, want ErrRecordNotFound", err)
	}
}

func TestDeleteNote(t *testing.T) {
	book := note.NewBook()
	_, _ = AddNote([]string{"buy milk"}, book)

	msg, err := DeleteNote([]string{"1"}, book)
	if err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if msg != "Note #1 deleted." {
		t.Errorf("msg = %q", msg)
	}

	if _, err := DeleteNote([]string{"1"}, book); !errors.Is(err, errors.ErrRecordNotFound) {
		t.Errorf("second delete error = %v, want ErrRecordNotFound", err)
	}
}

func TestAddTag(t *testing.T) {
	book := note.NewBook()
	_, _ = AddNote([]string{"buy milk"}, book)

	msg, err := AddTag([]string{"1", "Groceries"}, book)
	if err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}
	if msg != `Tag "groceries" added to note #1.` {
		t.Errorf("msg = %q", msg)
	}
}

func TestAddTag_MissingNote(t *testing.T) {
	book := note.NewBook()

	if _, err := AddTag([]string{"3", "todo"}, book); !errors.Is(err, errors.ErrRecordNotFound) {
		t.Errorf("error = %v, want ErrRecordNotFound", err)
	}
}

func TestDeleteTag(t *testing.T) {
	book := note.NewBook()
	_, _ = AddNote([]string{"buy milk"}, book)
	_, _ = AddTag([]string{"1", "todo"}, book)

	msg, err := DeleteTag([]string{"1", "TODO"}, book)
	if err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}
	if msg != `Tag "todo" removed from note #1.` {
		t.Errorf("msg = %q", msg)
	}

	msg, err = DeleteTag([]string{"1", "todo"}, book)
	if err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}
	if msg != `Tag "todo" not found on note #1.` {
		t.Errorf("msg = %q", msg)
	}
}

func TestSearchNotesByText(t *testing.T) {
	book := note.NewBook()
	_, _ = AddNote([]string{"buy milk"}, book)
	_, _ = AddNote([]string{"call mom"}, book)

	msg, err := SearchNotesByText([]string{"MILK"}, book)
	if err != nil {
		t.Fatalf("SearchNotesByText failed: %v", err)
	}
	if !strings.Contains(msg, "buy milk") || strings.Contains(msg, "call mom") {
		t.Errorf("msg = %q", msg)
	}

	msg, err = SearchNotesByText([]string{"zzz"}, book)
	if err != nil {
		t.Fatalf("SearchNotesByText failed: %v", err)
	}
	if msg != "No matches." {
		t.Errorf("msg = %q", msg)
	}
}

func TestSearchNotesByText_EmptyQuery(t *testing.T) {
	book := note.NewBook()

	if _, err := SearchNotesByText(nil, book); !errors.Is(err, errors.ErrEmptyQuery) {
		t.Errorf("error = %v, want ErrEmptyQuery", err)
	}
}

func TestSearchNotesByTag(t *testing.T) {
	book := note.NewBook()
	_, _ = AddNote([]string{"one"}, book)
	_, _ = AddNote([]string{"two"}, book)
	_, _ = AddTag([]string{"2", "work"}, book)

	msg, err := SearchNotesByTag([]string{"WORK"}, book)
	if err != nil {
		t.Fatalf("SearchNotesByTag failed: %v", err)
	}
	if !strings.Contains(msg, "[ID: 2]") || strings.Contains(msg, "[ID: 1]") {
		t.Errorf("msg = %q", msg)
	}
}

func TestNotesSortedByTags(t *testing.T) {
	book := note.NewBook()
	_, _ = AddNote([]string{"untagged"}, book)
	_, _ = AddNote([]string{"tagged"}, book)
	_, _ = AddTag([]string{"2", "alpha"}, book)

	msg, err := NotesSortedByTags(nil, book)
	if err != nil {
		t.Fatalf("NotesSortedByTags failed: %v", err)
	}
	if strings.Index(msg, "[ID: 2]") > strings.Index(msg, "[ID: 1]") {
		t.Errorf("tagged note should come first:\n%s", msg)
	}
}

func TestNotesSortedByTags_Empty(t *testing.T) {
	book := note.NewBook()

	msg, err := NotesSortedByTags(nil, book)
	if err != nil {
		t.Fatalf("NotesSortedByTags failed: %v", err)
	}
	if msg != "Note book is empty." {
		t.Errorf("msg = %q", msg)
	}
}
