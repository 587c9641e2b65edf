package note

import (
	"testing"

	"github.com/obondar/pal/internal/errors"
)

func TestNote_AddTag_NormalizedAndUnique(t *testing.T) {
	n, err := Restore(1, "buy milk")
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if err := n.AddTag("ToDo"); err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}
	if err := n.AddTag("TODO"); err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}

	if len(n.Tags()) != 1 {
		t.Fatalf("len(Tags) = %d, want 1 (case-insensitive identity)", len(n.Tags()))
	}
	if n.Tags()[0].String() != "todo" {
		t.Errorf("Tags[0] = %q, want lowercased %q", n.Tags()[0], "todo")
	}
}

func TestNote_AddTag_Invalid(t *testing.T) {
	n, _ := Restore(1, "buy milk")

	if err := n.AddTag("   "); !errors.Is(err, errors.ErrInvalidTag) {
		t.Errorf("AddTag error = %v, want ErrInvalidTag", err)
	}
}

func TestNote_RemoveTag(t *testing.T) {
	n, _ := Restore(1, "buy milk")
	_ = n.AddTag("todo")

	if !n.RemoveTag("TODO") {
		t.Error("RemoveTag should match case-insensitively and report true")
	}
	if n.RemoveTag("todo") {
		t.Error("RemoveTag on absent tag should report false")
	}
}

func TestNote_HasTag(t *testing.T) {
	n, _ := Restore(1, "buy milk")
	_ = n.AddTag("Groceries")

	if !n.HasTag("groceries") || !n.HasTag("GROCERIES") {
		t.Error("HasTag should be case-insensitive")
	}
	if n.HasTag("grocer") {
		t.Error("HasTag is exact membership, not substring")
	}
}

func TestNote_EditContent(t *testing.T) {
	n, _ := Restore(1, "buy milk")

	if err := n.EditContent("buy bread"); err != nil {
		t.Fatalf("EditContent failed: %v", err)
	}
	if n.Content().String() != "buy bread" {
		t.Errorf("Content = %q", n.Content())
	}

	if err := n.EditContent("  "); !errors.Is(err, errors.ErrInvalidNoteContent) {
		t.Errorf("EditContent error = %v, want ErrInvalidNoteContent", err)
	}
	if n.Content().String() != "buy bread" {
		t.Error("failed edit must keep the previous content")
	}
}

func TestNote_String(t *testing.T) {
	n, _ := Restore(3, "buy milk")
	_ = n.AddTag("todo")
	_ = n.AddTag("groceries")

	want := "[ID: 3] | Tags: [todo, groceries]\n  buy milk\n"
	if got := n.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNote_String_NoTags(t *testing.T) {
	n, _ := Restore(1, "buy milk")

	want := "[ID: 1] | Tags: [No tags]\n  buy milk\n"
	if got := n.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
