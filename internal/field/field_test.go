package field

import (
	"testing"

	"github.com/obondar/pal/internal/errors"
)

func TestNewPhone_Valid(t *testing.T) {
	phone, err := NewPhone("0501234567")
	if err != nil {
		t.Fatalf("NewPhone failed: %v", err)
	}

	if phone.String() != "0501234567" {
		t.Errorf("String() = %q, want the exact digits back", phone.String())
	}
}

func TestNewPhone_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"too short", "123456789"},
		{"too long", "12345678901"},
		{"letters", "05012345ab"},
		{"empty", ""},
		{"with separator", "050-123-45"},
		{"leading plus", "+380501234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPhone(tt.raw)
			if !errors.Is(err, errors.ErrInvalidPhone) {
				t.Errorf("NewPhone(%q) error = %v, want ErrInvalidPhone", tt.raw, err)
			}
		})
	}
}

func TestNewEmail_Valid(t *testing.T) {
	for _, raw := range []string{"joanna@x.com", "first.last+tag@sub.domain.org", "a_b%c@host.ua"} {
		email, err := NewEmail(raw)
		if err != nil {
			t.Fatalf("NewEmail(%q) failed: %v", raw, err)
		}
		if email.String() != raw {
			t.Errorf("String() = %q, want %q (accepted verbatim)", email.String(), raw)
		}
	}
}

func TestNewEmail_Invalid(t *testing.T) {
	for _, raw := range []string{"", "plain", "no@dot", "@host.com", "a@b.c", "spaces in@x.com"} {
		if _, err := NewEmail(raw); !errors.Is(err, errors.ErrInvalidEmail) {
			t.Errorf("NewEmail(%q) error = %v, want ErrInvalidEmail", raw, err)
		}
	}
}

func TestNewBirthday_RoundTrip(t *testing.T) {
	bday, err := NewBirthday("09.06.1990")
	if err != nil {
		t.Fatalf("NewBirthday failed: %v", err)
	}

	if bday.String() != "09.06.1990" {
		t.Errorf("String() = %q, want %q", bday.String(), "09.06.1990")
	}

	date := bday.Date()
	if date.Year() != 1990 || date.Month() != 6 || date.Day() != 9 {
		t.Errorf("Date() = %v, want 1990-06-09", date)
	}
}

func TestNewBirthday_Invalid(t *testing.T) {
	for _, raw := range []string{"", "1990-06-09", "9.6.1990", "31.02.2000", "06.13.1990", "birthday"} {
		if _, err := NewBirthday(raw); !errors.Is(err, errors.ErrInvalidBirthday) {
			t.Errorf("NewBirthday(%q) error = %v, want ErrInvalidBirthday", raw, err)
		}
	}
}

func TestNewNoteContent(t *testing.T) {
	content, err := NewNoteContent("  buy milk  ")
	if err != nil {
		t.Fatalf("NewNoteContent failed: %v", err)
	}
	if content.String() != "  buy milk  " {
		t.Errorf("String() = %q, want content stored verbatim", content.String())
	}

	for _, raw := range []string{"", "   ", "\t\n"} {
		if _, err := NewNoteContent(raw); !errors.Is(err, errors.ErrInvalidNoteContent) {
			t.Errorf("NewNoteContent(%q) error = %v, want ErrInvalidNoteContent", raw, err)
		}
	}
}

func TestNewTag_NormalizesLowercase(t *testing.T) {
	tag, err := NewTag("ToDo")
	if err != nil {
		t.Fatalf("NewTag failed: %v", err)
	}
	if tag.String() != "todo" {
		t.Errorf("String() = %q, want %q", tag.String(), "todo")
	}
}

func TestNewTag_Invalid(t *testing.T) {
	for _, raw := range []string{"", "  "} {
		if _, err := NewTag(raw); !errors.Is(err, errors.ErrInvalidTag) {
			t.Errorf("NewTag(%q) error = %v, want ErrInvalidTag", raw, err)
		}
	}
}
