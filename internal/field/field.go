// Package field provides the validated value types shared by the contact and
// note books. A field is constructed through its New* function and never holds
// an invalid value afterwards.
package field

import (
	"regexp"
	"strings"
	"time"

	"github.com/obondar/pal/internal/errors"
)

// BirthdayLayout is the textual date format accepted and rendered by Birthday.
const BirthdayLayout = "02.01.2006"

var (
	phoneRegex = regexp.MustCompile(`^\d{10}$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Phone is a contact phone number of exactly 10 decimal digits.
type Phone string

// NewPhone validates raw and returns it as a Phone.
func NewPhone(raw string) (Phone, error) {
	if !phoneRegex.MatchString(raw) {
		return "", errors.NewInvalidPhone()
	}
	return Phone(raw), nil
}

func (p Phone) String() string { return string(p) }

// Email is a contact email address.
type Email string

// NewEmail validates raw against a simple local@domain.tld pattern.
func NewEmail(raw string) (Email, error) {
	if !emailRegex.MatchString(raw) {
		return "", errors.NewInvalidEmail()
	}
	return Email(raw), nil
}

func (e Email) String() string { return string(e) }

// Birthday is a calendar date. It is stored as a date, not as the raw string.
type Birthday struct {
	date time.Time
}

// NewBirthday parses raw as DD.MM.YYYY.
func NewBirthday(raw string) (Birthday, error) {
	parsed, err := time.Parse(BirthdayLayout, raw)
	if err != nil {
		return Birthday{}, errors.NewInvalidBirthday()
	}
	return Birthday{date: parsed}, nil
}

// Date returns the stored calendar date.
func (b Birthday) Date() time.Time { return b.date }

// String renders the date back as DD.MM.YYYY.
func (b Birthday) String() string { return b.date.Format(BirthdayLayout) }

// NoteContent is the free text of a note, non-empty after trimming.
type NoteContent string

// NewNoteContent validates raw and returns it verbatim.
func NewNoteContent(raw string) (NoteContent, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errors.NewInvalidNoteContent()
	}
	return NoteContent(raw), nil
}

func (c NoteContent) String() string { return string(c) }

// Tag is a note tag, lowercased on construction so identity is
// case-insensitive.
type Tag string

// NewTag validates raw and returns it normalized to lowercase.
func NewTag(raw string) (Tag, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errors.NewInvalidTag()
	}
	return Tag(strings.ToLower(raw)), nil
}

func (t Tag) String() string { return string(t) }
