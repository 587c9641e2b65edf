package contact

import (
	"fmt"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/obondar/pal/internal/field"
)

// Book is the address book: an insertion-ordered mapping from contact name to
// record. Names are case-sensitive keys and expected pre-capitalized by
// callers.
type Book struct {
	records *orderedmap.OrderedMap[string, *Record]
}

// NewBook creates an empty address book.
func NewBook() *Book {
	return &Book{records: orderedmap.New[string, *Record]()}
}

// Add inserts or overwrites the record under its name.
func (b *Book) Add(r *Record) {
	b.records.Set(r.Name(), r)
}

// Find looks up a record by exact name. A miss is not an error; callers
// decide whether absence is reportable.
func (b *Book) Find(name string) (*Record, bool) {
	return b.records.Get(name)
}

// Delete removes the record if present; silent no-op otherwise.
func (b *Book) Delete(name string) {
	b.records.Delete(name)
}

// Len returns the number of records.
func (b *Book) Len() int {
	return b.records.Len()
}

// Records returns all records in insertion order.
func (b *Book) Records() []*Record {
	out := make([]*Record, 0, b.records.Len())
	for pair := b.records.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Search returns records whose name, email, address, or any phone contains
// query, matched case-insensitively. Results keep insertion order and each
// record appears at most once.
func (b *Book) Search(query string) []*Record {
	queryLower := strings.ToLower(query)

	var results []*Record
	for pair := b.records.Oldest(); pair != nil; pair = pair.Next() {
		r := pair.Value
		if strings.Contains(strings.ToLower(r.Name()), queryLower) {
			results = append(results, r)
			continue
		}
		if r.Email() != nil && strings.Contains(strings.ToLower(r.Email().String()), queryLower) {
			results = append(results, r)
			continue
		}
		if r.Address() != nil && strings.Contains(strings.ToLower(*r.Address()), queryLower) {
			results = append(results, r)
			continue
		}
		for _, phone := range r.Phones() {
			if strings.Contains(phone.String(), queryLower) {
				results = append(results, r)
				break
			}
		}
	}
	return results
}

// UpcomingBirthdays returns one line per record whose birthday falls within
// [today, today+days]. This year's occurrence is used, except in December when
// January birthdays look at next year. An occurrence landing on a weekend is
// rolled forward to Monday and then re-checked against the window, so a roll
// past the boundary excludes the record.
func (b *Book) UpcomingBirthdays(days int, today time.Time) []string {
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var result []string
	for pair := b.records.Oldest(); pair != nil; pair = pair.Next() {
		r := pair.Value
		if r.Birthday() == nil {
			continue
		}

		bday := r.Birthday().Date()
		year := todayDate.Year()
		if todayDate.Month() == time.December && bday.Month() == time.January {
			year++
		}
		occurrence := time.Date(year, bday.Month(), bday.Day(), 0, 0, 0, 0, time.UTC)

		delta := daysBetween(todayDate, occurrence)
		if delta < 0 || delta > days {
			continue
		}

		switch occurrence.Weekday() {
		case time.Saturday:
			occurrence = occurrence.AddDate(0, 0, 2)
		case time.Sunday:
			occurrence = occurrence.AddDate(0, 0, 1)
		}

		delta = daysBetween(todayDate, occurrence)
		if delta < 0 || delta > days {
			continue
		}

		result = append(result, fmt.Sprintf("%s's birthday %s", r.Name(), occurrence.Format(field.BirthdayLayout)))
	}
	return result
}

// String renders all records, or a placeholder when the book is empty.
func (b *Book) String() string {
	if b.records.Len() == 0 {
		return "Address book is empty."
	}

	lines := make([]string, 0, b.records.Len())
	for pair := b.records.Oldest(); pair != nil; pair = pair.Next() {
		lines = append(lines, pair.Value.String())
	}
	return strings.Join(lines, "\n")
}

// daysBetween returns the whole days from a to b, both at midnight UTC.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
