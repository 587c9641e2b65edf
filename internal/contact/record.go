// Package contact implements the address book: contact records with
// validated fields and an insertion-ordered collection with search and
// birthday-window queries.
package contact

import (
	"fmt"
	"strings"

	"github.com/obondar/pal/internal/field"
)

// Record holds one contact's state. The name is fixed at construction;
// phones, email, address, and birthday are mutated through the methods below.
type Record struct {
	name     string
	phones   []field.Phone
	email    *field.Email
	birthday *field.Birthday
	address  *string
}

// NewRecord creates an empty record. The caller is expected to pass the
// already-capitalized display name.
func NewRecord(name string) *Record {
	return &Record{name: name}
}

// Name returns the display name.
func (r *Record) Name() string { return r.name }

// Phones returns the phone list in insertion order.
func (r *Record) Phones() []field.Phone { return r.phones }

// Email returns the email, or nil if not set.
func (r *Record) Email() *field.Email { return r.email }

// Birthday returns the birthday, or nil if not set.
func (r *Record) Birthday() *field.Birthday { return r.birthday }

// Address returns the address, or nil if not set.
func (r *Record) Address() *string { return r.address }

// AddPhone validates number and appends it. Adding a number that is already
// present is a no-op, so the list never holds duplicates.
func (r *Record) AddPhone(number string) error {
	if _, ok := r.FindPhone(number); ok {
		return nil
	}
	phone, err := field.NewPhone(number)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, phone)
	return nil
}

// RemovePhone removes the matching phone if present. A miss is not an error.
func (r *Record) RemovePhone(number string) {
	for i, phone := range r.phones {
		if phone.String() == number {
			r.phones = append(r.phones[:i], r.phones[i+1:]...)
			return
		}
	}
}

// EditPhone replaces old with new in place, keeping the slot's position.
// If old is absent nothing happens.
func (r *Record) EditPhone(oldNumber, newNumber string) error {
	for i, phone := range r.phones {
		if phone.String() == oldNumber {
			newPhone, err := field.NewPhone(newNumber)
			if err != nil {
				return err
			}
			r.phones[i] = newPhone
			return nil
		}
	}
	return nil
}

// FindPhone looks up a phone by exact value.
func (r *Record) FindPhone(number string) (field.Phone, bool) {
	for _, phone := range r.phones {
		if phone.String() == number {
			return phone, true
		}
	}
	return "", false
}

// SetEmail validates raw and replaces the email.
func (r *Record) SetEmail(raw string) error {
	email, err := field.NewEmail(raw)
	if err != nil {
		return err
	}
	r.email = &email
	return nil
}

// SetBirthday validates raw and replaces the birthday.
func (r *Record) SetBirthday(raw string) error {
	bday, err := field.NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &bday
	return nil
}

// SetAddress replaces the free-text address.
func (r *Record) SetAddress(address string) {
	r.address = &address
}

// String renders the record for display: name, phones, email, address,
// birthday, in that fixed order.
func (r *Record) String() string {
	phonesStr := "None"
	if len(r.phones) > 0 {
		parts := make([]string, len(r.phones))
		for i, phone := range r.phones {
			parts[i] = phone.String()
		}
		phonesStr = strings.Join(parts, ", ")
	}

	emailStr := "Not set"
	if r.email != nil {
		emailStr = r.email.String()
	}
	addressStr := "Not set"
	if r.address != nil {
		addressStr = *r.address
	}
	bdayStr := "Not set"
	if r.birthday != nil {
		bdayStr = r.birthday.String()
	}

	return fmt.Sprintf("  Contact: %s\n      Phones: %s\n      Email: %s\n      Address: %s\n      Birthday: %s",
		r.name, phonesStr, emailStr, addressStr, bdayStr)
}
