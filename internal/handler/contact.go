// Package handler translates parsed command arguments into book mutations and
// user-facing result strings. Handlers validate every field before touching a
// book, so a failed command never leaves a collection half-mutated.
package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/obondar/pal/internal/contact"
	"github.com/obondar/pal/internal/errors"
	"github.com/obondar/pal/internal/field"
)

// Capitalize uppercases the first letter of name and leaves the rest as
// given.
func Capitalize(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// findOrCreate returns the record for name, creating and inserting an empty
// one when absent. The second result reports whether the record was created.
func findOrCreate(name string, book *contact.Book) (*contact.Record, bool) {
	if record, ok := book.Find(name); ok {
		return record, false
	}
	record := contact.NewRecord(name)
	book.Add(record)
	return record, true
}

func addedOrUpdated(name string, created bool) string {
	if created {
		return fmt.Sprintf("Contact %s added.", name)
	}
	return fmt.Sprintf("Contact %s updated.", name)
}

// AddContact creates or updates a contact from up to five positional
// arguments: name, phone, email, birthday, and the rest of the line as the
// address.
func AddContact(args []string, book *contact.Book) (string, error) {
	if len(args) < 1 {
		return "", errors.NewMissingArguments()
	}
	name := Capitalize(args[0])

	// Validate every provided field before mutating anything.
	var phone, email, bday, address string
	if len(args) > 1 {
		phone = args[1]
		if _, err := field.NewPhone(phone); err != nil {
			return "", err
		}
	}
	if len(args) > 2 {
		email = args[2]
		if _, err := field.NewEmail(email); err != nil {
			return "", err
		}
	}
	if len(args) > 3 {
		bday = args[3]
		if _, err := field.NewBirthday(bday); err != nil {
			return "", err
		}
	}
	if len(args) > 4 {
		address = strings.Join(args[4:], " ")
	}

	record, created := findOrCreate(name, book)
	if phone != "" {
		_ = record.AddPhone(phone)
	}
	if email != "" {
		_ = record.SetEmail(email)
	}
	if bday != "" {
		_ = record.SetBirthday(bday)
	}
	if address != "" {
		record.SetAddress(address)
	}
	return addedOrUpdated(name, created), nil
}

// AddPhone adds a phone to a contact, creating the contact when absent.
func AddPhone(args []string, book *contact.Book) (string, error) {
	if len(args) < 2 {
		return "", errors.NewMissingArguments()
	}
	name, phone := Capitalize(args[0]), args[1]

	if _, err := field.NewPhone(phone); err != nil {
		return "", err
	}

	record, created := findOrCreate(name, book)
	_ = record.AddPhone(phone)
	return addedOrUpdated(name, created), nil
}

// AddEmail sets a contact's email, creating the contact when absent.
func AddEmail(args []string, book *contact.Book) (string, error) {
	if len(args) < 2 {
		return "", errors.NewMissingArguments()
	}
	name, email := Capitalize(args[0]), args[1]

	if _, err := field.NewEmail(email); err != nil {
		return "", err
	}

	record, created := findOrCreate(name, book)
	_ = record.SetEmail(email)
	return addedOrUpdated(name, created), nil
}

// AddAddress sets a contact's address from the rest of the line, creating the
// contact when absent.
func AddAddress(args []string, book *contact.Book) (string, error) {
	if len(args) < 2 {
		return "", errors.NewMissingArguments()
	}
	name := Capitalize(args[0])
	address := strings.Join(args[1:], " ")

	record, created := findOrCreate(name, book)
	record.SetAddress(address)
	return addedOrUpdated(name, created), nil
}

// AddBirthday sets a contact's birthday. The contact must already exist.
func AddBirthday(args []string, book *contact.Book) (string, error) {
	if len(args) < 2 {
		return "", errors.NewMissingArguments()
	}
	name, bday := Capitalize(args[0]), args[1]

	record, ok := book.Find(name)
	if !ok {
		return "", errors.NewRecordNotFound()
	}
	if err := record.SetBirthday(bday); err != nil {
		return "", err
	}
	return fmt.Sprintf("Birthday %s successfully added for %s.", record.Birthday(), name), nil
}

// ChangePhone replaces one of a contact's phones. Replacing towards a number
// the contact already has is reported as a conflict, not silently merged.
func ChangePhone(args []string, book *contact.Book) (string, error) {
	if len(args) < 3 {
		return "", errors.NewMissingArguments()
	}
	name, oldPhone, newPhone := Capitalize(args[0]), args[1], args[2]

	record, ok := book.Find(name)
	if !ok {
		return "", errors.NewRecordNotFound()
	}
	if _, ok := record.FindPhone(oldPhone); !ok {
		return fmt.Sprintf("The phone number %s does not belong to %s.", oldPhone, name), nil
	}
	if _, ok := record.FindPhone(newPhone); ok {
		return fmt.Sprintf("The phone number %s already belongs to %s.", newPhone, name), nil
	}
	if err := record.EditPhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	return fmt.Sprintf("Phone %s changed to %s for %s.", oldPhone, newPhone, name), nil
}

// ChangeEmail replaces a contact's email, checking the old value first.
func ChangeEmail(args []string, book *contact.Book) (string, error) {
	if len(args) < 3 {
		return "", errors.NewMissingArguments()
	}
	name, oldEmail, newEmail := Capitalize(args[0]), args[1], args[2]

	record, ok := book.Find(name)
	if !ok {
		return "", errors.NewRecordNotFound()
	}
	if record.Email() != nil && record.Email().String() != oldEmail {
		return fmt.Sprintf("Email %s does not belong to %s.", oldEmail, name), nil
	}
	if record.Email() != nil && record.Email().String() == newEmail {
		return fmt.Sprintf("Email %s already belongs to %s.", newEmail, name), nil
	}
	if err := record.SetEmail(newEmail); err != nil {
		return "", err
	}
	return fmt.Sprintf("Email %s changed to %s for %s.", oldEmail, newEmail, name), nil
}

// DeleteContact removes a contact by name.
func DeleteContact(args []string, book *contact.Book) (string, error) {
	if len(args) < 1 {
		return "", errors.NewMissingArguments()
	}
	name := Capitalize(args[0])

	if _, ok := book.Find(name); !ok {
		return "", errors.NewRecordNotFound()
	}
	book.Delete(name)
	return fmt.Sprintf("Contact %s deleted.", name), nil
}

// GetPhone lists a contact's phones.
func GetPhone(args []string, book *contact.Book) (string, error) {
	if len(args) < 1 {
		return "", errors.NewMissingArguments()
	}
	name := Capitalize(args[0])

	record, ok := book.Find(name)
	if !ok {
		return "", errors.NewRecordNotFound()
	}
	if len(record.Phones()) == 0 {
		return fmt.Sprintf("No phones set for %s.", name), nil
	}
	parts := make([]string, len(record.Phones()))
	for i, phone := range record.Phones() {
		parts[i] = phone.String()
	}
	return strings.Join(parts, ", "), nil
}

// GetBirthday shows a contact's birthday.
func GetBirthday(args []string, book *contact.Book) (string, error) {
	if len(args) < 1 {
		return "", errors.NewMissingArguments()
	}
	name := Capitalize(args[0])

	record, ok := book.Find(name)
	if !ok {
		return "", errors.NewRecordNotFound()
	}
	if record.Birthday() == nil {
		return "Birthday record absent.", nil
	}
	return record.Birthday().String(), nil
}

// GetInfo renders one contact in full.
func GetInfo(args []string, book *contact.Book) (string, error) {
	if len(args) < 1 {
		return "", errors.NewMissingArguments()
	}
	name := Capitalize(args[0])

	record, ok := book.Find(name)
	if !ok {
		return "", errors.NewRecordNotFound()
	}
	return record.String(), nil
}

// GetAll renders the whole address book.
func GetAll(_ []string, book *contact.Book) (string, error) {
	return book.String(), nil
}

// UpcomingBirthdays lists birthdays in the next window. An unparsable day
// argument falls back to defaultDays instead of failing the command.
func UpcomingBirthdays(args []string, book *contact.Book, defaultDays int) (string, error) {
	days := defaultDays
	if len(args) > 0 {
		if parsed, err := strconv.Atoi(args[0]); err == nil {
			days = parsed
		}
	}

	lines := book.UpcomingBirthdays(days, time.Now())
	if len(lines) == 0 {
		return "No upcoming birthdays.", nil
	}
	return strings.Join(lines, "\n"), nil
}

// SearchContacts searches the book across names, emails, addresses, and
// phones.
func SearchContacts(args []string, book *contact.Book) (string, error) {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return "", errors.NewEmptyQuery()
	}

	results := book.Search(query)
	if len(results) == 0 {
		return "No matches.", nil
	}
	lines := make([]string, len(results))
	for i, record := range results {
		lines[i] = record.String()
	}
	return strings.Join(lines, "\n"), nil
}
