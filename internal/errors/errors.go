package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a pal error code.
type ErrorCode string

const (
	ErrMissingArguments   ErrorCode = "MISSING_ARGUMENTS"
	ErrRecordNotFound     ErrorCode = "RECORD_NOT_FOUND"
	ErrInvalidPhone       ErrorCode = "INVALID_PHONE"
	ErrInvalidEmail       ErrorCode = "INVALID_EMAIL"
	ErrInvalidBirthday    ErrorCode = "INVALID_BIRTHDAY"
	ErrInvalidNoteContent ErrorCode = "INVALID_NOTE_CONTENT"
	ErrInvalidTag         ErrorCode = "INVALID_TAG"
	ErrEmptyQuery         ErrorCode = "EMPTY_QUERY"
	ErrUnknownCommand     ErrorCode = "UNKNOWN_COMMAND"
	ErrInternal           ErrorCode = "INTERNAL"
)

// PalError represents a structured error with a code and a user-facing message.
type PalError struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *PalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UserMessage returns the single line shown to the user at the prompt.
func UserMessage(err error) string {
	var pErr *PalError
	if stderrors.As(err, &pErr) {
		return pErr.Message
	}
	return err.Error()
}

// NewMissingArguments creates an error for a command invoked with too few tokens.
func NewMissingArguments() *PalError {
	return &PalError{
		Code:    ErrMissingArguments,
		Message: "Enter valid arguments for the command.",
	}
}

// NewRecordNotFound creates an error for a name or id with no matching entity.
func NewRecordNotFound() *PalError {
	return &PalError{
		Code:    ErrRecordNotFound,
		Message: "Record is missing!",
	}
}

// NewInvalidPhone creates an error for a phone that is not exactly 10 digits.
func NewInvalidPhone() *PalError {
	return &PalError{
		Code:    ErrInvalidPhone,
		Message: "Invalid phone number! Enter the phone number in the format 10 digits.",
	}
}

// NewInvalidEmail creates an error for a malformed email address.
func NewInvalidEmail() *PalError {
	return &PalError{
		Code:    ErrInvalidEmail,
		Message: "Invalid email format. Use xxx@xxx.xx",
	}
}

// NewInvalidBirthday creates an error for a date that does not parse as DD.MM.YYYY.
func NewInvalidBirthday() *PalError {
	return &PalError{
		Code:    ErrInvalidBirthday,
		Message: "Invalid date format. Use DD.MM.YYYY",
	}
}

// NewInvalidNoteContent creates an error for note content that trims to empty.
func NewInvalidNoteContent() *PalError {
	return &PalError{
		Code:    ErrInvalidNoteContent,
		Message: "Note content cannot be empty.",
	}
}

// NewInvalidTag creates an error for a tag that trims to empty.
func NewInvalidTag() *PalError {
	return &PalError{
		Code:    ErrInvalidTag,
		Message: "Tag cannot be empty.",
	}
}

// NewEmptyQuery creates an error for a search query that trims to empty.
func NewEmptyQuery() *PalError {
	return &PalError{
		Code:    ErrEmptyQuery,
		Message: "Search query cannot be empty.",
	}
}

// NewUnknownCommand creates an error for an unrecognized command keyword.
func NewUnknownCommand(keyword string) *PalError {
	return &PalError{
		Code:    ErrUnknownCommand,
		Message: fmt.Sprintf("Invalid command: %q.", keyword),
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *PalError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &PalError{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is checks if an error is (or wraps) a PalError with the given code.
func Is(err error, code ErrorCode) bool {
	var pErr *PalError
	if stderrors.As(err, &pErr) {
		return pErr.Code == code
	}
	return false
}
