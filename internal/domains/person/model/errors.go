package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidArgument is the root of every construction failure. Callers
// never receive a partially built Person alongside it.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	// Validation Errors
	ErrMissingField   = fmt.Errorf("%w: required field is missing", ErrInvalidArgument)
	ErrInvalidName    = fmt.Errorf("%w: names should only contain alphanumeric characters and spaces, and it should not be blank", ErrInvalidArgument)
	ErrInvalidPhone   = fmt.Errorf("%w: phone numbers should only contain numbers, and it should be at least 3 digits long", ErrInvalidArgument)
	ErrInvalidEmail   = fmt.Errorf("%w: emails should be of the format local-part@domain", ErrInvalidArgument)
	ErrInvalidAddress = fmt.Errorf("%w: addresses can take any values, and it should not be blank", ErrInvalidArgument)
	ErrInvalidTag     = fmt.Errorf("%w: tag names should be alphanumeric", ErrInvalidArgument)

	// ErrNilReference is returned by IsValidPerson for a nil candidate.
	// It flags a bug at the call site, not bad user input.
	ErrNilReference = errors.New("nil reference")

	// Business Rule Errors
	ErrPatronNotFound  = errors.New("patron not found")
	ErrDuplicatePerson = errors.New("this person already exists in the library")
	ErrPatronHasBooks  = errors.New("cannot delete patron with borrowed books")
	ErrVersionMismatch = errors.New("patron version mismatch - conflict detected")
	ErrBookConflict    = errors.New("book id and title/author name different loans")

	// Database Errors
	ErrDatabaseQuery = errors.New("database query error")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrPatronNotFound):
		return "PATRON_NOT_FOUND"
	case errors.Is(err, ErrDuplicatePerson):
		return "DUPLICATE_PERSON"
	case errors.Is(err, ErrPatronHasBooks):
		return "PATRON_HAS_BOOKS"
	case errors.Is(err, ErrVersionMismatch):
		return "VERSION_CONFLICT"
	case errors.Is(err, ErrBookConflict):
		return "BOOK_CONFLICT"
	case errors.Is(err, ErrInvalidName):
		return "INVALID_NAME"
	case errors.Is(err, ErrInvalidPhone):
		return "INVALID_PHONE"
	case errors.Is(err, ErrInvalidEmail):
		return "INVALID_EMAIL"
	case errors.Is(err, ErrInvalidAddress):
		return "INVALID_ADDRESS"
	case errors.Is(err, ErrInvalidTag):
		return "INVALID_TAG"
	case errors.Is(err, ErrInvalidArgument):
		return "INVALID_ARGUMENT"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrPatronNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicatePerson),
		errors.Is(err, ErrVersionMismatch),
		errors.Is(err, ErrPatronHasBooks),
		errors.Is(err, ErrBookConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
