package model

import "errors"

var ErrInvalidBook = errors.New("book is invalid")

// ValidationError carries the field errors reported by ozzo-validation
// while still matching ErrInvalidBook through errors.Is.
type ValidationError struct {
	Cause error
}

func (e *ValidationError) Error() string {
	return ErrInvalidBook.Error() + ": " + e.Cause.Error()
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidBook, e.Cause}
}
