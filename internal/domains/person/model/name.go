package model

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxNameLength is the longest name accepted, counted in runes.
const MaxNameLength = 255

// Name is a patron's full name. The zero value is the "missing" name.
type Name struct {
	value string
}

// NewName validates s against IsValidName and stores its NFC form, so
// composed and decomposed spellings of one name are the same person.
// There is no trimming and no case folding.
func NewName(s string) (Name, error) {
	if !IsValidName(s) {
		return Name{}, ErrInvalidName
	}
	return Name{value: norm.NFC.String(s)}, nil
}

// IsValidName reports whether s is an acceptable name: it starts with a
// letter or digit, continues with letters, digits or spaces only, and is
// at most MaxNameLength runes long. There is no limit on the word count.
// s is judged in NFC, so a combining accent counts as part of its letter.
func IsValidName(s string) bool {
	s = norm.NFC.String(s)
	if s == "" || utf8.RuneCountInString(s) > MaxNameLength {
		return false
	}
	for i, r := range s {
		if r == ' ' && i > 0 {
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsValidPerson is IsValidName for callers holding an optional name, e.g.
// a decoded request field. A nil candidate is an ErrNilReference, never a
// plain false.
func IsValidPerson(candidate *string) (bool, error) {
	if candidate == nil {
		return false, fmt.Errorf("%w: name candidate", ErrNilReference)
	}
	return IsValidName(*candidate), nil
}

func (n Name) String() string { return n.value }

// IsZero reports whether n was never set.
func (n Name) IsZero() bool { return n.value == "" }
