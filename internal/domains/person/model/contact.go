package model

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Constants for validation
const (
	MinPhoneDigits   = 3
	MaxEmailLength   = 255
	MaxAddressLength = 500
)

var leadingNonSpace = regexp.MustCompile(`^\S`)

// Phone is a patron's phone number: digits only, at least MinPhoneDigits.
type Phone struct {
	value string
}

// NewPhone validates s and wraps it.
func NewPhone(s string) (Phone, error) {
	err := validation.Validate(s,
		validation.Required,
		is.Digit,
		validation.Length(MinPhoneDigits, 0),
	)
	if err != nil {
		return Phone{}, fmt.Errorf("%w (%v)", ErrInvalidPhone, err)
	}
	return Phone{value: s}, nil
}

func (p Phone) String() string { return p.value }
func (p Phone) IsZero() bool   { return p.value == "" }

// Email is a patron's e-mail address in local-part@domain form.
type Email struct {
	value string
}

// NewEmail validates s and wraps it. No DNS lookup is made.
func NewEmail(s string) (Email, error) {
	err := validation.Validate(s,
		validation.Required,
		validation.Length(3, MaxEmailLength),
		is.EmailFormat,
	)
	if err != nil {
		return Email{}, fmt.Errorf("%w (%v)", ErrInvalidEmail, err)
	}
	return Email{value: s}, nil
}

func (e Email) String() string { return e.value }
func (e Email) IsZero() bool   { return e.value == "" }

// Address is free-form text that must not start with whitespace.
type Address struct {
	value string
}

// NewAddress validates s and wraps it.
func NewAddress(s string) (Address, error) {
	err := validation.Validate(s,
		validation.Required,
		validation.RuneLength(1, MaxAddressLength),
		validation.Match(leadingNonSpace),
	)
	if err != nil {
		return Address{}, fmt.Errorf("%w (%v)", ErrInvalidAddress, err)
	}
	return Address{value: s}, nil
}

func (a Address) String() string { return a.value }
func (a Address) IsZero() bool   { return a.value == "" }
