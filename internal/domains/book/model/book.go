package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Constants for validation
const (
	MaxTitleLength  = 500
	MaxAuthorLength = 255
)

// Book is the catalog reference a patron holds while borrowing.
// Two references denote the same book iff title and author match exactly;
// the ID is storage metadata and does not take part in equality.
type Book struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Title  string    `json:"title" db:"title"`
	Author string    `json:"author" db:"author"`
}

// NewBook validates and builds a book reference. A nil ID is replaced
// with a freshly generated one.
func NewBook(id uuid.UUID, title, author string) (*Book, error) {
	b := &Book{
		ID:     id,
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return b, nil
}

// Validate checks title and author
func (b Book) Validate() error {
	err := validation.ValidateStruct(&b,
		validation.Field(&b.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&b.Author,
			validation.Required.Error("author is required"),
			validation.RuneLength(1, MaxAuthorLength),
		),
	)
	if err != nil {
		return &ValidationError{Cause: err}
	}
	return nil
}

// Display returns "<title> | <author>"
func (b *Book) Display() string {
	return b.Title + " | " + b.Author
}

func (b *Book) String() string {
	return b.Display()
}

// Equal reports whether other refers to the same book.
func (b *Book) Equal(other *Book) bool {
	if b == other {
		return true
	}
	if b == nil || other == nil {
		return false
	}
	return b.Title == other.Title && b.Author == other.Author
}
