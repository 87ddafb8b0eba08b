package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	book "library-backend/internal/domains/book/model"
)

// Patron is a registry entry: a Person plus the bookkeeping the registry
// needs to address and version it.
type Patron struct {
	// Identity - UUID assigned by the registry
	ID uuid.UUID `json:"id" db:"id"`

	Person *Person `json:"-"`

	// Versioning for Optimistic Locking
	Version int `json:"version" db:"version"` // Incremented on each update

	// Audit timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PersonSnapshot is the flat, serializable form of a Person used by the
// cache and the database layer.
type PersonSnapshot struct {
	Name          string      `json:"name"`
	Phone         string      `json:"phone"`
	Email         string      `json:"email"`
	Address       string      `json:"address"`
	Tags          []string    `json:"tags"`
	BorrowedBooks []book.Book `json:"borrowed_books"`
}

// Snapshot flattens p.
func (p *Person) Snapshot() PersonSnapshot {
	books := make([]book.Book, 0, len(p.borrowedBooks))
	for _, b := range p.borrowedBooks {
		books = append(books, *b)
	}
	return PersonSnapshot{
		Name:          p.name.value,
		Phone:         p.phone.value,
		Email:         p.email.value,
		Address:       p.address.value,
		Tags:          p.Tags().Labels(),
		BorrowedBooks: books,
	}
}

// Restore rebuilds a Person from a snapshot, running every field through
// its constructor again and replaying the ledger in order.
func (s PersonSnapshot) Restore() (*Person, error) {
	p, err := ParsePerson(s.Name, s.Phone, s.Email, s.Address, s.Tags)
	if err != nil {
		return nil, err
	}
	for i := range s.BorrowedBooks {
		b := s.BorrowedBooks[i]
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("restore borrowed book %d: %w", i, err)
		}
		p.BorrowBook(&b)
	}
	return p, nil
}

// PatronSnapshot is the serializable form of a Patron.
type PatronSnapshot struct {
	ID        uuid.UUID      `json:"id"`
	Person    PersonSnapshot `json:"person"`
	Version   int            `json:"version"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Snapshot flattens the patron record.
func (p *Patron) Snapshot() PatronSnapshot {
	return PatronSnapshot{
		ID:        p.ID,
		Person:    p.Person.Snapshot(),
		Version:   p.Version,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// Restore rebuilds the patron record.
func (s PatronSnapshot) Restore() (*Patron, error) {
	person, err := s.Person.Restore()
	if err != nil {
		return nil, err
	}
	return &Patron{
		ID:        s.ID,
		Person:    person,
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}, nil
}

// ParsePerson runs raw strings through the value-type constructors and
// NewPerson. The first failing field wins.
func ParsePerson(name, phone, email, address string, tagLabels []string) (*Person, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	ph, err := NewPhone(phone)
	if err != nil {
		return nil, err
	}
	em, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	addr, err := NewAddress(address)
	if err != nil {
		return nil, err
	}
	tags, err := NewTags(tagLabels...)
	if err != nil {
		return nil, err
	}
	return NewPerson(n, ph, em, addr, tags)
}
