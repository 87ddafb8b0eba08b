package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	book "library-backend/internal/domains/book/model"
)

// Person is a library patron.
//
// Name, phone, email, address and tags are fixed at construction.
// The borrowed-book ledger is mutated in place by BorrowBook and
// ReturnBook. Person is not safe for concurrent use; whoever owns the
// instance serializes access to it.
type Person struct {
	// Identity fields
	name    Name
	phone   Phone
	email   Email
	address Address

	// Exclusively owned, never handed out directly
	tags          []Tag
	borrowedBooks []*book.Book
}

// NewPerson builds a patron from pre-validated value types.
// Returns ErrMissingField if any of name, phone, email or address is the
// zero value, ErrInvalidName if the name fails IsValidName.
// Duplicate tags collapse to their first occurrence.
func NewPerson(name Name, phone Phone, email Email, address Address, tags []Tag) (*Person, error) {
	switch {
	case name.IsZero():
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	case phone.IsZero():
		return nil, fmt.Errorf("%w: phone", ErrMissingField)
	case email.IsZero():
		return nil, fmt.Errorf("%w: email", ErrMissingField)
	case address.IsZero():
		return nil, fmt.Errorf("%w: address", ErrMissingField)
	}
	if !IsValidName(name.String()) {
		return nil, ErrInvalidName
	}

	owned := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if t.IsZero() {
			return nil, fmt.Errorf("%w: empty tag", ErrInvalidTag)
		}
		owned = appendUniqueTag(owned, t)
	}

	return &Person{
		name:          name,
		phone:         phone,
		email:         email,
		address:       address,
		tags:          owned,
		borrowedBooks: []*book.Book{},
	}, nil
}

func (p *Person) Name() Name       { return p.name }
func (p *Person) Phone() Phone     { return p.phone }
func (p *Person) Email() Email     { return p.email }
func (p *Person) Address() Address { return p.address }

// Tags returns a read-only view of the tag set.
func (p *Person) Tags() TagView {
	return TagView{tags: p.tags}
}

// BorrowedBooks returns a copy of the ledger in borrow order.
func (p *Person) BorrowedBooks() []*book.Book {
	out := make([]*book.Book, len(p.borrowedBooks))
	copy(out, p.borrowedBooks)
	return out
}

// Clone returns an independent copy, ledger included. Book references
// are shared; they are treated as immutable values.
func (p *Person) Clone() *Person {
	c := *p
	c.tags = append([]Tag(nil), p.tags...)
	c.borrowedBooks = p.BorrowedBooks()
	return &c
}

// ========================================
// BORROW LEDGER
// ========================================

// BorrowBook records b as borrowed. Borrowing a book already on the
// ledger, or a nil book, changes nothing.
func (p *Person) BorrowBook(b *book.Book) {
	if b == nil || p.HasBorrowedBook(b) {
		return
	}
	p.borrowedBooks = append(p.borrowedBooks, b)
}

// ReturnBook removes b from the ledger if present.
func (p *Person) ReturnBook(b *book.Book) {
	for i, held := range p.borrowedBooks {
		if held.Equal(b) {
			p.borrowedBooks = append(p.borrowedBooks[:i], p.borrowedBooks[i+1:]...)
			return
		}
	}
}

// HasBorrowedBook reports whether a book equal to b is on the ledger.
func (p *Person) HasBorrowedBook(b *book.Book) bool {
	if b == nil {
		return false
	}
	for _, held := range p.borrowedBooks {
		if held.Equal(b) {
			return true
		}
	}
	return false
}

// ========================================
// IDENTITY & EQUALITY
// ========================================

// IsSamePerson is the duplicate check used by the registry: two patrons
// are the same person iff their names match exactly, case and
// whitespace included.
func (p *Person) IsSamePerson(other *Person) bool {
	if other == nil {
		return false
	}
	if p == other {
		return true
	}
	return p.name.value == other.name.value
}

// Equals compares name, phone, email, address and tags (as a set).
// The borrowed-book ledger is not part of equality. Any value that is
// not a non-nil Person or *Person yields false.
func (p *Person) Equals(other any) bool {
	var o *Person
	switch v := other.(type) {
	case *Person:
		o = v
	case Person:
		o = &v
	default:
		return false
	}
	if o == nil {
		return false
	}
	if p == o {
		return true
	}
	return p.name == o.name &&
		p.phone == o.phone &&
		p.email == o.email &&
		p.address == o.address &&
		p.Tags().EqualSet(o.Tags())
}

// Hash is consistent with Equals. It is not stable across releases and
// must not be persisted.
func (p *Person) Hash() uint64 {
	labels := p.Tags().Labels()
	sort.Strings(labels)

	d := xxhash.New()
	for _, field := range []string{p.name.value, p.phone.value, p.email.value, p.address.value} {
		_, _ = d.WriteString(field)
		_, _ = d.Write([]byte{0})
	}
	for _, l := range labels {
		_, _ = d.WriteString(l)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}

// String renders the patron for display. Book display strings are joined
// back to back in borrow order.
func (p *Person) String() string {
	var sb strings.Builder
	sb.WriteString(p.name.value)
	sb.WriteString("; Phone: ")
	sb.WriteString(p.phone.value)
	sb.WriteString("; Email: ")
	sb.WriteString(p.email.value)
	sb.WriteString("; Address: ")
	sb.WriteString(p.address.value)
	sb.WriteString("; Books: ")
	for _, b := range p.borrowedBooks {
		sb.WriteString(b.Display())
	}
	sb.WriteString("; Tags: ")
	sb.WriteString(p.Tags().String())
	return sb.String()
}
