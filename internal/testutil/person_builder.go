// Package testutil holds fixtures shared by the patron tests.
package testutil

import (
	book "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/person/model"
)

const (
	DefaultName    = "Amy Bee"
	DefaultPhone   = "85355255"
	DefaultEmail   = "amy@gmail.com"
	DefaultAddress = "123, Jurong West Ave 6, #08-111"
)

// PersonBuilder assembles Person values for tests. Build panics on invalid
// input so fixtures fail loudly.
type PersonBuilder struct {
	name    string
	phone   string
	email   string
	address string
	tags    []string
	books   []*book.Book
}

// NewPersonBuilder starts from the default patron.
func NewPersonBuilder() *PersonBuilder {
	return &PersonBuilder{
		name:    DefaultName,
		phone:   DefaultPhone,
		email:   DefaultEmail,
		address: DefaultAddress,
	}
}

// PersonBuilderFrom copies every field of p, ledger included.
func PersonBuilderFrom(p *model.Person) *PersonBuilder {
	return &PersonBuilder{
		name:    p.Name().String(),
		phone:   p.Phone().String(),
		email:   p.Email().String(),
		address: p.Address().String(),
		tags:    p.Tags().Labels(),
		books:   p.BorrowedBooks(),
	}
}

func (b *PersonBuilder) WithName(name string) *PersonBuilder {
	b.name = name
	return b
}

func (b *PersonBuilder) WithPhone(phone string) *PersonBuilder {
	b.phone = phone
	return b
}

func (b *PersonBuilder) WithEmail(email string) *PersonBuilder {
	b.email = email
	return b
}

func (b *PersonBuilder) WithAddress(address string) *PersonBuilder {
	b.address = address
	return b
}

// WithTags replaces the tag set.
func (b *PersonBuilder) WithTags(tags ...string) *PersonBuilder {
	b.tags = tags
	return b
}

// WithBooks replaces the ledger.
func (b *PersonBuilder) WithBooks(books ...*book.Book) *PersonBuilder {
	b.books = books
	return b
}

func (b *PersonBuilder) Build() *model.Person {
	p, err := model.ParsePerson(b.name, b.phone, b.email, b.address, b.tags)
	if err != nil {
		panic(err)
	}
	for _, bk := range b.books {
		p.BorrowBook(bk)
	}
	return p
}
