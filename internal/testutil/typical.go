package testutil

import (
	"github.com/google/uuid"

	book "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/person/model"
)

// Values that differ from every typical patron.
const (
	ValidNameBob    = "Bob Choo"
	ValidPhoneBob   = "22222222"
	ValidEmailBob   = "bob@example.com"
	ValidAddressBob = "Block 123, Bobby Street 3"
	ValidTagHusband = "husband"
	ValidTagFriend  = "friend"
)

// Typical books. Callers must not mutate them.
var (
	AGameOfThrones = &book.Book{
		ID:     uuid.MustParse("0b6f2f3a-5a41-4b55-9a35-6f9f4c1f7d01"),
		Title:  "A Game of Thrones",
		Author: "George RR Martin",
	}
	Beloved = &book.Book{
		ID:     uuid.MustParse("0b6f2f3a-5a41-4b55-9a35-6f9f4c1f7d02"),
		Title:  "Beloved",
		Author: "Toni Morrison",
	}
)

// Alice returns a fresh copy of the typical patron Alice.
func Alice() *model.Person {
	return NewPersonBuilder().
		WithName("Alice Pauline").
		WithAddress("123, Jurong West Ave 6, #08-111").
		WithEmail("alice@example.com").
		WithPhone("94351253").
		WithTags("friends").
		Build()
}

// Bob returns a fresh copy of the typical patron Bob.
func Bob() *model.Person {
	return NewPersonBuilder().
		WithName(ValidNameBob).
		WithPhone(ValidPhoneBob).
		WithEmail(ValidEmailBob).
		WithAddress(ValidAddressBob).
		WithTags(ValidTagHusband, ValidTagFriend).
		Build()
}

// Benson returns a fresh copy of the typical patron Benson.
func Benson() *model.Person {
	return NewPersonBuilder().
		WithName("Benson Meier").
		WithAddress("311, Clementi Ave 2, #02-25").
		WithEmail("johnd@example.com").
		WithPhone("98765432").
		WithTags("owesMoney", "friends").
		Build()
}
