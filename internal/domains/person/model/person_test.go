package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	book "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/person/model"
	"library-backend/internal/testutil"
)

func mustName(t *testing.T, s string) model.Name {
	t.Helper()
	n, err := model.NewName(s)
	require.NoError(t, err)
	return n
}

func mustPhone(t *testing.T, s string) model.Phone {
	t.Helper()
	p, err := model.NewPhone(s)
	require.NoError(t, err)
	return p
}

func mustEmail(t *testing.T, s string) model.Email {
	t.Helper()
	e, err := model.NewEmail(s)
	require.NoError(t, err)
	return e
}

func mustAddress(t *testing.T, s string) model.Address {
	t.Helper()
	a, err := model.NewAddress(s)
	require.NoError(t, err)
	return a
}

func Test_NewPerson_ReadsBackExactInput(t *testing.T) {
	tags, err := model.NewTags("friends", "colleagues")
	require.NoError(t, err)

	p, err := model.NewPerson(
		mustName(t, "Alice Pauline"),
		mustPhone(t, "94351253"),
		mustEmail(t, "alice@example.com"),
		mustAddress(t, "123, Jurong West Ave 6, #08-111"),
		tags,
	)
	require.NoError(t, err)

	assert.Equal(t, "Alice Pauline", p.Name().String())
	assert.Equal(t, "94351253", p.Phone().String())
	assert.Equal(t, "alice@example.com", p.Email().String())
	assert.Equal(t, "123, Jurong West Ave 6, #08-111", p.Address().String())
	assert.Equal(t, []string{"friends", "colleagues"}, p.Tags().Labels())
	assert.Empty(t, p.BorrowedBooks())
}

func Test_NewPerson_MissingFieldFails(t *testing.T) {
	name := mustName(t, "Alice Pauline")
	phone := mustPhone(t, "94351253")
	email := mustEmail(t, "alice@example.com")
	address := mustAddress(t, "Jurong West")

	tests := []struct {
		name  string
		build func() (*model.Person, error)
	}{
		{"missing_name", func() (*model.Person, error) { return model.NewPerson(model.Name{}, phone, email, address, nil) }},
		{"missing_phone", func() (*model.Person, error) { return model.NewPerson(name, model.Phone{}, email, address, nil) }},
		{"missing_email", func() (*model.Person, error) { return model.NewPerson(name, phone, model.Email{}, address, nil) }},
		{"missing_address", func() (*model.Person, error) { return model.NewPerson(name, phone, email, model.Address{}, nil) }},
		{"empty_tag", func() (*model.Person, error) { return model.NewPerson(name, phone, email, address, []model.Tag{{}}) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tc.build()
			assert.Nil(t, p)
			assert.ErrorIs(t, err, model.ErrInvalidArgument)
		})
	}
}

func Test_NewPerson_CollapsesDuplicateTags(t *testing.T) {
	p := testutil.NewPersonBuilder().WithTags("friends", "friends", "family").Build()

	assert.Equal(t, 2, p.Tags().Len())
	assert.Equal(t, "[friends, family]", p.Tags().String())
}

func Test_Tags_ViewCannotMutatePerson(t *testing.T) {
	p := testutil.NewPersonBuilder().WithTags("friends", "family").Build()

	tags := p.Tags().Slice()
	tags[0] = model.Tag{}
	tags = tags[:1]

	labels := p.Tags().Labels()
	labels[1] = "hacked"

	assert.Equal(t, []string{"friends", "family"}, p.Tags().Labels())
	assert.Len(t, tags, 1)
}

func Test_IsSamePerson(t *testing.T) {
	alice := testutil.Alice()
	bob := testutil.Bob()

	t.Run("same_object", func(t *testing.T) {
		assert.True(t, alice.IsSamePerson(alice))
	})

	t.Run("nil", func(t *testing.T) {
		assert.False(t, alice.IsSamePerson(nil))
	})

	t.Run("same_name_all_other_attributes_different", func(t *testing.T) {
		edited := testutil.PersonBuilderFrom(alice).
			WithPhone(testutil.ValidPhoneBob).
			WithEmail(testutil.ValidEmailBob).
			WithAddress(testutil.ValidAddressBob).
			WithTags(testutil.ValidTagHusband).
			Build()
		assert.True(t, alice.IsSamePerson(edited))
	})

	t.Run("different_name_all_other_attributes_same", func(t *testing.T) {
		edited := testutil.PersonBuilderFrom(alice).WithName(testutil.ValidNameBob).Build()
		assert.False(t, alice.IsSamePerson(edited))
	})

	t.Run("name_differs_in_case", func(t *testing.T) {
		edited := testutil.PersonBuilderFrom(bob).WithName(strings.ToLower(testutil.ValidNameBob)).Build()
		assert.False(t, bob.IsSamePerson(edited))
	})

	t.Run("name_has_trailing_spaces", func(t *testing.T) {
		edited := testutil.PersonBuilderFrom(bob).WithName(testutil.ValidNameBob + " ").Build()
		assert.False(t, bob.IsSamePerson(edited))
	})
}

func Test_Equals(t *testing.T) {
	alice := testutil.Alice()

	assert.True(t, alice.Equals(testutil.PersonBuilderFrom(alice).Build()), "same values")
	assert.True(t, alice.Equals(alice), "same object")
	assert.True(t, alice.Equals(*testutil.Alice()), "value form")
	assert.False(t, alice.Equals(nil), "nil")
	assert.False(t, alice.Equals((*model.Person)(nil)), "typed nil")
	assert.False(t, alice.Equals(5), "different type")
	assert.False(t, alice.Equals(testutil.Bob()), "different person")

	edits := map[string]*model.Person{
		"different_name":    testutil.PersonBuilderFrom(alice).WithName(testutil.ValidNameBob).Build(),
		"different_phone":   testutil.PersonBuilderFrom(alice).WithPhone(testutil.ValidPhoneBob).Build(),
		"different_email":   testutil.PersonBuilderFrom(alice).WithEmail(testutil.ValidEmailBob).Build(),
		"different_address": testutil.PersonBuilderFrom(alice).WithAddress(testutil.ValidAddressBob).Build(),
		"different_tags":    testutil.PersonBuilderFrom(alice).WithTags(testutil.ValidTagHusband).Build(),
	}
	for name, edited := range edits {
		assert.False(t, alice.Equals(edited), name)
	}
}

func Test_Equals_IgnoresTagOrderAndBorrowedBooks(t *testing.T) {
	a := testutil.NewPersonBuilder().WithTags("friends", "family").Build()
	b := testutil.NewPersonBuilder().WithTags("family", "friends").Build()
	b.BorrowBook(testutil.Beloved)

	assert.True(t, a.Equals(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func Test_Hash(t *testing.T) {
	alice := testutil.Alice()

	assert.Equal(t, alice.Hash(), alice.Hash())
	assert.Equal(t, alice.Hash(), testutil.Alice().Hash())
	assert.NotEqual(t, alice.Hash(), testutil.Bob().Hash())

	before := alice.Hash()
	alice.BorrowBook(testutil.AGameOfThrones)
	assert.Equal(t, before, alice.Hash())
}

func Test_BorrowBook(t *testing.T) {
	p := testutil.Alice()
	p.BorrowBook(testutil.AGameOfThrones)

	assert.True(t, p.HasBorrowedBook(testutil.AGameOfThrones))
}

func Test_BorrowBook_IsIdempotent(t *testing.T) {
	p := testutil.Alice()
	p.BorrowBook(testutil.AGameOfThrones)
	p.BorrowBook(&book.Book{Title: "A Game of Thrones", Author: "George RR Martin"})
	p.BorrowBook(nil)

	assert.Len(t, p.BorrowedBooks(), 1)
}

func Test_ReturnBook(t *testing.T) {
	p := testutil.Alice()
	p.BorrowBook(testutil.AGameOfThrones)
	p.ReturnBook(testutil.AGameOfThrones)

	assert.False(t, p.HasBorrowedBook(testutil.AGameOfThrones))

	// returning an absent book is a no-op
	p.ReturnBook(testutil.Beloved)
	p.ReturnBook(nil)
	assert.Empty(t, p.BorrowedBooks())
}

func Test_HasBorrowedBook(t *testing.T) {
	p := testutil.Alice()
	p.BorrowBook(testutil.AGameOfThrones)

	assert.True(t, p.HasBorrowedBook(testutil.AGameOfThrones))
	assert.True(t, p.HasBorrowedBook(&book.Book{Title: "A Game of Thrones", Author: "George RR Martin"}))
	assert.False(t, p.HasBorrowedBook(testutil.Beloved))
	assert.False(t, p.HasBorrowedBook(nil))
}

func Test_BorrowedBooks_IsDetachedCopy(t *testing.T) {
	p := testutil.Alice()
	p.BorrowBook(testutil.AGameOfThrones)

	books := p.BorrowedBooks()
	books[0] = testutil.Beloved

	assert.True(t, p.HasBorrowedBook(testutil.AGameOfThrones))
	assert.False(t, p.HasBorrowedBook(testutil.Beloved))
}

func Test_String(t *testing.T) {
	alice := testutil.Alice()
	assert.Equal(t, alice.String(), testutil.Alice().String())
	assert.NotEqual(t, alice.String(), testutil.Bob().String())

	alice.BorrowBook(testutil.AGameOfThrones)
	alice.BorrowBook(testutil.Beloved)

	assert.Equal(t, "Alice Pauline; Phone: 94351253; Email: alice@example.com;"+
		" Address: 123, Jurong West Ave 6, #08-111; Books: A Game of Thrones | George RR MartinBeloved |"+
		" Toni Morrison; Tags: [friends]", alice.String())
	assert.True(t, alice.Equals(testutil.Alice()), "ledger does not affect equality")
	assert.NotEqual(t, testutil.Alice().String(), alice.String(), "ledger does affect display")
}

func Test_Snapshot_RoundTrip(t *testing.T) {
	alice := testutil.Alice()
	alice.BorrowBook(testutil.AGameOfThrones)
	alice.BorrowBook(testutil.Beloved)

	restored, err := alice.Snapshot().Restore()
	require.NoError(t, err)

	assert.True(t, alice.Equals(restored))
	assert.Equal(t, alice.String(), restored.String())
}

func Test_Snapshot_RestoreRejectsInvalidName(t *testing.T) {
	snap := testutil.Alice().Snapshot()
	snap.Name = "peter*"

	_, err := snap.Restore()
	assert.ErrorIs(t, err, model.ErrInvalidName)
}

func Test_Clone_IsIndependent(t *testing.T) {
	alice := testutil.Alice()
	alice.BorrowBook(testutil.AGameOfThrones)

	clone := alice.Clone()
	clone.BorrowBook(testutil.Beloved)
	clone.ReturnBook(testutil.AGameOfThrones)

	assert.True(t, alice.Equals(clone))
	assert.True(t, alice.HasBorrowedBook(testutil.AGameOfThrones))
	assert.False(t, alice.HasBorrowedBook(testutil.Beloved))
}
