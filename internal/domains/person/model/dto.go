package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	book "library-backend/internal/domains/book/model"
)

// CreatePatronRequest - POST /v1/patrons
type CreatePatronRequest struct {
	Name    *string  `json:"name"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email"`
	Address string   `json:"address"`
	Tags    []string `json:"tags,omitempty"`
}

// Validate only checks presence; formats are owned by the value types.
func (r CreatePatronRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NotNil.Error("name is required")),
		validation.Field(&r.Phone, validation.Required.Error("phone is required")),
		validation.Field(&r.Email, validation.Required.Error("email is required")),
		validation.Field(&r.Address, validation.Required.Error("address is required")),
	)
}

// UpdatePatronRequest - PUT /v1/patrons/:id
// All fields optional for partial updates (PATCH behavior)
type UpdatePatronRequest struct {
	Name    *string   `json:"name,omitempty"`
	Phone   *string   `json:"phone,omitempty"`
	Email   *string   `json:"email,omitempty"`
	Address *string   `json:"address,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
	Version int       `json:"version"` // Required for conflict detection
}

func (r UpdatePatronRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Version, validation.Min(0)),
	)
}

// HasChanges reports whether at least one field is set.
func (r UpdatePatronRequest) HasChanges() bool {
	return r.Name != nil || r.Phone != nil || r.Email != nil || r.Address != nil || r.Tags != nil
}

// BorrowBookRequest - POST /v1/patrons/:id/books
type BorrowBookRequest struct {
	BookID uuid.UUID `json:"book_id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
}

func (r BorrowBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Author, validation.Required.Error("author is required")),
	)
}

// PatronResponse - patron as returned by the API
type PatronResponse struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Phone         string         `json:"phone"`
	Email         string         `json:"email"`
	Address       string         `json:"address"`
	Tags          []string       `json:"tags"`
	BorrowedBooks []BookResponse `json:"borrowed_books"`
	Display       string         `json:"display"`
	Version       int            `json:"version"` // For client-side conflict detection
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type BookResponse struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Display string    `json:"display"`
}

// PatronListResponse - list response
type PatronListResponse struct {
	Data  []PatronResponse `json:"data"`
	Total int              `json:"total"`
}

// ToResponse converts Patron entity to PatronResponse DTO
func (p *Patron) ToResponse() *PatronResponse {
	books := p.Person.BorrowedBooks()
	bookResp := make([]BookResponse, 0, len(books))
	for _, b := range books {
		bookResp = append(bookResp, toBookResponse(b))
	}
	return &PatronResponse{
		ID:            p.ID,
		Name:          p.Person.Name().String(),
		Phone:         p.Person.Phone().String(),
		Email:         p.Person.Email().String(),
		Address:       p.Person.Address().String(),
		Tags:          p.Person.Tags().Labels(),
		BorrowedBooks: bookResp,
		Display:       p.Person.String(),
		Version:       p.Version,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toBookResponse(b *book.Book) BookResponse {
	return BookResponse{
		ID:      b.ID,
		Title:   b.Title,
		Author:  b.Author,
		Display: b.Display(),
	}
}

// ToEntity converts CreatePatronRequest to a Person
func (r *CreatePatronRequest) ToEntity() (*Person, error) {
	if r.Name == nil {
		return nil, ErrMissingField
	}
	return ParsePerson(*r.Name, r.Phone, r.Email, r.Address, r.Tags)
}

// ToEntity converts BorrowBookRequest to a book reference
func (r *BorrowBookRequest) ToEntity() (*book.Book, error) {
	return book.NewBook(r.BookID, r.Title, r.Author)
}
