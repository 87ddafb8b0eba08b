package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/person/model"
)

// ServiceInterface defines the patron business operations
type ServiceInterface interface {
	// Create registers a new patron
	// Business rules:
	// - every field goes through its value-type constructor
	// - a patron with exactly the same name must not exist (IsSamePerson)
	// Errors: ErrInvalidArgument family, ErrDuplicatePerson
	Create(ctx context.Context, req *model.CreatePatronRequest) (*model.Patron, error)

	// GetByID retrieves patron by UUID
	// Errors: ErrPatronNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*model.Patron, error)

	// List returns all patrons, oldest first
	List(ctx context.Context) ([]*model.Patron, error)

	// Update edits identity fields and tags
	// Business rules:
	// - current version required (optimistic locking)
	// - only non-nil fields change; the borrowed-book ledger is kept
	// - a new name is checked with IsValidPerson and must not collide
	// Errors: ErrPatronNotFound, ErrVersionMismatch, ErrDuplicatePerson, ErrInvalidArgument family
	Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatronRequest) (*model.Patron, error)

	// Delete removes a patron that holds no books
	// Errors: ErrPatronNotFound, ErrPatronHasBooks
	Delete(ctx context.Context, id uuid.UUID) error

	// BorrowBook records a loan. Borrowing a book already held is a no-op.
	// Errors: ErrPatronNotFound, book.ErrInvalidBook
	BorrowBook(ctx context.Context, id uuid.UUID, req *model.BorrowBookRequest) (*model.Patron, error)

	// ReturnBook removes a loan identified by book ID. Returning a book
	// that is not held is a no-op.
	// Errors: ErrPatronNotFound
	ReturnBook(ctx context.Context, id uuid.UUID, bookID uuid.UUID) (*model.Patron, error)
}
