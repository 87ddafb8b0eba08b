package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/person/model"
)

// RepositoryInterface is the patron registry. Implementations keep names
// unique under IsSamePerson semantics and hand out copies: mutating a
// returned Patron never changes stored state until Update is called.
type RepositoryInterface interface {
	// Create stores a new patron with a fresh ID, version 0 and timestamps
	// Errors: ErrDuplicatePerson if a patron with the same name exists
	Create(ctx context.Context, p *model.Patron) (*model.Patron, error)

	// GetByID retrieves patron by UUID
	// Errors: ErrPatronNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*model.Patron, error)

	// List returns every patron, oldest first
	List(ctx context.Context) ([]*model.Patron, error)

	// Update replaces the stored patron with optimistic locking
	// currentVersion must match the stored version
	// Returns: updated patron with incremented version
	// Errors: ErrVersionMismatch, ErrPatronNotFound, ErrDuplicatePerson
	Update(ctx context.Context, p *model.Patron, currentVersion int) (*model.Patron, error)

	// Delete removes patron by ID
	// Errors: ErrPatronNotFound
	Delete(ctx context.Context, id uuid.UUID) error

	// FindSamePerson returns the patron that IsSamePerson as person,
	// skipping excludeID. Errors: ErrPatronNotFound when there is none.
	FindSamePerson(ctx context.Context, person *model.Person, excludeID uuid.UUID) (*model.Patron, error)

	// Ping checks the backing store
	Ping(ctx context.Context) error
}
