// internal/domains/person/service/person_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"library-backend/internal/domains/person/model"
	"library-backend/internal/domains/person/repository"
	"library-backend/pkg/logger"
)

// maxLedgerAttempts bounds the read-modify-write retries of BorrowBook
// and ReturnBook when another writer bumps the version in between.
const maxLedgerAttempts = 3

// personService implements ServiceInterface
type personService struct {
	repo repository.RepositoryInterface
}

// NewPersonService creates a new patron service instance
func NewPersonService(repo repository.RepositoryInterface) ServiceInterface {
	return &personService{
		repo: repo,
	}
}

func (s *personService) Create(ctx context.Context, req *model.CreatePatronRequest) (*model.Patron, error) {
	person, err := req.ToEntity()
	if err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, person, uuid.Nil); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.Patron{Person: person})
	if err != nil {
		return nil, fmt.Errorf("failed to create patron: %w", err)
	}

	logger.Info("patron created", map[string]interface{}{
		"patron_id": created.ID.String(),
	})
	return created, nil
}

func (s *personService) GetByID(ctx context.Context, id uuid.UUID) (*model.Patron, error) {
	if id == uuid.Nil {
		return nil, model.ErrPatronNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *personService) List(ctx context.Context) ([]*model.Patron, error) {
	return s.repo.List(ctx)
}

// Update implements ServiceInterface.Update with conflict detection
func (s *personService) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatronRequest) (*model.Patron, error) {
	// ═══════════════════════════════════════════════════════════
	// STEP 1: FETCH CURRENT PATRON + VERSION CHECK
	// ═══════════════════════════════════════════════════════════
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Version != current.Version {
		return nil, model.ErrVersionMismatch
	}

	// ═══════════════════════════════════════════════════════════
	// STEP 2: APPLY PARTIAL UPDATES
	// ═══════════════════════════════════════════════════════════
	edited, err := applyUpdate(current.Person, req)
	if err != nil {
		return nil, err
	}

	// ═══════════════════════════════════════════════════════════
	// STEP 3: DUPLICATE CHECK + SAVE
	// ═══════════════════════════════════════════════════════════
	if !edited.IsSamePerson(current.Person) {
		if err := s.ensureUnique(ctx, edited, id); err != nil {
			return nil, err
		}
	}

	next := *current
	next.Person = edited
	updated, err := s.repo.Update(ctx, &next, current.Version)
	if err != nil {
		return nil, err
	}

	logger.Info("patron updated", map[string]interface{}{
		"patron_id": id.String(),
		"version":   updated.Version,
	})
	return updated, nil
}

func (s *personService) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n := len(current.Person.BorrowedBooks()); n > 0 {
		return fmt.Errorf("%w (%d outstanding)", model.ErrPatronHasBooks, n)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("patron deleted", map[string]interface{}{
		"patron_id": id.String(),
	})
	return nil
}

// BorrowBook adds the book to the ledger. The book ID and the title/author
// pair must name the same loan: a held ID with another title or author, or
// a held title/author under another client-supplied ID, is ErrBookConflict.
func (s *personService) BorrowBook(ctx context.Context, id uuid.UUID, req *model.BorrowBookRequest) (*model.Patron, error) {
	b, err := req.ToEntity()
	if err != nil {
		return nil, err
	}
	explicitID := req.BookID != uuid.Nil

	return s.mutateLedger(ctx, id, func(p *model.Person) (bool, error) {
		for _, held := range p.BorrowedBooks() {
			sameID := held.ID == b.ID
			sameBook := held.Equal(b)
			switch {
			case sameID && sameBook:
				return false, nil
			case sameID:
				return false, fmt.Errorf("%w: %s is on loan as %q", model.ErrBookConflict, b.ID, held.Display())
			case sameBook && explicitID:
				return false, fmt.Errorf("%w: %q is on loan as %s", model.ErrBookConflict, held.Display(), held.ID)
			case sameBook:
				return false, nil
			}
		}
		p.BorrowBook(b)
		logger.Info("book borrowed", map[string]interface{}{
			"patron_id": id.String(),
			"book_id":   b.ID.String(),
			"book":      b.Display(),
		})
		return true, nil
	})
}

// ReturnBook removes the loan with the given book ID. An ID that is not on
// loan leaves the patron unchanged.
func (s *personService) ReturnBook(ctx context.Context, id uuid.UUID, bookID uuid.UUID) (*model.Patron, error) {
	return s.mutateLedger(ctx, id, func(p *model.Person) (bool, error) {
		for _, held := range p.BorrowedBooks() {
			if held.ID == bookID {
				p.ReturnBook(held)
				logger.Info("book returned", map[string]interface{}{
					"patron_id": id.String(),
					"book_id":   bookID.String(),
					"book":      held.Display(),
				})
				return true, nil
			}
		}
		return false, nil
	})
}

// mutateLedger loads the patron, applies change and saves it when change
// reports a modification. Version conflicts are retried.
func (s *personService) mutateLedger(ctx context.Context, id uuid.UUID, change func(*model.Person) (bool, error)) (*model.Patron, error) {
	var lastErr error
	for attempt := 1; attempt <= maxLedgerAttempts; attempt++ {
		current, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		changed, err := change(current.Person)
		if err != nil {
			return nil, err
		}
		if !changed {
			return current, nil
		}

		updated, err := s.repo.Update(ctx, current, current.Version)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, model.ErrVersionMismatch) {
			return nil, err
		}
		lastErr = err
		logger.Warn("ledger update conflict, retrying", map[string]interface{}{
			"patron_id": id.String(),
			"attempt":   attempt,
		})
	}
	return nil, lastErr
}

func (s *personService) ensureUnique(ctx context.Context, person *model.Person, excludeID uuid.UUID) error {
	_, err := s.repo.FindSamePerson(ctx, person, excludeID)
	switch {
	case err == nil:
		return model.ErrDuplicatePerson
	case errors.Is(err, model.ErrPatronNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check duplicate patron: %w", err)
	}
}

// applyUpdate builds the edited Person. Unset fields keep their current
// value and the ledger is replayed onto the new instance.
func applyUpdate(current *model.Person, req *model.UpdatePatronRequest) (*model.Person, error) {
	name := current.Name()
	if req.Name != nil {
		ok, err := model.IsValidPerson(req.Name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, model.ErrInvalidName
		}
		if name, err = model.NewName(*req.Name); err != nil {
			return nil, err
		}
	}

	phone := current.Phone()
	if req.Phone != nil {
		var err error
		if phone, err = model.NewPhone(*req.Phone); err != nil {
			return nil, err
		}
	}

	email := current.Email()
	if req.Email != nil {
		var err error
		if email, err = model.NewEmail(*req.Email); err != nil {
			return nil, err
		}
	}

	address := current.Address()
	if req.Address != nil {
		var err error
		if address, err = model.NewAddress(*req.Address); err != nil {
			return nil, err
		}
	}

	tags := current.Tags().Slice()
	if req.Tags != nil {
		var err error
		if tags, err = model.NewTags(*req.Tags...); err != nil {
			return nil, err
		}
	}

	edited, err := model.NewPerson(name, phone, email, address, tags)
	if err != nil {
		return nil, err
	}
	for _, b := range current.BorrowedBooks() {
		edited.BorrowBook(b)
	}
	return edited, nil
}
