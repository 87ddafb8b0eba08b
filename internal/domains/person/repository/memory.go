package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/person/model"
)

// memoryRepository keeps patrons in process memory, in insertion order.
type memoryRepository struct {
	mu      sync.RWMutex
	order   []uuid.UUID
	patrons map[uuid.UUID]*model.Patron
	now     func() time.Time
}

// NewMemoryRepository creates an empty in-memory registry
func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{
		patrons: make(map[uuid.UUID]*model.Patron),
		now:     time.Now,
	}
}

func clonePatron(p *model.Patron) *model.Patron {
	c := *p
	c.Person = p.Person.Clone()
	return &c
}

func (r *memoryRepository) Create(_ context.Context, p *model.Patron) (*model.Patron, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findSameLocked(p.Person, uuid.Nil) != nil {
		return nil, model.ErrDuplicatePerson
	}

	stored := clonePatron(p)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if _, exists := r.patrons[stored.ID]; exists {
		return nil, model.ErrDuplicatePerson
	}
	now := r.now().UTC()
	stored.Version = 0
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.patrons[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return clonePatron(stored), nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Patron, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patrons[id]
	if !ok {
		return nil, model.ErrPatronNotFound
	}
	return clonePatron(p), nil
}

func (r *memoryRepository) List(_ context.Context) ([]*model.Patron, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Patron, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clonePatron(r.patrons[id]))
	}
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, p *model.Patron, currentVersion int) (*model.Patron, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.patrons[p.ID]
	if !ok {
		return nil, model.ErrPatronNotFound
	}
	if existing.Version != currentVersion {
		return nil, model.ErrVersionMismatch
	}
	if r.findSameLocked(p.Person, p.ID) != nil {
		return nil, model.ErrDuplicatePerson
	}

	stored := clonePatron(p)
	stored.Version = existing.Version + 1
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = r.now().UTC()

	r.patrons[p.ID] = stored
	return clonePatron(stored), nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patrons[id]; !ok {
		return model.ErrPatronNotFound
	}
	delete(r.patrons, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryRepository) FindSamePerson(_ context.Context, person *model.Person, excludeID uuid.UUID) (*model.Patron, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p := r.findSameLocked(person, excludeID); p != nil {
		return clonePatron(p), nil
	}
	return nil, model.ErrPatronNotFound
}

func (r *memoryRepository) findSameLocked(person *model.Person, excludeID uuid.UUID) *model.Patron {
	for _, id := range r.order {
		if id == excludeID {
			continue
		}
		if p := r.patrons[id]; p.Person.IsSamePerson(person) {
			return p
		}
	}
	return nil
}

func (r *memoryRepository) Ping(context.Context) error { return nil }
