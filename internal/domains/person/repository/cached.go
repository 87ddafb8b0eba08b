package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/person/model"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

// Cache key constants
const (
	patronCacheKeyPrefix = "patron:"
	cacheTTL             = 15 * time.Minute
)

// PatronCacheKey is the cache key of the patron with the given ID.
func PatronCacheKey(id uuid.UUID) string {
	return patronCacheKeyPrefix + id.String()
}

// cachedRepository puts a read-through cache in front of another registry.
// Reads by ID are cached; every write drops the entry whether or not it
// succeeded, so a stale entry cannot outlive a version conflict.
type cachedRepository struct {
	next  RepositoryInterface
	cache cache.Cache
}

// NewCachedRepository wraps next with a read-through cache keyed by ID.
func NewCachedRepository(next RepositoryInterface, c cache.Cache) RepositoryInterface {
	return &cachedRepository{
		next:  next,
		cache: c,
	}
}

func (r *cachedRepository) Create(ctx context.Context, p *model.Patron) (*model.Patron, error) {
	return r.next.Create(ctx, p)
}

// GetByID serves from the cache when it can. An entry that cannot be
// decoded or restored is dropped; an unreachable cache falls back to the
// wrapped registry.
func (r *cachedRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Patron, error) {
	key := PatronCacheKey(id)

	var cached model.PatronSnapshot
	found, err := r.cache.Get(ctx, key, &cached)
	switch {
	case err != nil && errors.Is(err, cache.ErrCacheUnavailable):
		logger.Warn("patron cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	case err != nil:
		r.drop(ctx, key)
	case found:
		if p, err := cached.Restore(); err == nil {
			logger.Debug("patron cache hit", map[string]interface{}{"key": key})
			return p, nil
		}
		r.drop(ctx, key)
	}

	p, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, p.Snapshot(), cacheTTL); err != nil {
		logger.Warn("patron cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	return p, nil
}

func (r *cachedRepository) List(ctx context.Context) ([]*model.Patron, error) {
	return r.next.List(ctx)
}

func (r *cachedRepository) Update(ctx context.Context, p *model.Patron, currentVersion int) (*model.Patron, error) {
	updated, err := r.next.Update(ctx, p, currentVersion)
	r.drop(ctx, PatronCacheKey(p.ID))
	return updated, err
}

func (r *cachedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.next.Delete(ctx, id)
	r.drop(ctx, PatronCacheKey(id))
	return err
}

func (r *cachedRepository) FindSamePerson(ctx context.Context, person *model.Person, excludeID uuid.UUID) (*model.Patron, error) {
	return r.next.FindSamePerson(ctx, person, excludeID)
}

func (r *cachedRepository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

func (r *cachedRepository) drop(ctx context.Context, key string) {
	if err := r.cache.Delete(ctx, key); err != nil {
		logger.Warn("patron cache invalidation failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
