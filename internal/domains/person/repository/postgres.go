package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"

	book "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/person/model"
	"library-backend/pkg/database"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// postgresRepository implements RepositoryInterface on pgxpool.
// Caching is layered on top with NewCachedRepository.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new patron repository instance
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const uniqueViolation = "23505"

const patronColumns = `id, name, phone, email, address, tags, borrowed_books, version, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, p *model.Patron) (*model.Patron, error) {
	snap := p.Person.Snapshot()
	booksJSON, err := json.Marshal(snap.BorrowedBooks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode borrowed books: %w", err)
	}

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query := `
        INSERT INTO patrons (id, name, phone, email, address, tags, borrowed_books, version)
        VALUES ($1, $2, $3, $4, $5, $6, $7, 0)
        RETURNING ` + patronColumns

	created, err := scanPatron(r.pool.QueryRow(ctx, query,
		id,
		snap.Name,
		snap.Phone,
		snap.Email,
		snap.Address,
		pq.Array(snap.Tags),
		booksJSON,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrDuplicatePerson
		}
		return nil, fmt.Errorf("failed to create patron: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Patron, error) {
	query := `SELECT ` + patronColumns + ` FROM patrons WHERE id = $1`

	p, err := scanPatron(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPatronNotFound
		}
		return nil, fmt.Errorf("failed to get patron by id: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.Patron, error) {
	query := `SELECT ` + patronColumns + ` FROM patrons ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list patrons: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	patrons := make([]*model.Patron, 0)
	for rows.Next() {
		p, err := scanPatron(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patron: %w", err)
		}
		patrons = append(patrons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list patrons: %v", model.ErrDatabaseQuery, err)
	}
	return patrons, nil
}

// Update writes the whole patron if the stored version still matches.
// The row is locked first so not-found and version conflicts are told
// apart without a race.
func (r *postgresRepository) Update(ctx context.Context, p *model.Patron, currentVersion int) (*model.Patron, error) {
	snap := p.Person.Snapshot()
	booksJSON, err := json.Marshal(snap.BorrowedBooks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode borrowed books: %w", err)
	}

	updated, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Patron, error) {
		var stored int
		err := tx.QueryRow(ctx, `SELECT version FROM patrons WHERE id = $1 FOR UPDATE`, p.ID).Scan(&stored)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrPatronNotFound
			}
			return nil, fmt.Errorf("failed to lock patron: %w", err)
		}
		if stored != currentVersion {
			return nil, model.ErrVersionMismatch
		}

		query := `
        UPDATE patrons
        SET name = $1, phone = $2, email = $3, address = $4, tags = $5,
            borrowed_books = $6, version = version + 1, updated_at = NOW()
        WHERE id = $7
        RETURNING ` + patronColumns

		return scanPatron(tx.QueryRow(ctx, query,
			snap.Name,
			snap.Phone,
			snap.Email,
			snap.Address,
			pq.Array(snap.Tags),
			booksJSON,
			p.ID,
		))
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrDuplicatePerson
		}
		if errors.Is(err, model.ErrPatronNotFound) || errors.Is(err, model.ErrVersionMismatch) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update patron: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patrons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patron: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPatronNotFound
	}
	return nil
}

// FindSamePerson relies on the name column's exact, case-sensitive
// comparison, which is what IsSamePerson checks.
func (r *postgresRepository) FindSamePerson(ctx context.Context, person *model.Person, excludeID uuid.UUID) (*model.Patron, error) {
	query := `SELECT ` + patronColumns + ` FROM patrons WHERE name = $1 AND id <> $2 LIMIT 1`

	p, err := scanPatron(r.pool.QueryRow(ctx, query, person.Name().String(), excludeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPatronNotFound
		}
		return nil, fmt.Errorf("failed to find patron by name: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanPatron(row pgx.Row) (*model.Patron, error) {
	var (
		p         model.Patron
		snap      model.PersonSnapshot
		tags      []string
		booksJSON []byte
	)
	err := row.Scan(
		&p.ID,
		&snap.Name,
		&snap.Phone,
		&snap.Email,
		&snap.Address,
		&tags,
		&booksJSON,
		&p.Version,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	snap.Tags = tags
	if len(booksJSON) > 0 {
		var books []book.Book
		if err := json.Unmarshal(booksJSON, &books); err != nil {
			return nil, fmt.Errorf("decode borrowed books of %s: %w", p.ID, err)
		}
		snap.BorrowedBooks = books
	}

	person, err := snap.Restore()
	if err != nil {
		return nil, fmt.Errorf("stored patron %s is invalid: %w", p.ID, err)
	}
	p.Person = person
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
