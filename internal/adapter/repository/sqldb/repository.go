// Package sqldb implements URL persistence on top of sqlx. The same queries
// run against SQLite and Postgres; placeholders are rebound per driver.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/flashurl/internal/entity"
)

const defaultQueryTimeout = 3 * time.Second

type urlDB struct {
	ShortCode string `db:"short_code"`
	LongURL   string `db:"long_url"`
}

func (u *urlDB) toEntity() *entity.URL {
	return &entity.URL{
		ShortCode: u.ShortCode,
		LongURL:   u.LongURL,
	}
}

type Option func(*URLRepository)

// WithQueryTimeout bounds every repository call. A non-positive d disables the bound.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *URLRepository) {
		r.queryTimeout = d
	}
}

type URLRepository struct {
	db           *sqlx.DB
	queryTimeout time.Duration
}

func NewURLRepository(db *sqlx.DB, opts ...Option) *URLRepository {
	r := &URLRepository{
		db:           db,
		queryTimeout: defaultQueryTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *URLRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

func (r *URLRepository) Save(ctx context.Context, shortCode, longURL string) (*entity.URL, error) {
	const op = "adapter.repository.sqldb.URLRepository.Save"
	const query = `INSERT INTO urls (short_code, long_url) VALUES (?, ?)`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), shortCode, longURL); err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLExists)
		}

		return nil, fmt.Errorf("%s: failed to insert into urls table: %w: %w", op, entity.ErrStorage, err)
	}

	return &entity.URL{ShortCode: shortCode, LongURL: longURL}, nil
}

func (r *URLRepository) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.sqldb.URLRepository.RetrieveByShortCode"
	const query = `SELECT short_code, long_url FROM urls WHERE short_code = ?`

	return r.retrieve(ctx, op, query, shortCode)
}

func (r *URLRepository) RetrieveByLongURL(ctx context.Context, longURL string) (*entity.URL, error) {
	const op = "adapter.repository.sqldb.URLRepository.RetrieveByLongURL"
	const query = `SELECT short_code, long_url FROM urls WHERE long_url = ?`

	return r.retrieve(ctx, op, query, longURL)
}

func (r *URLRepository) retrieve(ctx context.Context, op, query string, arg string) (*entity.URL, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var url urlDB

	if err := r.db.GetContext(ctx, &url, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from urls table: %w: %w", op, entity.ErrStorage, err)
	}

	return url.toEntity(), nil
}
