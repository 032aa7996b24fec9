package postgres

import (
	"context"
	"time"

	"github.com/Kr4ToS117/Site-Location/internal/domain"
	"github.com/Kr4ToS117/Site-Location/internal/pricing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RateRepo interface {
	// Upsert sets the override rate for a date. A single upsert is the
	// only write path, so the database's row-level atomicity is all the
	// locking this needs.
	Upsert(ctx context.Context, date domain.Date, rate domain.Cents) error
	Get(ctx context.Context, date domain.Date) (*domain.Cents, error)
	// ListRange returns the overrides with date in [from, to).
	ListRange(ctx context.Context, from, to domain.Date) (pricing.Overrides, error)
}

type RateRepoImpl struct{ pool *pgxpool.Pool }

func NewRateRepo(pool *pgxpool.Pool) *RateRepoImpl { return &RateRepoImpl{pool: pool} }

func (r *RateRepoImpl) Upsert(ctx context.Context, date domain.Date, rate domain.Cents) error {
	const q = `INSERT INTO rate_overrides (day, rate) VALUES ($1, $2)
		ON CONFLICT (day) DO UPDATE SET rate = EXCLUDED.rate, updated_at = now()`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := r.pool.Exec(ctx, q, date.Time(), int64(rate)); err != nil {
		return &domain.StorageError{Op: "set rate override", Err: err}
	}
	return nil
}

func (r *RateRepoImpl) Get(ctx context.Context, date domain.Date) (*domain.Cents, error) {
	const q = `SELECT rate FROM rate_overrides WHERE day=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var raw int64
	err := r.pool.QueryRow(ctx, q, date.Time()).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get rate override", Err: err}
	}
	rate := domain.Cents(raw)
	return &rate, nil
}

func (r *RateRepoImpl) ListRange(ctx context.Context, from, to domain.Date) (pricing.Overrides, error) {
	const q = `SELECT day, rate FROM rate_overrides WHERE day >= $1 AND day < $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, from.Time(), to.Time())
	if err != nil {
		return nil, &domain.StorageError{Op: "list rate overrides", Err: err}
	}
	defer rows.Close()

	overrides := make(pricing.Overrides)
	for rows.Next() {
		var (
			day time.Time
			raw int64
		)
		if err := rows.Scan(&day, &raw); err != nil {
			return nil, &domain.StorageError{Op: "list rate overrides", Err: err}
		}
		overrides[domain.NewDate(day.Year(), day.Month(), day.Day())] = domain.Cents(raw)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list rate overrides", Err: err}
	}
	return overrides, nil
}

var _ RateRepo = (*RateRepoImpl)(nil)
