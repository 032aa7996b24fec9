package postgres

import (
	"context"
	"time"

	"github.com/Kr4ToS117/Site-Location/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepo interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	Cancel(ctx context.Context, id string) (bool, error)
	MarkPaid(ctx context.Context, id string) (bool, error)
}

type BookingRepoImpl struct{ pool *pgxpool.Pool }

func NewBookingRepo(pool *pgxpool.Pool) *BookingRepoImpl { return &BookingRepoImpl{pool: pool} }

const bookingCols = `id, status,
first_name, last_name, email, phone, address, pets_allowed,
check_in, check_out, guests, arrival_time, special_requests,
nights, subtotal, cleaning_fee, security_deposit, total_price,
created_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b                  domain.Booking
		checkIn, checkOut  time.Time
		subtotal, cleaning int64
		deposit, total     int64
	)
	err := row.Scan(
		&b.ID, &b.Status,
		&b.FirstName, &b.LastName, &b.Email, &b.Phone, &b.Address, &b.PetsAllowed,
		&checkIn, &checkOut, &b.Guests, &b.ArrivalTime, &b.SpecialRequests,
		&b.Nights, &subtotal, &cleaning, &deposit, &total,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.CheckIn = domain.NewDate(checkIn.Year(), checkIn.Month(), checkIn.Day())
	b.CheckOut = domain.NewDate(checkOut.Year(), checkOut.Month(), checkOut.Day())
	b.Subtotal = domain.Cents(subtotal)
	b.CleaningFee = domain.Cents(cleaning)
	b.SecurityDeposit = domain.Cents(deposit)
	b.TotalPrice = domain.Cents(total)
	return &b, nil
}

func (r *BookingRepoImpl) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	const q = `INSERT INTO bookings (
    id, status,
    first_name, last_name, email, phone, address, pets_allowed,
    check_in, check_out, guests, arrival_time, special_requests,
    nights, subtotal, cleaning_fee, security_deposit, total_price
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
  RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	stored, err := scanBooking(r.pool.QueryRow(ctx, q,
		uuid.NewString(), b.Status,
		b.FirstName, b.LastName, b.Email, b.Phone, b.Address, b.PetsAllowed,
		b.CheckIn.Time(), b.CheckOut.Time(), b.Guests, b.ArrivalTime, b.SpecialRequests,
		b.Nights, int64(b.Subtotal), int64(b.CleaningFee), int64(b.SecurityDeposit), int64(b.TotalPrice),
	))
	if err != nil {
		return nil, &domain.StorageError{Op: "create booking", Err: err}
	}
	return stored, nil
}

func (r *BookingRepoImpl) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	b, err := scanBooking(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get booking", Err: err}
	}
	return b, nil
}

func (r *BookingRepoImpl) List(ctx context.Context) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings
		WHERE status <> 'cancelled' ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, &domain.StorageError{Op: "list bookings", Err: err}
	}
	defer rows.Close()

	var bs []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "list bookings", Err: err}
		}
		bs = append(bs, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list bookings", Err: err}
	}
	return bs, nil
}

func (r *BookingRepoImpl) Cancel(ctx context.Context, id string) (bool, error) {
	const q = `UPDATE bookings SET status='cancelled' WHERE id=$1 AND status <> 'cancelled'`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, &domain.StorageError{Op: "cancel booking", Err: err}
	}
	return ct.RowsAffected() > 0, nil
}

func (r *BookingRepoImpl) MarkPaid(ctx context.Context, id string) (bool, error) {
	const q = `UPDATE bookings SET status='paid' WHERE id=$1 AND status='pending_payment'`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, &domain.StorageError{Op: "mark booking paid", Err: err}
	}
	return ct.RowsAffected() > 0, nil
}

var _ BookingRepo = (*BookingRepoImpl)(nil)
