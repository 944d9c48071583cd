package repository

import (
	"context"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/infra"
	"slotbook/internal/infra/converter"
	"slotbook/internal/pkg/config"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, booking_day, slot_time, guests, customer_name, contact, created_at, updated_at`

// BookingRepository is the write side of the reservation store. Every
// statement runs under a bounded timeout so a stalled database surfaces as a
// retryable failure instead of hanging the caller.
type BookingRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewBookingRepository(pool *pgxpool.Pool, cfg config.Config) *BookingRepository {
	return &BookingRepository{
		pool:    pool,
		timeout: cfg.DB.QueryTimeout,
	}
}

// Create claims (day, slot) for the booking. The insert is the single atomic
// check-and-claim; a unique violation on the slot constraint means another
// booking holds the slot and maps to CONFLICT.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (*queries.BookingView, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO bookings (id, booking_day, slot_time, guests, customer_name, contact)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+bookingColumns,
		b.ID(), b.Day().Time(), b.Slot().String(), b.Guests(), b.Name(), b.Contact(),
	)

	view, err := converter.ScanBookingView(row)
	if err != nil {
		if infra.IsSlotClaimViolation(err) {
			return nil, infra.WrapRepoErr("slot already claimed", err, infra.KindConflict)
		}
		return nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return view, nil
}

// Update rewrites the booking's fields. Moving to an occupied (day, slot)
// hits the same constraint as Create; updating the row in place does not
// conflict with itself.
func (r *BookingRepository) Update(ctx context.Context, id uuid.UUID, b *booking.Booking) (*queries.BookingView, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		UPDATE bookings
		SET booking_day = $2, slot_time = $3, guests = $4, customer_name = $5, contact = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+bookingColumns,
		id, b.Day().Time(), b.Slot().String(), b.Guests(), b.Name(), b.Contact(),
	)

	view, err := converter.ScanBookingView(row)
	if err != nil {
		switch {
		case infra.IsNoRows(err):
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		case infra.IsSlotClaimViolation(err):
			return nil, infra.WrapRepoErr("slot already claimed", err, infra.KindConflict)
		default:
			return nil, infra.WrapRepoErr("failed to update booking", err)
		}
	}
	return view, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
