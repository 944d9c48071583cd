package readstore

import (
	"context"
	"time"

	"slotbook/internal/domain/schedule"
	"slotbook/internal/infra"
	"slotbook/internal/infra/converter"
	"slotbook/internal/pkg/config"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, booking_day, slot_time, guests, customer_name, contact, created_at, updated_at`

type BookingReadStore struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewBookingReadStore(pool *pgxpool.Pool, cfg config.Config) *BookingReadStore {
	return &BookingReadStore{
		pool:    pool,
		timeout: cfg.DB.QueryTimeout,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	view, err := converter.ScanBookingView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindByDay(ctx context.Context, day schedule.Day) ([]*queries.BookingView, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE booking_day = $1 ORDER BY slot_time`,
		day.Time(),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by day", err)
	}
	return collectBookingViews(rows)
}

func (r *BookingReadStore) FindAll(ctx context.Context) ([]*queries.BookingView, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY booking_day, slot_time`,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	return collectBookingViews(rows)
}

// BookedSlots is the projection the availability calculator consumes.
func (r *BookingReadStore) BookedSlots(ctx context.Context, day schedule.Day) (schedule.SlotSet, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		`SELECT slot_time FROM bookings WHERE booking_day = $1`,
		day.Time(),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booked slots", err)
	}
	defer rows.Close()

	booked := schedule.NewSlotSet()
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked slot", err)
		}
		booked[schedule.Slot(slot)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booked slots", err)
	}
	return booked, nil
}

func collectBookingViews(rows pgx.Rows) ([]*queries.BookingView, error) {
	defer rows.Close()

	views := make([]*queries.BookingView, 0)
	for rows.Next() {
		view, err := converter.ScanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return views, nil
}
