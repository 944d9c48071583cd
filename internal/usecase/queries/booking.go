package queries

import (
	"context"
	"time"

	"slotbook/internal/domain/schedule"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"

	"github.com/google/uuid"
)

// BookingView is the read model returned to the HTTP layer.
type BookingView struct {
	ID        uuid.UUID
	Date      string
	Time      string
	Guests    int
	Name      string
	Contact   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AvailabilityView struct {
	Date  string
	Slots []schedule.Slot
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByDay(ctx context.Context, day schedule.Day) ([]*BookingView, error)
	FindAll(ctx context.Context) ([]*BookingView, error)
	BookedSlots(ctx context.Context, day schedule.Day) (schedule.SlotSet, error)
}

type BookingQueries interface {
	Availability(ctx context.Context, date string) (*AvailabilityView, error)
	Get(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, date *string) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
	calendar  *schedule.Calendar
	clock     clock.Clock
}

func NewBookingQueries(readStore BookingReadStore, calendar *schedule.Calendar, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		readStore: readStore,
		calendar:  calendar,
		clock:     clk,
	}
}

// Availability recomputes the open slots on every call; bookings change
// between calls so nothing is cached.
func (q *bookingQueriesImpl) Availability(ctx context.Context, date string) (*AvailabilityView, error) {
	day, err := schedule.ParseDay(date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrMalformedDate)
	}

	booked, err := q.readStore.BookedSlots(ctx, day)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStoreUnavailable)
	}

	return &AvailabilityView{
		Date:  day.String(),
		Slots: q.calendar.AvailableSlots(day, booked, q.clock.Now()),
	}, nil
}

func (q *bookingQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrStoreUnavailable)
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, date *string) ([]*BookingView, error) {
	if date == nil {
		views, err := q.readStore.FindAll(ctx)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrStoreUnavailable)
		}
		return views, nil
	}

	day, err := schedule.ParseDay(*date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrMalformedDate)
	}
	views, err := q.readStore.FindByDay(ctx, day)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStoreUnavailable)
	}
	return views, nil
}
