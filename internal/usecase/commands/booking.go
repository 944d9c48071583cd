package commands

import (
	"context"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/schedule"
	reqdto "slotbook/internal/handler/dto/request"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/patch"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingRepository is the write side of the reservation store. Create and
// Update are atomic claims: the store's uniqueness constraint decides races,
// and a losing attempt surfaces as the CONFLICT kind.
type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (*queries.BookingView, error)
	Update(ctx context.Context, id uuid.UUID, b *booking.Booking) (*queries.BookingView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BookingCommands interface {
	Create(ctx context.Context, req reqdto.CreateBookingRequest) (*queries.BookingView, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateBookingRequest) (*queries.BookingView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookingCommandsImpl struct {
	repo      BookingRepository
	readStore queries.BookingReadStore
	calendar  *schedule.Calendar
}

func NewBookingCommands(repo BookingRepository, readStore queries.BookingReadStore, calendar *schedule.Calendar) BookingCommands {
	return &bookingCommandsImpl{
		repo:      repo,
		readStore: readStore,
		calendar:  calendar,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, req reqdto.CreateBookingRequest) (*queries.BookingView, error) {
	entity, err := booking.NewBooking(c.calendar, req.ToCandidate())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	view, err := c.repo.Create(ctx, entity)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return view, nil
}

// Update coalesces the patch over the stored record and re-runs full
// validation, so a date/time move goes through the same claim path as a
// create.
func (c *bookingCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateBookingRequest) (*queries.BookingView, error) {
	current, err := c.readStore.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	guests := patch.Coalesce(req.Guests, current.Guests)
	candidate := booking.Candidate{
		Date:    patch.Coalesce(req.Date, current.Date),
		Time:    patch.Coalesce(req.Time, current.Time),
		Guests:  &guests,
		Name:    patch.Coalesce(req.Name, current.Name),
		Contact: patch.Coalesce(req.Contact, current.Contact),
	}

	entity, err := booking.NewBooking(c.calendar, candidate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	view, err := c.repo.Update(ctx, id, entity)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return view, nil
}

func (c *bookingCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	return nil
}

func mapRepoErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.ErrBookingNotFound
	case infra.IsKind(err, infra.KindConflict):
		return errs.ErrSlotConflict
	default:
		return errs.Mark(err, errs.ErrStoreUnavailable)
	}
}
