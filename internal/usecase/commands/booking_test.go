//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/schedule"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"
	"slotbook/tests/common/builder"
	commandsmock "slotbook/tests/mock/commands"
	queriesmock "slotbook/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type commandsFixture struct {
	ctrl      *gomock.Controller
	repo      *commandsmock.MockBookingRepository
	readStore *queriesmock.MockBookingReadStore
	commands  commands.BookingCommands
}

func newCommandsFixture(t *testing.T) *commandsFixture {
	t.Helper()

	cal, err := schedule.NewCalendar(10, 20, time.UTC)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	repo := commandsmock.NewMockBookingRepository(ctrl)
	readStore := queriesmock.NewMockBookingReadStore(ctrl)

	return &commandsFixture{
		ctrl:      ctrl,
		repo:      repo,
		readStore: readStore,
		commands:  commands.NewBookingCommands(repo, readStore, cal),
	}
}

func TestBookingCommands_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success: valid request claims the slot", func(t *testing.T) {
		f := newCommandsFixture(t)
		defer f.ctrl.Finish()

		req := builder.NewBookingBuilder().BuildCreateRequestDTO()
		returnView := builder.NewBookingBuilder().BuildView()

		f.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) (*queries.BookingView, error) {
				assert.Equal(t, "2025-03-01", b.Day().String())
				assert.Equal(t, schedule.Slot("14:00"), b.Slot())
				assert.Equal(t, 2, b.Guests())
				return returnView, nil
			})

		view, err := f.commands.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, returnView, view)
	})

	t.Run("error: validation failure keeps the reason and never hits the store", func(t *testing.T) {
		f := newCommandsFixture(t)
		defer f.ctrl.Finish()

		req := builder.NewBookingBuilder().WithGuests(0).BuildCreateRequestDTO()

		view, err := f.commands.Create(ctx, req)
		require.Nil(t, view)
		require.ErrorIs(t, err, errs.ErrDomainValidation)
		require.ErrorIs(t, err, booking.ErrGuestsNotPositive)
		assert.Equal(t, "Guests must be a positive number", err.Error())
	})

	t.Run("error: losing the claim race maps to slot conflict", func(t *testing.T) {
		f := newCommandsFixture(t)
		defer f.ctrl.Finish()

		req := builder.NewBookingBuilder().BuildCreateRequestDTO()
		f.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(nil, infra.WrapRepoErr("slot taken", errors.New("unique violation"), infra.KindConflict))

		view, err := f.commands.Create(ctx, req)
		require.Nil(t, view)
		require.ErrorIs(t, err, errs.ErrSlotConflict)
		assert.NotErrorIs(t, err, errs.ErrStoreUnavailable)
	})

	t.Run("error: store failure is not reported as a conflict", func(t *testing.T) {
		f := newCommandsFixture(t)
		defer f.ctrl.Finish()

		req := builder.NewBookingBuilder().BuildCreateRequestDTO()
		f.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(nil, infra.WrapRepoErr("insert failed", errors.New("connection refused")))

		view, err := f.commands.Create(ctx, req)
		require.Nil(t, view)
		require.ErrorIs(t, err, errs.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, errs.ErrSlotConflict)
	})
}

func TestBookingCommands_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success: absent fields keep their stored values", func(t *testing.T) {
		f := newCommandsFixture(t)
		defer f.ctrl.Finish()

		current := builder.NewBookingBuilder().BuildView()
		current.ID = id
		f.readStore.EXPECT().FindByID(ctx, id).Return(current, nil)

		guests := 5
		req := builder.NewBookingBuilder().BuildUpdateRequestDTO()
		req.Date = nil
		req.Time = nil
		req.Name = nil
		req.Contact = nil
		req.Guests = &guests

		f.repo.EXPECT().Update(ctx, id, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, b *booking.Booking) (*queries.BookingView, error) {
				assert.Equal(t, current.Date, b.Day().String())
				assert.Equal(t, schedule.Slot(current.Time), b.Slot())
				assert.Equal(t, 5, b.Guests())
				assert.Equal(t, current.Name, b.Name())
				assert.Equal(t, current.Contact, b.Contact())
				return current, nil
			})

		_, err := f.commands.Update(ctx, id, req)
		require.NoError(t, err)
	})

	t.Run("success: moving the slot goes through the claim path", func(t *testing.T) {
		f := newCommandsFixture(t)
		defer f.ctrl.Finish()

		current := builder.NewBookingBuilder().BuildView()
		current.ID = id
		f.readStore.EXPECT().FindByID(ctx, id).Return(current, nil)

		newTime := "16:00"
		req := builder.NewBookingBuilder().BuildUpdateRequestDTO()
		req.Date = nil
		req.Guests = nil
		req.Name = nil
		req.Contact = nil
		req.Time = &newTime

		f.repo.EXPECT().Update(ctx, id, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, b *booking.Booking) (*queries.BookingView, error) {
				assert.Equal(t, schedule.Slot("16:00"), b.Slot())
				return current, nil
			})

		_, err := f.commands.Update(ctx, id, req)
		require.NoError(t, err)
	})

	t.Run("error: unknown booking", func(t *testing.T) {
		f := newCommandsFixture(t)
		defer f.ctrl.Finish()

		f.readStore.EXPECT().FindByID(ctx, id).
			Return(nil, infra.WrapRepoErr("not found", nil, infra.KindNotFound))

		req := builder.NewBookingBuilder().BuildUpdateRequestDTO()
		view, err := f.commands.Update(ctx, id, req)
		require.Nil(t, view)
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})

	t.Run("error: validation failure on patched result", func(t *testing.T) {
		f := newCommandsFixture(t)
		defer f.ctrl.Finish()

		current := builder.NewBookingBuilder().BuildView()
		current.ID = id
		f.readStore.EXPECT().FindByID(ctx, id).Return(current, nil)

		badTime := "09:00"
		req := builder.NewBookingBuilder().BuildUpdateRequestDTO()
		req.Date = nil
		req.Guests = nil
		req.Name = nil
		req.Contact = nil
		req.Time = &badTime

		view, err := f.commands.Update(ctx, id, req)
		require.Nil(t, view)
		require.ErrorIs(t, err, errs.ErrDomainValidation)
		assert.Equal(t, "Time is not a bookable slot", err.Error())
	})

	t.Run("error: target slot already taken", func(t *testing.T) {
		f := newCommandsFixture(t)
		defer f.ctrl.Finish()

		current := builder.NewBookingBuilder().BuildView()
		current.ID = id
		f.readStore.EXPECT().FindByID(ctx, id).Return(current, nil)
		f.repo.EXPECT().Update(ctx, id, gomock.Any()).
			Return(nil, infra.WrapRepoErr("slot taken", errors.New("unique violation"), infra.KindConflict))

		req := builder.NewBookingBuilder().BuildUpdateRequestDTO()
		view, err := f.commands.Update(ctx, id, req)
		require.Nil(t, view)
		require.ErrorIs(t, err, errs.ErrSlotConflict)
	})
}

func TestBookingCommands_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		f := newCommandsFixture(t)
		defer f.ctrl.Finish()

		f.repo.EXPECT().Delete(ctx, id).Return(nil)
		require.NoError(t, f.commands.Delete(ctx, id))
	})

	t.Run("error: unknown booking", func(t *testing.T) {
		f := newCommandsFixture(t)
		defer f.ctrl.Finish()

		f.repo.EXPECT().Delete(ctx, id).
			Return(infra.WrapRepoErr("not found", nil, infra.KindNotFound))

		require.ErrorIs(t, f.commands.Delete(ctx, id), errs.ErrBookingNotFound)
	})

	t.Run("error: store failure", func(t *testing.T) {
		f := newCommandsFixture(t)
		defer f.ctrl.Finish()

		f.repo.EXPECT().Delete(ctx, id).
			Return(infra.WrapRepoErr("delete failed", errors.New("connection refused")))

		require.ErrorIs(t, f.commands.Delete(ctx, id), errs.ErrStoreUnavailable)
	})
}
