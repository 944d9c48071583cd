//go:build unit || e2e

package builder

import (
	"time"

	dombooking "slotbook/internal/domain/booking"
	"slotbook/internal/domain/schedule"
	reqdto "slotbook/internal/handler/dto/request"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingBuilder struct {
	Date      string
	Time      string
	Guests    int
	Name      string
	Contact   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	return &BookingBuilder{
		Date:      "2025-03-01",
		Time:      "14:00",
		Guests:    2,
		Name:      "Ann",
		Contact:   "a@x.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *BookingBuilder) Clone() *BookingBuilder {
	var clone BookingBuilder
	_ = copier.Copy(&clone, b)
	return &clone
}

// Build methods
func (b *BookingBuilder) BuildCandidate() dombooking.Candidate {
	guests := b.Guests
	return dombooking.Candidate{
		Date:    b.Date,
		Time:    b.Time,
		Guests:  &guests,
		Name:    b.Name,
		Contact: b.Contact,
	}
}

func (b *BookingBuilder) BuildDomain(cal *schedule.Calendar) (*dombooking.Booking, error) {
	return dombooking.NewBooking(cal, b.BuildCandidate())
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	guests := b.Guests
	return reqdto.CreateBookingRequest{
		Date:    b.Date,
		Time:    b.Time,
		Guests:  &guests,
		Name:    b.Name,
		Contact: b.Contact,
	}
}

func (b *BookingBuilder) BuildUpdateRequestDTO() reqdto.UpdateBookingRequest {
	date := b.Date
	slot := b.Time
	guests := b.Guests
	name := b.Name
	contact := b.Contact
	return reqdto.UpdateBookingRequest{
		Date:    &date,
		Time:    &slot,
		Guests:  &guests,
		Name:    &name,
		Contact: &contact,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:        uuid.New(),
		Date:      b.Date,
		Time:      b.Time,
		Guests:    b.Guests,
		Name:      b.Name,
		Contact:   b.Contact,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// Fluent builder methods
func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithDate(date string) *BookingBuilder {
	b.Date = date
	return b
}

func (b *BookingBuilder) WithTime(slot string) *BookingBuilder {
	b.Time = slot
	return b
}

func (b *BookingBuilder) WithGuests(guests int) *BookingBuilder {
	b.Guests = guests
	return b
}

func (b *BookingBuilder) WithName(name string) *BookingBuilder {
	b.Name = name
	return b
}

func (b *BookingBuilder) WithContact(contact string) *BookingBuilder {
	b.Contact = contact
	return b
}
