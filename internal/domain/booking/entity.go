package booking

import (
	"errors"
	"strings"
	"time"

	"slotbook/internal/domain/schedule"

	"github.com/google/uuid"
)

// Validation failures carry the reason strings returned to clients verbatim.
var (
	ErrMissingDate       = errors.New("Date is required")
	ErrMissingTime       = errors.New("Time is required")
	ErrMissingGuests     = errors.New("Guests is required")
	ErrMissingName       = errors.New("Name is required")
	ErrMissingContact    = errors.New("Contact is required")
	ErrGuestsNotPositive = errors.New("Guests must be a positive number")
	ErrSlotNotBookable   = errors.New("Time is not a bookable slot")
	ErrInvalidDateFormat = errors.New("Date must be in YYYY-MM-DD format")
)

// Candidate is an unvalidated booking as submitted by a client.
type Candidate struct {
	Date    string
	Time    string
	Guests  *int
	Name    string
	Contact string
}

type Booking struct {
	id        uuid.UUID
	day       schedule.Day
	slot      schedule.Slot
	guests    int
	name      string
	contact   string
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking validates a candidate against the calendar and returns the
// booking entity. Checks run in a fixed order and stop at the first failure;
// slot exclusivity is not checked here, the store enforces it at claim time.
func NewBooking(cal *schedule.Calendar, c Candidate) (*Booking, error) {
	if strings.TrimSpace(c.Date) == "" {
		return nil, ErrMissingDate
	}
	if strings.TrimSpace(c.Time) == "" {
		return nil, ErrMissingTime
	}
	if c.Guests == nil {
		return nil, ErrMissingGuests
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil, ErrMissingName
	}
	contact := strings.TrimSpace(c.Contact)
	if contact == "" {
		return nil, ErrMissingContact
	}
	if *c.Guests <= 0 {
		return nil, ErrGuestsNotPositive
	}
	slot := schedule.Slot(c.Time)
	if !cal.Contains(slot) {
		return nil, ErrSlotNotBookable
	}
	day, err := schedule.ParseDay(c.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	return &Booking{
		id:      uuid.New(),
		day:     day,
		slot:    slot,
		guests:  *c.Guests,
		name:    name,
		contact: contact,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	day schedule.Day,
	slot schedule.Slot,
	guests int,
	name, contact string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		day:       day,
		slot:      slot,
		guests:    guests,
		name:      name,
		contact:   contact,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) Day() schedule.Day    { return b.day }
func (b *Booking) Slot() schedule.Slot  { return b.slot }
func (b *Booking) Guests() int          { return b.guests }
func (b *Booking) Name() string         { return b.name }
func (b *Booking) Contact() string      { return b.contact }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
