package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	ErrInvalidBusinessHours = errors.New("invalid business hours")
)

// Slot is an hourly "HH:00" label within the business day.
type Slot string

func (s Slot) String() string {
	return string(s)
}

// Hour returns the hour-of-day encoded in the label, or false when the label
// does not match the HH:00 shape.
func (s Slot) Hour() (int, bool) {
	if len(s) != 5 || s[2] != ':' || s[3] != '0' || s[4] != '0' {
		return 0, false
	}
	h, err := strconv.Atoi(string(s[:2]))
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

// Calendar is the canonical set of bookable slots for a business day.
// It is fixed at construction and safe for concurrent use.
type Calendar struct {
	openHour  int
	closeHour int
	loc       *time.Location
}

func NewCalendar(openHour, closeHour int, loc *time.Location) (*Calendar, error) {
	if openHour < 0 || closeHour > 23 || closeHour < openHour {
		return nil, ErrInvalidBusinessHours
	}
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{
		openHour:  openHour,
		closeHour: closeHour,
		loc:       loc,
	}, nil
}

// Slots returns the ordered slot labels from open through close inclusive.
func (c *Calendar) Slots() []Slot {
	slots := make([]Slot, 0, c.closeHour-c.openHour+1)
	for h := c.openHour; h <= c.closeHour; h++ {
		slots = append(slots, Slot(fmt.Sprintf("%02d:00", h)))
	}
	return slots
}

func (c *Calendar) Contains(s Slot) bool {
	h, ok := s.Hour()
	if !ok {
		return false
	}
	return h >= c.openHour && h <= c.closeHour
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// SlotStart resolves a slot's start instant on the given day in the
// calendar's location. The slot must be a member of the calendar.
func (c *Calendar) SlotStart(day Day, s Slot) time.Time {
	h, _ := s.Hour()
	y, m, d := day.Date()
	return time.Date(y, m, d, h, 0, 0, 0, c.loc)
}
