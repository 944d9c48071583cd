package schedule

import (
	"errors"
	"time"
)

const DayFormat = "2006-01-02"

var ErrInvalidDay = errors.New("invalid calendar date")

// Day is a calendar date without a time component.
type Day struct {
	t time.Time
}

// ParseDay accepts strict YYYY-MM-DD strings.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return Day{}, ErrInvalidDay
	}
	return Day{t: t}, nil
}

// DayOf truncates an instant to its calendar date in the given location.
func DayOf(t time.Time, loc *time.Location) Day {
	y, m, d := t.In(loc).Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Day) String() string {
	return d.t.Format(DayFormat)
}

func (d Day) Date() (int, time.Month, int) {
	return d.t.Date()
}

func (d Day) Time() time.Time {
	return d.t
}

func (d Day) Equal(other Day) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (d Day) IsZero() bool {
	return d.t.IsZero()
}
