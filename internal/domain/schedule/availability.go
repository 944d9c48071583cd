package schedule

import "time"

// SlotSet is the projection of booked slots for one day.
type SlotSet map[Slot]struct{}

func NewSlotSet(slots ...Slot) SlotSet {
	set := make(SlotSet, len(slots))
	for _, s := range slots {
		set[s] = struct{}{}
	}
	return set
}

func (s SlotSet) Has(slot Slot) bool {
	_, ok := s[slot]
	return ok
}

// AvailableSlots returns the calendar's slots that are neither booked nor,
// when day is the current date in the calendar's location, already started.
// The boundary is exclusive: a slot starting exactly at now is not available.
// Output preserves calendar order.
func (c *Calendar) AvailableSlots(day Day, booked SlotSet, now time.Time) []Slot {
	today := DayOf(now, c.loc)
	isToday := day.Equal(today)

	available := make([]Slot, 0, c.closeHour-c.openHour+1)
	for _, s := range c.Slots() {
		if booked.Has(s) {
			continue
		}
		if isToday && !c.SlotStart(day, s).After(now) {
			continue
		}
		available = append(available, s)
	}
	return available
}
