package request

import "slotbook/internal/domain/booking"

// Field-level constraints are the domain validator's job so its reason
// strings reach clients verbatim; binding here only shapes the JSON.
type CreateBookingRequest struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Guests  *int   `json:"guests"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

func (r CreateBookingRequest) ToCandidate() booking.Candidate {
	return booking.Candidate{
		Date:    r.Date,
		Time:    r.Time,
		Guests:  r.Guests,
		Name:    r.Name,
		Contact: r.Contact,
	}
}

// UpdateBookingRequest is a partial patch; absent fields keep their stored
// values.
type UpdateBookingRequest struct {
	Date    *string `json:"date,omitempty"`
	Time    *string `json:"time,omitempty"`
	Guests  *int    `json:"guests,omitempty"`
	Name    *string `json:"name,omitempty"`
	Contact *string `json:"contact,omitempty"`
}
