package response

import (
	"time"

	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Guests    int       `json:"guests"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AvailabilityResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:        view.ID,
		Date:      view.Date,
		Time:      view.Time,
		Guests:    view.Guests,
		Name:      view.Name,
		Contact:   view.Contact,
		CreatedAt: view.CreatedAt,
		UpdatedAt: view.UpdatedAt,
	}
}

func FromAvailabilityView(view *queries.AvailabilityView) *AvailabilityResponse {
	slots := make([]string, len(view.Slots))
	for i, s := range view.Slots {
		slots[i] = s.String()
	}
	return &AvailabilityResponse{
		Date:  view.Date,
		Slots: slots,
	}
}
