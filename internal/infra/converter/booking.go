package converter

import (
	"time"

	"slotbook/internal/domain/schedule"
	"slotbook/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

// ScanBookingView hydrates a read model from a row selected with the
// canonical booking column list.
func ScanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		view queries.BookingView
		day  time.Time
	)
	err := row.Scan(
		&view.ID,
		&day,
		&view.Time,
		&view.Guests,
		&view.Name,
		&view.Contact,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.Date = day.Format(schedule.DayFormat)
	return &view, nil
}
