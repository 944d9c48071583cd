package bootstrap

import (
	"slotbook/internal/domain/schedule"
	"slotbook/internal/pkg/config"

	"go.uber.org/fx"
)

var CalendarModule = fx.Module("calendar",
	fx.Provide(
		NewCalendar,
	),
)

func NewCalendar(cfg config.Config) (*schedule.Calendar, error) {
	loc, err := cfg.Business.Location()
	if err != nil {
		return nil, err
	}
	return schedule.NewCalendar(cfg.Business.OpenHour, cfg.Business.CloseHour, loc)
}
