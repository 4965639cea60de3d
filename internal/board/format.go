package board

import (
	"fmt"

	"github.com/0xPuncker/taskboard/pkg/types"
	"github.com/0xPuncker/taskboard/pkg/utils"
)

// FormatSchedule renders a schedule for display.
func FormatSchedule(s types.Schedule) string {
	switch s.Kind {
	case types.ScheduleCron:
		if s.Expr == "" {
			return utils.NotAvailable
		}
		return fmt.Sprintf("%s (%s)", s.Expr, s.Timezone())
	case types.ScheduleEvery:
		return fmt.Sprintf("Every %d minutes", utils.IntervalMinutes(s.EveryMs))
	case types.ScheduleAt:
		return "Once at " + utils.FormatTimestamp(s.AtMs, utils.NotAvailable)
	case types.ScheduleText:
		if s.Text == "" {
			return utils.NotAvailable
		}
		return s.Text
	default:
		return utils.NotAvailable
	}
}

// IDFragment returns the first 8 characters of an id.
func IDFragment(id string) string {
	runes := []rune(id)
	if len(runes) <= 8 {
		return id
	}
	return string(runes[:8])
}
