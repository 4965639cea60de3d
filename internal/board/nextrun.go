package board

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"

	"github.com/0xPuncker/taskboard/pkg/types"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseCron parses a cron expression in the given timezone. Both 5-field and
// 6-field (leading seconds) forms and descriptors like "@daily" are accepted.
func ParseCron(expr, tz string) (cron.Schedule, error) {
	if tz == "" {
		tz = types.DefaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	schedule, err := cronParser.Parse(fmt.Sprintf("CRON_TZ=%s %s", tz, expr))
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return schedule, nil
}

// DeriveNextRun computes the next run after now from the schedule alone.
// Interval schedules have no anchor and are never derived.
func DeriveNextRun(s types.Schedule, now time.Time) (int64, error) {
	switch s.Kind {
	case types.ScheduleCron:
		schedule, err := ParseCron(s.Expr, s.TZ)
		if err != nil {
			return 0, err
		}
		next := schedule.Next(now)
		if next.IsZero() {
			return 0, fmt.Errorf("cron expression %q never fires", s.Expr)
		}
		return next.UnixMilli(), nil
	case types.ScheduleAt:
		if s.AtMs <= now.UnixMilli() {
			return 0, fmt.Errorf("one-shot time already passed")
		}
		return s.AtMs, nil
	default:
		return 0, fmt.Errorf("schedule kind %q has no derivable next run", s.Kind)
	}
}
