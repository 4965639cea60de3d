package utils

import (
	"fmt"
	"math"
	"time"
)

const (
	// TimestampLayout renders as "2006-01-02 15:04:05 UTC".
	TimestampLayout = "2006-01-02 15:04:05 MST"

	NotAvailable = "N/A"
	NotScheduled = "Not scheduled"
)

// FormatTimestamp converts epoch milliseconds to a UTC calendar string.
// Zero or negative input yields missing.
func FormatTimestamp(ms int64, missing string) string {
	if ms <= 0 {
		return missing
	}
	return time.UnixMilli(ms).UTC().Format(TimestampLayout)
}

// FormatTimestampPtr is FormatTimestamp for optional values.
func FormatTimestampPtr(ms *int64, missing string) string {
	if ms == nil {
		return missing
	}
	return FormatTimestamp(*ms, missing)
}

// IntervalMinutes rounds a millisecond interval to the nearest whole minute,
// halves away from zero.
func IntervalMinutes(intervalMs int64) int64 {
	return int64(math.Round(float64(intervalMs) / float64(time.Minute/time.Millisecond)))
}

// FormatRelative describes how far away d is, e.g. "in 2 hours, 5 minutes".
func FormatRelative(d time.Duration) string {
	if d < 0 {
		return "past due"
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("in %s, %s", units(days, "day"), units(hours, "hour"))
	}
	if hours > 0 {
		return fmt.Sprintf("in %s, %s", units(hours, "hour"), units(minutes, "minute"))
	}
	return "in " + units(minutes, "minute")
}

func units(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
