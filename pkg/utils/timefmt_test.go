package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		ms       int64
		missing  string
		expected string
	}{
		{"known epoch", 1700000000000, NotAvailable, "2023-11-14 22:13:20 UTC"},
		{"mock next run", 1771029000000, NotAvailable, "2026-02-14 00:30:00 UTC"},
		{"zero", 0, NotAvailable, NotAvailable},
		{"zero not scheduled", 0, NotScheduled, NotScheduled},
		{"negative", -5, NotAvailable, NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimestamp(tt.ms, tt.missing))
		})
	}
}

func TestFormatTimestampPtr(t *testing.T) {
	assert.Equal(t, NotAvailable, FormatTimestampPtr(nil, NotAvailable))
	assert.Equal(t, NotScheduled, FormatTimestampPtr(nil, NotScheduled))

	ms := int64(1700000000000)
	assert.Equal(t, "2023-11-14 22:13:20 UTC", FormatTimestampPtr(&ms, NotAvailable))
}

func TestIntervalMinutes(t *testing.T) {
	tests := []struct {
		ms       int64
		expected int64
	}{
		{120000, 2},
		{60000, 1},
		{89999, 1},
		{90000, 2},
		{29999, 0},
		{30000, 1},
		{0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IntervalMinutes(tt.ms), "interval %d", tt.ms)
	}
}

func TestFormatRelative(t *testing.T) {
	assert.Equal(t, "past due", FormatRelative(-time.Minute))
	assert.Equal(t, "in 5 minutes", FormatRelative(5*time.Minute))
	assert.Equal(t, "in 2 hours, 5 minutes", FormatRelative(2*time.Hour+5*time.Minute))
	assert.Equal(t, "in 3 days, 4 hours", FormatRelative(76*time.Hour))
	assert.Equal(t, "in 1 minute", FormatRelative(time.Minute))
	assert.Equal(t, "in 0 minutes", FormatRelative(30*time.Second))
	assert.Equal(t, "in 1 hour, 1 minute", FormatRelative(time.Hour+time.Minute))
	assert.Equal(t, "in 1 hour, 0 minutes", FormatRelative(time.Hour))
	assert.Equal(t, "in 1 day, 1 hour", FormatRelative(25*time.Hour))
	assert.Equal(t, "in 2 days, 0 hours", FormatRelative(48*time.Hour))
}
