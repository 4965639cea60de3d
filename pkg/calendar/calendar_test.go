package calendar

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEventURL(t *testing.T) {
	start := time.Date(2026, 2, 14, 0, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		title       string
		startTime   time.Time
		endTime     time.Time
		description string
		expectError bool
	}{
		{
			name:        "valid event",
			title:       "Test Event",
			startTime:   start,
			endTime:     start.Add(1 * time.Hour),
			description: "Test Description",
			expectError: false,
		},
		{
			name:        "empty title",
			title:       "",
			startTime:   start,
			endTime:     start.Add(1 * time.Hour),
			description: "Test Description",
			expectError: true,
		},
		{
			name:        "end time before start time",
			title:       "Test Event",
			startTime:   start,
			endTime:     start.Add(-1 * time.Hour),
			description: "Test Description",
			expectError: true,
		},
		{
			name:        "same start and end time",
			title:       "Test Event",
			startTime:   start,
			endTime:     start,
			description: "Test Description",
			expectError: true,
		},
		{
			name:        "very long title",
			title:       strings.Repeat("x", MaxTitleLength+1),
			startTime:   start,
			endTime:     start.Add(1 * time.Hour),
			description: "Test Description",
			expectError: true,
		},
	}

	service := NewCalendarService(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := service.CreateEventURL(tt.title, tt.description, tt.startTime, tt.endTime, "")
			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, link)
				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(link, "https://calendar.google.com/calendar/render?"))

			u, err := url.Parse(link)
			require.NoError(t, err)
			q := u.Query()
			assert.Equal(t, "TEMPLATE", q.Get("action"))
			assert.Equal(t, tt.title, q.Get("text"))
			assert.Equal(t, tt.description, q.Get("details"))
			assert.Equal(t, "20260214T003000Z/20260214T013000Z", q.Get("dates"))
			assert.False(t, q.Has("location"))
		})
	}
}

func TestCreateTaskEvent(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	next := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	service := NewCalendarService(0)

	link, err := service.CreateTaskEvent("Morning digest", "0 9 * * * (UTC)", "Summarise the inbox", next, now)
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "Morning digest", q.Get("text"))
	assert.Equal(t, "Schedule: 0 9 * * * (UTC)\nSummarise the inbox", q.Get("details"))
	assert.Equal(t, "20250310T090000Z/20250310T091500Z", q.Get("dates"))

	t.Run("custom duration", func(t *testing.T) {
		link, err := NewCalendarService(time.Hour).CreateTaskEvent("Backup", "Every 60 minutes", "", next, now)
		require.NoError(t, err)
		u, err := url.Parse(link)
		require.NoError(t, err)
		assert.Equal(t, "20250310T090000Z/20250310T100000Z", u.Query().Get("dates"))
		assert.Equal(t, "Schedule: Every 60 minutes", u.Query().Get("details"))
	})

	t.Run("past run", func(t *testing.T) {
		_, err := service.CreateTaskEvent("Backup", "N/A", "", now.Add(-time.Minute), now)
		assert.Error(t, err)
	})

	t.Run("run at now", func(t *testing.T) {
		_, err := service.CreateTaskEvent("Backup", "N/A", "", now, now)
		assert.Error(t, err)
	})
}
