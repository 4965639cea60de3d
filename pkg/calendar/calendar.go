package calendar

import (
	"fmt"
	"net/url"
	"time"
	"unicode/utf8"
)

// MaxTitleLength is the longest event title Google Calendar accepts.
const MaxTitleLength = 1024

// DefaultEventDuration is the slot length given to a task run.
const DefaultEventDuration = 15 * time.Minute

type CalendarService struct {
	duration time.Duration
}

func NewCalendarService(duration time.Duration) *CalendarService {
	if duration <= 0 {
		duration = DefaultEventDuration
	}
	return &CalendarService{duration: duration}
}

// CreateEventURL builds a Google Calendar "add event" link.
func (s *CalendarService) CreateEventURL(title, description string, startTime, endTime time.Time, location string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("title cannot be empty")
	}

	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", fmt.Errorf("title longer than %d characters", MaxTitleLength)
	}

	if endTime.Before(startTime) {
		return "", fmt.Errorf("end time cannot be before start time")
	}

	if startTime.Equal(endTime) {
		return "", fmt.Errorf("start time and end time cannot be the same")
	}

	start := startTime.UTC().Format("20060102T150405Z")
	end := endTime.UTC().Format("20060102T150405Z")

	u := url.URL{
		Scheme: "https",
		Host:   "calendar.google.com",
		Path:   "calendar/render",
	}

	params := url.Values{}
	params.Add("action", "TEMPLATE")
	params.Add("text", title)
	params.Add("details", description)
	params.Add("dates", fmt.Sprintf("%s/%s", start, end))
	if location != "" {
		params.Add("location", location)
	}

	u.RawQuery = params.Encode()

	return u.String(), nil
}

// CreateTaskEvent links the next run of a task. Runs at or before now are
// rejected.
func (s *CalendarService) CreateTaskEvent(name, schedule, description string, nextRun, now time.Time) (string, error) {
	if !nextRun.After(now) {
		return "", fmt.Errorf("next run %s is not in the future", nextRun.UTC().Format(time.RFC3339))
	}

	details := fmt.Sprintf("Schedule: %s", schedule)
	if description != "" {
		details += "\n" + description
	}

	return s.CreateEventURL(name, details, nextRun, nextRun.Add(s.duration), "")
}
