package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// ScheduleKind tags the Schedule variant.
type ScheduleKind string

const (
	ScheduleCron  ScheduleKind = "cron"
	ScheduleEvery ScheduleKind = "every"
	ScheduleAt    ScheduleKind = "at"
	// ScheduleText is a free-form description, as used by hand-written
	// board configs ("daily at 9").
	ScheduleText ScheduleKind = "text"
)

// DefaultTimezone applies to cron schedules without an explicit tz.
const DefaultTimezone = "UTC"

// Schedule supports three kinds: "cron" (expression), "every" (interval in
// milliseconds) and "at" (one-shot epoch milliseconds). A bare string decodes
// to a text schedule. Any other kind is kept as-is and treated as unknown.
type Schedule struct {
	Kind    ScheduleKind `json:"kind,omitempty"`
	Expr    string       `json:"expr,omitempty"`
	TZ      string       `json:"tz,omitempty"`
	EveryMs int64        `json:"everyMs,omitempty"`
	AtMs    int64        `json:"atMs,omitempty"`
	Text    string       `json:"text,omitempty"`
}

func CronSchedule(expr, tz string) Schedule {
	return Schedule{Kind: ScheduleCron, Expr: expr, TZ: tz}
}

func EverySchedule(intervalMs int64) Schedule {
	return Schedule{Kind: ScheduleEvery, EveryMs: intervalMs}
}

func AtSchedule(timestampMs int64) Schedule {
	return Schedule{Kind: ScheduleAt, AtMs: timestampMs}
}

func TextSchedule(text string) Schedule {
	return Schedule{Kind: ScheduleText, Text: text}
}

// Timezone returns the schedule tz or DefaultTimezone.
func (s Schedule) Timezone() string {
	if s.TZ == "" {
		return DefaultTimezone
	}
	return s.TZ
}

// scheduleWire takes numbers as float64 so "everyMs": 9e4 still decodes.
type scheduleWire struct {
	Kind    ScheduleKind `json:"kind" yaml:"kind"`
	Expr    string       `json:"expr" yaml:"expr"`
	TZ      string       `json:"tz" yaml:"tz"`
	EveryMs float64      `json:"everyMs" yaml:"everyMs"`
	AtMs    float64      `json:"atMs" yaml:"atMs"`
	Text    string       `json:"text" yaml:"text"`
}

// schedule converts the wire form. An every or at schedule whose
// millisecond value is negative or does not fit in an int64 is unrecognized.
func (w scheduleWire) schedule() Schedule {
	everyMs, everyOK := millis(w.EveryMs)
	atMs, atOK := millis(w.AtMs)
	if (w.Kind == ScheduleEvery && !everyOK) || (w.Kind == ScheduleAt && !atOK) {
		return Schedule{}
	}

	return Schedule{
		Kind:    w.Kind,
		Expr:    w.Expr,
		TZ:      w.TZ,
		EveryMs: everyMs,
		AtMs:    atMs,
		Text:    w.Text,
	}
}

func millis(v float64) (int64, bool) {
	v = math.Round(v)
	if math.IsNaN(v) || v < 0 || v >= math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

func (s *Schedule) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = Schedule{}
		return nil
	}

	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = TextSchedule(text)
		return nil
	}

	var w scheduleWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}
	*s = w.schedule()
	return nil
}

func (s *Schedule) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*s = Schedule{}
			return nil
		}
		*s = TextSchedule(value.Value)
		return nil
	case yaml.MappingNode:
		var w scheduleWire
		if err := value.Decode(&w); err != nil {
			return fmt.Errorf("invalid schedule: %w", err)
		}
		*s = w.schedule()
		return nil
	default:
		return fmt.Errorf("invalid schedule at line %d", value.Line)
	}
}
