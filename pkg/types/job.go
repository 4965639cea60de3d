package types

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultJobName is shown for records that carry no usable name.
const DefaultJobName = "Unnamed Task"

// Status is the tri-state lifecycle of a task on an owner board.
type Status string

const (
	StatusActive  Status = "active"
	StatusPaused  Status = "paused"
	StatusPlanned Status = "planned"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusActive, StatusPaused, StatusPlanned}

func (s Status) Known() bool {
	switch s {
	case StatusActive, StatusPaused, StatusPlanned:
		return true
	}
	return false
}

// JobRecord represents one scheduled task as reported by the job listing
// tool or declared in a board configuration.
type JobRecord struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Enabled     bool     `json:"enabled"`
	Status      Status   `json:"status,omitempty"`
	Schedule    Schedule `json:"schedule"`
	NextRunAtMs *int64   `json:"nextRunAtMs,omitempty"`
	Owner       string   `json:"owner,omitempty"`
	Description string   `json:"description,omitempty"`
}

// JobList is the document emitted by `openclaw cron list --json`.
type JobList struct {
	Jobs []json.RawMessage `json:"jobs"`
}

// jobRecordWire accepts every field spelling seen in job listings and board
// configs.
type jobRecordWire struct {
	ID          string   `json:"id" yaml:"id"`
	CronID      string   `json:"cronId" yaml:"cronId"`
	Name        string   `json:"name" yaml:"name"`
	Enabled     bool     `json:"enabled" yaml:"enabled"`
	Status      Status   `json:"status" yaml:"status"`
	Schedule    Schedule `json:"schedule" yaml:"schedule"`
	NextRunAtMs *int64   `json:"nextRunAtMs" yaml:"nextRunAtMs"`
	State       struct {
		NextRunAtMs *int64 `json:"nextRunAtMs" yaml:"nextRunAtMs"`
	} `json:"state" yaml:"state"`
	Owner       string `json:"owner" yaml:"owner"`
	AgentID     string `json:"agentId" yaml:"agentId"`
	Bird        string `json:"bird" yaml:"bird"`
	Description string `json:"description" yaml:"description"`
}

func (w *jobRecordWire) record() JobRecord {
	r := JobRecord{
		ID:          firstNonEmpty(w.ID, w.CronID),
		Name:        w.Name,
		Enabled:     w.Enabled,
		Status:      Status(strings.ToLower(strings.TrimSpace(string(w.Status)))),
		Schedule:    w.Schedule,
		NextRunAtMs: w.State.NextRunAtMs,
		Owner:       firstNonEmpty(w.Owner, w.AgentID, w.Bird),
		Description: w.Description,
	}
	if r.NextRunAtMs == nil {
		r.NextRunAtMs = w.NextRunAtMs
	}
	return r
}

func (r *JobRecord) UnmarshalJSON(data []byte) error {
	var w jobRecordWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = w.record()
	return nil
}

func (r *JobRecord) UnmarshalYAML(value *yaml.Node) error {
	var w jobRecordWire
	if err := value.Decode(&w); err != nil {
		return err
	}
	*r = w.record()
	return nil
}

// DisplayName returns the record name or DefaultJobName when blank.
func (r JobRecord) DisplayName() string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	return DefaultJobName
}

// EffectiveStatus resolves the tri-state status. An explicit known status
// wins, an explicit unknown one is treated as planned, and an absent one is
// derived from Enabled.
func (r JobRecord) EffectiveStatus() Status {
	switch {
	case r.Status.Known():
		return r.Status
	case r.Status != "":
		return StatusPlanned
	case r.Enabled:
		return StatusActive
	default:
		return StatusPaused
	}
}

// CronExpr is the raw cron expression, empty for non-cron schedules.
func (r JobRecord) CronExpr() string {
	if r.Schedule.Kind != ScheduleCron {
		return ""
	}
	return r.Schedule.Expr
}

// NextRun returns the next run timestamp and whether it is set.
func (r JobRecord) NextRun() (int64, bool) {
	if r.NextRunAtMs == nil || *r.NextRunAtMs <= 0 {
		return 0, false
	}
	return *r.NextRunAtMs, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
