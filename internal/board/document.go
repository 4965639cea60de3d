package board

import (
	"fmt"
	"time"

	"github.com/0xPuncker/taskboard/pkg/types"
)

// Layout selects how records are grouped on the board.
type Layout string

const (
	// LayoutStatus groups by the enabled flag into Active and Paused.
	LayoutStatus Layout = "status"
	// LayoutOwner groups by owning agent, one column per group.
	LayoutOwner Layout = "owner"
)

const DefaultEmptyMessage = "No tasks"

// Document is the serializer-independent board model.
type Document struct {
	Title          string    `json:"title"`
	Subtitle       string    `json:"subtitle,omitempty"`
	Footer         string    `json:"footer,omitempty"`
	Layout         Layout    `json:"layout"`
	GeneratedAt    time.Time `json:"generated_at"`
	LastUpdated    string    `json:"last_updated"`
	RefreshSeconds int       `json:"refresh_seconds"`
	Columns        []Column  `json:"columns"`
	Totals         Counts    `json:"totals"`
}

// Column is one rendered group.
type Column struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	Emoji        string `json:"emoji,omitempty"`
	Color        string `json:"color,omitempty"`
	Role         string `json:"role,omitempty"`
	Model        string `json:"model,omitempty"`
	Count        int    `json:"count"`
	Counts       Counts `json:"counts"`
	Cards        []Card `json:"cards"`
	EmptyMessage string `json:"empty_message,omitempty"`
}

func (c Column) Empty() bool {
	return len(c.Cards) == 0
}

// RunningSummary reads like "2/3 running".
func (c Column) RunningSummary() string {
	return fmt.Sprintf("%d/%d running", c.Counts.Active, c.Count)
}

// Card is one formatted record.
type Card struct {
	Name        string       `json:"name"`
	IDFragment  string       `json:"id_fragment,omitempty"`
	Schedule    string       `json:"schedule"`
	NextRun     string       `json:"next_run"`
	NextRunHint string       `json:"next_run_hint,omitempty"`
	Status      types.Status `json:"status"`
	StatusLabel string       `json:"status_label"`
	StatusClass string       `json:"status_class"`
	Description string       `json:"description,omitempty"`
	CalendarURL string       `json:"calendar_url,omitempty"`
}

// Counts tallies records per effective status.
type Counts struct {
	Active  int `json:"active"`
	Paused  int `json:"paused"`
	Planned int `json:"planned"`
}

func (c *Counts) Add(s types.Status) {
	switch s {
	case types.StatusActive:
		c.Active++
	case types.StatusPaused:
		c.Paused++
	default:
		c.Planned++
	}
}

func (c Counts) Total() int {
	return c.Active + c.Paused + c.Planned
}

func (c Counts) Merge(o Counts) Counts {
	return Counts{
		Active:  c.Active + o.Active,
		Paused:  c.Paused + o.Paused,
		Planned: c.Planned + o.Planned,
	}
}

// StatusLabel returns the display label for a status.
func StatusLabel(s types.Status) string {
	switch s {
	case types.StatusActive:
		return "🟢 Running"
	case types.StatusPaused:
		return "⏸️ Paused"
	default:
		return "📋 Planned"
	}
}

// StatusClass returns the CSS class for a status.
func StatusClass(s types.Status) string {
	if !s.Known() {
		s = types.StatusPlanned
	}
	return "status-" + string(s)
}
