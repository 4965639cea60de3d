package board

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/0xPuncker/taskboard/pkg/calendar"
	"github.com/0xPuncker/taskboard/pkg/types"
	"github.com/0xPuncker/taskboard/pkg/utils"
)

const DefaultRefreshSeconds = 300

// Options tune a Builder.
type Options struct {
	Layout         Layout
	DeriveNextRun  bool
	RefreshSeconds int
	EmptyMessage   string
	// CalendarLinks adds an "add to calendar" link to cards with a future
	// next run.
	CalendarLinks bool
}

// Input is everything a single build needs besides the clock.
type Input struct {
	Title    string
	Subtitle string
	Footer   string
	Records  []types.JobRecord
	// Groups is only consulted for LayoutOwner.
	Groups []types.GroupSpec
}

type Builder struct {
	logger   *logrus.Logger
	opts     Options
	calendar *calendar.CalendarService
}

func NewBuilder(logger *logrus.Logger, opts Options) *Builder {
	if opts.Layout == "" {
		opts.Layout = LayoutStatus
	}
	if opts.RefreshSeconds <= 0 {
		opts.RefreshSeconds = DefaultRefreshSeconds
	}
	if opts.EmptyMessage == "" {
		opts.EmptyMessage = DefaultEmptyMessage
	}
	b := &Builder{
		logger: logger,
		opts:   opts,
	}
	if opts.CalendarLinks {
		b.calendar = calendar.NewCalendarService(calendar.DefaultEventDuration)
	}
	return b
}

// Build classifies, sorts and formats the records. now is the generation
// time and is the only clock the build reads.
func (b *Builder) Build(in Input, now time.Time) *Document {
	now = now.UTC()
	records := make([]types.JobRecord, len(in.Records))
	copy(records, in.Records)

	var groups []Group
	switch b.opts.Layout {
	case LayoutOwner:
		groups = ClassifyByOwner(in.Groups, records)
		for _, g := range groups {
			SortByName(g.Records)
		}
	default:
		groups = ClassifyByEnabled(records)
		for _, g := range groups {
			SortBySchedule(g.Records)
		}
	}

	doc := &Document{
		Title:          in.Title,
		Subtitle:       in.Subtitle,
		Footer:         in.Footer,
		Layout:         b.opts.Layout,
		GeneratedAt:    now,
		LastUpdated:    utils.FormatTimestamp(now.UnixMilli(), utils.NotAvailable),
		RefreshSeconds: b.opts.RefreshSeconds,
		Columns:        make([]Column, 0, len(groups)),
	}

	for _, g := range groups {
		col := b.column(g, now)
		doc.Totals = doc.Totals.Merge(col.Counts)
		doc.Columns = append(doc.Columns, col)
	}

	b.logger.WithFields(logrus.Fields{
		"layout":  b.opts.Layout,
		"records": len(records),
		"columns": len(doc.Columns),
		"active":  doc.Totals.Active,
		"paused":  doc.Totals.Paused,
		"planned": doc.Totals.Planned,
	}).Debug("Board built")

	return doc
}

func (b *Builder) column(g Group, now time.Time) Column {
	col := Column{
		Key:          g.Spec.ID,
		Label:        g.Spec.Name,
		Emoji:        g.Spec.Emoji,
		Color:        g.Spec.Color,
		Role:         g.Spec.Role,
		Model:        g.Spec.Model,
		Count:        len(g.Records),
		Cards:        make([]Card, 0, len(g.Records)),
		EmptyMessage: b.opts.EmptyMessage,
	}

	for _, r := range g.Records {
		card := b.card(r, now)
		col.Counts.Add(card.Status)
		col.Cards = append(col.Cards, card)
	}

	return col
}

func (b *Builder) card(r types.JobRecord, now time.Time) Card {
	status := r.EffectiveStatus()
	missing := utils.NotScheduled
	if b.opts.Layout == LayoutStatus {
		// the column is decided by the enabled flag alone
		status = types.StatusPaused
		if r.Enabled {
			status = types.StatusActive
		}
		missing = utils.NotAvailable
	}

	card := Card{
		Name:        r.DisplayName(),
		IDFragment:  IDFragment(r.ID),
		Schedule:    FormatSchedule(r.Schedule),
		NextRun:     missing,
		Status:      status,
		StatusLabel: StatusLabel(status),
		StatusClass: StatusClass(status),
		Description: r.Description,
	}

	next, ok := r.NextRun()
	if !ok && b.opts.DeriveNextRun {
		derived, err := DeriveNextRun(r.Schedule, now)
		if err != nil {
			b.logger.WithFields(logrus.Fields{
				"job_name": card.Name,
				"error":    err.Error(),
			}).Debug("Next run not derivable")
		} else {
			next, ok = derived, true
		}
	}

	if ok {
		card.NextRun = utils.FormatTimestamp(next, missing)
		card.NextRunHint = utils.FormatRelative(time.UnixMilli(next).Sub(now))
		if b.calendar != nil {
			link, err := b.calendar.CreateTaskEvent(card.Name, card.Schedule, r.Description, time.UnixMilli(next), now)
			if err == nil {
				card.CalendarURL = link
			}
		}
	}

	return card
}
