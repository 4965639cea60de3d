package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/0xPuncker/taskboard/internal/generator"
)

type RunStatus string

const (
	RunSuccess  RunStatus = "success"
	RunDegraded RunStatus = "degraded"
	RunFailed   RunStatus = "failed"
)

// RunReport summarises one scheduled regeneration.
type RunReport struct {
	Job      string
	Status   RunStatus
	Duration time.Duration
	Origin   string
	Tasks    string
	Details  string
}

// NewRunReport describes the outcome of generator.Run.
func NewRunReport(job string, res *generator.Result, err error, duration time.Duration) RunReport {
	report := RunReport{Job: job, Status: RunSuccess, Duration: duration}

	if err != nil {
		report.Status = RunFailed
		report.Details = err.Error()
		return report
	}
	if res == nil {
		return report
	}

	report.Origin = res.Origin
	if res.Document != nil {
		t := res.Document.Totals
		report.Tasks = fmt.Sprintf("%d running | %d planned | %d paused", t.Active, t.Planned, t.Paused)
	}
	if res.AcquisitionErr != nil {
		report.Status = RunDegraded
		report.Details = fmt.Sprintf("served %s data: %v", res.Fallback, res.AcquisitionErr)
	}
	return report
}

// NotificationService posts failed and degraded runs to Slack, plus the
// first successful run after a problem.
type NotificationService struct {
	slackService *SlackService
	now          func() time.Time

	mu   sync.Mutex
	last map[string]RunStatus
}

func NewNotificationService(slackService *SlackService) *NotificationService {
	return &NotificationService{
		slackService: slackService,
		now:          time.Now,
		last:         make(map[string]RunStatus),
	}
}

// NotifyRun records the report and sends a message when the run needs
// attention. It reports whether a message was sent.
func (s *NotificationService) NotifyRun(ctx context.Context, report RunReport) (bool, error) {
	s.mu.Lock()
	previous, seen := s.last[report.Job]
	s.last[report.Job] = report.Status
	s.mu.Unlock()

	recovered := report.Status == RunSuccess && seen && previous != RunSuccess
	if report.Status == RunSuccess && !recovered {
		return false, nil
	}

	message := s.formatRunNotification(report, recovered)
	if err := s.slackService.SendSlackMessage(ctx, message); err != nil {
		return false, err
	}
	return true, nil
}

func (s *NotificationService) formatRunNotification(report RunReport, recovered bool) *SlackMessage {
	var color string
	var icon string
	var title string

	switch {
	case recovered:
		color = "good"
		icon = "✅"
		title = "Task board recovered"
	case report.Status == RunFailed:
		color = "danger"
		icon = "❌"
		title = "Task board generation failed"
	case report.Status == RunDegraded:
		color = "warning"
		icon = "⚠️"
		title = "Task board generated from fallback data"
	default:
		color = "#808080"
		icon = "ℹ️"
		title = "Task board update"
	}

	fields := []Field{
		{
			Title: "Job Name",
			Value: report.Job,
			Short: true,
		},
		{
			Title: "Status",
			Value: string(report.Status),
			Short: true,
		},
	}

	if report.Duration > 0 {
		fields = append(fields, Field{
			Title: "Duration",
			Value: report.Duration.Round(time.Millisecond).String(),
			Short: true,
		})
	}

	if report.Origin != "" {
		fields = append(fields, Field{
			Title: "Source",
			Value: report.Origin,
			Short: true,
		})
	}

	if report.Tasks != "" {
		fields = append(fields, Field{
			Title: "Tasks",
			Value: report.Tasks,
			Short: false,
		})
	}

	if report.Details != "" {
		fields = append(fields, Field{
			Title: "Details",
			Value: report.Details,
			Short: false,
		})
	}

	now := s.now()
	return &SlackMessage{
		Text: fmt.Sprintf("%s %s", icon, title),
		Attachments: []Attachment{
			{
				Color:  color,
				Fields: fields,
				Footer: fmt.Sprintf("Taskboard | %s", now.UTC().Format("Mon, 02 Jan 2006 15:04:05 MST")),
				Ts:     now.Unix(),
			},
		},
	}
}
