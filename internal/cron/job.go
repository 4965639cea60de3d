package cron

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Task is the work a scheduled job performs.
type Task func(ctx context.Context) error

// JobInfo describes a registered job.
type JobInfo struct {
	Name     string    `json:"name"`
	Schedule string    `json:"schedule"`
	Next     time.Time `json:"next,omitempty"`
	Prev     time.Time `json:"prev,omitempty"`
	Running  bool      `json:"running"`
}

type job struct {
	id       cron.EntryID
	schedule string
	task     Task
	running  bool
}

// Scheduler runs named tasks on cron schedules. A job whose previous run is
// still in progress is skipped rather than stacked.
type Scheduler struct {
	cron    *cron.Cron
	logger  *logrus.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.RWMutex
	jobs    map[string]*job
	started bool
}

func NewScheduler(logger *logrus.Logger) *Scheduler {
	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithParser(parser), cron.WithLocation(time.UTC)),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]*job),
	}
}

// AddJob registers task under name on the given cron schedule.
func (s *Scheduler) AddJob(name, schedule string, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}

	j := &job{schedule: schedule, task: task}
	id, err := s.cron.AddFunc(schedule, func() { s.execute(name, j) })
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}
	j.id = id
	s.jobs[name] = j

	s.logger.WithFields(logrus.Fields{
		"job_name": name,
		"schedule": schedule,
	}).Info("Job scheduled successfully")

	return nil
}

// Trigger runs a registered job immediately and waits for it.
func (s *Scheduler) Trigger(name string) error {
	s.mu.RLock()
	j, exists := s.jobs[name]
	s.mu.RUnlock()
	if !exists {
		return fmt.Errorf("job %s not found", name)
	}

	return s.execute(name, j)
}

func (s *Scheduler) execute(name string, j *job) error {
	s.mu.Lock()
	if j.running {
		s.mu.Unlock()
		s.logger.Warnf("Previous run still in progress, skipping job: %s", name)
		return fmt.Errorf("job %s already running", name)
	}
	j.running = true
	ctx := s.ctx
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		j.running = false
		s.mu.Unlock()
	}()

	s.logger.WithField("job_name", name).Debug("Starting job execution")
	start := time.Now()

	if err := j.task(ctx); err != nil {
		s.logger.WithFields(logrus.Fields{
			"job_name": name,
			"error":    err.Error(),
			"duration": formatDuration(time.Since(start)),
		}).Error("Job execution failed")
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"job_name": name,
		"duration": formatDuration(time.Since(start)),
	}).Info("Job execution completed successfully")
	return nil
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// ListJobs returns the registered jobs ordered by name.
func (s *Scheduler) ListJobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]JobInfo, 0, len(s.jobs))
	for name, j := range s.jobs {
		entry := s.cron.Entry(j.id)
		jobs = append(jobs, JobInfo{
			Name:     name,
			Schedule: j.schedule,
			Next:     entry.Next,
			Prev:     entry.Prev,
			Running:  j.running,
		})
	}

	sort.Slice(jobs, func(a, b int) bool { return jobs[a].Name < jobs[b].Name })
	return jobs
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("scheduler already started")
	}

	if s.ctx.Err() != nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
	}
	s.cron.Start()
	s.started = true
	s.logger.Info("Scheduler started...")

	return nil
}

// Stop halts scheduling, cancels the context handed to running tasks and
// waits for them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.cancel()
	// waiting happens outside the lock, running tasks take it on return
	stopped := s.cron.Stop()
	s.mu.Unlock()

	<-stopped.Done()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
