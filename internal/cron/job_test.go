package cron

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestScheduler(t *testing.T) {
	var counter int
	var mu sync.Mutex

	scheduler := NewScheduler(testLogger())
	err := scheduler.AddJob("regenerate", "*/1 * * * * *", func(ctx context.Context) error {
		mu.Lock()
		counter++
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)

	err = scheduler.Start()
	assert.NoError(t, err)

	time.Sleep(3 * time.Second)

	scheduler.Stop()

	mu.Lock()
	assert.Greater(t, counter, 0)
	mu.Unlock()

	jobs := scheduler.ListJobs()
	assert.Len(t, jobs, 1)
	assert.Equal(t, "regenerate", jobs[0].Name)
	assert.Equal(t, "*/1 * * * * *", jobs[0].Schedule)
}

func TestSchedulerErrors(t *testing.T) {
	scheduler := NewScheduler(testLogger())

	err := scheduler.AddJob("invalid-job", "invalid-schedule", func(ctx context.Context) error { return nil })
	assert.Error(t, err)
	assert.Empty(t, scheduler.ListJobs())

	require.NoError(t, scheduler.AddJob("job", "@every 1h", func(ctx context.Context) error { return nil }))
	assert.Error(t, scheduler.AddJob("job", "@every 1h", func(ctx context.Context) error { return nil }))

	assert.Error(t, scheduler.Trigger("missing"))

	err = scheduler.Start()
	assert.NoError(t, err)

	err = scheduler.Start()
	assert.Error(t, err)

	scheduler.Stop()
}

func TestTrigger(t *testing.T) {
	expectedErr := errors.New("render failed")
	calls := 0

	scheduler := NewScheduler(testLogger())
	require.NoError(t, scheduler.AddJob("ok", "@every 1h", func(ctx context.Context) error {
		calls++
		return nil
	}))
	require.NoError(t, scheduler.AddJob("failing", "@every 1h", func(ctx context.Context) error {
		return expectedErr
	}))

	assert.NoError(t, scheduler.Trigger("ok"))
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, scheduler.Trigger("failing"), expectedErr)
}

func TestOverlappingRunsAreSkipped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	scheduler := NewScheduler(testLogger())
	require.NoError(t, scheduler.AddJob("slow", "@every 1h", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}))

	done := make(chan error, 1)
	go func() { done <- scheduler.Trigger("slow") }()

	<-started
	jobs := scheduler.ListJobs()
	require.Len(t, jobs, 1)
	assert.True(t, jobs[0].Running)
	assert.Error(t, scheduler.Trigger("slow"))

	close(release)
	assert.NoError(t, <-done)
	assert.False(t, scheduler.ListJobs()[0].Running)
}

func TestStopCancelsTaskContext(t *testing.T) {
	started := make(chan struct{})
	var once sync.Once

	scheduler := NewScheduler(testLogger())
	require.NoError(t, scheduler.AddJob("wait", "*/1 * * * * *", func(ctx context.Context) error {
		once.Do(func() { close(started) })
		<-ctx.Done()
		return ctx.Err()
	}))
	require.NoError(t, scheduler.Start())

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job never started")
	}

	stopped := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(3 * time.Second):
		t.Fatal("stop did not return")
	}
}

func TestSchedulerState(t *testing.T) {
	scheduler := NewScheduler(testLogger())

	assert.False(t, scheduler.IsRunning())

	err := scheduler.Start()
	assert.NoError(t, err)
	assert.True(t, scheduler.IsRunning())

	scheduler.Stop()
	assert.False(t, scheduler.IsRunning())

	assert.NoError(t, scheduler.Start())
	assert.True(t, scheduler.IsRunning())
	scheduler.Stop()
}

func TestConcurrentStartStop(t *testing.T) {
	scheduler := NewScheduler(testLogger())
	require.NoError(t, scheduler.AddJob("regenerate", "@every 1h", func(ctx context.Context) error {
		return nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = scheduler.Start()
		}()
		go func() {
			defer wg.Done()
			scheduler.Stop()
		}()
	}
	wg.Wait()

	scheduler.Stop()
	assert.False(t, scheduler.IsRunning())

	require.NoError(t, scheduler.Start())
	assert.True(t, scheduler.IsRunning())
	scheduler.Stop()
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500µs", formatDuration(500*time.Microsecond))
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "1.50s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2m5s", formatDuration(125*time.Second))
}
