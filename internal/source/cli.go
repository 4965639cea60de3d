package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/0xPuncker/taskboard/pkg/types"
)

const lastGoodCacheKey = "jobs:last-good"

// DefaultCommand lists every job, disabled ones included, as JSON.
var DefaultCommand = []string{"openclaw", "cron", "list", "--includeDisabled", "--json"}

// Runner executes an external command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// CLIOptions configure a CLISource.
type CLIOptions struct {
	Command []string
	Timeout time.Duration
	// Fallback is FallbackMock or FallbackEmpty and applies once no cached
	// dataset is left.
	Fallback Fallback
	// CacheTTL bounds how long a successful listing may stand in for a
	// failed one. Zero disables the cache.
	CacheTTL time.Duration
}

// CLISource acquires jobs from the external job listing tool. Failures are
// logged and replaced by the last good listing, then by the configured
// fallback dataset.
type CLISource struct {
	logger *logrus.Logger
	runner Runner
	opts   CLIOptions
	cache  *cache.Cache
}

func NewCLISource(logger *logrus.Logger, runner Runner, opts CLIOptions) *CLISource {
	if len(opts.Command) == 0 {
		opts.Command = DefaultCommand
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Fallback != FallbackEmpty {
		opts.Fallback = FallbackMock
	}
	if runner == nil {
		runner = ExecRunner{}
	}

	s := &CLISource{
		logger: logger,
		runner: runner,
		opts:   opts,
	}
	if opts.CacheTTL > 0 {
		s.cache = cache.New(opts.CacheTTL, opts.CacheTTL)
	}
	return s
}

func (s *CLISource) Name() string {
	return "cli:" + s.opts.Command[0]
}

// Fetch never fails. The returned error, when set, is the AcquisitionError
// that forced the fallback.
func (s *CLISource) Fetch(ctx context.Context) (*Dataset, error) {
	records, err := s.list(ctx)
	if err == nil {
		if s.cache != nil {
			s.cache.Set(lastGoodCacheKey, records, cache.DefaultExpiration)
		}
		s.logger.WithFields(logrus.Fields{
			"command": strings.Join(s.opts.Command, " "),
			"jobs":    len(records),
		}).Info("Fetched jobs from CLI")
		return &Dataset{Records: records, Origin: s.Name()}, nil
	}

	acqErr := &AcquisitionError{Source: s.Name(), Err: err}
	ds := s.fallback()
	s.logger.WithFields(logrus.Fields{
		"command":  strings.Join(s.opts.Command, " "),
		"error":    err.Error(),
		"fallback": ds.Fallback,
		"jobs":     len(ds.Records),
	}).Error("Failed to fetch jobs from CLI, using fallback")

	return ds, acqErr
}

func (s *CLISource) list(ctx context.Context) ([]types.JobRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	out, err := s.runner.Run(ctx, s.opts.Command[0], s.opts.Command[1:]...)
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, fmt.Errorf("%s timed out after %s: %w", s.opts.Command[0], s.opts.Timeout, err)
		case errors.Is(err, exec.ErrNotFound):
			return nil, fmt.Errorf("%s not found in PATH: %w", s.opts.Command[0], err)
		case errors.As(err, &exitErr):
			return nil, fmt.Errorf("%s exited with status %d: %w", s.opts.Command[0], exitErr.ExitCode(), err)
		default:
			return nil, fmt.Errorf("failed to run %s: %w", s.opts.Command[0], err)
		}
	}

	return DecodeJobs(out, s.logger)
}

func (s *CLISource) fallback() *Dataset {
	if s.cache != nil {
		if cached, found := s.cache.Get(lastGoodCacheKey); found {
			records := cached.([]types.JobRecord)
			return &Dataset{Records: records, Origin: s.Name(), Fallback: FallbackCache}
		}
	}

	if s.opts.Fallback == FallbackEmpty {
		return &Dataset{Records: []types.JobRecord{}, Origin: "empty", Fallback: FallbackEmpty}
	}
	return &Dataset{Records: MockJobs(), Origin: "mock", Fallback: FallbackMock}
}
