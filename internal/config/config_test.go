package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"source": {"kind": "file", "file": "jobs.json"},
		"output": {"path": "public/index.html"},
		"board": {"title": "Finch's Task Board", "refresh_seconds": 60, "derive_next_run": true},
		"server": {"port": "9090"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, SourceFile, cfg.Source.Kind)
	assert.Equal(t, "jobs.json", cfg.Source.File)
	assert.Equal(t, "30s", cfg.Source.Timeout)
	assert.Equal(t, "public/index.html", cfg.Output.Path)
	assert.Equal(t, "Finch's Task Board", cfg.Board.Title)
	assert.Equal(t, 60, cfg.Board.RefreshSeconds)
	assert.True(t, cfg.Board.DeriveNextRun)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "@every 5m", cfg.Schedule.Expr)
	assert.Equal(t, "status", cfg.LayoutName())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TASKBOARD_SOURCE", "groups")
	t.Setenv("TASKBOARD_FILE", "bird_army.yaml")
	t.Setenv("TASKBOARD_COMMAND", "openclaw cron list --json")
	t.Setenv("TASKBOARD_OUTPUT", "out.html")
	t.Setenv("TASKBOARD_REFRESH_SECONDS", "120")
	t.Setenv("TASKBOARD_SCHEDULE", "*/10 * * * *")
	t.Setenv("PORT", "3000")
	t.Setenv("TASKBOARD_CALENDAR_LINKS", "true")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.test/T000/B000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, SourceGroups, cfg.Source.Kind)
	assert.Equal(t, "bird_army.yaml", cfg.Source.File)
	assert.Equal(t, []string{"openclaw", "cron", "list", "--json"}, cfg.Source.Command)
	assert.Equal(t, "out.html", cfg.Output.Path)
	assert.Equal(t, 120, cfg.Board.RefreshSeconds)
	assert.Equal(t, "*/10 * * * *", cfg.Schedule.Expr)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "owner", cfg.LayoutName())
	assert.True(t, cfg.Board.CalendarLinks)
	assert.Equal(t, "https://hooks.slack.test/T000/B000", cfg.Notifications.SlackWebhookURL)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	malformed := filepath.Join(dir, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{"), 0o644))
	_, err := Load(malformed)
	assert.Error(t, err)

	t.Setenv("TASKBOARD_REFRESH_SECONDS", "soon")
	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"file without path", func(c *Config) { c.Source.Kind = SourceFile }, false},
		{"groups with path", func(c *Config) { c.Source.Kind = SourceGroups; c.Source.File = "b.yaml" }, true},
		{"unknown kind", func(c *Config) { c.Source.Kind = "ftp" }, false},
		{"unknown fallback", func(c *Config) { c.Source.Fallback = "guess" }, false},
		{"unknown layout", func(c *Config) { c.Board.Layout = "grid" }, false},
		{"no output", func(c *Config) { c.Output.Path = "" }, false},
		{"bad timeout", func(c *Config) { c.Source.Timeout = "forever" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, Duration("", 5*time.Second))
	assert.Equal(t, 5*time.Second, Duration("nope", 5*time.Second))
	assert.Equal(t, time.Minute, Duration("1m", 5*time.Second))
}
