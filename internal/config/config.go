package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceCLI    = "cli"
	SourceFile   = "file"
	SourceGroups = "groups"
)

type Config struct {
	Source        SourceConfig        `json:"source"`
	Output        OutputConfig        `json:"output"`
	Board         BoardConfig         `json:"board"`
	Server        ServerConfig        `json:"server"`
	Schedule      ScheduleConfig      `json:"schedule"`
	Notifications NotificationsConfig `json:"notifications"`
}

type SourceConfig struct {
	Kind     string   `json:"kind"`
	Command  []string `json:"command"`
	File     string   `json:"file"`
	Timeout  string   `json:"timeout"`
	Fallback string   `json:"fallback"`
	CacheTTL string   `json:"cache_ttl"`
}

type OutputConfig struct {
	Path           string `json:"path"`
	SkipStylesheet bool   `json:"skip_stylesheet"`
}

type BoardConfig struct {
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	Footer         string `json:"footer"`
	Layout         string `json:"layout"`
	RefreshSeconds int    `json:"refresh_seconds"`
	DeriveNextRun  bool   `json:"derive_next_run"`
	EmptyMessage   string `json:"empty_message"`
	CalendarLinks  bool   `json:"calendar_links"`
}

type ServerConfig struct {
	Port         string `json:"port"`
	ReadTimeout  string `json:"read_timeout"`
	WriteTimeout string `json:"write_timeout"`
}

type ScheduleConfig struct {
	Expr string `json:"expr"`
}

// NotificationsConfig enables Slack alerts for scheduled regenerations.
type NotificationsConfig struct {
	SlackWebhookURL string `json:"slack_webhook_url"`
}

// Load reads the JSON config at configPath on top of DefaultConfig. When the
// file does not exist, .env or .env.local is loaded and the environment alone
// configures the run. Environment variables override file values either way.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := godotenv.Load(); err != nil {
			_ = godotenv.Load(".env.local")
		}
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:     SourceCLI,
			Timeout:  "30s",
			Fallback: "mock",
			CacheTTL: "1h",
		},
		Output: OutputConfig{
			Path: "index.html",
		},
		Board: BoardConfig{
			Title:          "Task Board",
			Subtitle:       "What the agents are working on",
			RefreshSeconds: 300,
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  "10s",
			WriteTimeout: "10s",
		},
		Schedule: ScheduleConfig{
			Expr: "@every 5m",
		},
	}
}

func (c *Config) applyEnv() error {
	setString(&c.Source.Kind, "TASKBOARD_SOURCE")
	setString(&c.Source.File, "TASKBOARD_FILE")
	setString(&c.Source.Fallback, "TASKBOARD_FALLBACK")
	setString(&c.Source.Timeout, "TASKBOARD_SOURCE_TIMEOUT")
	if v, ok := os.LookupEnv("TASKBOARD_COMMAND"); ok {
		c.Source.Command = strings.Fields(v)
	}

	setString(&c.Output.Path, "TASKBOARD_OUTPUT")

	setString(&c.Board.Title, "TASKBOARD_TITLE")
	setString(&c.Board.Subtitle, "TASKBOARD_SUBTITLE")
	setString(&c.Board.Layout, "TASKBOARD_LAYOUT")
	if v, ok := os.LookupEnv("TASKBOARD_REFRESH_SECONDS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TASKBOARD_REFRESH_SECONDS %q: %w", v, err)
		}
		c.Board.RefreshSeconds = n
	}
	if v, ok := os.LookupEnv("TASKBOARD_DERIVE_NEXT_RUN"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid TASKBOARD_DERIVE_NEXT_RUN %q: %w", v, err)
		}
		c.Board.DeriveNextRun = b
	}
	if v, ok := os.LookupEnv("TASKBOARD_CALENDAR_LINKS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid TASKBOARD_CALENDAR_LINKS %q: %w", v, err)
		}
		c.Board.CalendarLinks = b
	}

	setString(&c.Server.Port, "PORT")
	setString(&c.Schedule.Expr, "TASKBOARD_SCHEDULE")
	setString(&c.Notifications.SlackWebhookURL, "SLACK_WEBHOOK_URL")

	return nil
}

// Validate checks the settings a generation run depends on.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceCLI:
	case SourceFile, SourceGroups:
		if c.Source.File == "" {
			return fmt.Errorf("source.file is required for source kind %q", c.Source.Kind)
		}
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}

	switch c.Source.Fallback {
	case "", "mock", "empty":
	default:
		return fmt.Errorf("unknown source fallback %q", c.Source.Fallback)
	}

	switch c.Board.Layout {
	case "", "status", "owner":
	default:
		return fmt.Errorf("unknown board layout %q", c.Board.Layout)
	}

	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}

	for name, value := range map[string]string{
		"source.timeout":       c.Source.Timeout,
		"source.cache_ttl":     c.Source.CacheTTL,
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	return nil
}

// LayoutName resolves the board layout, defaulting by source kind.
func (c *Config) LayoutName() string {
	if c.Board.Layout != "" {
		return c.Board.Layout
	}
	if c.Source.Kind == SourceGroups {
		return "owner"
	}
	return "status"
}

// Duration parses value, returning fallback when it is empty or invalid.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
