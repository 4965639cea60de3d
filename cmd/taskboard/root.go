package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/0xPuncker/taskboard/internal/board"
	"github.com/0xPuncker/taskboard/internal/config"
	"github.com/0xPuncker/taskboard/internal/generator"
	"github.com/0xPuncker/taskboard/internal/render"
	"github.com/0xPuncker/taskboard/internal/source"
)

type rootFlags struct {
	configPath string
	output     string
	sourceKind string
	file       string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "taskboard",
		Short: "Taskboard - static task board generator",
		Long: `Taskboard turns the scheduled jobs of your automation agents into a
static HTML board, grouped by status or by owning agent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "config/config.json", "path to config file")
	pf.StringVarP(&flags.output, "output", "o", "", "output HTML path (overrides config)")
	pf.StringVar(&flags.sourceKind, "source", "", "job source: cli, file or groups (overrides config)")
	pf.StringVarP(&flags.file, "file", "f", "", "job file or board config path (overrides config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (default info, or LOG_LEVEL)")

	cmd.AddCommand(
		newGenerateCmd(flags),
		newServeCmd(flags),
		newVersionCmd(),
	)

	return cmd
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05-07:00",
	})

	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			logger.Warnf("Invalid log level %q, using info", level)
		} else {
			logger.SetLevel(parsed)
		}
	}

	return logger
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
	if flags.sourceKind != "" {
		cfg.Source.Kind = flags.sourceKind
	}
	if flags.file != "" {
		cfg.Source.File = flags.file
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSource(cfg *config.Config, logger *logrus.Logger) source.Source {
	switch cfg.Source.Kind {
	case config.SourceFile:
		return source.NewFileSource(logger, cfg.Source.File)
	case config.SourceGroups:
		return source.NewGroupConfigSource(logger, cfg.Source.File)
	default:
		return source.NewCLISource(logger, source.ExecRunner{}, source.CLIOptions{
			Command:  cfg.Source.Command,
			Timeout:  config.Duration(cfg.Source.Timeout, 30*time.Second),
			Fallback: source.Fallback(cfg.Source.Fallback),
			CacheTTL: config.Duration(cfg.Source.CacheTTL, 0),
		})
	}
}

func newGenerator(cfg *config.Config, logger *logrus.Logger) (*generator.Generator, error) {
	renderer, err := render.NewHTMLRenderer(logger)
	if err != nil {
		return nil, err
	}

	builder := board.NewBuilder(logger, board.Options{
		Layout:         board.Layout(cfg.LayoutName()),
		DeriveNextRun:  cfg.Board.DeriveNextRun,
		RefreshSeconds: cfg.Board.RefreshSeconds,
		EmptyMessage:   cfg.Board.EmptyMessage,
		CalendarLinks:  cfg.Board.CalendarLinks,
	})

	return generator.New(logger, newSource(cfg, logger), builder, renderer, generator.Options{
		OutputPath:     cfg.Output.Path,
		SkipStylesheet: cfg.Output.SkipStylesheet,
		Title:          cfg.Board.Title,
		Subtitle:       cfg.Board.Subtitle,
		Footer:         cfg.Board.Footer,
	}), nil
}

func outputDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Output.Path)
}
