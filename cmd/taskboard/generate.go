package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/0xPuncker/taskboard/internal/board"
)

func newGenerateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the task board once",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(flags.logLevel)

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			gen, err := newGenerator(cfg, logger)
			if err != nil {
				return err
			}

			logger.Infof("Generating board from %s source...", cfg.Source.Kind)
			res, err := gen.Run(cmd.Context())
			if err != nil {
				return err
			}
			if res.AcquisitionErr != nil {
				logger.Warnf("Board generated from %s data: %v", res.Fallback, res.AcquisitionErr)
			}

			printSummary(cmd, res.Path, res.Document.Totals)
			return nil
		},
	}
}

func printSummary(cmd *cobra.Command, path string, totals board.Counts) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ %s has been updated\n", path)
	fmt.Fprintf(out, "   📊 Tasks: %s | %s | %s\n",
		color.GreenString("%d running", totals.Active),
		color.BlueString("%d planned", totals.Planned),
		color.YellowString("%d paused", totals.Paused),
	)
}
