package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"rhythmsync/internal/formatter"
)

// Inspect reports what a migration would work with, without touching the
// Rhythmbox files.
func (r *Runner) Inspect(ctx context.Context, cmd *cli.Command) error {
	if err := r.reloadConfig(cmd); err != nil {
		return err
	}

	libraryPath, err := r.libraryPath(cmd)
	if err != nil {
		return err
	}

	report, err := r.engine.Inspect(libraryPath)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(formatter.InspectSummary(report)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func inspectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Report the contents of an iTunes library export",
		ArgsUsage: "[path to Library.xml]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Action: r.Inspect,
	}
}
