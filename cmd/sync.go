package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"rhythmsync/internal/formatter"
	"rhythmsync/internal/shared"
)

// Sync merges iTunes play history into the Rhythmbox database and migrates
// static playlists, then prints a summary of what changed.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	if err := r.reloadConfig(cmd); err != nil {
		return err
	}
	if cmd.Bool("quiet") {
		shared.SetLogLevel(r.logger, log.ErrorLevel)
	}

	libraryPath, err := r.libraryPath(cmd)
	if err != nil {
		return err
	}
	dataDir, err := r.rhythmboxDir(cmd)
	if err != nil {
		return err
	}

	result, err := r.engine.Run(libraryPath, dataDir)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(formatter.SyncSummary(result)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Migrate iTunes play history and playlists into Rhythmbox",
		ArgsUsage: "[path to Library.xml]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rhythmbox-path",
				Aliases: []string{"r"},
				Usage:   "Rhythmbox data directory holding rhythmdb.xml and playlists.xml",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress everything but errors and the final summary",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Action: r.Sync,
	}
}
