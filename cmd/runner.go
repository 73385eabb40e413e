package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"rhythmsync/internal/shared"
	"rhythmsync/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
	engine *tasks.Engine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		logger: opts.Logger,
		output: opts.Output,
	}
	r.applyConfig(opts.Config)

	return r
}

// applyConfig swaps the active configuration and rebuilds everything derived
// from it.
func (r *Runner) applyConfig(config *shared.Config) {
	r.config = config
	r.engine = tasks.NewEngine(r.logger, config.Sync.UnknownArtistSentinels)

	if config.Log.Level != "" {
		if level, err := log.ParseLevel(config.Log.Level); err == nil {
			shared.SetLogLevel(r.logger, level)
		} else {
			r.logger.Warn("unknown log level in config", "level", config.Log.Level)
		}
	}
}

// reloadConfig loads the configuration file named by the --config flag, if set.
func (r *Runner) reloadConfig(cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		return nil
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	r.applyConfig(config)
	return nil
}

// libraryPath resolves the iTunes library export to read. A positional
// argument wins over the configured default.
func (r *Runner) libraryPath(cmd *cli.Command) (string, error) {
	if path := cmd.Args().First(); path != "" {
		return path, nil
	}
	if r.config.Library.Path != "" {
		return r.config.Library.Path, nil
	}
	return "", fmt.Errorf("%w: path to the iTunes Library.xml", shared.ErrMissingArgument)
}

// rhythmboxDir resolves the Rhythmbox data directory: flag, then config,
// then the XDG default.
func (r *Runner) rhythmboxDir(cmd *cli.Command) (string, error) {
	if dir := cmd.String("rhythmbox-path"); dir != "" {
		return dir, nil
	}
	if r.config.Rhythmbox.Path != "" {
		return r.config.Rhythmbox.Path, nil
	}
	return shared.DefaultRhythmboxDir()
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		syncCommand, inspectCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
