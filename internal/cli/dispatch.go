// Package cli parses the command line and dispatches to registered commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"taskman/internal/commands"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/logging"
	"taskman/internal/metrics"
	"taskman/internal/service"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list every task
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// A leading dash left over means a flag after a positional argument
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	// Static commands never read config.yaml, so a broken file can't hide help.
	load := config.New
	if cmd.NeedsBackend() {
		load = config.Load
	}
	cfg, err := load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: config error: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	log := d.logger(cmd, cfg, errOut)
	defer log.Sync()
	ctx = logging.WithLogger(ctx, log)

	var svc service.Service
	if cmd.NeedsBackend() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: config error: no backend configured")
			return exitcode.ConfigError
		}
		svc, err = d.factory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: config error: %s\n", err)
			return exitcode.ConfigError
		}
	}

	log.Debug("Running command", zap.String("command", cmd.Name()), zap.Strings("args", positionalArgs))
	code := cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn("Failed to write metrics", zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
	}
	return code
}

// logger builds the run's logger. Commands that own the screen log to the file even with --debug.
func (d *Dispatcher) logger(cmd commands.Command, cfg *config.Config, errOut io.Writer) *zap.Logger {
	fullScreen := false
	if fsc, ok := cmd.(commands.FullScreen); ok {
		fullScreen = fsc.FullScreen()
	}

	var path string
	if cmd.NeedsBackend() && cfg.EnsureDir() == nil {
		path = cfg.LogPath()
	}
	return logging.New(logging.Options{
		Debug:    cfg.Debug && !fullScreen,
		Stderr:   errOut,
		FilePath: path,
		Verbose:  cfg.Debug,
	})
}

// flagError rewrites flag package errors into CLI messages.
func flagError(err error) string {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		name := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + name
	}
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		name := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
		return "unknown flag: " + name
	}
	return errStr
}
