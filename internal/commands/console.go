package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/logging"
	"taskman/internal/output"
	"taskman/internal/service"
)

// console presents controller output on the terminal streams.
// List renders are printed only when showList is set, so mutations don't dump the reloaded list.
type console struct {
	out, errOut io.Writer
	quiet       bool
	showList    bool
}

func (c *console) Render(v app.ListView) {
	if !c.showList {
		return
	}
	if v.Err != "" {
		fmt.Fprintf(c.errOut, "error: %s\n", v.Err)
		return
	}
	output.FormatTasks(c.out, v.Tasks, c.quiet)
}

func (c *console) ShowSection(app.Section) {}
func (c *console) ResetForm(app.Section)   {}
func (c *console) ClearID(app.Section)     {}

func (c *console) Notify(n app.Notification) {
	switch n.Level {
	case app.LevelSuccess:
		if !c.quiet {
			fmt.Fprintln(c.out, n.Message)
		}
	case app.LevelInfo:
		fmt.Fprintln(c.out, n.Message)
	case app.LevelWarning:
		fmt.Fprintf(c.errOut, "error: %s\n", n.Message)
	default:
		fmt.Fprintln(c.errOut, n.Message)
	}
}

// controllerOptions builds controller settings from the configuration.
func controllerOptions(ctx context.Context, cfg *config.Config) app.Options {
	return app.Options{
		StorageType:   cfg.StorageType,
		DefaultStatus: cfg.DefaultStatus,
		Downloader:    app.DirDownloader{Dir: cfg.DownloadDir},
		Logger:        logging.FromContext(ctx),
	}
}

// newController wires a controller to the terminal streams.
func newController(ctx context.Context, cfg *config.Config, svc service.Service, out, errOut io.Writer) (*app.Controller, *console) {
	con := &console{out: out, errOut: errOut, quiet: cfg.Quiet}
	return app.NewController(svc, con, con, controllerOptions(ctx, cfg)), con
}

// exitCode maps an action error to the process exit code.
// The error itself has already been reported by the notifier.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, app.ErrValidation), errors.Is(err, service.ErrNotFound):
		return exitcode.UserError
	default:
		return exitcode.BackendError
	}
}

// storageOrDefault returns the --storage value, or the configured storage type.
func storageOrDefault(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.StorageType
}
