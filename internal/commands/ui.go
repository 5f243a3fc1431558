package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/logging"
	"taskman/internal/service"
	"taskman/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd starts the interactive client.
type UICmd struct{}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return []string{"tui"} }
func (c *UICmd) Synopsis() string   { return "Open the interactive client" }
func (c *UICmd) Usage() string      { return "taskman ui" }
func (c *UICmd) NeedsBackend() bool { return true }
func (c *UICmd) FullScreen() bool   { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if err := tui.Run(ctx, svc, controllerOptions(ctx, cfg)); err != nil {
		logging.FromContext(ctx).Error("Interactive client failed", zap.Error(err))
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
