package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
// The download lands in the configured download directory.
type ExportCmd struct {
	form app.ExportForm
}

// SetForm sets the export inputs (for testing).
func (c *ExportCmd) SetForm(f app.ExportForm) {
	c.form = f
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Download all tasks as a file" }
func (c *ExportCmd) Usage() string {
	return "taskman export --filename <name> --format <json|csv|markdown> [--storage <type>]"
}
func (c *ExportCmd) NeedsBackend() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.form.Filename, "filename", "", "")
	fs.StringVar(&c.form.Filename, "o", "", "")
	fs.StringVar(&c.form.Format, "format", "", "")
	fs.StringVar(&c.form.StorageType, "storage", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	ctrl, _ := newController(ctx, cfg, svc, out, errOut)
	_, err := ctrl.Export(ctx, c.form)
	return exitCode(err)
}
