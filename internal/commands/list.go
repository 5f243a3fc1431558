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
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskman` (no args) and `taskman list [flags]`.
type ListCmd struct {
	storage string
	filter  app.Filter
}

// SetStorage scopes the fetch to one storage type (for testing).
func (c *ListCmd) SetStorage(storageType string) {
	c.storage = storageType
}

// SetFilter sets the client-side filter (for testing).
func (c *ListCmd) SetFilter(f app.Filter) {
	c.filter = f
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskman list [--storage <type>] [--filter <text>] [--status <status>] [--deadline <date>] [--filter-storage <type>]"
}
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.storage, "storage", "", "")
	fs.StringVar(&c.filter.Text, "filter", "", "")
	fs.StringVar(&c.filter.Status, "status", "", "")
	fs.StringVar(&c.filter.Deadline, "deadline", "", "")
	fs.StringVar(&c.filter.StorageType, "filter-storage", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	ctrl, con := newController(ctx, cfg, svc, out, errOut)

	// Only the fetched view is printed, not the empty pre-load one.
	ctrl.SetFilter(c.filter)
	con.showList = true

	// An omitted --storage lists every partition.
	return exitCode(ctrl.Load(ctx, c.storage))
}
