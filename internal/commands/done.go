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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct {
	storage string
}

// SetStorage sets the storage type (for testing).
func (c *DoneCmd) SetStorage(storageType string) {
	c.storage = storageType
}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "taskman done [--storage <type>] <id>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.storage, "storage", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ctrl, _ := newController(ctx, cfg, svc, out, errOut)
	return exitCode(ctrl.Complete(ctx, app.TaskRef{ID: id, StorageType: storageOrDefault(c.storage, cfg)}))
}
