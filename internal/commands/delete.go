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
	Register(&DeleteCmd{})
}

// DeleteCmd implements the delete command.
type DeleteCmd struct {
	storage string
}

func (c *DeleteCmd) Name() string       { return "delete" }
func (c *DeleteCmd) Aliases() []string  { return []string{"rm"} }
func (c *DeleteCmd) Synopsis() string   { return "Delete a task" }
func (c *DeleteCmd) Usage() string      { return "taskman delete [--storage <type>] <id>" }
func (c *DeleteCmd) NeedsBackend() bool { return true }

func (c *DeleteCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.storage, "storage", "", "")
}

func (c *DeleteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ctrl, _ := newController(ctx, cfg, svc, out, errOut)
	return exitCode(ctrl.Delete(ctx, app.TaskRef{ID: id, StorageType: storageOrDefault(c.storage, cfg)}))
}
