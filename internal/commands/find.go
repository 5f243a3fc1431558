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
	Register(&FindCmd{})
}

// FindCmd implements the get command.
type FindCmd struct {
	storage string
}

func (c *FindCmd) Name() string       { return "get" }
func (c *FindCmd) Aliases() []string  { return []string{"find"} }
func (c *FindCmd) Synopsis() string   { return "Show one task" }
func (c *FindCmd) Usage() string      { return "taskman get [--storage <type>] <id>" }
func (c *FindCmd) NeedsBackend() bool { return true }

func (c *FindCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.storage, "storage", "", "")
}

func (c *FindCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ctrl, _ := newController(ctx, cfg, svc, out, errOut)
	_, err = ctrl.Find(ctx, app.TaskRef{ID: id, StorageType: storageOrDefault(c.storage, cfg)})
	return exitCode(err)
}
