package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	form app.AddForm
}

// SetForm sets every input except the title (for testing).
func (c *AddCmd) SetForm(f app.AddForm) {
	c.form = f
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskman add [--description <text>] [--deadline <date>] [--status <status>] [--storage <type>] <title...>"
}
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.form.Description, "description", "", "")
	fs.StringVar(&c.form.Description, "d", "", "")
	fs.StringVar(&c.form.Deadline, "deadline", "", "")
	fs.StringVar(&c.form.Status, "status", "", "")
	fs.StringVar(&c.form.StorageType, "storage", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	form := c.form
	form.Title = strings.Join(args, " ")
	form.StorageType = storageOrDefault(form.StorageType, cfg)

	ctrl, _ := newController(ctx, cfg, svc, out, errOut)
	return exitCode(ctrl.Add(ctx, form))
}
