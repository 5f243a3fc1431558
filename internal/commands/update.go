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
	Register(&UpdateCmd{})
}

// UpdateCmd implements the update command.
// Only the given fields are changed.
type UpdateCmd struct {
	form app.UpdateForm
}

// SetForm sets every input except the id (for testing).
func (c *UpdateCmd) SetForm(f app.UpdateForm) {
	c.form = f
}

func (c *UpdateCmd) Name() string      { return "update" }
func (c *UpdateCmd) Aliases() []string { return []string{"edit"} }
func (c *UpdateCmd) Synopsis() string  { return "Change fields of a task" }
func (c *UpdateCmd) Usage() string {
	return "taskman update [--title <text>] [--description <text>] [--deadline <date>] [--status <status>] [--storage <type>] <id>"
}
func (c *UpdateCmd) NeedsBackend() bool { return true }

func (c *UpdateCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.form.Title, "title", "", "")
	fs.StringVar(&c.form.Description, "description", "", "")
	fs.StringVar(&c.form.Description, "d", "", "")
	fs.StringVar(&c.form.Deadline, "deadline", "", "")
	fs.StringVar(&c.form.Status, "status", "", "")
	fs.StringVar(&c.form.StorageType, "storage", "", "")
}

func (c *UpdateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	form := c.form
	form.ID = id
	form.StorageType = storageOrDefault(form.StorageType, cfg)

	ctrl, _ := newController(ctx, cfg, svc, out, errOut)
	return exitCode(ctrl.Update(ctx, form))
}
