package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskman help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskman                                   List all tasks
  taskman list [common flags] [--storage <type>] [--filter <text>] [--status <status>]
               [--deadline <YYYY-MM-DD>] [--filter-storage <type>]
  taskman add [common flags] [--description <text>] [--deadline <YYYY-MM-DD>]
              [--status <status>] [--storage <type>] <title...>
  taskman get [common flags] [--storage <type>] <id>
  taskman update [common flags] [--title <text>] [--description <text>]
                 [--deadline <YYYY-MM-DD>] [--status <status>] [--storage <type>] <id>
  taskman done [common flags] [--storage <type>] <id>
  taskman delete [common flags] [--storage <type>] <id>
  taskman export [common flags] --filename <name> --format <json|csv|markdown> [--storage <type>]
  taskman ui [common flags]
  taskman help
  taskman version

Aliases: ls (list), create (add), find (get), edit (update), rm (delete)

Storage types: memory, jsonfile, sqlite
Statuses: pending, completed

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress confirmations and empty-list output
  --debug          Print debug logs to stderr
`
