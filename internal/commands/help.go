package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"win98todo/internal/app"
	"win98todo/internal/config"
	"win98todo/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "win98todo help" }
func (c *HelpCmd) NeedsApp() bool    { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, HelpText(DefaultRegistry))
	return exitcode.Success
}

// HelpText renders usage for every command in r.
func HelpText(r *Registry) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  win98todo                  List all tasks\n")
	for _, cmd := range r.All() {
		fmt.Fprintf(&b, "  %s\n", cmd.Usage())
		fmt.Fprintf(&b, "      %s", cmd.Synopsis())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			fmt.Fprintf(&b, " (alias: %s)", strings.Join(aliases, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpFooter)
	return b.String()
}

const helpFooter = `
Task references:
  <n>              Row number as printed by list
  @<id>            Task id (see export)

Common flags:
  --config <dir>   Override config directory
  --storage <kind> Storage backend: file, redis or memory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
