package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"win98todo/internal/app"
	"win98todo/internal/config"
	"win98todo/internal/exitcode"
	"win98todo/internal/output"
	"win98todo/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `win98todo` (no args) and `win98todo list [--filter f] [--search q]`.
// Rows are numbered by their position in the unfiltered view so the
// numbers stay valid as refs.
type ListCmd struct {
	filter string
	search string
}

// SetFilter sets the filter flag (for testing).
func (c *ListCmd) SetFilter(f string) {
	c.filter = f
}

// SetSearch sets the search flag (for testing).
func (c *ListCmd) SetSearch(q string) {
	c.search = q
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "win98todo list [--filter all|active|completed|high] [--search <text>]"
}
func (c *ListCmd) NeedsApp() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	filter, err := task.ParseFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	a.SetFilter(filter)
	a.SetQuery(c.search)

	view := a.View()
	if len(view) == 0 {
		if !cfg.Quiet {
			output.FormatEmpty(out, c.search != "")
		}
	} else {
		rows := rowNumbers(a)
		for _, t := range view {
			output.FormatTask(out, rows[t.ID], t)
		}
	}

	if !cfg.Quiet {
		output.FormatStatusBar(out, a.StatusLine(), a.FilterLine(), a.TotalLine())
	}
	return exitcode.Success
}
