package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"win98todo/internal/app"
	"win98todo/internal/config"
	"win98todo/internal/exitcode"
	"win98todo/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	priority string
	due      string
}

// SetPriority sets the priority flag (for testing).
func (c *AddCmd) SetPriority(p string) {
	c.priority = p
}

// SetDue sets the due date flag (for testing).
func (c *AddCmd) SetDue(d string) {
	c.due = d
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "win98todo add [--priority low|normal|medium|high] [--due YYYY-MM-DD] <text...>"
}
func (c *AddCmd) NeedsApp() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	priority, err := task.ParsePriority(c.priority)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	text := strings.Join(args, " ")
	t, err := a.Store().Add(text, priority, strings.TrimSpace(c.due))
	switch {
	case errors.Is(err, task.ErrEmptyText):
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	case err != nil:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	cfg.Log().WithField("id", t.ID).Debug("commands: task added")
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
