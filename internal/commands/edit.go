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
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct {
	allowEmpty bool
}

// SetAllowEmpty sets the --empty flag (for testing).
func (c *EditCmd) SetAllowEmpty(v bool) {
	c.allowEmpty = v
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Replace the text of a task" }
func (c *EditCmd) Usage() string     { return "win98todo edit [--empty] <ref> <text...>" }
func (c *EditCmd) NeedsApp() bool    { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.allowEmpty, "empty", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	// Edits commit verbatim, so an empty text has to be asked for.
	text := strings.Join(args[1:], " ")
	if text == "" && !c.allowEmpty {
		fmt.Fprintln(errOut, "error: task text required (use --empty to clear it)")
		return exitcode.UserError
	}

	ids, err := resolveIDs(a, []TaskRef{ref})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	store := a.Store()
	if !store.StartEdit(ids[0]) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no such task")
		}
		return exitcode.Success
	}
	store.SetDraft(text)
	store.CommitEdit(ids[0])

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
