package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"win98todo/internal/app"
	"win98todo/internal/config"
	"win98todo/internal/exitcode"
)

func init() {
	Register(&ClearCmd{})
	Register(&SelectAllCmd{})
	Register(&UnselectAllCmd{})
	Register(&NewCmd{})
}

// ClearCmd implements the clear command (Edit > Clear Completed).
type ClearCmd struct{}

func (c *ClearCmd) Name() string      { return "clear" }
func (c *ClearCmd) Aliases() []string { return nil }
func (c *ClearCmd) Synopsis() string  { return "Remove completed tasks" }
func (c *ClearCmd) Usage() string     { return "win98todo clear" }
func (c *ClearCmd) NeedsApp() bool    { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	n := a.ClearCompleted()
	if !cfg.Quiet {
		fmt.Fprintf(out, "removed %d\n", n)
	}
	return exitcode.Success
}

// SelectAllCmd implements the select-all command (Edit > Select All).
type SelectAllCmd struct{}

func (c *SelectAllCmd) Name() string      { return "select-all" }
func (c *SelectAllCmd) Aliases() []string { return nil }
func (c *SelectAllCmd) Synopsis() string  { return "Mark every task completed" }
func (c *SelectAllCmd) Usage() string     { return "win98todo select-all" }
func (c *SelectAllCmd) NeedsApp() bool    { return true }

func (c *SelectAllCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SelectAllCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	a.SelectAll()
	return printOK(cfg, out)
}

// UnselectAllCmd implements the unselect-all command (Edit > Unselect All).
type UnselectAllCmd struct{}

func (c *UnselectAllCmd) Name() string      { return "unselect-all" }
func (c *UnselectAllCmd) Aliases() []string { return nil }
func (c *UnselectAllCmd) Synopsis() string  { return "Mark every task active" }
func (c *UnselectAllCmd) Usage() string     { return "win98todo unselect-all" }
func (c *UnselectAllCmd) NeedsApp() bool    { return true }

func (c *UnselectAllCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UnselectAllCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	a.UnselectAll()
	return printOK(cfg, out)
}

// NewCmd implements the new command (File > New).
type NewCmd struct{}

func (c *NewCmd) Name() string      { return "new" }
func (c *NewCmd) Aliases() []string { return nil }
func (c *NewCmd) Synopsis() string  { return "Start an empty list" }
func (c *NewCmd) Usage() string     { return "win98todo new" }
func (c *NewCmd) NeedsApp() bool    { return true }

func (c *NewCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *NewCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	a.NewList()
	return printOK(cfg, out)
}

func printOK(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
