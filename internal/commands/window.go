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
	Register(&WindowCmd{})
}

// WindowCmd implements the window command.
type WindowCmd struct{}

func (c *WindowCmd) Name() string      { return "window" }
func (c *WindowCmd) Aliases() []string { return nil }
func (c *WindowCmd) Synopsis() string  { return "Minimize, maximize or close the host window" }
func (c *WindowCmd) Usage() string     { return "win98todo window minimize|maximize|close" }
func (c *WindowCmd) NeedsApp() bool    { return true }

func (c *WindowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WindowCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: window operation required: minimize, maximize or close")
		return exitcode.UserError
	}

	switch args[0] {
	case "minimize", "min":
		a.Minimize(ctx)
	case "maximize", "max":
		a.Maximize(ctx)
	case "close":
		a.Close(ctx)
	default:
		fmt.Fprintf(errOut, "error: unknown window operation: %s\n", args[0])
		return exitcode.UserError
	}
	return printOK(cfg, out)
}
