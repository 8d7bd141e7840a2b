package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"win98todo/internal/app"
	"win98todo/internal/config"
	"win98todo/internal/exitcode"
	"win98todo/internal/tui"
)

// uiLogFile receives log output while the UI owns the terminal.
const uiLogFile = "ui.log"

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Open the to-do window in the terminal" }
func (c *UICmd) Usage() string     { return "win98todo ui" }
func (c *UICmd) NeedsApp() bool    { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if err := cfg.EnsureDir(); err == nil {
		path := filepath.Join(cfg.Dir, uiLogFile)
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
			l := cfg.Log()
			prev := l.Out
			l.SetOutput(f)
			defer func() {
				l.SetOutput(prev)
				f.Close()
			}()
		}
	}

	if err := tui.Run(ctx, a); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
