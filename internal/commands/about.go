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
	Register(&AboutCmd{})
}

// AboutCmd implements the about command (Help > About).
type AboutCmd struct{}

func (c *AboutCmd) Name() string      { return "about" }
func (c *AboutCmd) Aliases() []string { return nil }
func (c *AboutCmd) Synopsis() string  { return "Show the About box" }
func (c *AboutCmd) Usage() string     { return "win98todo about" }
func (c *AboutCmd) NeedsApp() bool    { return false }

func (c *AboutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AboutCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "%s\nVersion %s\n", app.Product, app.Version)
	return exitcode.Success
}
