package commands

import (
	"context"
	"flag"
	"io"

	"win98todo/internal/app"
	"win98todo/internal/config"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"del"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "win98todo rm <ref...>" }
func (c *RmCmd) NeedsApp() bool    { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	return applyToRefs(cfg, a, args, out, errOut, a.Store().Remove)
}
