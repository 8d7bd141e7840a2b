package commands

import (
	"context"
	"flag"
	"io"

	"win98todo/internal/app"
	"win98todo/internal/config"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Flip a task between active and completed" }
func (c *ToggleCmd) Usage() string     { return "win98todo toggle <ref...>" }
func (c *ToggleCmd) NeedsApp() bool    { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	return applyToRefs(cfg, a, args, out, errOut, a.Store().Toggle)
}
