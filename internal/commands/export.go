package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"win98todo/internal/app"
	"win98todo/internal/config"
	"win98todo/internal/exitcode"
	"win98todo/internal/persist"
)

func init() {
	Register(&ExportCmd{})
	Register(&ImportCmd{})
}

// ExportCmd implements the export command (File > Save).
type ExportCmd struct {
	out string
}

// SetOut sets the output path (for testing).
func (c *ExportCmd) SetOut(path string) {
	c.out = path
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return []string{"save"} }
func (c *ExportCmd) Synopsis() string  { return "Write the list to a JSON file" }
func (c *ExportCmd) Usage() string     { return "win98todo export [--out <path>|-]" }
func (c *ExportCmd) NeedsApp() bool    { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.out, "out", persist.ExportFile, "")
	fs.StringVar(&c.out, "o", persist.ExportFile, "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	path := c.out
	if path == "" {
		path = persist.ExportFile
	}

	if path == "-" {
		if err := a.SaveTo(out); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return exitcode.Success
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := a.SaveTo(f); err != nil {
		f.Close()
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "saved %s\n", path)
	}
	return exitcode.Success
}

// ImportCmd implements the import command (File > Open).
type ImportCmd struct{}

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return []string{"open"} }
func (c *ImportCmd) Synopsis() string  { return "Replace the list with a JSON file" }
func (c *ImportCmd) Usage() string     { return "win98todo import <path>" }
func (c *ImportCmd) NeedsApp() bool    { return true }

func (c *ImportCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ImportCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: file path required")
		return exitcode.UserError
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: Error loading file: %v\n", err)
		return exitcode.UserError
	}
	defer f.Close()

	if err := a.OpenFrom(f); err != nil {
		cfg.Log().WithError(err).WithField("path", args[0]).Debug("commands: import rejected")
		fmt.Fprintf(errOut, "error: Error loading file: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "loaded %d tasks\n", a.Store().Len())
	}
	return exitcode.Success
}
