// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"win98todo/internal/app"
	"win98todo/internal/config"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsApp returns true if the command works on the task list.
	// Commands like help, version, calc and host return false.
	NeedsApp() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, settings, logger).
	// a is nil if NeedsApp() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int
}
