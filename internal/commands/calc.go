package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"win98todo/internal/app"
	"win98todo/internal/calc"
	"win98todo/internal/config"
	"win98todo/internal/exitcode"
)

func init() {
	Register(&CalcCmd{})
}

// CalcCmd implements the calc command.
type CalcCmd struct{}

func (c *CalcCmd) Name() string      { return "calc" }
func (c *CalcCmd) Aliases() []string { return nil }
func (c *CalcCmd) Synopsis() string  { return "Evaluate an arithmetic expression" }
func (c *CalcCmd) Usage() string     { return "win98todo calc <expr...>" }
func (c *CalcCmd) NeedsApp() bool    { return false }

func (c *CalcCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CalcCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	expr := strings.Join(args, " ")
	if strings.TrimSpace(expr) == "" {
		fmt.Fprintln(errOut, "error: expression required")
		return exitcode.UserError
	}

	v, err := calc.Eval(expr)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintln(out, calc.Format(v))
	return exitcode.Success
}
