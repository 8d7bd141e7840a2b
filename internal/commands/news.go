package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"win98todo/internal/app"
	"win98todo/internal/config"
	"win98todo/internal/exitcode"
	"win98todo/internal/output"
)

func init() {
	Register(&NewsCmd{})
}

// NewsCmd implements the news command.
type NewsCmd struct{}

func (c *NewsCmd) Name() string      { return "news" }
func (c *NewsCmd) Aliases() []string { return nil }
func (c *NewsCmd) Synopsis() string  { return "Show technology headlines" }
func (c *NewsCmd) Usage() string     { return "win98todo news" }
func (c *NewsCmd) NeedsApp() bool    { return true }

func (c *NewsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *NewsCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	a.ShowNews(ctx)
	articles, _ := a.News()

	if len(articles) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.NoHeadlines)
		}
		return exitcode.Success
	}
	for i, art := range articles {
		if i > 0 {
			fmt.Fprintln(out)
		}
		output.FormatArticle(out, i+1, art)
	}
	return exitcode.Success
}
