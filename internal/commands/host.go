package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"

	"win98todo/internal/app"
	"win98todo/internal/backend"
	"win98todo/internal/bridge"
	"win98todo/internal/config"
	"win98todo/internal/exitcode"
)

func init() {
	Register(&HostCmd{})
}

// HostCmd implements the host command: it owns the window and the news
// service and serves them to UI processes until the window is closed.
type HostCmd struct {
	listen string

	// ready, when set, receives the bound address (for testing).
	ready func(addr string)
}

// SetListen sets the listen address (for testing).
func (c *HostCmd) SetListen(addr string) {
	c.listen = addr
}

// OnReady sets a callback receiving the bound address (for testing).
func (c *HostCmd) OnReady(fn func(addr string)) {
	c.ready = fn
}

func (c *HostCmd) Name() string      { return "host" }
func (c *HostCmd) Aliases() []string { return []string{"serve"} }
func (c *HostCmd) Synopsis() string  { return "Run the host process for window controls and news" }
func (c *HostCmd) Usage() string     { return "win98todo host [--listen <addr>]" }
func (c *HostCmd) NeedsApp() bool    { return false }

func (c *HostCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listen, "listen", "", "")
}

func (c *HostCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	addr := c.listen
	if addr == "" {
		addr = cfg.Settings.Listen
	}
	if addr == "" {
		addr = bridge.DefaultListen
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(errOut, "error: host error: %v\n", err)
		return exitcode.HostError
	}

	if cfg.Settings.News.APIKey == "" {
		cfg.Log().Warn("host: no news API key configured, headlines will be empty")
	}

	srv := bridge.NewServer(backend.NewLocalHost(cfg), cfg.Log())
	if !cfg.Quiet {
		fmt.Fprintf(out, "listening on http://%s\n", l.Addr())
	}
	if c.ready != nil {
		c.ready(l.Addr().String())
	}

	if err := srv.Serve(ctx, l); err != nil {
		fmt.Fprintf(errOut, "error: host error: %v\n", err)
		return exitcode.HostError
	}
	return exitcode.Success
}
