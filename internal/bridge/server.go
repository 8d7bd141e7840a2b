package bridge

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

// Bridge routes served by the host process.
const (
	PathMinimize = "/bridge/window/minimize"
	PathMaximize = "/bridge/window/maximize"
	PathClose    = "/bridge/window/close"
	PathNews     = "/bridge/news"
)

// DefaultListen is the loopback address the host listens on.
const DefaultListen = "127.0.0.1:7998"

// Server exposes a Local host over HTTP to a UI in another process.
// Closing the host window stops the server.
type Server struct {
	echo *echo.Echo
	host *Local
	log  *log.Logger
	done chan struct{}
}

// NewServer wires the bridge routes for host.
func NewServer(host *Local, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())

	s := &Server{echo: e, host: host, log: logger, done: make(chan struct{})}
	host.Window().OnClose(s.windowClosed)

	e.POST(PathMinimize, s.windowOp("minimize", host.Minimize))
	e.POST(PathMaximize, s.windowOp("maximize", host.Maximize))
	e.POST(PathClose, s.windowOp("close", host.Close))
	e.GET(PathNews, s.fetchNews)
	return s
}

// Handler returns the HTTP handler (for tests).
func (s *Server) Handler() http.Handler { return s.echo }

// Done is closed once the host window has been closed.
func (s *Server) Done() <-chan struct{} { return s.done }

func (s *Server) windowClosed() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// Serve accepts connections on l until ctx ends or the window closes.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.echo.Listener = l
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start("")
	}()
	s.log.WithField("addr", l.Addr().String()).Info("bridge: host listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	case <-s.done:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("bridge: host stopped")
	return nil
}

func (s *Server) windowOp(name string, op func(context.Context)) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.log.WithFields(log.Fields{
			"op":         name,
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		}).Debug("bridge: window op")
		op(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	}
}

func (s *Server) fetchNews(c echo.Context) error {
	resp := s.host.FetchNews(c.Request().Context())
	return c.JSON(http.StatusOK, resp)
}
