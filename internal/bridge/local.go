package bridge

import (
	"context"

	log "github.com/sirupsen/logrus"

	"win98todo/internal/news"
)

// Local is a host living in the same process as the UI.
type Local struct {
	window *Window
	news   news.Fetcher
	log    *log.Logger
}

// NewLocal creates an in-process host.
func NewLocal(window *Window, fetcher news.Fetcher, logger *log.Logger) *Local {
	if window == nil {
		window = NewWindow()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Local{window: window, news: fetcher, log: logger}
}

// Window returns the host window.
func (h *Local) Window() *Window { return h.window }

func (h *Local) Minimize(context.Context) {
	h.window.Minimize()
	h.log.WithField("window", h.window.State()).Debug("bridge: minimize")
}

func (h *Local) Maximize(context.Context) {
	h.window.Maximize()
	h.log.WithField("window", h.window.State()).Debug("bridge: maximize")
}

func (h *Local) Close(context.Context) {
	h.window.Close()
	h.log.Debug("bridge: close")
}

func (h *Local) FetchNews(ctx context.Context) news.Response {
	if h.news == nil {
		return news.Empty()
	}
	resp := h.news.Fetch(ctx)
	if resp.Articles == nil {
		resp.Articles = []news.Article{}
	}
	return resp
}
