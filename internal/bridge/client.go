package bridge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"win98todo/internal/news"
)

const (
	// WindowOpTimeout bounds a window operation round trip.
	WindowOpTimeout = 2 * time.Second

	// NewsTimeout bounds a news round trip; the host has its own API timeout.
	NewsTimeout = 15 * time.Second
)

// Client talks to a Server in the host process.
type Client struct {
	base string
	http *http.Client
	log  *log.Logger
}

// NewClient creates a client for the host at baseURL (e.g. http://127.0.0.1:7998).
func NewClient(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: httpClient, log: logger}
}

func (c *Client) Minimize(ctx context.Context) { c.windowOp(ctx, PathMinimize) }
func (c *Client) Maximize(ctx context.Context) { c.windowOp(ctx, PathMaximize) }
func (c *Client) Close(ctx context.Context)    { c.windowOp(ctx, PathClose) }

// FetchNews asks the host for headlines. Every failure yields an empty list.
func (c *Client) FetchNews(ctx context.Context) news.Response {
	ctx, cancel := context.WithTimeout(ctx, NewsTimeout)
	defer cancel()

	body, err := c.do(ctx, http.MethodGet, PathNews)
	if err != nil {
		c.log.WithError(err).Warn("bridge: news request failed")
		return news.Empty()
	}
	resp, err := news.Decode(body)
	if err != nil {
		c.log.WithError(err).Warn("bridge: news reply unreadable")
		return news.Empty()
	}
	return resp
}

func (c *Client) windowOp(ctx context.Context, path string) {
	ctx, cancel := context.WithTimeout(ctx, WindowOpTimeout)
	defer cancel()

	if _, err := c.do(ctx, http.MethodPost, path); err != nil {
		c.log.WithError(err).WithField("path", path).Warn("bridge: window op failed")
	}
}

func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("host replied %s", res.Status)
	}
	return body, nil
}
