// Package backend opens the storage and window host a session runs against,
// as selected by the configuration.
package backend

import (
	"context"
	"fmt"
	"io"
	"strings"

	"win98todo/internal/app"
	"win98todo/internal/bridge"
	"win98todo/internal/config"
	"win98todo/internal/news"
	"win98todo/internal/persist"
)

// OpenKV returns the configured key-value store. The closer is nil when
// the store holds no resources.
func OpenKV(cfg *config.Config) (persist.KV, io.Closer, error) {
	s := cfg.Settings.Storage
	switch strings.ToLower(s.Backend) {
	case config.BackendFile:
		if err := cfg.EnsureDir(); err != nil {
			return nil, nil, fmt.Errorf("failed to create config dir: %w", err)
		}
		kv, err := persist.NewFileKV(cfg.StorePath())
		if err != nil {
			return nil, nil, err
		}
		return kv, nil, nil
	case config.BackendRedis:
		kv, err := persist.DialRedis(s.RedisURL, s.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv, nil
	case config.BackendMemory:
		return persist.NewMemoryKV(), nil, nil
	}
	return nil, nil, fmt.Errorf("%w: %s", config.ErrUnknownBackend, s.Backend)
}

// NewsService returns the headline service for the configured API key.
func NewsService(cfg *config.Config) *news.Service {
	return news.New(news.Options{
		APIKey:   cfg.Settings.News.APIKey,
		Endpoint: cfg.Settings.News.Endpoint,
		Logger:   cfg.Log(),
	})
}

// NewLocalHost returns an in-process host serving news from NewsService.
func NewLocalHost(cfg *config.Config) *bridge.Local {
	return bridge.NewLocal(nil, NewsService(cfg), cfg.Log())
}

// OpenHost returns the configured host: in-process, none, or a remote host
// process reached over HTTP.
func OpenHost(cfg *config.Config) bridge.Host {
	switch cfg.Settings.Host {
	case config.HostNone:
		return bridge.Noop{}
	case config.HostLocal, "":
		return NewLocalHost(cfg)
	}
	return bridge.NewClient(cfg.Settings.Host, nil, cfg.Log())
}

// Open starts a session against the configured storage and host.
func Open(ctx context.Context, cfg *config.Config) (*app.App, error) {
	kv, closer, err := OpenKV(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Log().WithField("backend", cfg.Settings.Storage.Backend).Debug("backend: storage opened")
	return app.New(ctx, app.Options{
		KV:     kv,
		Host:   OpenHost(cfg),
		Logger: cfg.Log(),
		Closer: closer,
	}), nil
}
