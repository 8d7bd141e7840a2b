// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"win98todo/internal/news"
)

// FakeHost is an in-memory implementation of bridge.Host for testing.
type FakeHost struct {
	mu    sync.Mutex
	calls []string

	// Articles is returned by FetchNews. Nil means an empty list.
	Articles []news.Article
}

// NewFakeHost creates a FakeHost serving the given headlines.
func NewFakeHost(articles ...news.Article) *FakeHost {
	return &FakeHost{Articles: articles}
}

func (f *FakeHost) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

// Calls returns the operations received so far, in order.
func (f *FakeHost) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// Minimize implements bridge.Host.
func (f *FakeHost) Minimize(context.Context) { f.record("minimize") }

// Maximize implements bridge.Host.
func (f *FakeHost) Maximize(context.Context) { f.record("maximize") }

// Close implements bridge.Host.
func (f *FakeHost) Close(context.Context) { f.record("close") }

// FetchNews implements bridge.Host.
func (f *FakeHost) FetchNews(context.Context) news.Response {
	f.record("news")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Articles == nil {
		return news.Empty()
	}
	out := make([]news.Article, len(f.Articles))
	copy(out, f.Articles)
	return news.Response{Articles: out}
}

// Headlines returns two sample articles.
func Headlines() []news.Article {
	return []news.Article{
		{
			Source:      news.Source{Name: "Gopher Times"},
			Title:       "Go 1.24 released",
			Description: "Generic type aliases land.",
			URL:         "https://example.com/go124",
			PublishedAt: "2025-02-11T12:00:00Z",
		},
		{
			Source:      news.Source{Name: "Retro Weekly"},
			Title:       "Floppy disks make a comeback",
			URL:         "https://example.com/floppy",
			PublishedAt: "2025-03-01T08:30:00Z",
		},
	}
}
