// Package bridge is the narrow interface between the UI and the privileged
// host that owns the window and the news credential.
package bridge

import (
	"context"
	"sync"

	"win98todo/internal/news"
)

// Host is the capability handed to the UI at construction. Window
// operations are fire-and-forget; FetchNews never fails and always returns
// a non-nil article list.
type Host interface {
	Minimize(ctx context.Context)
	Maximize(ctx context.Context)
	Close(ctx context.Context)
	FetchNews(ctx context.Context) news.Response
}

// Noop is the host used where no host is available.
type Noop struct{}

func (Noop) Minimize(context.Context)                {}
func (Noop) Maximize(context.Context)                {}
func (Noop) Close(context.Context)                   {}
func (Noop) FetchNews(context.Context) news.Response { return news.Empty() }

// WindowState is the host window's display state.
type WindowState int

const (
	WindowNormal WindowState = iota
	WindowMinimized
	WindowMaximized
	WindowClosed
)

func (s WindowState) String() string {
	switch s {
	case WindowMinimized:
		return "minimized"
	case WindowMaximized:
		return "maximized"
	case WindowClosed:
		return "closed"
	}
	return "normal"
}

// Window tracks the host window. Maximize toggles between maximized and
// the size it had before.
type Window struct {
	mu        sync.Mutex
	state     WindowState
	maximized bool
	onClose   []func()
}

// NewWindow returns a window in the normal state.
func NewWindow() *Window {
	return &Window{}
}

// OnClose registers fn to run once, on the first Close.
func (w *Window) OnClose(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onClose = append(w.onClose, fn)
}

// State returns the current state.
func (w *Window) State() WindowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Minimize hides the window. Maximize restores it to its previous size.
func (w *Window) Minimize() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != WindowClosed {
		w.state = WindowMinimized
	}
}

// Maximize toggles maximize/restore.
func (w *Window) Maximize() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == WindowClosed {
		return
	}
	if w.state == WindowMaximized {
		w.maximized = false
		w.state = WindowNormal
		return
	}
	if w.state == WindowMinimized && w.maximized {
		w.state = WindowMaximized
		return
	}
	w.maximized = true
	w.state = WindowMaximized
}

// Close closes the window.
func (w *Window) Close() {
	w.mu.Lock()
	if w.state == WindowClosed {
		w.mu.Unlock()
		return
	}
	w.state = WindowClosed
	hooks := w.onClose
	w.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
