// Package easteregg detects the hidden key sequences, click bursts and task
// contents that reveal the novelty screens.
package easteregg

import (
	"strings"
	"sync"
	"time"
)

// Kind identifies a reveal.
type Kind int

const (
	None Kind = iota
	Konami
	Clippy
	Retro
	Secret
	Task
)

func (k Kind) String() string {
	switch k {
	case Konami:
		return "konami"
	case Clippy:
		return "clippy"
	case Retro:
		return "retro"
	case Secret:
		return "secret"
	case Task:
		return "task"
	}
	return "none"
}

const (
	// BufferSize is the number of recent keys remembered.
	BufferSize = 10

	// WordWindow is how many recent keys are joined for word matches.
	WordWindow = 6

	// ClickTarget is the number of clicks that reveals Secret.
	ClickTarget = 10

	// ClickIdle resets the click counter when no click arrives in time.
	ClickIdle = 2 * time.Second

	// TaskDelay is how long after a "secret" task is added the Task reveal appears.
	TaskDelay = 500 * time.Millisecond
)

// KonamiCode is the key sequence that reveals Konami.
var KonamiCode = [BufferSize]string{
	"ArrowUp", "ArrowUp", "ArrowDown", "ArrowDown",
	"ArrowLeft", "ArrowRight", "ArrowLeft", "ArrowRight",
	"b", "a",
}

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Clock schedules deferred calls.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Engine matches input events against the trigger patterns and holds the
// active reveal. It is safe for concurrent use; deferred fires arrive on
// timer goroutines.
type Engine struct {
	mu sync.Mutex

	keys []string

	clicks     int
	clickTimer Timer

	taskTimer Timer

	active Kind

	clock    Clock
	onReveal func(Kind)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithRevealHook sets the callback for reveals fired by timers.
// It runs outside the engine lock.
func WithRevealHook(fn func(Kind)) Option {
	return func(e *Engine) { e.onReveal = fn }
}

// New creates an idle engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		keys:  make([]string, 0, BufferSize),
		clock: realClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// KeyDown records a key identifier (DOM style: "ArrowUp", "b", ...) and
// reports the reveal it fires, if any. Konami is checked before the word
// matches; the first match wins and clears the buffer.
func (e *Engine) KeyDown(key string) (Kind, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.keys) == BufferSize {
		copy(e.keys, e.keys[1:])
		e.keys = e.keys[:BufferSize-1]
	}
	e.keys = append(e.keys, key)

	kind := e.matchKeysLocked()
	if kind == None {
		return None, false
	}
	e.keys = e.keys[:0]
	e.active = kind
	return kind, true
}

func (e *Engine) matchKeysLocked() Kind {
	if len(e.keys) == BufferSize {
		konami := true
		for i, k := range e.keys {
			if k != KonamiCode[i] {
				konami = false
				break
			}
		}
		if konami {
			return Konami
		}
	}

	start := len(e.keys) - WordWindow
	if start < 0 {
		start = 0
	}
	word := strings.Join(e.keys[start:], "")
	switch {
	case word == "clippy":
		return Clippy
	case strings.Contains(word, "retro"):
		return Retro
	}
	return None
}

// Click records a click on the secret region. The tenth click in a burst
// (no gap longer than ClickIdle) fires Secret.
func (e *Engine) Click() (Kind, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clickTimer != nil {
		e.clickTimer.Stop()
		e.clickTimer = nil
	}

	e.clicks++
	if e.clicks >= ClickTarget {
		e.clicks = 0
		e.active = Secret
		return Secret, true
	}

	var t Timer
	t = e.clock.AfterFunc(ClickIdle, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.clickTimer == t {
			e.clicks = 0
			e.clickTimer = nil
		}
	})
	e.clickTimer = t
	return None, false
}

// Clicks returns the current click count.
func (e *Engine) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clicks
}

// NotifyTask schedules the Task reveal after TaskDelay. The fire is
// delivered through the reveal hook.
func (e *Engine) NotifyTask() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.taskTimer != nil {
		e.taskTimer.Stop()
	}
	var t Timer
	t = e.clock.AfterFunc(TaskDelay, func() {
		e.mu.Lock()
		if e.taskTimer != t {
			e.mu.Unlock()
			return
		}
		e.taskTimer = nil
		e.active = Task
		hook := e.onReveal
		e.mu.Unlock()

		if hook != nil {
			hook(Task)
		}
	})
	e.taskTimer = t
}

// Active returns the reveal being shown.
func (e *Engine) Active() (Kind, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active, e.active != None
}

// Dismiss returns to idle. Key buffer and click count are kept.
func (e *Engine) Dismiss() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = None
}

// Stop cancels pending timers.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.clickTimer != nil {
		e.clickTimer.Stop()
		e.clickTimer = nil
	}
	if e.taskTimer != nil {
		e.taskTimer.Stop()
		e.taskTimer = nil
	}
}
