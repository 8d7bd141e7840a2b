package easteregg

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock fires timers only when Advance moves past their deadline.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

func press(e *Engine, keys ...string) (Kind, bool) {
	var (
		kind  Kind
		fired bool
	)
	for _, k := range keys {
		if kk, ok := e.KeyDown(k); ok {
			kind, fired = kk, true
		}
	}
	return kind, fired
}

func TestKeyDown_Konami(t *testing.T) {
	e := New()

	kind, ok := press(e, KonamiCode[:]...)
	require.True(t, ok)
	assert.Equal(t, Konami, kind)

	active, ok := e.Active()
	assert.True(t, ok)
	assert.Equal(t, Konami, active)
}

func TestKeyDown_KonamiNeedsExactSequence(t *testing.T) {
	e := New()

	seq := append([]string{}, KonamiCode[:]...)
	seq[9] = "A"
	_, ok := press(e, seq...)
	assert.False(t, ok)

	// extra keys in front only matter while they are in the buffer
	e = New()
	_, ok = press(e, append([]string{"x", "y"}, KonamiCode[:]...)...)
	assert.True(t, ok)
}

func TestKeyDown_KonamiOnlyOnLastKey(t *testing.T) {
	e := New()
	for i, k := range KonamiCode {
		_, ok := e.KeyDown(k)
		assert.Equal(t, i == BufferSize-1, ok, "key %d", i)
	}
}

func TestKeyDown_BufferClearedAfterFire(t *testing.T) {
	e := New()
	_, ok := press(e, KonamiCode[:]...)
	require.True(t, ok)

	_, ok = press(e, KonamiCode[:8]...)
	assert.False(t, ok)
	_, ok = press(e, "b", "a")
	assert.True(t, ok)
}

func TestKeyDown_Words(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want Kind
		ok   bool
	}{
		{"clippy", []string{"c", "l", "i", "p", "p", "y"}, Clippy, true},
		{"clippy after noise", []string{"q", "w", "c", "l", "i", "p", "p", "y"}, Clippy, true},
		{"retro", []string{"r", "e", "t", "r", "o"}, Retro, true},
		{"retro case-sensitive", []string{"R", "e", "t", "r", "o"}, None, false},
		{"clippy case-sensitive", []string{"C", "l", "i", "p", "p", "y"}, None, false},
		{"nothing", []string{"h", "e", "l", "l", "o"}, None, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			kind, ok := press(e, tt.keys...)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestClick_TenthClickFiresSecret(t *testing.T) {
	clock := &manualClock{}
	e := New(WithClock(clock))

	for i := 1; i < ClickTarget; i++ {
		_, ok := e.Click()
		require.False(t, ok)
		clock.Advance(1500 * time.Millisecond)
	}
	kind, ok := e.Click()
	require.True(t, ok)
	assert.Equal(t, Secret, kind)
	assert.Zero(t, e.Clicks())
}

func TestClick_IdleGapResets(t *testing.T) {
	clock := &manualClock{}
	e := New(WithClock(clock))

	for i := 0; i < 9; i++ {
		e.Click()
	}
	assert.Equal(t, 9, e.Clicks())

	clock.Advance(ClickIdle + time.Millisecond)
	assert.Zero(t, e.Clicks())

	_, ok := e.Click()
	assert.False(t, ok)
	assert.Equal(t, 1, e.Clicks())
}

func TestClick_NewClickRestartsTimer(t *testing.T) {
	clock := &manualClock{}
	e := New(WithClock(clock))

	e.Click()
	clock.Advance(1900 * time.Millisecond)
	e.Click()
	clock.Advance(1900 * time.Millisecond)
	assert.Equal(t, 2, e.Clicks())
}

func TestNotifyTask_Deferred(t *testing.T) {
	clock := &manualClock{}
	var got []Kind
	e := New(WithClock(clock), WithRevealHook(func(k Kind) { got = append(got, k) }))

	e.NotifyTask()
	_, active := e.Active()
	assert.False(t, active)

	clock.Advance(TaskDelay)
	assert.Equal(t, []Kind{Task}, got)
	kind, active := e.Active()
	assert.True(t, active)
	assert.Equal(t, Task, kind)
}

func TestNotifyTask_Stop(t *testing.T) {
	clock := &manualClock{}
	fired := false
	e := New(WithClock(clock), WithRevealHook(func(Kind) { fired = true }))

	e.NotifyTask()
	e.Stop()
	clock.Advance(time.Second)
	assert.False(t, fired)
}

func TestDismissKeepsCounters(t *testing.T) {
	clock := &manualClock{}
	e := New(WithClock(clock))

	press(e, "c", "l", "i", "p", "p", "y")
	e.Click()
	e.Click()
	press(e, "r", "e")

	e.Dismiss()
	_, active := e.Active()
	assert.False(t, active)
	assert.Equal(t, 2, e.Clicks())

	// buffer still holds "r","e"
	kind, ok := press(e, "t", "r", "o")
	assert.True(t, ok)
	assert.Equal(t, Retro, kind)
}

func TestNewRevealReplacesActive(t *testing.T) {
	e := New()
	press(e, "c", "l", "i", "p", "p", "y")
	press(e, "r", "e", "t", "r", "o")

	kind, ok := e.Active()
	assert.True(t, ok)
	assert.Equal(t, Retro, kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "konami", Konami.String())
	assert.Equal(t, "task", Task.String())
	assert.Equal(t, "none", None.String())
}
