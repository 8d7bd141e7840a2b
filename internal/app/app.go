// Package app holds one running session of the to-do window: the task list,
// its persistence, the hidden reveals, the host window and the current UI mode.
package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"win98todo/internal/bridge"
	"win98todo/internal/calc"
	"win98todo/internal/easteregg"
	"win98todo/internal/news"
	"win98todo/internal/persist"
	"win98todo/internal/task"
)

const (
	// Product and Version are shown in the About box.
	Product = "TODO List"
	Version = "4.5b1"

	saveTimeout = 5 * time.Second
)

// AboutInfo is the content of the About box.
type AboutInfo struct {
	Product string
	Version string
}

// Options configures a session.
type Options struct {
	// KV is where the list is kept. Defaults to an in-memory store.
	KV persist.KV

	// Host performs window operations and news fetches. Defaults to bridge.Noop.
	Host bridge.Host

	Logger *log.Logger

	// Now is the store's time source.
	Now func() time.Time

	// Clock drives the reveal timers.
	Clock easteregg.Clock

	// OnReveal receives deferred reveals from a timer goroutine. The
	// receiver should hand the kind back to the session's goroutine and
	// call Reveal there. See also SetRevealHandler.
	OnReveal func(easteregg.Kind)

	// Closer is closed by Stop, typically the storage backend.
	Closer io.Closer
}

// App is a session. Apart from OnReveal it is used from a single goroutine.
type App struct {
	store   *task.Store
	adapter *persist.Adapter
	engine  *easteregg.Engine
	host    bridge.Host
	log     *log.Logger
	closer  io.Closer

	revealMu sync.Mutex
	onReveal func(easteregg.Kind)

	mode   Mode
	filter task.Filter
	query  string

	calc *calc.Calculator

	articles    []news.Article
	newsLoaded  bool
	newsLoading bool
}

// New loads the saved list and starts a session.
func New(ctx context.Context, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = log.StandardLogger()
	}
	if opts.KV == nil {
		opts.KV = persist.NewMemoryKV()
	}
	if opts.Host == nil {
		opts.Host = bridge.Noop{}
	}

	a := &App{
		adapter: persist.NewAdapter(opts.KV, opts.Logger),
		host:    opts.Host,
		log:     opts.Logger,
		closer:  opts.Closer,
		filter:  task.FilterAll,
		calc:    calc.NewCalculator(),
	}

	a.onReveal = opts.OnReveal
	engineOpts := []easteregg.Option{easteregg.WithRevealHook(a.deferredReveal)}
	if opts.Clock != nil {
		engineOpts = append(engineOpts, easteregg.WithClock(opts.Clock))
	}
	a.engine = easteregg.New(engineOpts...)

	storeOpts := []task.Option{
		task.WithSaver(a.save),
		task.WithSecretHook(a.engine.NotifyTask),
	}
	if opts.Now != nil {
		storeOpts = append(storeOpts, task.WithClock(opts.Now))
	}
	a.store = task.NewStore(a.adapter.Load(ctx), storeOpts...)
	a.log.WithField("tasks", a.store.Len()).Debug("app: session started")
	return a
}

// SetRevealHandler replaces Options.OnReveal.
func (a *App) SetRevealHandler(fn func(easteregg.Kind)) {
	a.revealMu.Lock()
	defer a.revealMu.Unlock()
	a.onReveal = fn
}

func (a *App) deferredReveal(k easteregg.Kind) {
	a.revealMu.Lock()
	fn := a.onReveal
	a.revealMu.Unlock()
	if fn != nil {
		fn(k)
	}
}

func (a *App) save(tasks []task.Task) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	a.adapter.Save(ctx, tasks)
}

// Store returns the task list.
func (a *App) Store() *task.Store { return a.store }

// Host returns the window host.
func (a *App) Host() bridge.Host { return a.host }

// Mode returns the current UI mode.
func (a *App) Mode() Mode { return a.mode }

// Filter returns the active view filter.
func (a *App) Filter() task.Filter { return a.filter }

// Query returns the search text.
func (a *App) Query() string { return a.query }

// SetQuery sets the search text.
func (a *App) SetQuery(q string) { a.query = q }

// View returns the tasks currently listed.
func (a *App) View() []task.Task {
	return a.store.View(a.filter, a.query)
}

// Stop cancels pending reveal timers and closes Options.Closer.
func (a *App) Stop() {
	a.engine.Stop()
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil {
		a.log.WithError(err).Warn("app: close storage")
	}
	a.closer = nil
}

func (a *App) setMode(m Mode) {
	if a.mode.Kind == ModeEasterEgg && m.Kind != ModeEasterEgg {
		a.engine.Dismiss()
	}
	a.mode = m
}

func (a *App) closeMenu() {
	if a.mode.IsMenu() {
		a.setMode(Mode{})
	}
}

// ToggleMenu opens the given menu, closing whatever was open, or closes it
// when it is already open.
func (a *App) ToggleMenu(kind ModeKind) {
	m := Mode{Kind: kind}
	if !m.IsMenu() {
		return
	}
	if a.mode.Kind == kind {
		a.setMode(Mode{})
		return
	}
	a.setMode(m)
}

// NewList empties the list.
func (a *App) NewList() {
	a.closeMenu()
	a.store.ReplaceAll(nil)
}

// SaveTo writes the list as pretty-printed JSON.
func (a *App) SaveTo(w io.Writer) error {
	a.closeMenu()
	return persist.Export(w, a.store.Tasks())
}

// OpenFrom replaces the list with the one read from r. On error the list
// is unchanged.
func (a *App) OpenFrom(r io.Reader) error {
	a.closeMenu()
	tasks, err := persist.Import(r)
	if err != nil {
		return err
	}
	a.store.ReplaceAll(tasks)
	return nil
}

// ClearCompleted removes completed tasks.
func (a *App) ClearCompleted() int {
	a.closeMenu()
	return a.store.ClearCompleted()
}

// SelectAll marks every task completed.
func (a *App) SelectAll() {
	a.closeMenu()
	a.store.SetAllCompleted(true)
}

// UnselectAll marks every task active.
func (a *App) UnselectAll() {
	a.closeMenu()
	a.store.SetAllCompleted(false)
}

// SetFilter picks the view filter.
func (a *App) SetFilter(f task.Filter) {
	a.closeMenu()
	a.filter = f
}

func (a *App) ShowAbout() { a.setMode(Mode{Kind: ModeAbout}) }

// ShowCalculator opens a cleared calculator.
func (a *App) ShowCalculator() {
	a.calc = calc.NewCalculator()
	a.setMode(Mode{Kind: ModeCalculator})
}

// Calculator returns the calculator state.
func (a *App) Calculator() *calc.Calculator { return a.calc }

// ShowNews opens the news window, fetching headlines on first open.
func (a *App) ShowNews(ctx context.Context) {
	if a.OpenNews() {
		a.FinishNewsRefresh(a.host.FetchNews(ctx))
	}
}

// OpenNews opens the news window without fetching. It reports true when
// headlines still need fetching; the fetch has then been begun and the
// caller must pass its result to FinishNewsRefresh.
func (a *App) OpenNews() bool {
	a.setMode(Mode{Kind: ModeNews})
	return !a.newsLoaded && a.BeginNewsRefresh()
}

// RefreshNews fetches headlines through the host. It does nothing while
// another fetch is in flight.
func (a *App) RefreshNews(ctx context.Context) {
	if !a.BeginNewsRefresh() {
		return
	}
	a.FinishNewsRefresh(a.host.FetchNews(ctx))
}

// BeginNewsRefresh marks a fetch as started. It reports false when one is
// already running, in which case the caller must not fetch.
func (a *App) BeginNewsRefresh() bool {
	if a.newsLoading {
		a.log.Debug("app: news refresh already in flight")
		return false
	}
	a.newsLoading = true
	return true
}

// FinishNewsRefresh stores the result of a fetch started with BeginNewsRefresh.
func (a *App) FinishNewsRefresh(resp news.Response) {
	a.newsLoading = false
	a.newsLoaded = true
	a.articles = resp.Articles
	if a.articles == nil {
		a.articles = []news.Article{}
	}
}

// News returns the last fetched headlines and whether a fetch is running.
func (a *App) News() (articles []news.Article, loading bool) {
	return a.articles, a.newsLoading
}

// KeyDown feeds a key to the reveal engine. A reveal switches the mode.
func (a *App) KeyDown(key string) (easteregg.Kind, bool) {
	k, ok := a.engine.KeyDown(key)
	if ok {
		a.setMode(easterEgg(k))
	}
	return k, ok
}

// Click feeds a title bar click to the reveal engine.
func (a *App) Click() (easteregg.Kind, bool) {
	k, ok := a.engine.Click()
	if ok {
		a.setMode(easterEgg(k))
	}
	return k, ok
}

// Reveal shows a reveal delivered through Options.OnReveal.
func (a *App) Reveal(k easteregg.Kind) {
	if k == easteregg.None {
		return
	}
	a.mode = easterEgg(k)
}

// Dismiss closes the open menu, dialog or reveal.
func (a *App) Dismiss() { a.setMode(Mode{}) }

func (a *App) Minimize(ctx context.Context) { a.host.Minimize(ctx) }
func (a *App) Maximize(ctx context.Context) { a.host.Maximize(ctx) }
func (a *App) Close(ctx context.Context)    { a.host.Close(ctx) }

// About returns the About box content.
func (a *App) About() AboutInfo {
	return AboutInfo{Product: Product, Version: Version}
}

// StatusLine returns "N active | M completed".
func (a *App) StatusLine() string {
	st := a.store.Stats()
	return fmt.Sprintf("%d active | %d completed", st.Active, st.Completed)
}

// FilterLine returns the filter cell of the status bar.
func (a *App) FilterLine() string {
	return "Filter: " + a.filter.Label()
}

// TotalLine returns "N total tasks".
func (a *App) TotalLine() string {
	return fmt.Sprintf("%d total tasks", a.store.Stats().Total)
}
