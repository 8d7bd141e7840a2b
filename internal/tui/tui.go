// Package tui is the terminal rendition of the to-do window. It draws the
// session held by app.App and turns keys and clicks into app calls.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"win98todo/internal/app"
	"win98todo/internal/easteregg"
	"win98todo/internal/news"
	"win98todo/internal/persist"
	"win98todo/internal/task"
)

type focus int

const (
	focusList focus = iota
	focusAdd
	focusDue
	focusSearch
	focusEdit
	focusOpen
)

// tabOrder is the focus cycle for tab and shift+tab.
var tabOrder = []focus{focusList, focusAdd, focusDue, focusSearch}

// priorities is the new-task priority cycle.
var priorities = []task.Priority{
	task.PriorityLow,
	task.PriorityNormal,
	task.PriorityMedium,
	task.PriorityHigh,
}

// revealMsg carries a deferred reveal from the engine's timer goroutine.
type revealMsg struct{ kind easteregg.Kind }

// newsMsg carries the result of a headline fetch.
type newsMsg struct{ resp news.Response }

// Model is the bubbletea model for one session.
type Model struct {
	ctx context.Context
	app *app.App

	focus      focus
	cursor     int
	offset     int
	menuCursor int
	newsOffset int
	priority   task.Priority

	add    textinput.Model
	due    textinput.Model
	search textinput.Model
	edit   textinput.Model
	open   textinput.Model

	// dir is where Save writes and relative Open paths resolve. Empty
	// means the working directory.
	dir string

	status        string
	width, height int
}

// New returns a model drawing a.
func New(ctx context.Context, a *app.App) Model {
	m := Model{
		ctx:      ctx,
		app:      a,
		priority: task.PriorityNormal,
		add:      newInput("Enter new task...", 256, 40),
		due:      newInput("YYYY-MM-DD", 10, 10),
		search:   newInput("Search tasks...", 256, 40),
		edit:     newInput("", 256, 40),
		open:     newInput(persist.ExportFile, 1024, 40),
	}
	m.search.SetValue(a.Query())
	return m
}

func newInput(placeholder string, limit, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width
	return ti
}

// Run shows the window until the user exits or ctx is cancelled.
func Run(ctx context.Context, a *app.App) error {
	p := tea.NewProgram(New(ctx, a),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	a.SetRevealHandler(func(k easteregg.Kind) {
		go p.Send(revealMsg{kind: k})
	})
	defer a.SetRevealHandler(nil)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case revealMsg:
		m.app.Reveal(msg.kind)
	case newsMsg:
		m.app.FinishNewsRefresh(msg.resp)
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	default:
		cmd = m.updateInput(msg)
	}
	m.settle()
	return m, cmd
}

// settle keeps the cursor on a listed row and drops a stale edit focus.
func (m *Model) settle() {
	if m.focus == focusEdit {
		if _, _, ok := m.app.Store().Editing(); !ok {
			m.setFocus(focusList)
		}
	}

	n := len(m.app.View())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+listHeight {
		m.offset = m.cursor - listHeight + 1
	}
}

func (m *Model) input(f focus) *textinput.Model {
	switch f {
	case focusAdd:
		return &m.add
	case focusDue:
		return &m.due
	case focusSearch:
		return &m.search
	case focusEdit:
		return &m.edit
	case focusOpen:
		return &m.open
	}
	return nil
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	var cmd tea.Cmd
	for _, g := range []focus{focusAdd, focusDue, focusSearch, focusEdit, focusOpen} {
		in := m.input(g)
		if g == f {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (m *Model) cycleFocus(step int) tea.Cmd {
	i := 0
	for j, f := range tabOrder {
		if f == m.focus {
			i = j
		}
	}
	i = (i + step + len(tabOrder)) % len(tabOrder)
	return m.setFocus(tabOrder[i])
}

func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	in := m.input(m.focus)
	if in == nil {
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

func (m *Model) selected() (task.Task, bool) {
	rows := m.app.View()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return task.Task{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) toggleSelected() {
	if t, ok := m.selected(); ok {
		m.app.Store().Toggle(t.ID)
	}
}

func (m *Model) removeSelected() {
	if t, ok := m.selected(); ok {
		m.app.Store().Remove(t.ID)
	}
}

func (m *Model) cyclePriority() {
	for i, p := range priorities {
		if p == m.priority {
			m.priority = priorities[(i+1)%len(priorities)]
			return
		}
	}
	m.priority = task.PriorityNormal
}

func (m *Model) addTask() {
	_, err := m.app.Store().Add(m.add.Value(), m.priority, strings.TrimSpace(m.due.Value()))
	if errors.Is(err, task.ErrEmptyText) {
		return
	}
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.add.SetValue("")
	m.due.SetValue("")
	m.priority = task.PriorityNormal
}

func (m *Model) startEdit() tea.Cmd {
	t, ok := m.selected()
	if !ok || !m.app.Store().StartEdit(t.ID) {
		return nil
	}
	m.edit.SetValue(t.Text)
	m.edit.CursorEnd()
	return m.setFocus(focusEdit)
}

func (m *Model) commitEdit() tea.Cmd {
	if id, _, ok := m.app.Store().Editing(); ok {
		m.app.Store().SetDraft(m.edit.Value())
		m.app.Store().CommitEdit(id)
	}
	return m.setFocus(focusList)
}

func (m *Model) escape() tea.Cmd {
	switch m.focus {
	case focusEdit:
		m.app.Store().CancelEdit()
	case focusOpen:
		m.open.SetValue("")
	}
	return m.setFocus(focusList)
}

func (m *Model) resolve(path string) string {
	if m.dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.dir, path)
}

func (m *Model) saveFile() {
	m.app.Dismiss()
	if err := m.writeFile(m.resolve(persist.ExportFile)); err != nil {
		m.status = "Error saving file: " + err.Error()
		return
	}
	m.status = "Saved " + persist.ExportFile
}

func (m *Model) writeFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return m.app.SaveTo(f)
}

func (m *Model) openFile() tea.Cmd {
	path := strings.TrimSpace(m.open.Value())
	if path == "" {
		path = persist.ExportFile
	}
	m.open.SetValue("")
	if err := m.readFile(m.resolve(path)); err != nil {
		m.status = "Error loading file: " + err.Error()
	} else {
		m.status = fmt.Sprintf("Loaded %d tasks", m.app.Store().Len())
	}
	return m.setFocus(focusList)
}

func (m *Model) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.app.OpenFrom(f)
}

func (m *Model) openNews() tea.Cmd {
	m.newsOffset = 0
	if m.app.OpenNews() {
		return m.fetchNews()
	}
	return nil
}

func (m *Model) refreshNews() tea.Cmd {
	if !m.app.BeginNewsRefresh() {
		return nil
	}
	m.newsOffset = 0
	return m.fetchNews()
}

// fetchNews runs the host fetch off the UI goroutine; the result comes
// back as a newsMsg.
func (m *Model) fetchNews() tea.Cmd {
	ctx, host := m.ctx, m.app.Host()
	return func() tea.Msg {
		return newsMsg{resp: host.FetchNews(ctx)}
	}
}

func (m *Model) exit() tea.Cmd {
	m.app.Close(m.ctx)
	return tea.Quit
}
