package tui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"win98todo/internal/app"
)

// domKey names a key the way a browser keydown event does.
func domKey(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyUp:
		return "ArrowUp"
	case tea.KeyDown:
		return "ArrowDown"
	case tea.KeyLeft:
		return "ArrowLeft"
	case tea.KeyRight:
		return "ArrowRight"
	case tea.KeyEnter:
		return "Enter"
	case tea.KeyEsc:
		return "Escape"
	case tea.KeyBackspace:
		return "Backspace"
	case tea.KeyDelete:
		return "Delete"
	case tea.KeyTab:
		return "Tab"
	case tea.KeySpace:
		return " "
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return string(msg.Runes)
		}
	}
	return msg.String()
}

// runeKey returns the rune of a plain single-character key.
func runeKey(msg tea.KeyMsg) (rune, bool) {
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) != 1 {
		return 0, false
	}
	return msg.Runes[0], true
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	m.status = ""

	// The reveal engine sees every key first. In the list the key that
	// fires is spent on the reveal; typed text always reaches its field.
	if _, ok := m.app.KeyDown(domKey(msg)); ok {
		if m.focus == focusList {
			return nil
		}
		return m.inputKey(msg)
	}

	switch mode := m.app.Mode(); {
	case mode.IsMenu():
		return m.menuKey(msg)
	case mode.Kind == app.ModeEasterEgg && m.focus != focusList:
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.app.Dismiss()
			return nil
		}
		return m.inputKey(msg)
	case mode.Kind == app.ModeAbout, mode.Kind == app.ModeEasterEgg:
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
			m.app.Dismiss()
		}
		return nil
	case mode.Kind == app.ModeCalculator:
		return m.calcKey(msg)
	case mode.Kind == app.ModeNews:
		return m.newsKey(msg)
	}

	if cmd, ok := m.globalKey(msg); ok {
		return cmd
	}
	if m.focus != focusList {
		return m.inputKey(msg)
	}
	return m.listKey(msg)
}

func (m *Model) globalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "alt+f", "f10":
		return m.toggleMenu(app.ModeFileMenu), true
	case "alt+e":
		return m.toggleMenu(app.ModeEditMenu), true
	case "alt+v":
		return m.toggleMenu(app.ModeViewMenu), true
	case "alt+h", "f1":
		m.app.ShowAbout()
		return nil, true
	case "ctrl+k":
		m.app.ShowCalculator()
		return nil, true
	case "ctrl+n":
		return m.openNews(), true
	case "ctrl+w":
		return m.exit(), true
	}

	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		if m.focus == focusEdit || m.focus == focusOpen {
			return nil, true
		}
		if msg.Type == tea.KeyTab {
			return m.cycleFocus(1), true
		}
		return m.cycleFocus(-1), true
	case tea.KeyEsc:
		return m.escape(), true
	}
	return nil, false
}

func (m *Model) inputKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEnter {
		switch m.focus {
		case focusAdd, focusDue:
			m.addTask()
			return nil
		case focusSearch:
			return m.setFocus(focusList)
		case focusEdit:
			return m.commitEdit()
		case focusOpen:
			return m.openFile()
		}
	}

	cmd := m.updateInput(msg)
	switch m.focus {
	case focusSearch:
		m.app.SetQuery(m.search.Value())
	case focusEdit:
		m.app.Store().SetDraft(m.edit.Value())
	}
	return cmd
}

func (m *Model) listKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		m.cursor--
	case tea.KeyDown:
		m.cursor++
	case tea.KeyHome:
		m.cursor = 0
	case tea.KeyEnd:
		m.cursor = len(m.app.View()) - 1
	case tea.KeySpace:
		m.toggleSelected()
	case tea.KeyEnter:
		return m.startEdit()
	case tea.KeyDelete:
		m.removeSelected()
	}

	r, ok := runeKey(msg)
	if !ok {
		return nil
	}
	switch r {
	case 'k':
		m.cursor--
	case 'j':
		m.cursor++
	case ' ', 'x':
		m.toggleSelected()
	case 'd':
		m.removeSelected()
	case 'n':
		return m.setFocus(focusAdd)
	case '/':
		return m.setFocus(focusSearch)
	case 'p':
		m.cyclePriority()
	case 'q':
		return tea.Quit
	}
	return nil
}

func (m *Model) menuKey(msg tea.KeyMsg) tea.Cmd {
	kind := m.app.Mode().Kind
	items := menuItems(kind)

	switch msg.String() {
	case "alt+f", "f10":
		return m.toggleMenu(app.ModeFileMenu)
	case "alt+e":
		return m.toggleMenu(app.ModeEditMenu)
	case "alt+v":
		return m.toggleMenu(app.ModeViewMenu)
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.app.Dismiss()
	case tea.KeyUp:
		m.menuCursor = (m.menuCursor + len(items) - 1) % len(items)
	case tea.KeyDown:
		m.menuCursor = (m.menuCursor + 1) % len(items)
	case tea.KeyLeft:
		return m.toggleMenu(adjacentMenu(kind, -1))
	case tea.KeyRight:
		return m.toggleMenu(adjacentMenu(kind, 1))
	case tea.KeyEnter:
		return items[m.menuCursor].action(m)
	}

	if r, ok := runeKey(msg); ok {
		r = unicode.ToLower(r)
		for _, it := range items {
			if it.hotkey == r {
				return it.action(m)
			}
		}
	}
	return nil
}

func (m *Model) calcKey(msg tea.KeyMsg) tea.Cmd {
	c := m.app.Calculator()
	switch msg.Type {
	case tea.KeyEsc:
		m.app.Dismiss()
	case tea.KeyEnter:
		c.Press("=")
	case tea.KeyBackspace:
		c.Press("⌫")
	case tea.KeyDelete:
		c.Press("C")
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			switch r {
			case 'c', 'C':
				c.Press("C")
			case 'x', 'X':
				c.Press("*")
			default:
				c.Press(string(r))
			}
		}
	}
	return nil
}

func (m *Model) newsKey(msg tea.KeyMsg) tea.Cmd {
	articles, _ := m.app.News()
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.app.Dismiss()
	case tea.KeyUp:
		if m.newsOffset > 0 {
			m.newsOffset--
		}
	case tea.KeyDown:
		if m.newsOffset < len(articles)-1 {
			m.newsOffset++
		}
	}

	switch r, _ := runeKey(msg); r {
	case 'r':
		return m.refreshNews()
	case 'q':
		m.app.Dismiss()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	w := m.windowWidth()
	if msg.X >= w {
		return nil
	}

	switch msg.Y {
	case titleRow:
		if first := w - len(titleButtons)*buttonWidth; msg.X >= first {
			return m.titleButton((msg.X - first) / buttonWidth)
		}
		m.app.Click()
		return nil
	case menuRow:
		return m.menuBarClick(msg.X)
	}

	mode := m.app.Mode()
	if mode.IsMenu() {
		items := menuItems(mode.Kind)
		x := menuX(mode.Kind)
		i := msg.Y - menuRow - 1
		if i >= 0 && i < len(items) && msg.X >= x && msg.X < x+menuWidth {
			return items[i].action(m)
		}
		m.app.Dismiss()
		return nil
	}
	if mode.Kind != app.ModeNone {
		return nil
	}

	row := msg.Y - listTop
	rows := m.app.View()
	if row < 0 || row >= listHeight || m.offset+row >= len(rows) {
		return nil
	}
	m.cursor = m.offset + row
	if msg.X < checkboxWidth {
		m.app.Store().Toggle(rows[m.cursor].ID)
	}
	return nil
}

func (m *Model) titleButton(i int) tea.Cmd {
	switch i {
	case 0:
		m.app.Minimize(m.ctx)
	case 1:
		m.app.Maximize(m.ctx)
	case 2:
		return m.exit()
	}
	return nil
}
