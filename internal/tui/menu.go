package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"win98todo/internal/app"
	"win98todo/internal/task"
)

type menuItem struct {
	label  string
	hotkey rune
	action func(m *Model) tea.Cmd
}

type menuEntry struct {
	label string
	kind  app.ModeKind
}

// menuBar is the row under the title bar. Help opens the About box directly.
var menuBar = []menuEntry{
	{"File", app.ModeFileMenu},
	{"Edit", app.ModeEditMenu},
	{"View", app.ModeViewMenu},
	{"Help", app.ModeAbout},
}

var dropDowns = []app.ModeKind{app.ModeFileMenu, app.ModeEditMenu, app.ModeViewMenu}

func menuItems(kind app.ModeKind) []menuItem {
	switch kind {
	case app.ModeFileMenu:
		return []menuItem{
			{"New List", 'n', func(m *Model) tea.Cmd {
				m.app.NewList()
				return nil
			}},
			{"Save", 's', func(m *Model) tea.Cmd {
				m.saveFile()
				return nil
			}},
			{"Open...", 'o', func(m *Model) tea.Cmd {
				m.app.Dismiss()
				return m.setFocus(focusOpen)
			}},
			{"Exit", 'x', func(m *Model) tea.Cmd {
				return m.exit()
			}},
		}
	case app.ModeEditMenu:
		return []menuItem{
			{"Clear Completed", 'c', func(m *Model) tea.Cmd {
				m.app.ClearCompleted()
				return nil
			}},
			{"Select All", 'a', func(m *Model) tea.Cmd {
				m.app.SelectAll()
				return nil
			}},
			{"Unselect All", 'u', func(m *Model) tea.Cmd {
				m.app.UnselectAll()
				return nil
			}},
		}
	case app.ModeViewMenu:
		return []menuItem{
			filterItem("All Tasks", 'a', task.FilterAll),
			filterItem("Active Tasks", 't', task.FilterActive),
			filterItem("Completed Tasks", 'c', task.FilterCompleted),
			filterItem("High Priority", 'h', task.FilterHigh),
		}
	}
	return nil
}

func filterItem(label string, hotkey rune, f task.Filter) menuItem {
	return menuItem{label, hotkey, func(m *Model) tea.Cmd {
		m.app.SetFilter(f)
		m.cursor = 0
		return nil
	}}
}

// menuX is the column where a menu's bar entry and drop-down start.
func menuX(kind app.ModeKind) int {
	for i, e := range menuBar {
		if e.kind == kind {
			return i * menuEntryWidth
		}
	}
	return 0
}

func adjacentMenu(kind app.ModeKind, step int) app.ModeKind {
	for i, k := range dropDowns {
		if k == kind {
			return dropDowns[(i+step+len(dropDowns))%len(dropDowns)]
		}
	}
	return app.ModeFileMenu
}

func (m *Model) toggleMenu(kind app.ModeKind) tea.Cmd {
	m.menuCursor = 0
	m.app.ToggleMenu(kind)
	return nil
}

func (m *Model) menuBarClick(x int) tea.Cmd {
	i := x / menuEntryWidth
	if i >= len(menuBar) {
		if m.app.Mode().IsMenu() {
			m.app.Dismiss()
		}
		return nil
	}
	if e := menuBar[i]; e.kind == app.ModeAbout {
		m.app.ShowAbout()
		return nil
	}
	return m.toggleMenu(menuBar[i].kind)
}
