package tui

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"win98todo/internal/app"
	"win98todo/internal/easteregg"
	"win98todo/internal/output"
	"win98todo/internal/task"
)

// Screen layout. Rows are counted from the top of the window.
const (
	titleRow   = 0
	menuRow    = 1
	listTop    = 6
	listHeight = 10

	defaultWidth   = 64
	minWidth       = 40
	buttonWidth    = 3
	menuEntryWidth = 6
	menuWidth      = 22
	checkboxWidth  = 4
	articlesShown  = 3
)

var titleButtons = []string{"_", "□", "×"}

var (
	teal     = lipgloss.Color("#008080")
	grey     = lipgloss.Color("#c0c0c0")
	darkGrey = lipgloss.Color("#808080")
	navy     = lipgloss.Color("#000080")
	white    = lipgloss.Color("#ffffff")
	black    = lipgloss.Color("#000000")

	windowStyle   = lipgloss.NewStyle().Background(grey).Foreground(black)
	titleStyle    = lipgloss.NewStyle().Background(navy).Foreground(white).Bold(true)
	buttonStyle   = lipgloss.NewStyle().Background(grey).Foreground(black).Bold(true)
	listStyle     = lipgloss.NewStyle().Background(white).Foreground(black)
	selectedStyle = lipgloss.NewStyle().Background(navy).Foreground(white)
	hintStyle     = lipgloss.NewStyle().Background(grey).Foreground(darkGrey)
	displayStyle  = lipgloss.NewStyle().Background(white).Foreground(black).Align(lipgloss.Right)
	dialogStyle   = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(black).
			BorderBackground(grey)

	priorityStyles = map[task.Priority]lipgloss.Style{
		task.PriorityHigh:   listStyle.Foreground(lipgloss.Color("#c00000")).Bold(true),
		task.PriorityMedium: listStyle.Foreground(lipgloss.Color("#c06000")),
		task.PriorityLow:    listStyle.Foreground(lipgloss.Color("#0000c0")),
	}
)

func prioritySymbol(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "!!"
	case task.PriorityMedium:
		return "! "
	case task.PriorityLow:
		return "v "
	}
	return "  "
}

func priorityLabel(p task.Priority) string {
	switch p {
	case task.PriorityLow:
		return "Low Priority"
	case task.PriorityMedium:
		return "Medium Priority"
	case task.PriorityHigh:
		return "High Priority"
	}
	return "Normal"
}

func (m Model) windowWidth() int {
	w := defaultWidth
	if m.width > 0 && m.width < w {
		w = max(m.width, minWidth)
	}
	return w
}

// line renders s as one full-width row of the window.
func line(w int, s string) string {
	return windowStyle.Width(w).MaxHeight(1).Render(s)
}

func rule(w int) string {
	return line(w, " "+strings.Repeat("─", w-2))
}

func (m Model) View() string {
	w := m.windowWidth()
	rows := []string{m.titleBar(w), m.menuBar(w)}

	mode := m.app.Mode()
	if mode.IsMenu() {
		rows = append(rows, m.dropDown(mode.Kind, w)...)
	}
	switch mode.Kind {
	case app.ModeAbout:
		rows = append(rows, m.aboutBox(w))
	case app.ModeCalculator:
		rows = append(rows, m.calculatorBox(w))
	case app.ModeNews:
		rows = append(rows, m.newsBox(w))
	case app.ModeEasterEgg:
		rows = append(rows, revealBox(w, mode.Reveal))
	default:
		rows = append(rows, m.body(w)...)
	}

	win := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if m.width == 0 || m.height == 0 {
		return win
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, win,
		lipgloss.WithWhitespaceBackground(teal))
}

func (m Model) titleBar(w int) string {
	var buttons strings.Builder
	for _, b := range titleButtons {
		buttons.WriteString(buttonStyle.Render(" " + b + " "))
	}
	title := titleStyle.Width(w - len(titleButtons)*buttonWidth).Render(" " + app.Product)
	return title + buttons.String()
}

func (m Model) menuBar(w int) string {
	open := m.app.Mode().Kind
	var b strings.Builder
	for _, e := range menuBar {
		st := windowStyle
		if e.kind == open {
			st = selectedStyle
		}
		b.WriteString(st.Render(" "))
		b.WriteString(st.Underline(true).Render(e.label[:1]))
		b.WriteString(st.Render(e.label[1:] + " "))
	}
	return line(w, b.String())
}

func (m Model) dropDown(kind app.ModeKind, w int) []string {
	pad := strings.Repeat(" ", menuX(kind))
	var out []string
	for i, it := range menuItems(kind) {
		st := windowStyle.Background(white)
		if i == m.menuCursor {
			st = selectedStyle
		}
		label := fmt.Sprintf(" %-*s%c", menuWidth-3, it.label, unicode.ToUpper(it.hotkey))
		out = append(out, line(w, pad+st.Width(menuWidth).Render(label)))
	}
	return out
}

func (m Model) body(w int) []string {
	rows := []string{
		line(w, " Search: "+m.search.View()),
		line(w, " New:    "+m.add.View()+"  [Add]"),
		line(w, fmt.Sprintf(" Priority: %-16s Due: %s", priorityLabel(m.priority), m.due.View())),
		rule(w),
	}
	rows = append(rows, m.listRows(w)...)
	rows = append(rows,
		rule(w),
		m.footer(w),
		line(w, " "+m.app.FilterLine()+" │ "+m.app.TotalLine()),
		m.hint(w),
	)
	return rows
}

func (m Model) listRows(w int) []string {
	tasks := m.app.View()
	rows := make([]string, 0, listHeight)
	if len(tasks) == 0 {
		var buf bytes.Buffer
		output.FormatEmpty(&buf, m.app.Query() != "")
		msg := strings.TrimSpace(buf.String())
		rows = append(rows, listStyle.Width(w).Align(lipgloss.Center).Render(msg))
	}
	for i := m.offset; i < len(tasks) && len(rows) < listHeight; i++ {
		rows = append(rows, m.taskRow(w, tasks[i], i == m.cursor && m.focus == focusList))
	}
	for len(rows) < listHeight {
		rows = append(rows, listStyle.Width(w).Render(""))
	}
	return rows
}

func (m Model) taskRow(w int, t task.Task, selected bool) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	if id, _, ok := m.app.Store().Editing(); ok && id == t.ID && m.focus == focusEdit {
		return listStyle.Width(w).MaxHeight(1).Render(" " + check + " " + m.edit.View() + "  [Save]")
	}

	text := strings.ReplaceAll(t.Text, "\n", " ")
	if t.DueDate != "" {
		text += "  due " + t.DueDate
	}

	st, ok := priorityStyles[t.Priority]
	if !ok {
		st = listStyle
	}
	if t.Completed {
		st = st.Strikethrough(true)
	}
	if selected {
		st = selectedStyle
	}
	return st.Width(w).MaxHeight(1).Render(fmt.Sprintf(" %s %s %s", check, prioritySymbol(t.Priority), text))
}

func (m Model) footer(w int) string {
	left := " [Clear Completed]"
	right := m.app.StatusLine() + " "
	gap := max(w-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return line(w, left+strings.Repeat(" ", gap)+right)
}

func (m Model) hint(w int) string {
	switch {
	case m.focus == focusOpen:
		return line(w, " Open file: "+m.open.View())
	case m.status != "":
		return line(w, " "+m.status)
	case m.focus == focusList:
		return hintStyle.Width(w).MaxHeight(1).Render(" n new  / search  space toggle  enter edit  d del  ^K calc  ^N news")
	}
	return hintStyle.Width(w).MaxHeight(1).Render(" enter confirm  tab next  esc back")
}

// dialog draws a bordered box with a title bar, centred in the window.
func dialog(w int, title string, body []string) string {
	inner := w - 8
	rows := []string{titleStyle.Width(inner).Render(" " + title)}
	for _, l := range body {
		rows = append(rows, windowStyle.Width(inner).Render(" "+l))
	}
	box := dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, box, lipgloss.WithWhitespaceBackground(grey))
}

func (m Model) aboutBox(w int) string {
	info := m.app.About()
	return dialog(w, "About "+info.Product, []string{
		"",
		info.Product + "™",
		"Version " + info.Version + " [en]-98194",
		"",
		"Copyright © 2025. All rights reserved.",
		"",
		"                 [ OK ]",
	})
}

var calcButtons = [][]string{
	{"7", "8", "9", "÷"},
	{"4", "5", "6", "×"},
	{"1", "2", "3", "-"},
	{"0", ".", "=", "+"},
	{"C", "⌫"},
}

func (m Model) calculatorBox(w int) string {
	body := []string{
		"",
		displayStyle.Width(w - 12).Render(m.app.Calculator().Display() + " "),
		"",
	}
	for _, row := range calcButtons {
		cells := make([]string, len(row))
		for i, b := range row {
			cells[i] = "[ " + b + " ]"
		}
		body = append(body, strings.Join(cells, " "))
	}
	body = append(body, "", "Esc closes")
	return dialog(w, "Calculator", body)
}

func (m Model) newsBox(w int) string {
	articles, loading := m.app.News()
	var body []string
	switch {
	case loading:
		body = []string{"", "Loading headlines..."}
	case len(articles) == 0:
		body = []string{"", output.NoHeadlines}
	default:
		end := min(m.newsOffset+articlesShown, len(articles))
		for i := m.newsOffset; i < end; i++ {
			var buf bytes.Buffer
			output.FormatArticle(&buf, i+1, articles[i])
			body = append(body, "")
			body = append(body, strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")...)
		}
	}
	body = append(body, "", "r refresh  ↑↓ scroll  Esc close")
	return dialog(w, "News", body)
}

// revealText is the content of each reveal window.
func revealText(k easteregg.Kind) (title string, body []string) {
	switch k {
	case easteregg.Konami:
		return "Cheat Code Accepted", []string{"↑ ↑ ↓ ↓ ← → ← → B A", "", "+30 lives. Your tasks are now invincible."}
	case easteregg.Clippy:
		return "Office Assistant", []string{"It looks like you're writing a to-do list.", "", "Would you like help?"}
	case easteregg.Retro:
		return "Retro Mode", []string{"C:\\> WIN", "", "Starting Windows 98..."}
	case easteregg.Secret:
		return "Secret Found", []string{"You clicked the title bar ten times.", "", "Persistence pays off."}
	case easteregg.Task:
		return "Top Secret", []string{"Your secret is safe with me."}
	}
	return "", nil
}

func revealBox(w int, k easteregg.Kind) string {
	title, body := revealText(k)
	return dialog(w, title, append(append([]string{""}, body...), "", "                 [ OK ]"))
}
