// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"win98todo/internal/news"
	"win98todo/internal/task"
)

const (
	// Separator is the rule printed above the status bar and between articles.
	Separator = "------------"

	// EmptyList is shown for an empty view without a search.
	EmptyList = "No tasks yet. Add one above!"

	// NoMatches is shown for an empty view while searching.
	NoMatches = "No matching tasks found!"

	// NoHeadlines is shown when the news fetch came back empty.
	NoHeadlines = "No headlines available."
)

// FormatTask formats a task row.
// Format: "{N:>4}  [x] {TEXT}[ (priority)][ due YYYY-MM-DD]\n"
// Normal priority is not shown.
func FormatTask(w io.Writer, num int, t task.Task) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("%4d  [%s] %s", num, mark, normalizeText(t.Text))
	if t.Priority != "" && t.Priority != task.PriorityNormal {
		line += " (" + string(t.Priority) + ")"
	}
	if t.DueDate != "" {
		line += " due " + t.DueDate
	}
	fmt.Fprintln(w, line)
}

// FormatEmpty writes the message shown when a view has no rows.
func FormatEmpty(w io.Writer, searching bool) {
	if searching {
		fmt.Fprintln(w, NoMatches)
		return
	}
	fmt.Fprintln(w, EmptyList)
}

// FormatStatusBar writes the three status bar cells, one per line.
func FormatStatusBar(w io.Writer, cells ...string) {
	fmt.Fprintln(w, Separator)
	for _, c := range cells {
		fmt.Fprintln(w, c)
	}
}

// FormatArticle formats one headline:
//
//	{N}. {TITLE}
//	     {SOURCE} - {DATE}
//	     {SUMMARY}
//	     {URL}
func FormatArticle(w io.Writer, num int, a news.Article) {
	fmt.Fprintf(w, "%d. %s\n", num, normalizeText(a.Title))
	fmt.Fprintf(w, "     %s - %s\n", a.Source.Name, a.Date())
	fmt.Fprintf(w, "     %s\n", normalizeText(a.Summary()))
	if a.URL != "" {
		fmt.Fprintf(w, "     %s\n", a.URL)
	}
}

// normalizeText normalizes task and headline text for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
