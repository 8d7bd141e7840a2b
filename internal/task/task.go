// Package task defines the to-do record and the in-memory Task Store.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DueDateLayout is the layout of Task.DueDate.
const DueDateLayout = "2006-01-02"

// CreatedAtLayout is the layout of Task.CreatedAt (ISO-8601, UTC, milliseconds).
const CreatedAtLayout = "2006-01-02T15:04:05.000Z"

var (
	// ErrEmptyText is returned when a task is added with blank text.
	ErrEmptyText = errors.New("task text required")

	// ErrInvalidPriority is returned for a priority outside low/normal/medium/high.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidDueDate is returned for a due date that is not YYYY-MM-DD.
	ErrInvalidDueDate = errors.New("invalid due date")
)

// Priority is the importance of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority parses a priority name (case-insensitive, trimmed).
// An empty string means normal.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PriorityNormal, nil
	}
	if !p.Valid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidPriority, s)
	}
	return p, nil
}

// Valid reports whether p is one of the four known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities for display: high first, low last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Task is a single to-do item.
type Task struct {
	ID        int64    `json:"id"`
	Text      string   `json:"text"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority"`
	DueDate   string   `json:"dueDate"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// ValidDueDate reports whether s is empty or a YYYY-MM-DD date.
func ValidDueDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(DueDateLayout, s)
	return err == nil
}

// DefaultTasks returns the seed list used when no saved list can be loaded.
func DefaultTasks() []Task {
	return []Task{
		{ID: 1, Text: "Welcome to Windows 98 TODO!", Priority: PriorityNormal},
		{ID: 2, Text: "Click checkboxes to complete tasks", Priority: PriorityNormal},
	}
}

// Filter selects which tasks a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterHigh      Filter = "high"
)

// ParseFilter parses a filter name. An empty string means all.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted, FilterHigh:
		return f, nil
	}
	return "", fmt.Errorf("invalid filter: %s", s)
}

// Label returns the capitalized filter name shown in the status bar.
func (f Filter) Label() string {
	if f == "" {
		return "All"
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterHigh:
		return t.Priority == PriorityHigh
	}
	return true
}

// MentionsSecret reports whether text contains "secret" in any case.
func MentionsSecret(text string) bool {
	return strings.Contains(strings.ToLower(text), "secret")
}
