package task

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Stats holds the counters shown in the status bar.
type Stats struct {
	Active    int
	Completed int
	Total     int
}

// Store is an ordered, in-memory collection of tasks.
// It is owned by a single goroutine and is not safe for concurrent use.
type Store struct {
	tasks []Task

	editing bool
	editID  int64
	draft   string

	now    func() time.Time
	save   func([]Task)
	secret func()
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSaver sets the hook invoked with a copy of the list after every mutation.
func WithSaver(save func([]Task)) Option {
	return func(s *Store) { s.save = save }
}

// WithSecretHook sets the hook invoked when an added task mentions "secret".
func WithSecretHook(fn func()) Option {
	return func(s *Store) { s.secret = fn }
}

// NewStore creates a store holding a copy of tasks.
func NewStore(tasks []Task, opts ...Option) *Store {
	s := &Store{
		tasks: clone(tasks),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new task. Blank text is rejected with ErrEmptyText and
// leaves the store unchanged.
func (s *Store) Add(text string, priority Priority, dueDate string) (Task, error) {
	if strings.TrimSpace(text) == "" {
		return Task{}, ErrEmptyText
	}
	if priority == "" {
		priority = PriorityNormal
	}
	if !priority.Valid() {
		return Task{}, fmt.Errorf("%w: %s", ErrInvalidPriority, priority)
	}
	if !ValidDueDate(dueDate) {
		return Task{}, fmt.Errorf("%w: %s", ErrInvalidDueDate, dueDate)
	}

	now := s.now().UTC()
	t := Task{
		ID:        s.nextID(now),
		Text:      text,
		Priority:  priority,
		DueDate:   dueDate,
		CreatedAt: now.Format(CreatedAtLayout),
	}
	s.tasks = append(s.tasks, t)
	s.changed()

	if s.secret != nil && MentionsSecret(text) {
		s.secret()
	}
	return t, nil
}

// nextID derives an id from the creation time, bumped past the largest
// existing id so ids stay unique when adds share a millisecond.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range s.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

// Toggle flips Completed for the task with the given id.
// Unknown ids are ignored; the result reports whether a task matched.
func (s *Store) Toggle(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.changed()
	return true
}

// Remove deletes the task with the given id. Unknown ids are ignored.
func (s *Store) Remove(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	if s.editing && s.editID == id {
		s.CancelEdit()
	}
	s.changed()
	return true
}

// ClearCompleted removes every completed task and returns how many went.
func (s *Store) ClearCompleted() int {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	s.tasks = kept
	s.changed()
	return removed
}

// SetAllCompleted marks every task completed (Select All) or active (Unselect All).
func (s *Store) SetAllCompleted(v bool) {
	for i := range s.tasks {
		s.tasks[i].Completed = v
	}
	s.changed()
}

// StartEdit begins editing the task with the given id, seeding the draft
// with its current text. A draft already in progress is discarded.
func (s *Store) StartEdit(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.editing = true
	s.editID = id
	s.draft = s.tasks[i].Text
	return true
}

// SetDraft replaces the draft text of the edit in progress.
func (s *Store) SetDraft(text string) {
	if s.editing {
		s.draft = text
	}
}

// Editing returns the id and draft of the edit in progress.
func (s *Store) Editing() (id int64, draft string, ok bool) {
	return s.editID, s.draft, s.editing
}

// CommitEdit writes the draft to the task verbatim (an empty draft is
// allowed) and ends the edit. It reports false when id is not the task
// being edited or no longer exists.
func (s *Store) CommitEdit(id int64) bool {
	if !s.editing || s.editID != id {
		return false
	}
	draft := s.draft
	s.CancelEdit()

	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Text = draft
	s.changed()
	return true
}

// CancelEdit abandons the edit in progress without saving.
func (s *Store) CancelEdit() {
	s.editing = false
	s.editID = 0
	s.draft = ""
}

// Edit replaces the text of a task in one step.
func (s *Store) Edit(id int64, text string) bool {
	if !s.StartEdit(id) {
		return false
	}
	s.SetDraft(text)
	return s.CommitEdit(id)
}

// ReplaceAll swaps in a new list wholesale. Any edit in progress is dropped.
func (s *Store) ReplaceAll(tasks []Task) {
	s.CancelEdit()
	s.tasks = clone(tasks)
	s.changed()
}

// Find returns the task with the given id.
func (s *Store) Find(id int64) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Tasks returns a copy of the list in insertion order.
func (s *Store) Tasks() []Task {
	return clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// View returns the tasks passing filter whose text contains query
// (case-insensitive), stable-sorted by priority rank.
func (s *Store) View(filter Filter, query string) []Task {
	q := strings.ToLower(query)
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !filter.Match(t) {
			continue
		}
		if !strings.Contains(strings.ToLower(t.Text), q) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

// Stats counts active and completed tasks.
func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		} else {
			st.Active++
		}
	}
	return st
}

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) changed() {
	if s.save != nil {
		s.save(clone(s.tasks))
	}
}

func clone(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
