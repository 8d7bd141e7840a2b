// Package persist saves the task list as a single blob in a key-value store
// and handles the JSON export/import files.
package persist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"win98todo/internal/task"
)

// Key is the name the task list is stored under.
const Key = "win98-todos"

// ErrInvalidTask is returned when decoded content breaks the task schema.
var ErrInvalidTask = errors.New("invalid task")

// KV is a string-keyed blob store.
type KV interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error
}

// Adapter loads and saves the task list.
type Adapter struct {
	kv  KV
	key string
	log *log.Logger
}

// NewAdapter creates an adapter storing under Key.
func NewAdapter(kv KV, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Adapter{kv: kv, key: Key, log: logger}
}

// Load returns the saved list. A missing, unreadable or invalid blob
// yields task.DefaultTasks(); nothing is partially recovered.
func (a *Adapter) Load(ctx context.Context) []task.Task {
	blob, ok, err := a.kv.Get(ctx, a.key)
	if err != nil {
		a.log.WithError(err).Warn("persist: read failed, using defaults")
		return task.DefaultTasks()
	}
	if !ok {
		a.log.Debug("persist: no saved list, using defaults")
		return task.DefaultTasks()
	}
	tasks, err := Decode([]byte(blob))
	if err != nil {
		a.log.WithError(err).Warn("persist: saved list unreadable, using defaults")
		return task.DefaultTasks()
	}
	return tasks
}

// Save overwrites the saved list. Failures are logged, not returned.
func (a *Adapter) Save(ctx context.Context, tasks []task.Task) {
	blob, err := Encode(tasks)
	if err != nil {
		a.log.WithError(err).Error("persist: encode failed")
		return
	}
	if err := a.kv.Set(ctx, a.key, string(blob)); err != nil {
		a.log.WithError(err).Error("persist: write failed")
		return
	}
	a.log.WithField("tasks", len(tasks)).Debug("persist: saved")
}

// Encode serializes tasks as a compact JSON array.
func Encode(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return sonic.Marshal(tasks)
}

// Decode parses a JSON array of tasks and validates it.
func Decode(data []byte) ([]task.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidTask)
	}
	var tasks []task.Task
	if err := sonic.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		return nil, fmt.Errorf("%w: not a list", ErrInvalidTask)
	}
	if err := Validate(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Validate checks ids are present and unique, priorities known and due
// dates well formed. Text is not checked: edits may leave it empty.
func Validate(tasks []task.Task) error {
	seen := make(map[int64]bool, len(tasks))
	for i, t := range tasks {
		if t.ID == 0 {
			return fmt.Errorf("%w: entry %d has no id", ErrInvalidTask, i)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidTask, t.ID)
		}
		seen[t.ID] = true
		if !t.Priority.Valid() {
			return fmt.Errorf("%w: entry %d has priority %q", ErrInvalidTask, i, t.Priority)
		}
		if !task.ValidDueDate(t.DueDate) {
			return fmt.Errorf("%w: entry %d has due date %q", ErrInvalidTask, i, t.DueDate)
		}
	}
	return nil
}

// ExportFile is the suggested export filename.
const ExportFile = "todos.json"

// Export writes tasks as pretty-printed JSON.
func Export(w io.Writer, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	b, err := sonic.ConfigStd.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// Import reads and validates an exported file.
func Import(r io.Reader) ([]task.Task, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
