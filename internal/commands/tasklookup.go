package commands

import (
	"fmt"
	"io"

	"win98todo/internal/app"
	"win98todo/internal/config"
	"win98todo/internal/exitcode"
	"win98todo/internal/task"
)

// resolveIDs maps refs to task ids against one snapshot of the default
// view, so that acting on an earlier ref does not renumber later ones.
// An @id is passed through unchecked.
func resolveIDs(a *app.App, refs []TaskRef) ([]int64, error) {
	view := a.Store().View(task.FilterAll, "")
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		if ref.ByID {
			ids = append(ids, ref.ID)
			continue
		}
		if ref.Row < 1 || ref.Row > len(view) {
			return nil, fmt.Errorf("task number out of range: %d", ref.Row)
		}
		ids = append(ids, view[ref.Row-1].ID)
	}
	return ids, nil
}

// rowNumbers returns the default-view row of every task.
func rowNumbers(a *app.App) map[int64]int {
	view := a.Store().View(task.FilterAll, "")
	rows := make(map[int64]int, len(view))
	for i, t := range view {
		rows[t.ID] = i + 1
	}
	return rows
}

// applyToRefs runs apply for every referenced task. A missing task is
// reported as "no such task" and is not an error.
func applyToRefs(cfg *config.Config, a *app.App, args []string, out, errOut io.Writer, apply func(id int64) bool) int {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	ids, err := resolveIDs(a, refs)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	applied := 0
	for i, id := range ids {
		if apply(id) {
			applied++
			continue
		}
		cfg.Log().WithField("ref", refs[i].String()).Debug("commands: no such task")
		if !cfg.Quiet {
			fmt.Fprintln(out, "no such task")
		}
	}

	if applied > 0 && !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
