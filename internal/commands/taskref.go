package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Row  int   // 1-based row in the default view, as printed by list
	ID   int64 // task id, set when ByID
	ByID bool  // true for an @<id> reference
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses the task reference in args[0].
//
// Parsing rules:
// 1. All digits → row number (e.g., 3)
// 2. "@" followed by digits → task id (e.g., @1718000000000)
// 3. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	return parseRef(args[0])
}

// ParseTaskRefs parses every argument as a task reference.
func ParseTaskRefs(args []string) ([]TaskRef, error) {
	if len(args) == 0 {
		return nil, ErrTaskRefRequired
	}
	refs := make([]TaskRef, 0, len(args))
	for _, arg := range args {
		ref, err := parseRef(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func parseRef(s string) (TaskRef, error) {
	if isAllDigits(s) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", s)
		}
		return TaskRef{Row: n}, nil
	}
	if id, ok := strings.CutPrefix(s, "@"); ok && isAllDigits(id) {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", s)
		}
		return TaskRef{ID: n, ByID: true}, nil
	}
	return TaskRef{}, fmt.Errorf("invalid task reference: %s", s)
}

func (r TaskRef) String() string {
	if r.ByID {
		return "@" + strconv.FormatInt(r.ID, 10)
	}
	return strconv.Itoa(r.Row)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
