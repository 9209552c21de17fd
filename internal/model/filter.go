package model

import (
	"fmt"
	"strings"
)

// Filter selects which tasks a query returns.
type Filter int

const (
	All Filter = iota
	Done
	Pending
)

var filterNames = map[string]Filter{
	"all":     All,
	"done":    Done,
	"pending": Pending,
	// Portuguese names, as shown by the menu
	"todas":      All,
	"concluidas": Done,
	"pendentes":  Pending,
}

// ParseFilter maps a user-facing name to a Filter.
func ParseFilter(s string) (Filter, error) {
	f, ok := filterNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return All, fmt.Errorf("unknown filter %q (want all, done or pending)", s)
	}
	return f, nil
}

func (f Filter) String() string {
	switch f {
	case Done:
		return "done"
	case Pending:
		return "pending"
	default:
		return "all"
	}
}

// Next cycles All -> Pending -> Done -> All.
func (f Filter) Next() Filter {
	switch f {
	case All:
		return Pending
	case Pending:
		return Done
	default:
		return All
	}
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case Done:
		return t.Done
	case Pending:
		return !t.Done
	default:
		return true
	}
}

// Apply returns the tasks matching f in their original order.
// The result is never nil.
func Apply(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
