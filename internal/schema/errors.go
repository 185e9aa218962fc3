package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEmptyPath    = errors.New("state path is empty")
	ErrPathConflict = errors.New("state path crosses a non-container value")
	ErrUnbound      = errors.New("schema is not bound to a state path")
	ErrNotEvaluated = errors.New("schema state has not been evaluated")
	ErrNoRecord     = errors.New("schema has no backing record")
	ErrInvalidField = errors.New("invalid field declaration")
	ErrUnknownField = errors.New("unknown field")
)

// ValidationError collects the messages of every field that failed its
// rules, keyed by the field path relative to the schema root.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Add(field string, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	if e.Empty() {
		return "validation failed"
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], " ")))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}
