package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// StateStore is the host-side storage that a bound schema reads and writes
// through dotted paths such as "editableEntryData.c1.name".
type StateStore interface {
	Get(path string) (any, bool)
	Set(path string, value any) error
}

func SplitPath(path string) []string {
	raw := strings.Split(strings.TrimSpace(path), ".")
	segments := make([]string, 0, len(raw))
	for _, segment := range raw {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}

	return segments
}

func JoinPath(segments ...string) string {
	kept := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment = strings.Trim(segment, ". "); segment != "" {
			kept = append(kept, segment)
		}
	}

	return strings.Join(kept, ".")
}

func GetPath(root map[string]any, segments []string) (any, bool) {
	var current any = root
	for _, segment := range segments {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case []map[string]any:
			index, ok := sliceIndex(segment, len(node))
			if !ok {
				return nil, false
			}
			current = node[index]
		case []any:
			index, ok := sliceIndex(segment, len(node))
			if !ok {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}

	return current, true
}

// SetPath writes value at segments below root, creating intermediate maps
// for missing keys. Slice elements can be addressed by index but a slice is
// never grown.
func SetPath(root map[string]any, segments []string, value any) error {
	if len(segments) == 0 {
		return ErrEmptyPath
	}

	var current any = root
	for i, segment := range segments {
		last := i == len(segments)-1

		switch node := current.(type) {
		case map[string]any:
			if last {
				node[segment] = value
				return nil
			}
			next, ok := node[segment]
			if !ok || next == nil {
				next = map[string]any{}
				node[segment] = next
			}
			current = next
		case []map[string]any:
			index, ok := sliceIndex(segment, len(node))
			if !ok {
				return fmt.Errorf("%w: index %q out of range in %q", ErrPathConflict, segment, JoinPath(segments...))
			}
			if last {
				item, ok := value.(map[string]any)
				if !ok {
					return fmt.Errorf("%w: %q expects a field map", ErrPathConflict, JoinPath(segments...))
				}
				node[index] = item
				return nil
			}
			current = node[index]
		case []any:
			index, ok := sliceIndex(segment, len(node))
			if !ok {
				return fmt.Errorf("%w: index %q out of range in %q", ErrPathConflict, segment, JoinPath(segments...))
			}
			if last {
				node[index] = value
				return nil
			}
			current = node[index]
		default:
			return fmt.Errorf("%w: segment %q of %q", ErrPathConflict, segment, JoinPath(segments...))
		}
	}

	return nil
}

func DeletePath(root map[string]any, segments []string) {
	if len(segments) == 0 {
		return
	}

	parent, ok := GetPath(root, segments[:len(segments)-1])
	if !ok {
		return
	}
	if node, ok := parent.(map[string]any); ok {
		delete(node, segments[len(segments)-1])
	}
}

func sliceIndex(segment string, length int) (int, bool) {
	index, err := strconv.Atoi(segment)
	if err != nil || index < 0 || index >= length {
		return 0, false
	}

	return index, true
}

// MapStore is a StateStore over a plain map. Every root segment is accepted.
type MapStore map[string]any

func (m MapStore) Get(path string) (any, bool) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return nil, false
	}

	return GetPath(m, segments)
}

func (m MapStore) Set(path string, value any) error {
	return SetPath(m, SplitPath(path), value)
}
