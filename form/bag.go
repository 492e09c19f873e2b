package form

import (
	"strconv"
	"strings"

	"github.com/Swochhanda14/frontbooth/validation"
)

// ValueBag is a snapshot of every value in the form. Groups resolve to []any:
// items of an object group are map[string]any, items of a primitive group are
// the values themselves.
type ValueBag map[string]any

// Get resolves a dotted FieldName such as "skills.0.name" or "phone.1".
func (b ValueBag) Get(path string) (any, bool) {
	if b == nil || path == "" {
		return nil, false
	}
	current := any(map[string]any(b))
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// Clone returns a deep copy of the bag.
func (b ValueBag) Clone() ValueBag {
	if b == nil {
		return nil
	}
	out := make(ValueBag, len(b))
	for k, v := range b {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case validation.FileList:
		return typed.Clone()
	default:
		return typed
	}
}
