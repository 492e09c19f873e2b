package form

import (
	"sort"

	"github.com/Swochhanda14/frontbooth/errors"
)

// Result is the outcome of validating one field or one group.
type Result struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message,omitempty"`
	Group   bool   `json:"group,omitempty"`
}

func valid(path string) Result {
	return Result{Field: path, Valid: true}
}

// Results maps FieldName to the Result of its last validation.
type Results map[string]Result

// Valid reports whether every result passed.
func (r Results) Valid() bool {
	for _, result := range r {
		if !result.Valid {
			return false
		}
	}
	return true
}

// Errors returns the failing entries as an ErrorMap.
func (r Results) Errors() ErrorMap {
	out := make(ErrorMap)
	for path, result := range r {
		if !result.Valid {
			out[path] = result.Message
		}
	}
	return out
}

// ValidationErrors lists the failures as FieldError and GroupError values, ordered by path.
func (r Results) ValidationErrors() errors.ValidationErrors {
	paths := make([]string, 0, len(r))
	for path, result := range r {
		if !result.Valid {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	out := make(errors.ValidationErrors, 0, len(paths))
	for _, path := range paths {
		result := r[path]
		if result.Group {
			out = append(out, errors.GroupError{Group: path, Rule: result.Rule, Message: result.Message})
			continue
		}
		out = append(out, errors.FieldError{Field: path, Rule: result.Rule, Message: result.Message})
	}
	return out
}

// ErrorMap maps FieldName to the message of its failing rule. Group-level
// failures are keyed by the group name.
type ErrorMap map[string]string
