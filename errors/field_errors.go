package errors

import (
	"fmt"
	"strings"
)

// FieldError is a single rule failure on one field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Message)
}

// GroupError is an aggregate failure over an array group, e.g. a minimum item count.
type GroupError struct {
	Group   string `json:"group"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e GroupError) Error() string {
	return fmt.Sprintf("group %q: %s", e.Group, e.Message)
}

// ValidationErrors collects the FieldError and GroupError values of one validation pass.
type ValidationErrors []error

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Map flattens the collection into path -> message.
func (ve ValidationErrors) Map() map[string]string {
	out := make(map[string]string, len(ve))
	for _, e := range ve {
		switch typed := e.(type) {
		case FieldError:
			out[typed.Field] = typed.Message
		case GroupError:
			out[typed.Group] = typed.Message
		default:
			out[e.Error()] = e.Error()
		}
	}
	return out
}

// Has returns true if there is a failure recorded for the given path.
func (ve ValidationErrors) Has(path string) bool {
	_, ok := ve.Map()[path]
	return ok
}
