package errors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Code classifies an AppError so callers can branch without string matching.
type Code string

const (
	CodeInvalidArgument  Code = "invalid_argument"
	CodeNotFound         Code = "not_found"
	CodeConflict         Code = "conflict"
	CodeValidationFailed Code = "validation_failed"
	CodeInternal         Code = "internal"
)

// AppError represents a form engine error.
// It includes a category code, a user-friendly message,
// the original underlying error (for logging), and optional details.
type AppError struct {
	// Code classifies the error.
	Code Code `json:"code"`

	// Message is a human-readable message for the caller.
	Message string `json:"message"`

	// Err is the underlying original error. For blocked submissions this is a
	// ValidationErrors value listing every failing field and group.
	Err error `json:"-"`

	// Details can hold any additional structured information about the error,
	// e.g. the ErrorMap of a blocked submission.
	Details interface{} `json:"details,omitempty"`
}

// Error implements the standard error interface.
// It provides a comprehensive error string, typically for logging.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("AppError: Code=%s, Message=%s, UnderlyingError=%v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("AppError: Code=%s, Message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error chaining (e.g., with errors.Is and errors.As).
func (e *AppError) Unwrap() error {
	return e.Err
}

// HasCode reports whether err is, or wraps, an AppError carrying code.
func HasCode(err error, code Code) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr == nil {
		return false
	}
	return appErr.Code == code
}

// FormatValidationErrors converts validation failures into a map for structured output.
// Both ValidationErrors produced by the form engine and validator.ValidationErrors from
// go-playground/validator are supported. Any other non-nil error yields its message string.
// If the error is nil, it returns nil.
func FormatValidationErrors(err error) interface{} {
	if err == nil {
		return nil
	}

	var fes ValidationErrors
	if errors.As(err, &fes) {
		return fes.Map()
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		out := make(map[string]string)
		for _, fe := range ves {
			out[fe.Namespace()] = fmt.Sprintf("failed on validation tag '%s'", fe.Tag())
		}
		return out
	}

	// - If it's some other non-nil error type, return its string representation.
	return err.Error()
}

// NewAppError creates a new AppError.
// 'code' classifies the error.
// 'message' is the caller-facing error message.
// 'underlyingErr' is the original error, can be nil.
// 'details' is optional structured data for the caller.
func NewAppError(code Code, message string, underlyingErr error, details ...interface{}) *AppError {
	var d interface{}
	if len(details) > 0 {
		d = details[0] // - Take the first details argument if provided
	}
	return &AppError{
		Code:    code,
		Message: message,
		Err:     underlyingErr,
		Details: d,
	}
}

// Report prepares the AppError for display, e.g. by the CLI.
// The underlying error is only included when verbose is set.
func (e *AppError) Report(verbose bool) map[string]interface{} {
	report := map[string]interface{}{
		"error": e.Message,
	}

	if e.Details != nil {
		report["details"] = e.Details
	}

	if e.Err != nil && verbose {
		report["underlying_error"] = e.Err.Error()
	}

	return report
}
