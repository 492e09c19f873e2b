package errors

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
)

// TestAppError_Error tests the Error() method of AppError.
func TestAppError_Error(t *testing.T) {
	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := errors.New("pattern did not compile")
		appErr := NewAppError(CodeInternal, "Something went wrong", underlyingErr)
		expected := fmt.Sprintf("AppError: Code=%s, Message=%s, UnderlyingError=%v", CodeInternal, "Something went wrong", underlyingErr)
		if appErr.Error() != expected {
			t.Errorf("Expected error string '%s', got '%s'", expected, appErr.Error())
		}
	})

	t.Run("without underlying error", func(t *testing.T) {
		appErr := NewAppError(CodeInvalidArgument, "Invalid input", nil)
		expected := fmt.Sprintf("AppError: Code=%s, Message=%s", CodeInvalidArgument, "Invalid input")
		if appErr.Error() != expected {
			t.Errorf("Expected error string '%s', got '%s'", expected, appErr.Error())
		}
	})
}

// TestAppError_Unwrap tests the Unwrap() method.
func TestAppError_Unwrap(t *testing.T) {
	underlyingErr := errors.New("original error")
	appErr := NewAppError(CodeInternal, "Wrapper error", underlyingErr)

	if unwrapped := errors.Unwrap(appErr); unwrapped != underlyingErr {
		t.Errorf("Expected unwrapped error to be '%v', got '%v'", underlyingErr, unwrapped)
	}
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("set value: %w", NewNotFound("", nil))

	if !HasCode(wrapped, CodeNotFound) {
		t.Error("Expected wrapped not-found error to match CodeNotFound")
	}
	if HasCode(wrapped, CodeConflict) {
		t.Error("Did not expect wrapped not-found error to match CodeConflict")
	}
	if HasCode(errors.New("plain"), CodeNotFound) {
		t.Error("Did not expect a plain error to carry a code")
	}
}

// TestFormatValidationErrors tests the FormatValidationErrors function.
func TestFormatValidationErrors(t *testing.T) {
	t.Run("with nil error", func(t *testing.T) {
		if formatted := FormatValidationErrors(nil); formatted != nil {
			t.Errorf("Expected nil for a nil error, got '%v'", formatted)
		}
	})

	t.Run("with validator.ValidationErrors", func(t *testing.T) {
		validate := validator.New()
		type User struct {
			Username string `validate:"required"`
		}
		err := validate.Struct(User{})

		formatted := FormatValidationErrors(err)
		expected := map[string]string{
			"User.Username": "failed on validation tag 'required'",
		}

		if !reflect.DeepEqual(formatted, expected) {
			t.Errorf("Expected formatted validation errors '%v', got '%v'", expected, formatted)
		}
	})

	t.Run("with form ValidationErrors", func(t *testing.T) {
		err := ValidationErrors{
			FieldError{Field: "skills.0.name", Rule: "required", Message: "Skill name is required"},
			GroupError{Group: "skills", Rule: "minItems", Message: "Add at least one skill"},
		}

		formatted := FormatValidationErrors(fmt.Errorf("submit: %w", err))
		expected := map[string]string{
			"skills.0.name": "Skill name is required",
			"skills":        "Add at least one skill",
		}

		if !reflect.DeepEqual(formatted, expected) {
			t.Errorf("Expected formatted validation errors '%v', got '%v'", expected, formatted)
		}
	})

	t.Run("with other non-nil error", func(t *testing.T) {
		err := errors.New("a simple error")
		formatted := FormatValidationErrors(err)
		if formatted != "a simple error" {
			t.Errorf("Expected formatted error to be 'a simple error', got '%v'", formatted)
		}
	})
}

// TestNewAppError tests the constructor for AppError.
func TestNewAppError(t *testing.T) {
	underlyingErr := errors.New("underlying")
	details := map[string]string{"field": "value"}

	appErr := NewAppError(CodeNotFound, "Not Found", underlyingErr, details)

	if appErr.Code != CodeNotFound {
		t.Errorf("Expected code %s, got %s", CodeNotFound, appErr.Code)
	}
	if appErr.Message != "Not Found" {
		t.Errorf("Expected message 'Not Found', got '%s'", appErr.Message)
	}
	if appErr.Err != underlyingErr {
		t.Errorf("Expected underlying error '%v', got '%v'", underlyingErr, appErr.Err)
	}
	if !reflect.DeepEqual(appErr.Details, details) {
		t.Errorf("Expected details '%v', got '%v'", details, appErr.Details)
	}
}

// TestAppError_Report tests the Report method.
func TestAppError_Report(t *testing.T) {
	underlyingErr := errors.New("internal issue")
	details := "some details"
	appErr := NewAppError(CodeInternal, "Engine Error", underlyingErr, details)

	t.Run("terse", func(t *testing.T) {
		report := appErr.Report(false)
		expected := map[string]interface{}{
			"error":   "Engine Error",
			"details": "some details",
		}
		if !reflect.DeepEqual(report, expected) {
			t.Errorf("Expected report '%v', got '%v'", expected, report)
		}
	})

	t.Run("verbose", func(t *testing.T) {
		report := appErr.Report(true)
		expected := map[string]interface{}{
			"error":            "Engine Error",
			"details":          "some details",
			"underlying_error": "internal issue",
		}
		if !reflect.DeepEqual(report, expected) {
			t.Errorf("Expected report '%v', got '%v'", expected, report)
		}
	})
}
