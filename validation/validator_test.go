package validation

import (
	"context"
	"testing"

	"github.com/Swochhanda14/frontbooth/cache"
	"github.com/go-playground/validator/v10"
)

func TestNewEngineUsesProvidedValidator(t *testing.T) {
	customVal := validator.New()
	engine := NewEngine(customVal)

	if engine.Validator() != customVal {
		t.Fatal("expected engine to use provided validator instance")
	}
}

func TestNewEngineCreatesDefaultValidator(t *testing.T) {
	engine := NewEngine(nil)
	if engine.Validator() == nil {
		t.Fatal("expected default validator to be created")
	}

	rule := engine.Tag("email", "Invalid Email")
	if msg, ok := rule.Check("test@example.com", nil); !ok {
		t.Fatalf("expected valid email, got %q", msg)
	}
	if msg, ok := rule.Check("bad", nil); ok || msg != "Invalid Email" {
		t.Fatalf("expected 'Invalid Email', got %q (ok=%v)", msg, ok)
	}
}

func TestNewEngineWithPatternCache(t *testing.T) {
	patterns := cache.NewPatternCache(nil)
	engine := NewEngine(nil, WithPatternCache(patterns))

	if engine.Patterns() != patterns {
		t.Fatal("expected engine to use the provided pattern cache")
	}
}

func TestEngineTagWithCustomValidation(t *testing.T) {
	v := validator.New()
	if err := v.RegisterValidation("lowercase_only", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, r := range s {
			if r < 'a' || r > 'z' {
				return false
			}
		}
		return true
	}); err != nil {
		t.Fatalf("failed to register validation: %v", err)
	}

	rule := NewEngine(v).Tag("lowercase_only", "")
	if _, ok := rule.Check("abc", nil); !ok {
		t.Fatal("expected lowercase value to pass")
	}
	msg, ok := rule.Check("aBc", nil)
	if ok {
		t.Fatal("expected mixed-case value to fail")
	}
	if msg != "Failed on validation tag 'lowercase_only'" {
		t.Fatalf("unexpected default message %q", msg)
	}
}

func TestEnginePattern(t *testing.T) {
	engine := NewEngine(nil)

	rule, err := engine.Pattern(context.Background(), `[0-9]{10}`, "Phone number must be 10 digits")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, ok := rule.Check("9812345678", nil); !ok {
		t.Fatal("expected 10 digits to pass")
	}
	// - the expression is anchored, so a longer string with 10 digits inside fails
	if msg, ok := rule.Check("x9812345678x", nil); ok || msg != "Phone number must be 10 digits" {
		t.Fatalf("expected anchored pattern to fail, got %q (ok=%v)", msg, ok)
	}

	if _, err := engine.Pattern(context.Background(), `([`, ""); err == nil {
		t.Fatal("expected an error for an invalid pattern")
	}
}

func TestDefaultEngineIsShared(t *testing.T) {
	if Default() != Default() {
		t.Fatal("expected Default to return the same engine")
	}
	if Default().Validator() != CustomValidator {
		t.Fatal("expected default engine to use CustomValidator")
	}
}
