package validation

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/Swochhanda14/frontbooth/helpers"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Lookup reads the current value of another field by name.
type Lookup func(name string) (any, bool)

// Rule is a named predicate over a field value plus the message reported when
// it fails. Rules run in declaration order and the first failure wins.
type Rule struct {
	// Name identifies the rule kind in FieldError values (e.g. "required", "minLength").
	Name string

	// Message is reported when Test returns false.
	Message string

	// DependsOn lists other fields whose values Test reads through the Lookup.
	// A change to any of them re-validates the field carrying the rule.
	DependsOn []string

	// SkipEmpty makes the rule pass on empty values, leaving emptiness to Required.
	SkipEmpty bool

	// Test returns true when value satisfies the rule.
	Test func(value any, lookup Lookup) bool
}

// Check evaluates the rule and returns its message on failure.
func (r Rule) Check(value any, lookup Lookup) (string, bool) {
	if r.SkipEmpty && IsEmpty(value) {
		return "", true
	}
	if r.Test == nil || r.Test(value, lookup) {
		return "", true
	}
	return r.Message, false
}

// Evaluate runs rules in order and returns the first failing rule. ok is true
// when every rule passes.
func Evaluate(rules []Rule, value any, lookup Lookup) (failed Rule, ok bool) {
	for _, rule := range rules {
		if _, passed := rule.Check(value, lookup); !passed {
			return rule, false
		}
	}
	return Rule{}, true
}

// GroupRule is a predicate over the number of instances in a field array.
type GroupRule struct {
	Name    string
	Message string
	Test    func(count int) bool
}

// Check evaluates the group rule against count.
func (r GroupRule) Check(count int) (string, bool) {
	if r.Test == nil || r.Test(count) {
		return "", true
	}
	return r.Message, false
}

// Required fails on an absent value, an empty string or an empty file list.
func Required(message string) Rule {
	return Rule{
		Name:    "required",
		Message: helpers.DefaultString(message, "This field is required"),
		Test: func(value any, _ Lookup) bool {
			return !IsEmpty(value)
		},
	}
}

// MinLength fails when a string is shorter than n characters.
func MinLength(n int, message string) Rule {
	return Rule{
		Name:      "minLength",
		Message:   defaultMessage(message, "Must be at least %d characters", n),
		SkipEmpty: true,
		Test: func(value any, _ Lookup) bool {
			s, ok := value.(string)
			if !ok {
				return true
			}
			return stringLength(s) >= n
		},
	}
}

// MaxLength fails when a string is longer than n characters.
func MaxLength(n int, message string) Rule {
	return Rule{
		Name:      "maxLength",
		Message:   defaultMessage(message, "Must be at most %d characters", n),
		SkipEmpty: true,
		Test: func(value any, _ Lookup) bool {
			s, ok := value.(string)
			if !ok {
				return true
			}
			return stringLength(s) <= n
		},
	}
}

// Pattern requires the whole string to match expr. It panics if expr does not
// compile, so it is meant for expressions written in code; schema documents go
// through Engine.Pattern instead.
func Pattern(expr, message string) Rule {
	compiled, err := Default().Patterns().Compile(context.Background(), anchor(expr))
	if err != nil {
		panic(err)
	}
	return patternRule(compiled, message)
}

// Tag evaluates a go-playground validator tag using the default engine.
func Tag(tag, message string) Rule {
	return Default().Tag(tag, message)
}

// EqualsField fails unless the value strictly equals the current value of other.
func EqualsField(other, message string) Rule {
	return Rule{
		Name:      "equalsField",
		Message:   defaultMessage(message, "Must match %s", other),
		DependsOn: []string{other},
		Test: func(value any, lookup Lookup) bool {
			counterpart, _ := lookup(other)
			return reflect.DeepEqual(value, counterpart)
		},
	}
}

// FileMaxSize fails when any selected file is larger than maxBytes. A negative
// bound rejects every file.
func FileMaxSize(maxBytes int64, message string) Rule {
	return Rule{
		Name:      "fileMaxSize",
		Message:   defaultMessage(message, "File must be at most %s", humanize.IBytes(uint64(max(maxBytes, 0)))),
		SkipEmpty: true,
		Test: func(value any, _ Lookup) bool {
			files, ok := value.(FileList)
			if !ok {
				return true
			}
			for _, file := range files {
				if file.Size > maxBytes {
					return false
				}
			}
			return true
		},
	}
}

// FileTypes fails when any selected file has a type outside allowed. Types are
// compared exactly.
func FileTypes(allowed []string, message string) Rule {
	set := make(map[string]struct{}, len(allowed))
	for _, t := range allowed {
		set[t] = struct{}{}
	}
	return Rule{
		Name:      "fileTypes",
		Message:   defaultMessage(message, "File type must be one of %s", strings.Join(allowed, ", ")),
		SkipEmpty: true,
		Test: func(value any, _ Lookup) bool {
			files, ok := value.(FileList)
			if !ok {
				return true
			}
			for _, file := range files {
				if _, ok := set[file.Type]; !ok {
					return false
				}
			}
			return true
		},
	}
}

// Custom wraps an arbitrary predicate. deps name the fields fn reads through the lookup.
func Custom(name, message string, fn func(value any, lookup Lookup) bool, deps ...string) Rule {
	return Rule{
		Name:      helpers.DefaultString(name, "custom"),
		Message:   helpers.DefaultString(message, "Invalid value"),
		DependsOn: deps,
		Test:      fn,
	}
}

// MinItems requires at least n instances in a field array.
func MinItems(n int, message string) GroupRule {
	return GroupRule{
		Name:    "minItems",
		Message: defaultMessage(message, "Add at least %d item(s)", n),
		Test:    func(count int) bool { return count >= n },
	}
}

// MaxItems allows at most n instances in a field array.
func MaxItems(n int, message string) GroupRule {
	return GroupRule{
		Name:    "maxItems",
		Message: defaultMessage(message, "No more than %d item(s) allowed", n),
		Test:    func(count int) bool { return count <= n },
	}
}

func patternRule(compiled *regexp.Regexp, message string) Rule {
	return Rule{
		Name:      "pattern",
		Message:   helpers.DefaultString(message, "Invalid format"),
		SkipEmpty: true,
		Test: func(value any, _ Lookup) bool {
			s, ok := value.(string)
			if !ok {
				zap.L().Debug("Pattern rule skipped non-string value", zap.String("pattern", compiled.String()))
				return true
			}
			return compiled.MatchString(s)
		},
	}
}

// anchor makes expr match the whole input.
func anchor(expr string) string {
	return `^(?:` + expr + `)$`
}

func defaultMessage(message, format string, args ...any) string {
	if message != "" {
		return message
	}
	return fmt.Sprintf(format, args...)
}
