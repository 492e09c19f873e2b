package validation

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// RuleSpec declares one rule of a field in a schema document.
// Value depends on Kind: a length for minLength/maxLength, an expression for
// pattern, a validator tag for tag, a field name for equalsField, a size such
// as 2097152 or "2 MiB" for fileMaxSize and a list of types for fileTypes.
type RuleSpec struct {
	Kind    string      `json:"kind" yaml:"kind"`
	Value   interface{} `json:"value,omitempty" yaml:"value,omitempty"`
	Message string      `json:"message,omitempty" yaml:"message,omitempty"`
}

// FieldRule declares a field in a schema document.
// Tags maps directly to the go-playground/validator tags (e.g., "email,max=64") and
// is evaluated before Rules; empty values skip it, so pair it with a required rule.
// Type selects the value kind; defaults to "string".
type FieldRule struct {
	Name    string      `json:"name" yaml:"name"`
	Type    string      `json:"type,omitempty" yaml:"type,omitempty"`
	Default interface{} `json:"default,omitempty" yaml:"default,omitempty"`
	Tags    string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Rules   []RuleSpec  `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// GroupRules declares a field array. An Item list holding a single entry with an
// empty name is an array of primitives (e.g. phone numbers).
type GroupRules struct {
	Name       string        `json:"name" yaml:"name"`
	Item       []FieldRule   `json:"item" yaml:"item"`
	Min        int           `json:"min,omitempty" yaml:"min,omitempty"`
	MinMessage string        `json:"min_message,omitempty" yaml:"min_message,omitempty"`
	Max        int           `json:"max,omitempty" yaml:"max,omitempty"`
	MaxMessage string        `json:"max_message,omitempty" yaml:"max_message,omitempty"`
	Initial    []interface{} `json:"initial,omitempty" yaml:"initial,omitempty"`
}

// Schema is a declarative form definition.
type Schema struct {
	Name   string       `json:"name" yaml:"name"`
	Title  string       `json:"title,omitempty" yaml:"title,omitempty"`
	Mode   string       `json:"mode,omitempty" yaml:"mode,omitempty"`
	Fields []FieldRule  `json:"fields" yaml:"fields"`
	Groups []GroupRules `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// ParseSchema decodes a YAML (or JSON) schema document.
func ParseSchema(data []byte) (*Schema, error) {
	var schema Schema
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&schema); err != nil {
		return nil, fmt.Errorf("validation: parsing schema: %w", err)
	}
	if strings.TrimSpace(schema.Name) == "" {
		return nil, fmt.Errorf("validation: schema name cannot be empty")
	}
	return &schema, nil
}

// CompileField turns the declarative rules of a field into Rule values.
func (e *Engine) CompileField(ctx context.Context, field FieldRule) ([]Rule, error) {
	rules := make([]Rule, 0, len(field.Rules)+1)

	if tags := strings.TrimSpace(field.Tags); tags != "" {
		rules = append(rules, e.Tag(tags, ""))
	}

	for i, spec := range field.Rules {
		rule, err := e.compileRule(ctx, spec)
		if err != nil {
			return nil, fmt.Errorf("%s: rule %d: %w", field.Name, i, err)
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// CompileGroup turns the count constraints of a group into GroupRule values.
func (e *Engine) CompileGroup(group GroupRules) []GroupRule {
	var rules []GroupRule
	if group.Min > 0 {
		rules = append(rules, MinItems(group.Min, group.MinMessage))
	}
	if group.Max > 0 {
		rules = append(rules, MaxItems(group.Max, group.MaxMessage))
	}
	return rules
}

func (e *Engine) compileRule(ctx context.Context, spec RuleSpec) (Rule, error) {
	switch spec.Kind {
	case "required":
		return Required(spec.Message), nil
	case "minLength", "min":
		n, err := intValue(spec.Value)
		if err != nil {
			return Rule{}, err
		}
		return MinLength(n, spec.Message), nil
	case "maxLength", "max":
		n, err := intValue(spec.Value)
		if err != nil {
			return Rule{}, err
		}
		return MaxLength(n, spec.Message), nil
	case "pattern", "matches":
		expr, err := stringValue(spec.Value)
		if err != nil {
			return Rule{}, err
		}
		return e.Pattern(ctx, expr, spec.Message)
	case "email":
		return e.Tag("email", spec.Message), nil
	case "tag":
		tag, err := stringValue(spec.Value)
		if err != nil {
			return Rule{}, err
		}
		return e.Tag(tag, spec.Message), nil
	case "equalsField", "oneOfRef":
		other, err := stringValue(spec.Value)
		if err != nil {
			return Rule{}, err
		}
		return EqualsField(other, spec.Message), nil
	case "fileMaxSize":
		size, err := sizeValue(spec.Value)
		if err != nil {
			return Rule{}, err
		}
		return FileMaxSize(size, spec.Message), nil
	case "fileTypes":
		types, err := stringsValue(spec.Value)
		if err != nil {
			return Rule{}, err
		}
		return FileTypes(types, spec.Message), nil
	default:
		zap.L().Debug("Unknown rule kind in schema", zap.String("kind", spec.Kind))
		return Rule{}, fmt.Errorf("unsupported rule kind %q", spec.Kind)
	}
}

func intValue(value interface{}) (int, error) {
	switch typed := value.(type) {
	case int:
		return typed, nil
	case int64:
		return int(typed), nil
	case float64:
		return int(typed), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(typed))
	default:
		return 0, fmt.Errorf("expected an integer value, got %T", value)
	}
}

func stringValue(value interface{}) (string, error) {
	s, ok := value.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("expected a non-empty string value, got %v", value)
	}
	return s, nil
}

func stringsValue(value interface{}) ([]string, error) {
	switch typed := value.(type) {
	case []string:
		return typed, nil
	case []interface{}:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			s, err := stringValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		parts := strings.Split(typed, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", value)
	}
}

func sizeValue(value interface{}) (int64, error) {
	if s, ok := value.(string); ok {
		size, err := humanize.ParseBytes(s)
		if err != nil {
			return 0, fmt.Errorf("invalid size %q: %w", s, err)
		}
		return int64(size), nil
	}
	n, err := intValue(value)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("size cannot be negative, got %d", n)
	}
	return int64(n), nil
}
