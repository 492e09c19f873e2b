package form

import (
	"fmt"
	"strings"

	"github.com/Swochhanda14/frontbooth/errors"
	"github.com/Swochhanda14/frontbooth/validation"
)

// Field declares a single value of the form.
type Field struct {
	Name    string
	Kind    validation.Kind
	Default any
	Rules   []validation.Rule
}

// Group declares a field array. Item holds the sub-field templates every
// instance is created from; a single template with an empty name makes the
// group an array of primitives.
type Group struct {
	Name    string
	Item    []Field
	Rules   []validation.GroupRule
	Initial []any
}

// Primitive reports whether instances hold a single unnamed value.
func (g Group) Primitive() bool {
	return len(g.Item) == 1 && g.Item[0].Name == ""
}

// Definition is the static shape of a form: its fields, groups and rules.
type Definition struct {
	Name   string
	Title  string
	Mode   Mode
	Fields []Field
	Groups []Group
}

// check rejects empty, dotted or duplicate names, bad defaults and dangling dependencies.
func (d Definition) check() *errors.AppError {
	seen := make(map[string]struct{}, len(d.Fields)+len(d.Groups))
	claim := func(name, what string) *errors.AppError {
		if name == "" {
			return errors.NewBadRequest(fmt.Sprintf("%s name cannot be empty", what), nil)
		}
		if strings.Contains(name, ".") {
			return errors.NewBadRequest(fmt.Sprintf("%s name %q cannot contain '.'", what, name), nil)
		}
		if _, dup := seen[name]; dup {
			return errors.NewConflict(fmt.Sprintf("duplicate declaration %q", name), nil)
		}
		seen[name] = struct{}{}
		return nil
	}

	for _, field := range d.Fields {
		if err := claim(field.Name, "field"); err != nil {
			return err
		}
		if err := checkDefault(field); err != nil {
			return err
		}
	}

	for _, group := range d.Groups {
		if err := claim(group.Name, "group"); err != nil {
			return err
		}
		if len(group.Item) == 0 {
			return errors.NewBadRequest(fmt.Sprintf("group %q declares no item fields", group.Name), nil)
		}
		if group.Primitive() {
			if err := checkDefault(group.Item[0]); err != nil {
				return err
			}
			continue
		}
		subs := make(map[string]struct{}, len(group.Item))
		for _, item := range group.Item {
			if item.Name == "" || strings.Contains(item.Name, ".") {
				return errors.NewBadRequest(fmt.Sprintf("group %q has an invalid item name %q", group.Name, item.Name), nil)
			}
			if _, dup := subs[item.Name]; dup {
				return errors.NewConflict(fmt.Sprintf("group %q declares %q twice", group.Name, item.Name), nil)
			}
			subs[item.Name] = struct{}{}
			if err := checkDefault(item); err != nil {
				return err
			}
		}
	}

	// - dependencies may only point at top-level fields
	fields := make(map[string]struct{}, len(d.Fields))
	for _, field := range d.Fields {
		fields[field.Name] = struct{}{}
	}
	checkDeps := func(owner string, rules []validation.Rule) *errors.AppError {
		for _, rule := range rules {
			for _, dep := range rule.DependsOn {
				if _, ok := fields[dep]; !ok {
					return errors.NewNotFound(fmt.Sprintf("rule %q on %q depends on unknown field %q", rule.Name, owner, dep), nil)
				}
			}
		}
		return nil
	}
	for _, field := range d.Fields {
		if err := checkDeps(field.Name, field.Rules); err != nil {
			return err
		}
	}
	for _, group := range d.Groups {
		for _, item := range group.Item {
			if err := checkDeps(group.Name+"."+item.Name, item.Rules); err != nil {
				return err
			}
		}
	}

	return nil
}

func checkDefault(field Field) *errors.AppError {
	kind := field.Kind
	if kind == "" {
		kind = validation.KindString
	}
	if _, err := kind.Coerce(field.Default); err != nil {
		return errors.NewBadRequest(fmt.Sprintf("invalid default for %q", field.Name), err)
	}
	return nil
}

// initialValue returns the coerced default of field, or the kind's zero value.
func (f Field) initialValue() any {
	kind := f.kind()
	if f.Default == nil {
		return kind.ZeroValue()
	}
	value, _ := kind.Coerce(f.Default)
	return value
}

func (f Field) kind() validation.Kind {
	if f.Kind == "" {
		return validation.KindString
	}
	return f.Kind
}
