package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Swochhanda14/frontbooth/form"
	"github.com/Swochhanda14/frontbooth/validation"
	"github.com/charmbracelet/huh"
)

// IsAbort reports whether err comes from the user cancelling a prompt.
func IsAbort(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}

// Prompter fills a form interactively. Every answer goes through SetValue and
// Touch, so the form's mode decides when inline messages appear.
type Prompter struct {
	form  *form.Form
	apply []func() error
}

func NewPrompter(f *form.Form) *Prompter {
	return &Prompter{form: f}
}

// Fill asks for every field and array item, then submits. After a blocked
// submission the user may correct the form and try again.
func (p *Prompter) Fill() (form.ValueBag, error) {
	def := p.form.Definition()
	for {
		if err := p.askFields(def); err != nil {
			return nil, err
		}
		for _, group := range def.Groups {
			if err := p.askGroup(group); err != nil {
				return nil, err
			}
		}

		values, appErr := p.form.Submit()
		if appErr == nil {
			return values, nil
		}

		retry := true
		confirm := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Submission blocked").
				Description(fmt.Sprintf("%d field(s) need attention. Fix them now?", len(p.form.Errors()))).
				Value(&retry),
		)).WithTheme(huh.ThemeCatppuccin())
		if err := confirm.Run(); err != nil {
			return nil, err
		}
		if !retry {
			return nil, appErr
		}
	}
}

func (p *Prompter) askFields(def form.Definition) error {
	if len(def.Fields) == 0 {
		return nil
	}
	fields := make([]huh.Field, 0, len(def.Fields))
	for _, decl := range def.Fields {
		field, err := p.field(decl.Name, decl)
		if err != nil {
			return err
		}
		fields = append(fields, field)
	}
	return p.run(huh.NewGroup(fields...).Title(titleOf(def)))
}

func (p *Prompter) askGroup(group form.Group) error {
	ids, err := p.form.ArrayItems(group.Name)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := p.askItem(group, id); err != nil {
			return err
		}
	}

	for {
		more := false
		confirm := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Add another %s item?", group.Name)).
				Value(&more),
		)).WithTheme(huh.ThemeCatppuccin())
		if err := confirm.Run(); err != nil {
			return err
		}
		if !more {
			return nil
		}

		id, err := p.form.AddArrayItem(group.Name, nil)
		if err != nil {
			return err
		}
		if err := p.askItem(group, id); err != nil {
			return err
		}
	}
}

func (p *Prompter) askItem(group form.Group, id string) error {
	fields := make([]huh.Field, 0, len(group.Item))
	for _, tmpl := range group.Item {
		name, err := p.form.FieldName(group.Name, id, tmpl.Name)
		if err != nil {
			return err
		}
		field, err := p.field(name, tmpl)
		if err != nil {
			return err
		}
		fields = append(fields, field)
	}
	return p.run(huh.NewGroup(fields...).Title(group.Name))
}

func (p *Prompter) run(group *huh.Group) error {
	defer func() { p.apply = p.apply[:0] }()
	if err := huh.NewForm(group).WithTheme(huh.ThemeCatppuccin()).Run(); err != nil {
		return err
	}
	for _, apply := range p.apply {
		if err := apply(); err != nil {
			return err
		}
	}
	return nil
}

// set stores an answer and returns the visible message, if any, as the
// prompt's validation error.
func (p *Prompter) set(name string, value any) error {
	if err := p.form.SetValue(name, value); err != nil {
		return err
	}
	if err := p.form.Touch(name); err != nil {
		return err
	}
	if msg, ok := p.form.Errors()[name]; ok {
		return errors.New(msg)
	}
	return nil
}

func (p *Prompter) field(name string, decl form.Field) (huh.Field, error) {
	current, err := p.form.Value(name)
	if err != nil {
		return nil, err
	}

	switch decl.Kind {
	case validation.KindBool:
		value, _ := current.(bool)
		p.apply = append(p.apply, func() error { return p.form.SetValue(name, value) })
		return huh.NewConfirm().
			Title(name).
			Value(&value).
			Validate(func(b bool) error { return p.set(name, b) }), nil

	case validation.KindFile:
		var path string
		p.apply = append(p.apply, func() error {
			value, err := fileValue(path)
			if err != nil {
				return err
			}
			return p.form.SetValue(name, value)
		})
		return huh.NewInput().
			Title(name).
			Description("Path of the file to upload").
			Value(&path).
			Validate(func(s string) error { return p.setFile(name, s) }), nil

	default:
		value, _ := current.(string)
		input := huh.NewInput().
			Title(name).
			Value(&value).
			Validate(func(s string) error { return p.set(name, s) })
		if strings.Contains(strings.ToLower(name), "pass") {
			input = input.EchoMode(huh.EchoModePassword)
		}
		p.apply = append(p.apply, func() error { return p.form.SetValue(name, value) })
		return input, nil
	}
}

func (p *Prompter) setFile(name, path string) error {
	value, err := fileValue(path)
	if err != nil {
		return err
	}
	return p.set(name, value)
}

// fileValue maps an answered path to a file field value; no path means no file.
func fileValue(path string) (any, error) {
	if path == "" {
		return validation.FileList{}, nil
	}
	return FileRef(path)
}

func titleOf(def form.Definition) string {
	if def.Title != "" {
		return def.Title
	}
	return def.Name
}
