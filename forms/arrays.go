package forms

import (
	"github.com/Swochhanda14/frontbooth/form"
	"github.com/Swochhanda14/frontbooth/validation"
)

// Skills collects a developer name and a list of skills; at least one skill is required.
func Skills() form.Definition {
	return form.Definition{
		Name:  "skills",
		Title: "Skills",
		Mode:  form.OnSubmit,
		Fields: []form.Field{
			{
				Name: "developer",
				Rules: []validation.Rule{
					validation.Required("Developer name is required"),
				},
			},
		},
		Groups: []form.Group{
			{
				Name: "skills",
				Item: []form.Field{
					{
						Name: "name",
						Rules: []validation.Rule{
							validation.Required("Skill name is required"),
							validation.MinLength(2, "Skill name must be at least 2 characters"),
						},
					},
				},
				Rules: []validation.GroupRule{
					validation.MinItems(1, "Add at least one skill"),
				},
				Initial: []any{map[string]any{"name": ""}},
			},
		},
	}
}

// Contacts collects any number of 10-digit phone numbers.
func Contacts() form.Definition {
	return form.Definition{
		Name:  "contacts",
		Title: "Phone numbers",
		Mode:  form.OnSubmit,
		Groups: []form.Group{
			{
				Name: "phone",
				Item: []form.Field{
					{
						Rules: []validation.Rule{
							validation.Required("Phone number is required"),
							validation.Pattern(PhonePattern, "Phone number must be 10 digits"),
						},
					},
				},
				Initial: []any{""},
			},
		},
	}
}
