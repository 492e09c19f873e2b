package forms

import (
	"github.com/Swochhanda14/frontbooth/form"
	"github.com/Swochhanda14/frontbooth/validation"
)

const (
	EmailPattern = `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`
	PhonePattern = `\d{10}`
)

// Registration is the sign-up form with rules declared inline on every field.
func Registration() form.Definition {
	return form.Definition{
		Name:  "registration",
		Title: "Sign up",
		Mode:  form.OnSubmit,
		Fields: []form.Field{
			{
				Name:    "username",
				Default: "",
				Rules: []validation.Rule{
					validation.Required("Username is required"),
					validation.MinLength(3, "Username must be at least 3 characters long"),
				},
			},
			{
				Name: "email",
				Rules: []validation.Rule{
					validation.Required("Email is required"),
					validation.Pattern(EmailPattern, "Invalid email address"),
				},
			},
			{
				Name: "phone",
				Rules: []validation.Rule{
					validation.Required("Phone number is required"),
					validation.Pattern(PhonePattern, "Invalid phone number"),
				},
			},
			{
				Name: "password",
				Rules: []validation.Rule{
					validation.Required("Password is required."),
					validation.MinLength(8, "Password must be at least 8 characters"),
				},
			},
			{
				Name: "confirmpass",
				Rules: []validation.Rule{
					validation.Required("Confirm your password."),
					validation.EqualsField("password", "Passwords do not match"),
				},
			},
		},
	}
}
