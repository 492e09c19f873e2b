package forms

import (
	"github.com/Swochhanda14/frontbooth/form"
	"github.com/Swochhanda14/frontbooth/helpers"
	"github.com/Swochhanda14/frontbooth/validation"
)

const DefaultMaxUploadBytes int64 = 2 << 20

var DefaultUploadTypes = []string{"image/jpeg", "image/png"}

// UploadLimits bounds the files accepted by Avatar. Zero values fall back to the defaults.
type UploadLimits struct {
	MaxBytes int64
	Types    []string
}

// Avatar is a single-file upload form with size and type constraints.
func Avatar(limits UploadLimits) form.Definition {
	maxBytes := helpers.DefaultInt64(limits.MaxBytes, DefaultMaxUploadBytes)
	types := helpers.DefaultStrings(limits.Types, DefaultUploadTypes)

	return form.Definition{
		Name:  "avatar",
		Title: "Profile picture",
		Mode:  form.OnChange,
		Fields: []form.Field{
			{
				Name: "avatar",
				Kind: validation.KindFile,
				Rules: []validation.Rule{
					validation.Required("Please select a file"),
					validation.FileMaxSize(maxBytes, ""),
					validation.FileTypes(types, ""),
				},
			},
		},
	}
}
