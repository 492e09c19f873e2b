package forms

import (
	"context"
	_ "embed"
	"fmt"
	"sort"

	"github.com/Swochhanda14/frontbooth/form"
	"github.com/Swochhanda14/frontbooth/validation"
)

//go:embed profile.yaml
var profileSchema []byte

// Profile is the user form described by the embedded profile.yaml schema.
func Profile(ctx context.Context, engine *validation.Engine) (form.Definition, error) {
	return form.LoadSchema(ctx, engine, profileSchema)
}

// Options configures Lookup.
type Options struct {
	Engine *validation.Engine
	Upload UploadLimits
}

type builder func(ctx context.Context, opts Options) (form.Definition, error)

var catalog = map[string]builder{
	"registration": func(context.Context, Options) (form.Definition, error) { return Registration(), nil },
	"profile": func(ctx context.Context, opts Options) (form.Definition, error) {
		return Profile(ctx, opts.Engine)
	},
	"skills":   func(context.Context, Options) (form.Definition, error) { return Skills(), nil },
	"contacts": func(context.Context, Options) (form.Definition, error) { return Contacts(), nil },
	"avatar": func(_ context.Context, opts Options) (form.Definition, error) {
		return Avatar(opts.Upload), nil
	},
}

// Names lists the bundled forms in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup builds the bundled form called name.
func Lookup(ctx context.Context, name string, opts Options) (form.Definition, error) {
	build, ok := catalog[name]
	if !ok {
		return form.Definition{}, fmt.Errorf("forms: unknown form %q", name)
	}
	return build(ctx, opts)
}
