package form

import (
	"context"
	"fmt"

	"github.com/Swochhanda14/frontbooth/errors"
	"github.com/Swochhanda14/frontbooth/validation"
)

// FromSchema compiles a declarative schema into a Definition. A nil engine
// uses validation.Default().
func FromSchema(ctx context.Context, engine *validation.Engine, schema *validation.Schema) (Definition, error) {
	if schema == nil {
		return Definition{}, errors.NewBadRequest("schema cannot be nil", nil)
	}
	if engine == nil {
		engine = validation.Default()
	}

	mode, err := ParseMode(schema.Mode)
	if err != nil {
		return Definition{}, errors.NewBadRequest(fmt.Sprintf("schema %q", schema.Name), err)
	}

	def := Definition{
		Name:  schema.Name,
		Title: schema.Title,
		Mode:  mode,
	}

	for _, spec := range schema.Fields {
		field, err := compileField(ctx, engine, spec)
		if err != nil {
			return Definition{}, err
		}
		def.Fields = append(def.Fields, field)
	}

	for _, spec := range schema.Groups {
		group := Group{
			Name:    spec.Name,
			Rules:   engine.CompileGroup(spec),
			Initial: spec.Initial,
		}
		for _, itemSpec := range spec.Item {
			item, err := compileField(ctx, engine, itemSpec)
			if err != nil {
				return Definition{}, errors.NewBadRequest(fmt.Sprintf("group %q", spec.Name), err)
			}
			group.Item = append(group.Item, item)
		}
		def.Groups = append(def.Groups, group)
	}

	return def, nil
}

// LoadSchema parses a YAML or JSON schema document and compiles it.
func LoadSchema(ctx context.Context, engine *validation.Engine, data []byte) (Definition, error) {
	schema, err := validation.ParseSchema(data)
	if err != nil {
		return Definition{}, errors.NewBadRequest("invalid schema document", err)
	}
	return FromSchema(ctx, engine, schema)
}

func compileField(ctx context.Context, engine *validation.Engine, spec validation.FieldRule) (Field, error) {
	kind, err := validation.ParseKind(spec.Type)
	if err != nil {
		return Field{}, errors.NewBadRequest(fmt.Sprintf("field %q", spec.Name), err)
	}
	rules, err := engine.CompileField(ctx, spec)
	if err != nil {
		return Field{}, errors.NewBadRequest(fmt.Sprintf("field %q", spec.Name), err)
	}
	return Field{
		Name:    spec.Name,
		Kind:    kind,
		Default: spec.Default,
		Rules:   rules,
	}, nil
}
