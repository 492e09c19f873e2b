package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Swochhanda14/frontbooth/form"
	"github.com/Swochhanda14/frontbooth/internal/ui"
	"github.com/Swochhanda14/frontbooth/validation"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// readValues decodes a YAML document of answers keyed by field or array name.
func readValues(path string) (map[string]any, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return values, nil
}

// applyValues sets every answer on f. Arrays replace the initial items.
func applyValues(f *form.Form, values map[string]any) error {
	def := f.Definition()
	fields := make(map[string]form.Field, len(def.Fields))
	for _, field := range def.Fields {
		fields[field.Name] = field
	}
	groups := make(map[string]form.Group, len(def.Groups))
	for _, group := range def.Groups {
		groups[group.Name] = group
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if group, ok := groups[key]; ok {
			if err := applyGroup(f, group, values[key]); err != nil {
				return err
			}
			continue
		}

		// - unknown keys fall through to SetValue, which reports them
		value, err := convert(fields[key].Kind, values[key])
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if err := f.SetValue(key, value); err != nil {
			return err
		}
	}
	return nil
}

func applyGroup(f *form.Form, group form.Group, raw any) error {
	items, ok := raw.([]any)
	if !ok && raw != nil {
		return fmt.Errorf("%s: expected a list, got %T", group.Name, raw)
	}

	ids, err := f.ArrayItems(group.Name)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := f.RemoveArrayItem(group.Name, id); err != nil {
			return err
		}
	}

	for i, item := range items {
		if group.Primitive() {
			value, err := convert(group.Item[0].Kind, item)
			if err != nil {
				return fmt.Errorf("%s.%d: %w", group.Name, i, err)
			}
			if _, err := f.AddArrayItem(group.Name, value); err != nil {
				return err
			}
			continue
		}

		fields, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("%s.%d: expected a mapping, got %T", group.Name, i, item)
		}
		converted := make(map[string]any, len(fields))
		for sub, value := range fields {
			kind := validation.KindString
			for _, tmpl := range group.Item {
				if tmpl.Name == sub && tmpl.Kind != "" {
					kind = tmpl.Kind
				}
			}
			v, err := convert(kind, value)
			if err != nil {
				return fmt.Errorf("%s.%d.%s: %w", group.Name, i, sub, err)
			}
			converted[sub] = v
		}
		if _, err := f.AddArrayItem(group.Name, converted); err != nil {
			return err
		}
	}
	return nil
}

// convert turns a decoded YAML value into the shape a field of kind expects.
// File fields accept a path, a {name, size, type} mapping or a list of either.
func convert(kind validation.Kind, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}

	switch kind {
	case validation.KindFile:
		switch typed := raw.(type) {
		case []any:
			files := make(validation.FileList, 0, len(typed))
			for _, item := range typed {
				ref, err := fileRef(item)
				if err != nil {
					return nil, err
				}
				files = append(files, ref)
			}
			return files, nil
		default:
			ref, err := fileRef(typed)
			if err != nil {
				return nil, err
			}
			return validation.FileList{ref}, nil
		}

	case validation.KindBool:
		return raw, nil

	default:
		if s, ok := raw.(string); ok {
			return s, nil
		}
		return fmt.Sprint(raw), nil
	}
}

func fileRef(raw any) (validation.FileRef, error) {
	switch typed := raw.(type) {
	case string:
		return ui.FileRef(typed)
	case map[string]any:
		var ref validation.FileRef
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "yaml",
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			Result:           &ref,
		})
		if err != nil {
			return validation.FileRef{}, err
		}
		if err := decoder.Decode(typed); err != nil {
			return validation.FileRef{}, fmt.Errorf("invalid file reference: %w", err)
		}
		return ref, nil
	default:
		return validation.FileRef{}, fmt.Errorf("expected a path or a file mapping, got %T", raw)
	}
}

// yamlSink prints submitted values as a YAML document.
func yamlSink(out io.Writer) form.Sink {
	return form.SinkFunc(func(values form.ValueBag) {
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(map[string]any(values)); err != nil {
			fmt.Fprintln(out, ui.ErrorStyle.Render(err.Error()))
		}
		_ = encoder.Close()
	})
}
