package form

import (
	"fmt"

	"github.com/Swochhanda14/frontbooth/errors"
	"go.uber.org/zap"
)

func (f *Form) group(name string) (*groupState, error) {
	gs, ok := f.groups[name]
	if !ok {
		return nil, errors.NewNotFound(fmt.Sprintf("unknown field array %q", name), nil)
	}
	return gs, nil
}

// AddArrayItem appends an instance to a field array and returns its identity.
// item seeds the instance: a map of sub-field values for object groups, a
// value for primitive groups, or nil for the declared defaults. The new
// instance is not validated until it is touched or the form is validated.
func (f *Form) AddArrayItem(group string, item any) (string, error) {
	gs, err := f.group(group)
	if err != nil {
		return "", err
	}

	inst, err := newInstance(gs.decl, item)
	if err != nil {
		return "", err
	}

	gs.items = append(gs.items, inst)
	gs.dirty = true
	f.revalidateGroup(gs)

	zap.L().Debug("Array item added", zap.String("group", group), zap.String("id", inst.id), zap.Int("count", len(gs.items)))
	f.notify(Event{Kind: EventAdd, Name: group, ID: inst.id})
	return inst.id, nil
}

// RemoveArrayItem removes the instance with the given identity together with
// its values, results and flags. Later instances shift down one position but
// keep their identities.
func (f *Form) RemoveArrayItem(group, id string) error {
	gs, err := f.group(group)
	if err != nil {
		return err
	}

	idx := gs.indexOf(id)
	if idx < 0 {
		return errors.NewNotFound(fmt.Sprintf("no item %q in %q", id, group), nil)
	}

	gs.items = append(gs.items[:idx], gs.items[idx+1:]...)
	gs.dirty = true
	f.revalidateGroup(gs)

	zap.L().Debug("Array item removed", zap.String("group", group), zap.String("id", id), zap.Int("count", len(gs.items)))
	f.notify(Event{Kind: EventRemove, Name: group, ID: id})
	return nil
}

// MoveArrayItem moves the instance with the given identity to position to.
func (f *Form) MoveArrayItem(group, id string, to int) error {
	gs, err := f.group(group)
	if err != nil {
		return err
	}

	from := gs.indexOf(id)
	if from < 0 {
		return errors.NewNotFound(fmt.Sprintf("no item %q in %q", id, group), nil)
	}
	if to < 0 || to >= len(gs.items) {
		return errors.NewBadRequest(fmt.Sprintf("position %d is out of range for %q", to, group), nil)
	}

	item := gs.items[from]
	gs.items = append(gs.items[:from], gs.items[from+1:]...)
	gs.items = append(gs.items[:to], append([]*instance{item}, gs.items[to:]...)...)
	gs.dirty = true

	f.notify(Event{Kind: EventMove, Name: group, ID: id})
	return nil
}

// ArrayItems returns the identities of a field array in display order.
func (f *Form) ArrayItems(group string) ([]string, error) {
	gs, err := f.group(group)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(gs.items))
	for i, item := range gs.items {
		ids[i] = item.id
	}
	return ids, nil
}

// FieldName derives the current FieldName of an instance sub-field. sub is
// empty for arrays of primitives.
func (f *Form) FieldName(group, id, sub string) (string, error) {
	gs, err := f.group(group)
	if err != nil {
		return "", err
	}
	idx := gs.indexOf(id)
	if idx < 0 {
		return "", errors.NewNotFound(fmt.Sprintf("no item %q in %q", id, group), nil)
	}
	if _, ok := gs.template(sub); !ok {
		return "", errors.NewNotFound(fmt.Sprintf("group %q has no item field %q", group, sub), nil)
	}
	return gs.path(idx, sub), nil
}
