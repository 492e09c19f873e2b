package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Swochhanda14/frontbooth/errors"
	"github.com/Swochhanda14/frontbooth/helpers"
	"github.com/Swochhanda14/frontbooth/validation"
	"go.uber.org/zap"
)

// outcome is the last recorded validation of a field or group. Paths are
// derived when reported, so an outcome survives re-indexing.
type outcome struct {
	validated bool
	failing   bool
	rule      string
	message   string
}

func (o *outcome) record(r Result) {
	o.validated = true
	o.failing = !r.Valid
	o.rule = r.Rule
	o.message = r.Message
}

func (o outcome) result(path string, group bool) Result {
	if !o.failing {
		return Result{Field: path, Valid: true, Group: group}
	}
	return Result{Field: path, Rule: o.rule, Message: o.message, Group: group}
}

type fieldState struct {
	outcome
	value   any
	dirty   bool
	touched bool
}

type instance struct {
	id     string
	fields map[string]*fieldState
}

type groupState struct {
	outcome
	decl  Group
	items []*instance
	dirty bool
}

func (g *groupState) indexOf(id string) int {
	for i, item := range g.items {
		if item.id == id {
			return i
		}
	}
	return -1
}

// find accepts either a positional index or an identity.
func (g *groupState) find(segment string) (int, *instance) {
	if helpers.IsIdentity(segment) {
		if idx := g.indexOf(segment); idx >= 0 {
			return idx, g.items[idx]
		}
		return -1, nil
	}
	idx, err := strconv.Atoi(segment)
	if err != nil || idx < 0 || idx >= len(g.items) {
		return -1, nil
	}
	return idx, g.items[idx]
}

func (g *groupState) template(sub string) (Field, bool) {
	for _, item := range g.decl.Item {
		if item.Name == sub {
			return item, true
		}
	}
	return Field{}, false
}

func (g *groupState) path(index int, sub string) string {
	if sub == "" {
		return g.decl.Name + "." + strconv.Itoa(index)
	}
	return g.decl.Name + "." + strconv.Itoa(index) + "." + sub
}

// slot is a resolved leaf: a top-level field or one sub-field of one instance.
type slot struct {
	path  string
	decl  Field
	state *fieldState
	group *groupState
}

type depRef struct {
	group string
	name  string
}

// Form is the validation engine of one mounted form. It holds the value bag,
// the recorded validation results and the per-field flags. A Form is owned by
// a single event loop and is not safe for concurrent use.
type Form struct {
	def        Definition
	mode       Mode
	fieldDecls map[string]Field
	fields     map[string]*fieldState
	groups     map[string]*groupState
	dependents map[string][]depRef

	submitted        bool
	submitCount      int
	submitSuccessful bool

	surface       Surface
	sink          Sink
	resetOnSubmit bool
}

// New mounts a form: it checks the definition and seeds every field with its default.
func New(def Definition, opts ...Option) (*Form, error) {
	if err := def.check(); err != nil {
		return nil, err
	}

	f := &Form{
		def:        def,
		mode:       def.Mode,
		fieldDecls: make(map[string]Field, len(def.Fields)),
		dependents: make(map[string][]depRef),
	}
	for _, opt := range opts {
		opt(f)
	}

	for _, field := range def.Fields {
		f.fieldDecls[field.Name] = field
		for _, rule := range field.Rules {
			for _, dep := range rule.DependsOn {
				f.dependents[dep] = append(f.dependents[dep], depRef{name: field.Name})
			}
		}
	}
	for _, group := range def.Groups {
		for _, item := range group.Item {
			for _, rule := range item.Rules {
				for _, dep := range rule.DependsOn {
					f.dependents[dep] = append(f.dependents[dep], depRef{group: group.Name, name: item.Name})
				}
			}
		}
	}

	if err := f.initState(); err != nil {
		return nil, err
	}

	zap.L().Debug("Form mounted", zap.String("form", def.Name), zap.Stringer("mode", f.mode))
	return f, nil
}

func (f *Form) initState() error {
	f.fields = make(map[string]*fieldState, len(f.def.Fields))
	for _, field := range f.def.Fields {
		f.fields[field.Name] = &fieldState{value: field.initialValue()}
	}

	f.groups = make(map[string]*groupState, len(f.def.Groups))
	for _, group := range f.def.Groups {
		gs := &groupState{decl: group}
		for _, initial := range group.Initial {
			item, err := newInstance(group, initial)
			if err != nil {
				return err
			}
			gs.items = append(gs.items, item)
		}
		f.groups[group.Name] = gs
	}

	f.submitted = false
	f.submitCount = 0
	f.submitSuccessful = false
	return nil
}

func newInstance(group Group, item any) (*instance, error) {
	inst := &instance{
		id:     helpers.NewIdentity(),
		fields: make(map[string]*fieldState, len(group.Item)),
	}

	if group.Primitive() {
		tmpl := group.Item[0]
		value := tmpl.initialValue()
		if item != nil {
			coerced, err := tmpl.kind().Coerce(item)
			if err != nil {
				return nil, errors.NewBadRequest(fmt.Sprintf("invalid item for %q", group.Name), err)
			}
			value = coerced
		}
		inst.fields[""] = &fieldState{value: value}
		return inst, nil
	}

	var values map[string]any
	switch typed := item.(type) {
	case nil:
	case map[string]any:
		values = typed
	case ValueBag:
		values = typed
	default:
		return nil, errors.NewBadRequest(fmt.Sprintf("items of %q must be objects, got %T", group.Name, item), nil)
	}

	for key := range values {
		known := false
		for _, tmpl := range group.Item {
			if tmpl.Name == key {
				known = true
				break
			}
		}
		if !known {
			return nil, errors.NewNotFound(fmt.Sprintf("group %q has no item field %q", group.Name, key), nil)
		}
	}

	for _, tmpl := range group.Item {
		value := tmpl.initialValue()
		if raw, ok := values[tmpl.Name]; ok {
			coerced, err := tmpl.kind().Coerce(raw)
			if err != nil {
				return nil, errors.NewBadRequest(fmt.Sprintf("invalid value for %s.%s", group.Name, tmpl.Name), err)
			}
			value = coerced
		}
		inst.fields[tmpl.Name] = &fieldState{value: value}
	}
	return inst, nil
}

func (f *Form) resolveSlot(name string) (slot, error) {
	if state, ok := f.fields[name]; ok {
		return slot{path: name, decl: f.fieldDecls[name], state: state}, nil
	}

	parts := strings.SplitN(name, ".", 3)
	gs, ok := f.groups[parts[0]]
	if !ok {
		return slot{}, errors.NewNotFound(fmt.Sprintf("unknown field %q", name), nil)
	}
	if len(parts) == 1 {
		return slot{}, errors.NewBadRequest(fmt.Sprintf("%q is a field array, address one of its items", name), nil)
	}

	index, item := gs.find(parts[1])
	if item == nil {
		return slot{}, errors.NewNotFound(fmt.Sprintf("unknown item %q in %q", parts[1], gs.decl.Name), nil)
	}

	sub := ""
	if len(parts) == 3 {
		sub = parts[2]
	}
	if !gs.decl.Primitive() && sub == "" {
		return slot{}, errors.NewBadRequest(fmt.Sprintf("%q addresses an item, not one of its fields", name), nil)
	}

	state, ok := item.fields[sub]
	if !ok {
		return slot{}, errors.NewNotFound(fmt.Sprintf("unknown field %q", name), nil)
	}
	decl, _ := gs.template(sub)
	return slot{path: gs.path(index, sub), decl: decl, state: state, group: gs}, nil
}

// lookup gives rules read access to other fields.
func (f *Form) lookup(name string) (any, bool) {
	s, err := f.resolveSlot(name)
	if err != nil {
		return nil, false
	}
	return s.state.value, true
}

func (f *Form) evaluate(s slot) Result {
	failed, ok := validation.Evaluate(s.decl.Rules, s.state.value, f.lookup)
	if ok {
		return valid(s.path)
	}
	return Result{Field: s.path, Rule: failed.Name, Message: failed.Message}
}

func (f *Form) validateSlot(s slot) Result {
	result := f.evaluate(s)
	s.state.record(result)
	return result
}

func (f *Form) evaluateGroup(gs *groupState) Result {
	count := len(gs.items)
	for _, rule := range gs.decl.Rules {
		if msg, ok := rule.Check(count); !ok {
			return Result{Field: gs.decl.Name, Rule: rule.Name, Message: msg, Group: true}
		}
	}
	return Result{Field: gs.decl.Name, Valid: true, Group: true}
}

// eachSlot visits every leaf in declaration order.
func (f *Form) eachSlot(fn func(s slot)) {
	for _, decl := range f.def.Fields {
		fn(slot{path: decl.Name, decl: decl, state: f.fields[decl.Name]})
	}
	for _, gdecl := range f.def.Groups {
		gs := f.groups[gdecl.Name]
		for i, item := range gs.items {
			for _, tmpl := range gdecl.Item {
				fn(slot{path: gs.path(i, tmpl.Name), decl: tmpl, state: item.fields[tmpl.Name], group: gs})
			}
		}
	}
}

func (f *Form) evaluateAll(record bool) Results {
	results := make(Results)
	f.eachSlot(func(s slot) {
		result := f.evaluate(s)
		if record {
			s.state.record(result)
		}
		results[s.path] = result
	})
	for _, gdecl := range f.def.Groups {
		gs := f.groups[gdecl.Name]
		result := f.evaluateGroup(gs)
		if record {
			gs.record(result)
		}
		results[gdecl.Name] = result
	}
	return results
}

// revalidates decides whether a change to a field re-runs its rules.
func (f *Form) revalidates(state *fieldState) bool {
	return f.mode.validatesOnChange() || f.submitted || state.validated || (f.mode == OnTouched && state.touched)
}

func (f *Form) revalidateDependents(name string) {
	for _, ref := range f.dependents[name] {
		if ref.group == "" {
			state := f.fields[ref.name]
			if f.revalidates(state) {
				f.validateSlot(slot{path: ref.name, decl: f.fieldDecls[ref.name], state: state})
			}
			continue
		}
		gs := f.groups[ref.group]
		decl, _ := gs.template(ref.name)
		for i, item := range gs.items {
			state := item.fields[ref.name]
			if f.revalidates(state) {
				f.validateSlot(slot{path: gs.path(i, ref.name), decl: decl, state: state, group: gs})
			}
		}
	}
}

func (f *Form) revalidateGroup(gs *groupState) {
	if f.mode.validatesOnChange() || f.submitted || gs.validated {
		gs.record(f.evaluateGroup(gs))
	}
}

func (f *Form) notify(event Event) {
	if f.surface == nil {
		return
	}
	f.surface.Render(event, f.View())
}

// SetValue updates one leaf, marks it dirty and re-validates it and every field
// whose rules depend on it, as the mode dictates.
func (f *Form) SetValue(name string, value any) error {
	s, err := f.resolveSlot(name)
	if err != nil {
		return err
	}

	coerced, cerr := s.decl.kind().Coerce(value)
	if cerr != nil {
		return errors.NewBadRequest(fmt.Sprintf("invalid value for %q", name), cerr)
	}

	s.state.value = coerced
	s.state.dirty = true
	if f.revalidates(s.state) {
		f.validateSlot(s)
	}
	if s.group == nil {
		f.revalidateDependents(s.path)
	}

	f.notify(Event{Kind: EventChange, Name: s.path})
	return nil
}

// Touch records that a field lost focus.
func (f *Form) Touch(name string) error {
	s, err := f.resolveSlot(name)
	if err != nil {
		return err
	}

	s.state.touched = true
	if f.mode.validatesOnBlur() {
		f.validateSlot(s)
	}

	f.notify(Event{Kind: EventBlur, Name: s.path})
	return nil
}

// ValidateField runs the rules of one field, or the count rules when name is a
// group, and records the result. The first failing rule in declaration order wins.
func (f *Form) ValidateField(name string) (Result, error) {
	if gs, ok := f.groups[name]; ok {
		result := f.evaluateGroup(gs)
		gs.record(result)
		f.notify(Event{Kind: EventValidate, Name: name})
		return result, nil
	}

	s, err := f.resolveSlot(name)
	if err != nil {
		return Result{}, err
	}

	result := f.validateSlot(s)
	f.notify(Event{Kind: EventValidate, Name: s.path})
	return result, nil
}

// ValidateAll validates every field, every array instance and every group.
func (f *Form) ValidateAll() Results {
	results := f.evaluateAll(true)
	f.notify(Event{Kind: EventValidate})
	return results
}

// Submit validates the whole form. When everything passes the value bag is
// forwarded to the sink once and returned; otherwise a validation AppError
// carrying the ErrorMap is returned and nothing is forwarded.
func (f *Form) Submit() (ValueBag, *errors.AppError) {
	f.submitted = true
	f.submitCount++

	results := f.evaluateAll(true)
	if !results.Valid() {
		f.submitSuccessful = false
		verrs := results.ValidationErrors()
		zap.L().Debug("Form submission blocked", zap.String("form", f.def.Name), zap.Int("errors", len(verrs)))
		f.notify(Event{Kind: EventSubmit})
		return nil, errors.NewValidationFailed("Submission blocked", verrs)
	}

	f.submitSuccessful = true
	values := f.Values()
	if f.sink != nil {
		f.sink.Submit(values.Clone())
	}
	zap.L().Debug("Form submitted", zap.String("form", f.def.Name), zap.Int("attempt", f.submitCount))
	f.notify(Event{Kind: EventSubmit})
	if f.resetOnSubmit {
		f.Reset()
	}
	return values, nil
}

// Reset restores every default, drops recorded results and flags and
// recreates the initial array instances with fresh identities.
func (f *Form) Reset() {
	if err := f.initState(); err != nil {
		// - the initial items were accepted by New, so this cannot happen
		zap.L().Error("Form reset failed", zap.String("form", f.def.Name), zap.Error(err))
	}
	f.notify(Event{Kind: EventReset})
}

// Value returns the current value of a field, or the resolved array of a group.
func (f *Form) Value(name string) (any, error) {
	if _, ok := f.groups[name]; ok {
		return f.Values()[name], nil
	}
	s, err := f.resolveSlot(name)
	if err != nil {
		return nil, err
	}
	return deepCopy(s.state.value), nil
}

// Values returns a snapshot of the value bag.
func (f *Form) Values() ValueBag {
	bag := make(ValueBag, len(f.def.Fields)+len(f.def.Groups))
	for _, decl := range f.def.Fields {
		bag[decl.Name] = deepCopy(f.fields[decl.Name].value)
	}
	for _, gdecl := range f.def.Groups {
		gs := f.groups[gdecl.Name]
		items := make([]any, len(gs.items))
		for i, item := range gs.items {
			if gdecl.Primitive() {
				items[i] = deepCopy(item.fields[""].value)
				continue
			}
			values := make(map[string]any, len(gdecl.Item))
			for _, tmpl := range gdecl.Item {
				values[tmpl.Name] = deepCopy(item.fields[tmpl.Name].value)
			}
			items[i] = values
		}
		bag[gdecl.Name] = items
	}
	return bag
}

// Errors returns the recorded failures keyed by their current FieldName.
func (f *Form) Errors() ErrorMap {
	out := make(ErrorMap)
	f.eachSlot(func(s slot) {
		if s.state.failing {
			out[s.path] = s.state.message
		}
	})
	for name, gs := range f.groups {
		if gs.failing {
			out[name] = gs.message
		}
	}
	return out
}

// IsValid evaluates every rule without recording anything.
func (f *Form) IsValid() bool {
	return f.evaluateAll(false).Valid()
}

// IsDirty reports whether any field was edited or any array changed shape.
func (f *Form) IsDirty() bool {
	dirty := false
	f.eachSlot(func(s slot) {
		dirty = dirty || s.state.dirty
	})
	for _, gs := range f.groups {
		dirty = dirty || gs.dirty
	}
	return dirty
}

// Mode returns the active validation mode.
func (f *Form) Mode() Mode {
	return f.mode
}

// Definition returns the definition the form was mounted with.
func (f *Form) Definition() Definition {
	return f.def
}

// Submitted reports whether a submission was attempted since mount or the last reset.
func (f *Form) Submitted() bool {
	return f.submitted
}

// SubmitCount returns the number of submission attempts.
func (f *Form) SubmitCount() int {
	return f.submitCount
}
