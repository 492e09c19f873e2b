package form

// EventKind names the operation that changed the form.
type EventKind string

const (
	EventChange   EventKind = "change"
	EventBlur     EventKind = "blur"
	EventValidate EventKind = "validate"
	EventAdd      EventKind = "add"
	EventRemove   EventKind = "remove"
	EventMove     EventKind = "move"
	EventSubmit   EventKind = "submit"
	EventReset    EventKind = "reset"
)

// Event describes a mutation. Name is the FieldName or group the operation targeted.
type Event struct {
	Kind EventKind
	Name string
	// ID is the instance identity for array operations.
	ID string
}

// Surface displays the form. Render is called after every mutating operation,
// once the value update and its dependent re-validations are complete.
type Surface interface {
	Render(event Event, view View)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(event Event, view View)

func (fn SurfaceFunc) Render(event Event, view View) { fn(event, view) }

// Sink receives the value bag of a successful submission.
type Sink interface {
	Submit(values ValueBag)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(values ValueBag)

func (fn SinkFunc) Submit(values ValueBag) { fn(values) }

// FieldView is what a surface needs to draw one input.
type FieldView struct {
	Name    string
	Value   any
	Message string
	Dirty   bool
	Touched bool
	// Visible is true when Message should be shown: the field was edited,
	// blurred, or a submission was attempted.
	Visible bool
}

// ItemView is one instance of a field array.
type ItemView struct {
	ID     string
	Index  int
	Fields []FieldView
}

// GroupView is a field array with its group-level message.
type GroupView struct {
	Name    string
	Items   []ItemView
	Message string
	Visible bool
}

// View is a read-only rendering model of the whole form.
type View struct {
	Name             string
	Title            string
	Fields           []FieldView
	Groups           []GroupView
	Submitted        bool
	SubmitCount      int
	SubmitSuccessful bool
	Dirty            bool
	Errors           ErrorMap
}
