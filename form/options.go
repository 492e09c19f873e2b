package form

// Option customises a Form at construction time.
type Option func(*Form)

// WithMode overrides the validation mode declared by the definition.
func WithMode(mode Mode) Option {
	return func(f *Form) {
		f.mode = mode
	}
}

// WithSurface registers the surface notified after every mutation.
func WithSurface(surface Surface) Option {
	return func(f *Form) {
		f.surface = surface
	}
}

// WithSink registers the sink receiving successful submissions.
func WithSink(sink Sink) Option {
	return func(f *Form) {
		f.sink = sink
	}
}

// WithResetOnSubmit restores the defaults after every successful submission,
// once the sink has received the values.
func WithResetOnSubmit() Option {
	return func(f *Form) {
		f.resetOnSubmit = true
	}
}
