package form

import "fmt"

// Mode selects when fields are validated, mirroring the browser-side
// onSubmit/onChange/onBlur/onTouched/all strategies.
type Mode int

const (
	// OnSubmit validates at submit time; after the first attempt every change re-validates.
	OnSubmit Mode = iota
	// OnChange validates a field on every change.
	OnChange
	// OnBlur validates a field when it loses focus.
	OnBlur
	// OnTouched validates on the first blur and on every change after that.
	OnTouched
	// All validates on blur and on change.
	All
)

var modeNames = map[Mode]string{
	OnSubmit:  "onSubmit",
	OnChange:  "onChange",
	OnBlur:    "onBlur",
	OnTouched: "onTouched",
	All:       "all",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a mode name onto a Mode. The empty string is OnSubmit.
func ParseMode(name string) (Mode, error) {
	if name == "" {
		return OnSubmit, nil
	}
	for mode, candidate := range modeNames {
		if candidate == name {
			return mode, nil
		}
	}
	return OnSubmit, fmt.Errorf("form: unknown mode %q", name)
}

// UnmarshalText lets configuration decoders read a Mode from its name.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText writes the mode name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m Mode) validatesOnChange() bool {
	return m == OnChange || m == All
}

func (m Mode) validatesOnBlur() bool {
	return m == OnBlur || m == OnTouched || m == All
}
