package validation

import (
	"fmt"
	"unicode/utf8"
)

// Kind is the declared type of a field value.
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindFile   Kind = "file"
)

// ParseKind maps a declaration type name onto a Kind; empty means string.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "", "string", "text", "email", "tel", "password":
		return KindString, nil
	case "bool", "boolean", "checkbox":
		return KindBool, nil
	case "file", "files":
		return KindFile, nil
	default:
		return "", fmt.Errorf("unsupported field type %q", name)
	}
}

// FileRef is the metadata of a selected file. The bytes are never read.
type FileRef struct {
	Name string `json:"name" yaml:"name"`
	Size int64  `json:"size" yaml:"size"`
	Type string `json:"type" yaml:"type"`
}

// FileList is the value of a file field; an empty list means no file selected.
type FileList []FileRef

// Clone returns a copy of the list that never aliases l.
func (l FileList) Clone() FileList {
	out := make(FileList, len(l))
	copy(out, l)
	return out
}

// ZeroValue is the value a field of kind k takes when no default is declared.
func (k Kind) ZeroValue() any {
	switch k {
	case KindBool:
		return false
	case KindFile:
		return FileList{}
	default:
		return ""
	}
}

// Coerce checks value against k and normalises the accepted shapes. Nil is
// accepted for every kind and stands for an absent value.
func (k Kind) Coerce(value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	switch k {
	case KindString:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case KindBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	case KindFile:
		switch typed := value.(type) {
		case FileList:
			return typed.Clone(), nil
		case []FileRef:
			return FileList(typed).Clone(), nil
		case FileRef:
			return FileList{typed}, nil
		case *FileRef:
			if typed == nil {
				return FileList{}, nil
			}
			return FileList{*typed}, nil
		}
	}

	return nil, fmt.Errorf("cannot use %T as a %s value", value, k)
}

// IsEmpty reports whether value counts as "nothing entered": absent, an empty
// string, an empty file list or an empty array.
func IsEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case FileList:
		return len(typed) == 0
	case []FileRef:
		return len(typed) == 0
	case []any:
		return len(typed) == 0
	default:
		return false
	}
}

func stringLength(s string) int {
	return utf8.RuneCountInString(s)
}
