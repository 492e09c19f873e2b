package helpers

import "github.com/google/uuid"

// NewIdentity returns a fresh identity for a field array instance. Identities are
// never reused or renumbered, unlike the positional index of an instance.
func NewIdentity() string {
	return uuid.NewString()
}

// IsIdentity reports whether s looks like an identity produced by NewIdentity.
func IsIdentity(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
