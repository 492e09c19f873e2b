package helpers

import "time"

// DefaultString returns the defaultValue if the provided value is an empty string.
// Otherwise, it returns the original value.
func DefaultString(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

// DefaultInt64 returns the defaultValue if the provided value is 0 or negative.
// Size and cost bounds use it, where a non-positive bound means "not configured".
func DefaultInt64(value int64, defaultValue int64) int64 {
	if value <= 0 {
		return defaultValue
	}
	return value
}

// DefaultTimeDuration returns the defaultValue if the provided value is 0 (the zero value for time.Duration).
// Otherwise, it returns the original value.
func DefaultTimeDuration(value time.Duration, defaultValue time.Duration) time.Duration {
	if value == 0 {
		return defaultValue
	}
	return value
}

// DefaultStrings returns a copy of defaultValue when value is empty, otherwise a copy of value.
func DefaultStrings(value []string, defaultValue []string) []string {
	if len(value) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return append([]string(nil), value...)
}
