package form

import (
	"testing"

	"github.com/Swochhanda14/frontbooth/validation"
	"github.com/stretchr/testify/assert"
)

func TestValueBagGet(t *testing.T) {
	bag := ValueBag{
		"name":   "ada",
		"skills": []any{map[string]any{"name": "go"}, map[string]any{"name": "rust"}},
		"phone":  []any{"0123456789"},
	}

	testCases := []struct {
		path  string
		value any
		found bool
	}{
		{"name", "ada", true},
		{"skills.1.name", "rust", true},
		{"skills.0", map[string]any{"name": "go"}, true},
		{"phone.0", "0123456789", true},
		{"phone.1", nil, false},
		{"phone.-1", nil, false},
		{"skills.x.name", nil, false},
		{"name.first", nil, false},
		{"missing", nil, false},
		{"", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			value, found := bag.Get(tc.path)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.value, value)
		})
	}
}

func TestValueBagCloneIsDeep(t *testing.T) {
	bag := ValueBag{
		"skills": []any{map[string]any{"name": "go"}},
		"avatar": validation.FileList{{Name: "a.png", Size: 1, Type: "image/png"}},
	}

	clone := bag.Clone()
	clone["skills"].([]any)[0].(map[string]any)["name"] = "rust"
	clone["avatar"].(validation.FileList)[0].Name = "b.png"

	value, _ := bag.Get("skills.0.name")
	assert.Equal(t, "go", value)
	assert.Equal(t, "a.png", bag["avatar"].(validation.FileList)[0].Name)

	var empty ValueBag
	assert.Nil(t, empty.Clone())
}
