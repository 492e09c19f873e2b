package form

import (
	"context"
	"testing"

	"github.com/Swochhanda14/frontbooth/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const teamSchema = `
name: team
title: Team
mode: onChange
fields:
  - name: lead
    tags: email
    rules:
      - {kind: required, message: Lead email is required}
groups:
  - name: members
    min: 1
    min_message: Add at least one member
    max: 2
    max_message: Teams have at most two members
    initial:
      - {name: ""}
    item:
      - name: name
        rules:
          - {kind: required, message: Member name is required}
          - {kind: minLength, value: 2}
  - name: phone
    item:
      - rules:
          - {kind: pattern, value: '[0-9]{10}', message: Ten digits please}
`

func TestLoadSchema(t *testing.T) {
	def, err := LoadSchema(context.Background(), nil, []byte(teamSchema))
	require.NoError(t, err)
	assert.Equal(t, "team", def.Name)
	assert.Equal(t, "Team", def.Title)
	assert.Equal(t, OnChange, def.Mode)
	require.Len(t, def.Groups, 2)
	assert.True(t, def.Groups[1].Primitive())

	f := mount(t, def)

	require.NoError(t, f.SetValue("lead", "not-an-email"))
	assert.Equal(t, "Failed on validation tag 'email'", f.Errors()["lead"])
	require.NoError(t, f.SetValue("lead", "lead@example.com"))
	assert.NotContains(t, f.Errors(), "lead")

	require.NoError(t, f.SetValue("members.0.name", "a"))
	assert.Equal(t, "Must be at least 2 characters", f.Errors()["members.0.name"])

	_, err = f.AddArrayItem("members", map[string]any{"name": "bo"})
	require.NoError(t, err)
	_, err = f.AddArrayItem("members", map[string]any{"name": "cy"})
	require.NoError(t, err)
	assert.Equal(t, "Teams have at most two members", f.Errors()["members"])

	_, err = f.AddArrayItem("phone", "12")
	require.NoError(t, err)
	require.NoError(t, f.SetValue("phone.0", "123"))
	assert.Equal(t, "Ten digits please", f.Errors()["phone.0"])
	assertNoOrphans(t, f)
}

func TestLoadSchemaErrors(t *testing.T) {
	testCases := []struct {
		name     string
		document string
	}{
		{"not yaml", "name: [unterminated"},
		{"missing name", "fields: []"},
		{"unknown key", "name: x\ncolour: red"},
		{"unknown mode", "name: x\nmode: eager"},
		{"unknown type", "name: x\nfields:\n  - name: a\n    type: date"},
		{"unknown rule", "name: x\nfields:\n  - name: a\n    rules: [{kind: shout}]"},
		{"bad pattern", "name: x\nfields:\n  - name: a\n    rules: [{kind: pattern, value: '[a-'}]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadSchema(context.Background(), nil, []byte(tc.document))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.CodeInvalidArgument))
		})
	}

	_, err := FromSchema(context.Background(), nil, nil)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidArgument))
}
