package form

import (
	"testing"

	"github.com/Swochhanda14/frontbooth/errors"
	"github.com/Swochhanda14/frontbooth/validation"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupDefinition(mode Mode) Definition {
	return Definition{
		Name: "signup",
		Mode: mode,
		Fields: []Field{
			{Name: "name", Rules: []validation.Rule{
				validation.Required("Username is required"),
				validation.MinLength(3, "Must be atleast 3 character long"),
			}},
			{Name: "password", Rules: []validation.Rule{
				validation.Required("Password is required"),
				validation.MinLength(8, "Password must be at least 8 characters"),
			}},
			{Name: "confirmpassword", Rules: []validation.Rule{
				validation.Required("Confirm Password is required"),
				validation.EqualsField("password", "Passwords must match"),
			}},
			{Name: "newsletter", Kind: validation.KindBool, Default: true},
		},
	}
}

func mount(t *testing.T, def Definition, opts ...Option) *Form {
	t.Helper()
	f, err := New(def, opts...)
	require.NoError(t, err)
	return f
}

// assertNoOrphans checks that every error path resolves in the value bag.
func assertNoOrphans(t *testing.T, f *Form) {
	t.Helper()
	bag := f.Values()
	for path := range f.Errors() {
		_, ok := bag.Get(path)
		assert.True(t, ok, "error path %q has no value", path)
	}
}

func TestNewSeedsDefaults(t *testing.T) {
	f := mount(t, signupDefinition(OnSubmit))

	assert.Equal(t, ValueBag{
		"name":            "",
		"password":        "",
		"confirmpassword": "",
		"newsletter":      true,
	}, f.Values())
	assert.Empty(t, f.Errors())
	assert.False(t, f.IsDirty())
	assert.False(t, f.Submitted())
}

func TestValidateFieldFirstFailingRuleWins(t *testing.T) {
	f := mount(t, signupDefinition(OnSubmit))

	result, err := f.ValidateField("name")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "required", result.Rule)
	assert.Equal(t, "Username is required", result.Message)

	require.NoError(t, f.SetValue("name", "ab"))
	result, err = f.ValidateField("name")
	require.NoError(t, err)
	assert.Equal(t, "Must be atleast 3 character long", result.Message)

	require.NoError(t, f.SetValue("name", "abc"))
	result, err = f.ValidateField("name")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Message)
}

func TestValidateAllIsIdempotent(t *testing.T) {
	f := mount(t, signupDefinition(OnSubmit))
	require.NoError(t, f.SetValue("name", "ab"))
	require.NoError(t, f.SetValue("password", "abc12345"))

	first := f.ValidateAll()
	second := f.ValidateAll()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("ValidateAll not idempotent (-first +second):\n%s", diff)
	}
	assert.Equal(t, ErrorMap{
		"name":            "Must be atleast 3 character long",
		"confirmpassword": "Confirm Password is required",
	}, first.Errors())
	assert.Equal(t, first.Errors(), f.Errors())
}

func TestCrossFieldRevalidation(t *testing.T) {
	f := mount(t, signupDefinition(OnSubmit))

	require.NoError(t, f.SetValue("password", "abc12345"))
	require.NoError(t, f.SetValue("confirmpassword", "abc12345"))
	result, err := f.ValidateField("confirmpassword")
	require.NoError(t, err)
	require.True(t, result.Valid)

	// - confirmpassword is not touched again, yet its recorded result must not go stale
	require.NoError(t, f.SetValue("password", "different"))
	assert.Equal(t, "Passwords must match", f.Errors()["confirmpassword"])

	results := f.ValidateAll()
	assert.False(t, results["confirmpassword"].Valid)
	assert.Equal(t, "equalsField", results["confirmpassword"].Rule)

	require.NoError(t, f.SetValue("confirmpassword", "different"))
	assert.NotContains(t, f.Errors(), "confirmpassword")
}

func TestCrossFieldRevalidationEager(t *testing.T) {
	f := mount(t, signupDefinition(OnChange))

	require.NoError(t, f.SetValue("password", "abc12345"))
	// - the dependent is re-evaluated even though it was never edited
	assert.Equal(t, "Confirm Password is required", f.Errors()["confirmpassword"])

	require.NoError(t, f.SetValue("confirmpassword", "abc12345"))
	assert.NotContains(t, f.Errors(), "confirmpassword")

	require.NoError(t, f.SetValue("password", "abc123456"))
	assert.Equal(t, "Passwords must match", f.Errors()["confirmpassword"])
}

func TestOnSubmitModeDoesNotValidateBeforeSubmit(t *testing.T) {
	f := mount(t, signupDefinition(OnSubmit))

	require.NoError(t, f.SetValue("name", "a"))
	assert.Empty(t, f.Errors())

	_, appErr := f.Submit()
	require.NotNil(t, appErr)

	// - after a submit attempt every change re-validates
	require.NoError(t, f.SetValue("name", "abcd"))
	assert.NotContains(t, f.Errors(), "name")
	require.NoError(t, f.SetValue("name", ""))
	assert.Equal(t, "Username is required", f.Errors()["name"])
}

func TestBlurModes(t *testing.T) {
	t.Run("onBlur validates on touch only", func(t *testing.T) {
		f := mount(t, signupDefinition(OnBlur))
		require.NoError(t, f.SetValue("name", "a"))
		assert.Empty(t, f.Errors())

		require.NoError(t, f.Touch("name"))
		assert.Equal(t, "Must be atleast 3 character long", f.Errors()["name"])
	})

	t.Run("onTouched validates every change after the first blur", func(t *testing.T) {
		f := mount(t, signupDefinition(OnTouched))
		require.NoError(t, f.Touch("name"))
		assert.Equal(t, "Username is required", f.Errors()["name"])

		require.NoError(t, f.SetValue("name", "abc"))
		assert.Empty(t, f.Errors())
	})

	t.Run("onSubmit ignores blur", func(t *testing.T) {
		f := mount(t, signupDefinition(OnSubmit))
		require.NoError(t, f.Touch("name"))
		assert.Empty(t, f.Errors())
		assert.True(t, f.View().Fields[0].Touched)
	})
}

func TestSetValueErrors(t *testing.T) {
	f := mount(t, skillsDefinition())

	err := f.SetValue("nope", "x")
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))

	err = f.SetValue("developer", true)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidArgument))

	err = f.SetValue("skills", []any{})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidArgument))

	err = f.SetValue("skills.0", "x")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidArgument))

	err = f.SetValue("skills.7.name", "x")
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))

	err = f.SetValue("skills.0.level", "x")
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))

	_, verr := f.ValidateField("nope")
	assert.True(t, errors.HasCode(verr, errors.CodeNotFound))

	// - nothing changed
	assert.False(t, f.IsDirty())
}

func TestBoolAndNilValues(t *testing.T) {
	f := mount(t, signupDefinition(OnChange))

	require.NoError(t, f.SetValue("newsletter", false))
	value, err := f.Value("newsletter")
	require.NoError(t, err)
	assert.Equal(t, false, value)

	// - nil means absent and fails required
	require.NoError(t, f.SetValue("name", nil))
	assert.Equal(t, "Username is required", f.Errors()["name"])
}

func TestSubmitBlocked(t *testing.T) {
	var forwarded []ValueBag
	f := mount(t, signupDefinition(OnSubmit), WithSink(SinkFunc(func(values ValueBag) {
		forwarded = append(forwarded, values)
	})))

	require.NoError(t, f.SetValue("name", "ab"))
	require.NoError(t, f.SetValue("password", "abc12345"))
	require.NoError(t, f.SetValue("confirmpassword", "abc12345"))

	values, appErr := f.Submit()
	require.NotNil(t, appErr)
	assert.Nil(t, values)
	assert.Empty(t, forwarded)
	assert.Equal(t, errors.CodeValidationFailed, appErr.Code)
	assert.Equal(t, map[string]string{"name": "Must be atleast 3 character long"}, appErr.Details)

	var verrs errors.ValidationErrors
	require.ErrorAs(t, appErr, &verrs)
	assert.Equal(t, errors.ValidationErrors{
		errors.FieldError{Field: "name", Rule: "minLength", Message: "Must be atleast 3 character long"},
	}, verrs)

	assert.True(t, f.Submitted())
	assert.Equal(t, 1, f.SubmitCount())
	assert.Equal(t, "ab", f.Values()["name"])
}

func TestSubmitSuccessForwardsOnce(t *testing.T) {
	var forwarded []ValueBag
	f := mount(t, signupDefinition(OnSubmit), WithSink(SinkFunc(func(values ValueBag) {
		forwarded = append(forwarded, values)
	})))

	require.NoError(t, f.SetValue("name", "ab"))
	require.NoError(t, f.SetValue("password", "abc12345"))
	require.NoError(t, f.SetValue("confirmpassword", "abc12345"))
	_, appErr := f.Submit()
	require.NotNil(t, appErr)

	require.NoError(t, f.SetValue("name", "abc"))
	values, appErr := f.Submit()
	require.Nil(t, appErr)

	expected := ValueBag{
		"name":            "abc",
		"password":        "abc12345",
		"confirmpassword": "abc12345",
		"newsletter":      true,
	}
	assert.Equal(t, expected, values)
	require.Len(t, forwarded, 1)
	assert.Equal(t, expected, forwarded[0])
	assert.True(t, f.View().SubmitSuccessful)
	assert.Equal(t, 2, f.SubmitCount())

	// - the sink gets its own copy
	forwarded[0]["name"] = "mutated"
	assert.Equal(t, "abc", f.Values()["name"])
}

func TestIsValidDoesNotRecord(t *testing.T) {
	f := mount(t, signupDefinition(OnSubmit))

	assert.False(t, f.IsValid())
	assert.Empty(t, f.Errors())
}

func TestReset(t *testing.T) {
	f := mount(t, skillsDefinition())
	before, err := f.ArrayItems("skills")
	require.NoError(t, err)

	require.NoError(t, f.SetValue("developer", "ada"))
	_, err = f.AddArrayItem("skills", nil)
	require.NoError(t, err)
	_, appErr := f.Submit()
	require.NotNil(t, appErr)

	f.Reset()

	assert.Equal(t, ValueBag{
		"developer": "",
		"skills":    []any{map[string]any{"name": ""}},
	}, f.Values())
	assert.Empty(t, f.Errors())
	assert.False(t, f.Submitted())
	assert.Zero(t, f.SubmitCount())
	assert.False(t, f.IsDirty())

	after, err := f.ArrayItems("skills")
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.NotEqual(t, before[0], after[0])
}

func TestNewRejectsBadDefinitions(t *testing.T) {
	testCases := []struct {
		name string
		def  Definition
		code errors.Code
	}{
		{"empty field name", Definition{Fields: []Field{{}}}, errors.CodeInvalidArgument},
		{"dotted field name", Definition{Fields: []Field{{Name: "a.b"}}}, errors.CodeInvalidArgument},
		{"duplicate names", Definition{
			Fields: []Field{{Name: "phone"}},
			Groups: []Group{{Name: "phone", Item: []Field{{}}}},
		}, errors.CodeConflict},
		{"group without items", Definition{Groups: []Group{{Name: "skills"}}}, errors.CodeInvalidArgument},
		{"duplicate item names", Definition{Groups: []Group{{Name: "skills", Item: []Field{{Name: "a"}, {Name: "a"}}}}}, errors.CodeConflict},
		{"bad default", Definition{Fields: []Field{{Name: "a", Kind: validation.KindBool, Default: "yes"}}}, errors.CodeInvalidArgument},
		{"dangling dependency", Definition{Fields: []Field{{Name: "confirm", Rules: []validation.Rule{
			validation.EqualsField("password", ""),
		}}}}, errors.CodeNotFound},
		{"bad initial item", Definition{Groups: []Group{{
			Name:    "skills",
			Item:    []Field{{Name: "name"}},
			Initial: []any{"not an object"},
		}}}, errors.CodeInvalidArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.def)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tc.code), "expected %s, got %v", tc.code, err)
		})
	}
}

func TestModeOption(t *testing.T) {
	f := mount(t, signupDefinition(OnSubmit), WithMode(OnChange))
	assert.Equal(t, OnChange, f.Mode())

	require.NoError(t, f.SetValue("name", "a"))
	assert.Contains(t, f.Errors(), "name")
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"onSubmit", "onChange", "onBlur", "onTouched", "all"} {
		mode, err := ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, name, mode.String())
	}

	mode, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, OnSubmit, mode)

	_, err = ParseMode("eager")
	assert.Error(t, err)

	var decoded Mode
	require.NoError(t, decoded.UnmarshalText([]byte("onBlur")))
	assert.Equal(t, OnBlur, decoded)
}

func TestResetOnSubmit(t *testing.T) {
	var forwarded []ValueBag
	rec := &recorder{}
	f := mount(t, signupDefinition(OnSubmit),
		WithResetOnSubmit(),
		WithSurface(rec),
		WithSink(SinkFunc(func(values ValueBag) {
			forwarded = append(forwarded, values)
		})),
	)

	require.NoError(t, f.SetValue("name", "ab"))
	_, appErr := f.Submit()
	require.NotNil(t, appErr)
	// - a blocked submission keeps the answers
	assert.Equal(t, "ab", f.Values()["name"])

	require.NoError(t, f.SetValue("name", "abc"))
	require.NoError(t, f.SetValue("password", "abc12345"))
	require.NoError(t, f.SetValue("confirmpassword", "abc12345"))
	values, appErr := f.Submit()
	require.Nil(t, appErr)
	require.Len(t, forwarded, 1)
	assert.Equal(t, "abc", values["name"])
	assert.Equal(t, "abc", forwarded[0]["name"])

	assert.Equal(t, "", f.Values()["name"])
	assert.False(t, f.Submitted())
	assert.False(t, f.IsDirty())
	assert.Empty(t, f.Errors())
	assert.Equal(t, EventReset, rec.events[len(rec.events)-1].Kind)
}
