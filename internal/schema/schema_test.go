package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleArgs struct {
	A string `json:"a" description:"Field A"`
	B *int   `json:"b" description:"Optional pointer"`
	C int    `json:"c,omitempty"`
	d bool   //nolint:unused // unexported fields are skipped
}

func TestFromStruct(t *testing.T) {
	sch := FromStruct(sampleArgs{})
	props, ok := sch["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "a")
	assert.Contains(t, props, "b")
	assert.Contains(t, props, "c")
	assert.NotContains(t, props, "d")

	a, _ := props["a"].(map[string]any)
	assert.Equal(t, "string", a["type"])
	assert.Equal(t, "Field A", a["description"])

	// Pointer and omitempty fields are optional.
	req, _ := sch["required"].([]string)
	assert.ElementsMatch(t, []string{"a"}, req)
}

func TestFromStructNonStruct(t *testing.T) {
	sch := FromStruct(42)
	assert.Equal(t, "object", sch["type"])
	assert.Empty(t, sch["properties"])
}

func TestValidate(t *testing.T) {
	sch := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
			"s": map[string]any{"type": "string"},
		},
		// []any mirrors a schema round-tripped through JSON.
		"required": []any{"x"},
	}

	assert.NoError(t, Validate(map[string]any{"x": 5}, sch))
	// JSON numbers decode as float64; whole values still count as integers.
	assert.NoError(t, Validate(map[string]any{"x": float64(5)}, sch))
	// Extra fields pass through.
	assert.NoError(t, Validate(map[string]any{"x": 1, "extra": true}, sch))

	err := Validate(map[string]any{}, sch)
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "x", vErr.Field)

	err = Validate(map[string]any{"x": "five"}, sch)
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "expected integer")

	err = Validate(map[string]any{"x": 1, "s": 2}, sch)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "s", vErr.Field)
}

func TestValidateTypeMatrix(t *testing.T) {
	cases := []struct {
		typ   string
		ok    any
		notOK any
	}{
		{"string", "s", 1},
		{"number", 1.5, "s"},
		{"boolean", true, "true"},
		{"array", []any{1}, "x"},
		{"object", map[string]any{}, []any{}},
	}
	for _, tc := range cases {
		sch := map[string]any{
			"type":       "object",
			"properties": map[string]any{"v": map[string]any{"type": tc.typ}},
		}
		assert.NoError(t, Validate(map[string]any{"v": tc.ok}, sch), tc.typ)
		assert.Error(t, Validate(map[string]any{"v": tc.notOK}, sch), tc.typ)
		// nil is always acceptable.
		assert.NoError(t, Validate(map[string]any{"v": nil}, sch), tc.typ)
	}
}
