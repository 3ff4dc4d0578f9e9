package rrtf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
kinds:
  a:
    optional:
      - id: name
        description: display name
        pattern: "^[A-Z]+$"
        max_length: 5
      - id: suffix
        enum: ["!", "!!"]
        fallback: "!"
  r:
    required:
      - id: level
        min: 1
        max: 3
        fallback: "1"
      - id: label
        not_empty: true
`

func TestLoadOptionSchema(t *testing.T) {
	schema, err := LoadOptionSchema([]byte(testSchema))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "r"}, schema.KindNames())

	decl, ok := schema.Decl("a")
	require.True(t, ok)
	require.Len(t, decl.Optional, 2)

	name := decl.Optional[0]
	assert.Equal(t, "display name", name.Description)
	assert.True(t, name.Validate("ABC"))
	assert.False(t, name.Validate("abc"))
	assert.False(t, name.Validate("ABCDEF"))
	assert.False(t, name.HasFallback)

	suffix := decl.Optional[1]
	assert.True(t, suffix.HasFallback)
	assert.Equal(t, "!", suffix.Fallback)
	assert.False(t, suffix.Validate("?"))

	r, ok := schema.Decl("r")
	require.True(t, ok)
	assert.True(t, r.IsRequired("level"))
	assert.True(t, r.Required[0].Validate("3"))
	assert.False(t, r.Required[0].Validate("4"))
	assert.False(t, r.Required[1].Validate(""))

	_, ok = schema.Decl("missing")
	assert.False(t, ok)
}

func TestLoadOptionSchema_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{
			name: "invalid yaml",
			yaml: "kinds: [",
			msg:  ErrMsgSchemaInvalid,
		},
		{
			name: "empty id",
			yaml: "kinds:\n  a:\n    optional:\n      - description: x\n",
			msg:  ErrMsgSchemaEmptyID,
		},
		{
			name: "invalid id",
			yaml: "kinds:\n  a:\n    optional:\n      - id: \"bad id\"\n",
			msg:  ErrMsgSchemaInvalidID,
		},
		{
			name: "bad pattern",
			yaml: "kinds:\n  a:\n    optional:\n      - id: x\n        pattern: \"(\"\n",
			msg:  ErrMsgSchemaPattern,
		},
		{
			name: "inverted range",
			yaml: "kinds:\n  a:\n    optional:\n      - id: x\n        min: 5\n        max: 1\n",
			msg:  ErrMsgSchemaInvalidRange,
		},
		{
			name: "fallback fails constraints",
			yaml: "kinds:\n  a:\n    optional:\n      - id: x\n        enum: [p, q]\n        fallback: z\n",
			msg:  ErrMsgSchemaFallbackValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadOptionSchema([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestApply(t *testing.T) {
	schema, err := LoadOptionSchema([]byte(testSchema))
	require.NoError(t, err)

	a := Apply(schema, aKind())
	assert.Len(t, a.Options().Optional, 2)

	b := bKind()
	assert.Same(t, b, Apply(schema, b))

	p, err := NewPortfolio([]Kind[string]{rootKind(), a}, nil)
	require.NoError(t, err)

	encoded, err := p.Canonicalize(`[a(name="lower",suffix="?")]1[/a]`)
	require.NoError(t, err)
	assert.Equal(t, `[a(suffix="!")]1[/a]`, encoded)

	out, err := p.Render(`[a(name="OK")]1[/a]`)
	require.NoError(t, err)
	assert.Equal(t, "The value of OK is 1", out)
}

func TestOptionSchema_Nil(t *testing.T) {
	var schema *OptionSchema
	_, ok := schema.Decl("a")
	assert.False(t, ok)
	assert.Nil(t, schema.KindNames())

	a := aKind()
	assert.Same(t, a, Apply(schema, a))
}
