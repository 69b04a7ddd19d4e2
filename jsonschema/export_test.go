package jsonschema_test

import (
	"testing"

	j "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equinor/configsuite/jsonschema"
	"github.com/equinor/configsuite/schema"
)

func TestFromNode_Record(t *testing.T) {
	n := &schema.Record{
		Attrs: schema.Attrs{Description: "A hero"},
		Fields: []schema.Field{
			{Name: "name", Node: &schema.Basic{Type: schema.String}},
			{Name: "strength", Node: &schema.Basic{Type: schema.Integer, Attrs: schema.Attrs{Default: 10}}},
			{Name: "nick", Node: &schema.Basic{Type: schema.String, Attrs: schema.Attrs{AllowNone: true}}},
			{Name: "born", Node: &schema.Basic{Type: schema.Date}},
			{Name: "powers", Node: &schema.List{Item: &schema.Basic{Type: schema.String}, Attrs: schema.Attrs{AllowEmpty: schema.BoolPtr(false)}}},
			{Name: "allies", Node: &schema.Map{Key: &schema.Basic{Type: schema.String}, Value: &schema.Basic{Type: schema.Number}}},
			{Name: "alias", Node: schema.DeprecatedAlias("name", "")},
		},
	}
	s := jsonschema.FromNode(n)

	assert.Equal(t, jsonschema.Draft, s.Schema)
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, "A hero", s.Description)
	assert.Equal(t, false, s.AdditionalProperties)
	assert.Equal(t, []string{"name", "born", "powers", "allies"}, s.Required)

	assert.Equal(t, 10, s.Properties["strength"].Default)
	require.Len(t, s.Properties["nick"].OneOf, 2)
	assert.Equal(t, "null", s.Properties["nick"].OneOf[1].Type)
	assert.Equal(t, "date", s.Properties["born"].Format)
	assert.Equal(t, 1, *s.Properties["powers"].MinItems)
	assert.Equal(t, "number", s.Properties["allies"].AdditionalProperties.(*jsonschema.Schema).Type)
	assert.True(t, s.Properties["alias"].Deprecated)
}

func TestMarshal(t *testing.T) {
	s := jsonschema.FromNode(&schema.List{Item: &schema.Basic{Type: schema.Bool}})
	b, err := jsonschema.Marshal(s)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, j.Unmarshal(b, &got))
	assert.Equal(t, "array", got["type"])
	assert.Equal(t, map[string]any{"type": "boolean"}, got["items"])
	_, hasMin := got["minItems"]
	assert.False(t, hasMin)
}
