package schema_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equinor/configsuite/schema"
)

func heroDocument() map[string]any {
	return map[string]any{
		"type":        "record",
		"description": "A hero",
		"content": map[string]any{
			"name": map[string]any{"type": "string", "element_validators": []any{"non_empty"}},
			"strength": map[string]any{
				"type":    "integer",
				"default": int64(10),
			},
			"powers": map[string]any{
				"type":        "list",
				"allow_empty": false,
				"content": map[string]any{
					"item": map[string]any{"type": "string", "transformation": "upper"},
				},
			},
			"allies": map[string]any{
				"type": "map",
				"content": map[string]any{
					"key":   map[string]any{"type": "string"},
					"value": map[string]any{"type": "positive"},
				},
			},
			"hero_name": map[string]any{"deprecated": "name", "description": "use name"},
		},
	}
}

func decodeOptions() []schema.DecodeOption {
	positive := schema.NewBasicType("positive", "Is x a positive integer", func(v any) bool {
		n, ok := v.(int64)
		return ok && n > 0
	})
	return []schema.DecodeOption{
		schema.WithTypes(positive),
		schema.WithValidators(map[string]schema.Validator{
			"non_empty": schema.NewValidator("Is x non-empty", func(v any) bool { return v != "" }),
		}),
		schema.WithTransformations(map[string]*schema.Transformation{
			"upper": schema.NewTransformation("uppercase", func(v any) (any, error) {
				return strings.ToUpper(v.(string)), nil
			}),
		}),
	}
}

func TestDecode_Hero(t *testing.T) {
	n, err := schema.Decode(heroDocument(), decodeOptions()...)
	require.NoError(t, err)
	require.NoError(t, schema.Check(n, schema.CheckOptions{}))

	r, ok := n.(*schema.Record)
	require.True(t, ok)
	assert.Equal(t, "A hero", r.Description)
	names := []string{}
	for _, f := range r.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"allies", "hero_name", "name", "powers", "strength"}, names)

	strength, _ := r.Field("strength")
	assert.Equal(t, int64(10), strength.Attributes().Default)

	powers, _ := r.Field("powers")
	require.IsType(t, &schema.List{}, powers)
	assert.False(t, schema.AllowsEmpty(powers))
	assert.NotNil(t, powers.(*schema.List).Item.Attributes().Transformation)

	allies, _ := r.Field("allies")
	assert.Equal(t, "positive", allies.(*schema.Map).Value.(*schema.Basic).Type.Name)

	alias, _ := r.Field("hero_name")
	assert.True(t, schema.IsDeprecated(alias))

	name, _ := r.Field("name")
	require.Len(t, name.Attributes().ElementValidators, 1)
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  any
		kind error
	}{
		{"not a mapping", []any{}, schema.ErrType},
		{"missing type", map[string]any{"description": "x"}, schema.ErrKey},
		{"unknown key", map[string]any{"type": "string", "colour": "red"}, schema.ErrKey},
		{"unknown type", map[string]any{"type": "complex"}, schema.ErrType},
		{"type not string", map[string]any{"type": 3}, schema.ErrType},
		{"content on basic", map[string]any{"type": "string", "content": map[string]any{}}, schema.ErrKey},
		{"record without content", map[string]any{"type": "record"}, schema.ErrKey},
		{"content not mapping", map[string]any{"type": "record", "content": "x"}, schema.ErrValue},
		{"list content keys", map[string]any{"type": "list", "content": map[string]any{"item": map[string]any{"type": "string"}, "extra": 1}}, schema.ErrKey},
		{"map content keys", map[string]any{"type": "map", "content": map[string]any{"key": map[string]any{"type": "string"}}}, schema.ErrKey},
		{"invalid record key", map[string]any{"type": "record", "content": map[string]any{"a b": map[string]any{"type": "string"}}}, schema.ErrKey},
		{"allow_none not bool", map[string]any{"type": "string", "allow_none": "yes"}, schema.ErrType},
		{"required not bool", map[string]any{"type": "string", "required": "some value"}, schema.ErrType},
		{"unknown validator", map[string]any{"type": "string", "element_validators": "nope"}, schema.ErrKey},
		{"unknown transformation", map[string]any{"type": "string", "layer_transformation": "nope"}, schema.ErrKey},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := schema.Decode(c.doc, decodeOptions()...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, c.kind), "got %v", err)
		})
	}
}
