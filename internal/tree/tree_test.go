package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyName string

func TestAsMapping(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   map[string]any
		wantOK bool
	}{
		{"generic map", map[string]any{"a": 1}, map[string]any{"a": 1}, true},
		{"typed values", map[string]int{"a": 1, "b": 2}, map[string]any{"a": 1, "b": 2}, true},
		{"named string keys", map[keyName]string{"x": "y"}, map[string]any{"x": "y"}, true},
		{"int keys", map[int]any{1: "a"}, nil, false},
		{"nil", nil, nil, false},
		{"list", []any{"a"}, nil, false},
		{"scalar", "a", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsMapping(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAsMapping_GenericMapIsNotCopied(t *testing.T) {
	in := map[string]any{"a": 1}
	got, ok := AsMapping(in)
	require.True(t, ok)
	got["b"] = 2
	assert.Contains(t, in, "b")
}

func TestAsList(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   []any
		wantOK bool
	}{
		{"generic slice", []any{1, "a"}, []any{1, "a"}, true},
		{"typed slice", []string{"a", "b"}, []any{"a", "b"}, true},
		{"array", [2]int{1, 2}, []any{1, 2}, true},
		{"empty typed slice", []int{}, []any{}, true},
		{"nil", nil, nil, false},
		{"string", "ab", nil, false},
		{"map", map[string]any{}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsList(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"A", "a", "b"}, SortedKeys(map[string]any{"b": 1, "a": 2, "A": 3}))
	assert.Empty(t, SortedKeys(nil))
}

func TestClone(t *testing.T) {
	typed := []int{1, 2}
	in := map[string]any{
		"list":   []any{map[string]any{"x": 1}},
		"nested": map[string]any{"y": "z"},
		"typed":  typed,
		"scalar": 3,
	}
	out := Clone(in).(map[string]any)
	require.Equal(t, in, out)

	out["nested"].(map[string]any)["y"] = "changed"
	out["list"].([]any)[0].(map[string]any)["x"] = 2
	out["scalar"] = 4
	assert.Equal(t, "z", in["nested"].(map[string]any)["y"])
	assert.Equal(t, 1, in["list"].([]any)[0].(map[string]any)["x"])
	assert.Equal(t, 3, in["scalar"])

	out["typed"].([]int)[0] = 9
	assert.Equal(t, 9, typed[0], "typed slices are shared")

	assert.Nil(t, Clone(nil))
	assert.Equal(t, "s", Clone("s"))
}
