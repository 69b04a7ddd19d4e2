package engine

import (
	"github.com/equinor/configsuite/internal/tree"
	"github.com/equinor/configsuite/schema"
)

// Merge combines layers, lowest precedence first, into one tree. nil layers
// are skipped; ok is false when no layer is left. Every layer must be
// readable for n.
//
// Scalars are taken from the most significant layer, records and maps are
// merged key by key, lists are concatenated. Basic record fields that end up
// absent receive their default.
func Merge(layers []any, n schema.Node) (merged any, ok bool) {
	present := make([]any, 0, len(layers))
	for _, l := range layers {
		if l != nil {
			present = append(present, l)
		}
	}
	if len(present) == 0 {
		return nil, false
	}
	return merge(present, n), true
}

// merge expects at least one value.
func merge(values []any, n schema.Node) any {
	switch node := n.(type) {
	case *schema.Record:
		maps := mappings(values)
		if maps == nil {
			return values[len(values)-1]
		}
		out := map[string]any{}
		for _, k := range unionKeys(maps) {
			sub := valuesAt(maps, k)
			child, known := node.Field(k)
			if !known || schema.IsDeprecated(child) {
				out[k] = sub[len(sub)-1]
				continue
			}
			out[k] = merge(sub, child)
		}
		for _, f := range node.Fields {
			b, isBasic := f.Node.(*schema.Basic)
			if !isBasic || b.Default == nil {
				continue
			}
			if _, set := out[f.Name]; !set {
				out[f.Name] = b.Default
			}
		}
		return out
	case *schema.List:
		out := []any{}
		for _, v := range values {
			l, ok := tree.AsList(v)
			if !ok {
				continue
			}
			for _, item := range l {
				out = append(out, merge([]any{item}, node.Item))
			}
		}
		return out
	case *schema.Map:
		maps := mappings(values)
		if maps == nil {
			return values[len(values)-1]
		}
		out := map[string]any{}
		for _, k := range unionKeys(maps) {
			out[k] = merge(valuesAt(maps, k), node.Value)
		}
		return out
	}
	return values[len(values)-1]
}

// mappings returns the values that are mappings, or nil if none is.
func mappings(values []any) []map[string]any {
	var out []map[string]any
	for _, v := range values {
		if m, ok := tree.AsMapping(v); ok {
			out = append(out, m)
		}
	}
	return out
}

func unionKeys(maps []map[string]any) []string {
	seen := map[string]any{}
	for _, m := range maps {
		for k := range m {
			seen[k] = nil
		}
	}
	return tree.SortedKeys(seen)
}

// valuesAt lists m[k] for every m defining k, keeping precedence order.
func valuesAt(maps []map[string]any, k string) []any {
	var out []any
	for _, m := range maps {
		if v, ok := m[k]; ok {
			out = append(out, v)
		}
	}
	return out
}
