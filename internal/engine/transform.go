package engine

import (
	"fmt"

	"github.com/equinor/configsuite/internal/tree"
	"github.com/equinor/configsuite/keypath"
	"github.com/equinor/configsuite/schema"
)

// Slot selects which transformation of a node Transform applies.
type Slot int

const (
	// SlotLayer applies LayerTransformation before visiting children.
	SlotLayer Slot = iota
	// SlotTransform applies Transformation after visiting children.
	SlotTransform
	// SlotContext applies ContextTransformation after visiting children.
	SlotContext
)

// Transform returns a transformed copy of v. Containers are only descended into
// when v has the node's shape. A failing transformation is reported and its
// input kept. ctx is passed to context transformations.
func Transform(v any, n schema.Node, slot Slot, ctx any) (any, []Issue) {
	t := &transformer{slot: slot, ctx: ctx}
	out := t.walk(v, n, keypath.Root())
	return out, t.issues
}

type transformer struct {
	slot   Slot
	ctx    any
	issues []Issue
}

func (t *transformer) walk(v any, n schema.Node, p keypath.Path) any {
	if t.slot == SlotLayer {
		v = t.apply(v, n, p)
	}
	switch node := n.(type) {
	case *schema.Record:
		if m, ok := tree.AsMapping(v); ok {
			out := make(map[string]any, len(m))
			for _, k := range tree.SortedKeys(m) {
				child, known := node.Field(k)
				if !known || schema.IsDeprecated(child) {
					out[k] = m[k]
					continue
				}
				out[k] = t.walk(m[k], child, p.Key(k))
			}
			v = out
		}
	case *schema.List:
		if l, ok := tree.AsList(v); ok {
			out := make([]any, len(l))
			for i, item := range l {
				out[i] = t.walk(item, node.Item, p.Index(i))
			}
			v = out
		}
	case *schema.Map:
		if m, ok := tree.AsMapping(v); ok {
			keys := t.keys(m, node.Key, p)
			out := make(map[string]any, len(m))
			for _, k := range tree.SortedKeys(m) {
				out[keys[k]] = t.walk(m[k], node.Value, p.Key(k))
			}
			v = out
		}
	}
	if t.slot != SlotLayer {
		v = t.apply(v, n, p)
	}
	return v
}

// keys maps every key of m to its transformed form. When two keys end up
// equal the collision is reported and all keys are kept as given.
func (t *transformer) keys(m map[string]any, n schema.Node, p keypath.Path) map[string]string {
	out := make(map[string]string, len(m))
	owner := make(map[string]string, len(m))
	collided := false
	for _, k := range tree.SortedKeys(m) {
		nk := t.key(k, n, p.Key(k))
		if prev, dup := owner[nk]; dup {
			t.fail(describe(n, t.slot), k, fmt.Errorf("key collides with %q, both become %q", prev, nk), p.Key(k))
			collided = true
		}
		owner[nk] = k
		out[k] = nk
	}
	if collided {
		for k := range out {
			out[k] = k
		}
	}
	return out
}

// key transforms a map key. Keys must stay strings.
func (t *transformer) key(k string, n schema.Node, p keypath.Path) string {
	v := t.walk(k, n, p)
	s, ok := v.(string)
	if !ok {
		t.fail(describe(n, t.slot), k, fmt.Errorf("map keys must be strings, got %T", v), p)
		return k
	}
	return s
}

func (t *transformer) apply(v any, n schema.Node, p keypath.Path) any {
	a := n.Attributes()
	var fn func(any) (any, error)
	switch t.slot {
	case SlotLayer:
		if a.LayerTransformation != nil {
			fn = a.LayerTransformation.Func
		}
	case SlotTransform:
		if a.Transformation != nil {
			fn = a.Transformation.Func
		}
	case SlotContext:
		if ct := a.ContextTransformation; ct != nil {
			fn = func(x any) (any, error) { return ct.Func(x, t.ctx) }
		}
	}
	if fn == nil {
		return v
	}
	out, err := call(fn, v)
	if err != nil {
		t.fail(describe(n, t.slot), v, err, p)
		return v
	}
	return out
}

func (t *transformer) fail(desc string, v any, err error, p keypath.Path) {
	msg := fmt.Sprintf("'%s' failed on input '%s' with error '%s'", desc, schema.FormatValue(v), err)
	t.issues = append(t.issues, newIssue(KindTransformation, p, msg))
}

func describe(n schema.Node, slot Slot) string {
	a := n.Attributes()
	switch slot {
	case SlotLayer:
		if a.LayerTransformation != nil {
			return a.LayerTransformation.Description
		}
	case SlotTransform:
		if a.Transformation != nil {
			return a.Transformation.Description
		}
	case SlotContext:
		if a.ContextTransformation != nil {
			return a.ContextTransformation.Description
		}
	}
	return "key transformation"
}

// call runs fn, turning a panic into an error.
func call(fn func(any) (any, error), v any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn(v)
}
