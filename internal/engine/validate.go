package engine

import (
	"fmt"

	"github.com/equinor/configsuite/internal/tree"
	"github.com/equinor/configsuite/keypath"
	"github.com/equinor/configsuite/schema"
)

// Options tunes Validate.
type Options struct {
	// Stop truncates the descent: nodes for which it holds are valid.
	Stop func(schema.Node) bool
	// SkipKeys disables unknown and missing key detection.
	SkipKeys bool
	// SkipValidators disables AllowEmpty and element and context validators.
	SkipValidators bool
	// Context is given to context validators when UseContext is set.
	Context    any
	UseContext bool
}

// Readability checks container shapes only. Partial trees are accepted.
func Readability() Options {
	return Options{
		Stop:           func(n schema.Node) bool { return !schema.IsContainer(n) },
		SkipKeys:       true,
		SkipValidators: true,
	}
}

// Full checks everything. Context validators run only when useContext is set.
func Full(ctx any, useContext bool) Options {
	return Options{Context: ctx, UseContext: useContext}
}

// Validate checks v against n and returns every issue found.
func Validate(v any, n schema.Node, opts Options) (bool, []Issue) {
	vd := &validator{opts: opts}
	ok := vd.validate(v, n, keypath.Root())
	return ok, vd.issues
}

type validator struct {
	opts   Options
	issues []Issue
}

func (vd *validator) add(k Kind, p keypath.Path, msg string) {
	vd.issues = append(vd.issues, newIssue(k, p, msg))
}

func (vd *validator) validate(v any, n schema.Node, p keypath.Path) bool {
	if vd.opts.Stop != nil && vd.opts.Stop(n) {
		return true
	}
	if schema.IsDeprecated(n) {
		return true
	}
	if v == nil && n.Kind() == schema.KindBasic && n.Attributes().AllowNone {
		return true
	}
	if out := n.Check(v); !out.Passed {
		vd.add(KindInvalidType, p, out.Message)
		return false
	}

	valid := true
	size := -1
	switch node := n.(type) {
	case *schema.Record:
		m, _ := tree.AsMapping(v)
		valid = vd.record(m, node, p)
	case *schema.List:
		l, _ := tree.AsList(v)
		size = len(l)
		for i, item := range l {
			valid = vd.validate(item, node.Item, p.Index(i)) && valid
		}
	case *schema.Map:
		m, _ := tree.AsMapping(v)
		size = len(m)
		for _, k := range tree.SortedKeys(m) {
			valid = vd.validate(k, node.Key, p.Key(k)) && valid
			valid = vd.validate(m[k], node.Value, p.Key(k)) && valid
		}
	}
	if !valid || vd.opts.SkipValidators {
		return valid
	}

	if size == 0 && !schema.AllowsEmpty(n) {
		vd.add(KindInvalidValue, p, "Expected non-empty container")
		valid = false
	}
	a := n.Attributes()
	for _, ev := range a.ElementValidators {
		if out := ev.Check(v); !out.Passed {
			vd.add(KindInvalidValue, p, out.Message)
			valid = false
		}
	}
	if vd.opts.UseContext {
		for _, cv := range a.ContextValidators {
			if out := cv.Check(v, vd.opts.Context); !out.Passed {
				vd.add(KindInvalidValue, p, out.Message)
				valid = false
			}
		}
	}
	return valid
}

func (vd *validator) record(m map[string]any, node *schema.Record, p keypath.Path) bool {
	valid := true
	if !vd.opts.SkipKeys {
		for _, k := range tree.SortedKeys(m) {
			if _, known := node.Field(k); !known {
				vd.add(KindUnknownKey, p, fmt.Sprintf("Unknown key: %s", k))
				valid = false
			}
		}
		for _, f := range node.Fields {
			if _, ok := m[f.Name]; !ok && !schema.Optional(f.Node) {
				vd.add(KindMissingKey, p, fmt.Sprintf("Missing key: %s", f.Name))
				valid = false
			}
		}
	}
	for _, f := range node.Fields {
		if val, ok := m[f.Name]; ok {
			valid = vd.validate(val, f.Node, p.Key(f.Name)) && valid
		}
	}
	return valid
}
