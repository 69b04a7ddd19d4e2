// Package hcl loads HCL layers. Only attributes are supported: every
// top-level attribute becomes a key of the layer and object or tuple
// expressions become nested mappings and lists. Blocks are rejected.
package hcl

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/equinor/configsuite/keypath"
	"github.com/equinor/configsuite/source"
)

// LoadFile reads an HCL file.
func LoadFile(path string) (source.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return source.Document{}, err
	}
	return Load(path, src)
}

// Load parses src as native HCL syntax. Expressions are evaluated without
// variables or functions.
func Load(name string, src []byte) (source.Document, error) {
	doc := source.Document{Name: name, Positions: source.Positions{}}
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, name)
	if diags.HasErrors() {
		return doc, fmt.Errorf("hcl: %w", diags)
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return doc, fmt.Errorf("hcl: %w", diags)
	}

	doc.Positions[keypath.Root().Pointer()] = position(file.Body.MissingItemRange().Start, name)
	out := make(map[string]any, len(attrs))
	for key, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return doc, fmt.Errorf("hcl: %w", diags)
		}
		native, err := ctyToNative(val)
		if err != nil {
			return doc, fmt.Errorf("hcl: %s: attribute %q: %w", name, key, err)
		}
		out[key] = native
		record(doc.Positions, attr.Expr, keypath.Root().Key(key))
	}
	doc.Value = out
	return doc, nil
}

func position(p hcl.Pos, file string) source.Position {
	return source.Position{File: file, Line: p.Line, Column: p.Column}
}

// record walks literal object and tuple constructors to mark where each
// nested value starts.
func record(ps source.Positions, expr hcl.Expression, p keypath.Path) {
	r := expr.Range()
	ps[p.Pointer()] = position(r.Start, r.Filename)
	switch e := expr.(type) {
	case *hclsyntax.ObjectConsExpr:
		for _, item := range e.Items {
			k, diags := item.KeyExpr.Value(nil)
			if diags.HasErrors() || k.IsNull() || !k.IsKnown() || k.Type() != cty.String {
				continue
			}
			record(ps, item.ValueExpr, p.Key(k.AsString()))
		}
	case *hclsyntax.TupleConsExpr:
		for i, ex := range e.Exprs {
			record(ps, ex, p.Index(i))
		}
	}
}

// ctyToNative recursively converts a cty.Value to its most natural Go
// counterpart. Whole numbers become int64.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		return source.Normalize(v.AsBigFloat()), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, el := it.Element()
			native, err := ctyToNative(el)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			k, el := it.Element()
			native, err := ctyToNative(el)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", k.AsString(), err)
			}
			out[k.AsString()] = native
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported cty type: %s", ty.FriendlyName())
}
