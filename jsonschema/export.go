package jsonschema

import (
	"github.com/equinor/configsuite/schema"
)

// FromNode converts a schema tree. Validators and transformations have no
// JSON Schema counterpart and are left out, so the result accepts a superset
// of what a Suite accepts.
func FromNode(n schema.Node) *Schema {
	s := convert(n)
	if s == nil {
		s = &Schema{}
	}
	s.Schema = Draft
	return s
}

func convert(n schema.Node) *Schema {
	if n == nil {
		return nil
	}
	a := n.Attributes()
	var s *Schema
	switch t := n.(type) {
	case *schema.Basic:
		s = basic(t)
	case *schema.Record:
		s = &Schema{Type: "object", Properties: map[string]*Schema{}, AdditionalProperties: false}
		for _, f := range t.Fields {
			child := convert(f.Node)
			if child == nil {
				continue
			}
			s.Properties[f.Name] = child
			if !schema.Optional(f.Node) {
				s.Required = append(s.Required, f.Name)
			}
		}
	case *schema.List:
		s = &Schema{Type: "array", Items: convert(t.Item)}
		if !schema.AllowsEmpty(t) {
			s.MinItems = one()
		}
	case *schema.Map:
		s = &Schema{Type: "object"}
		if v := convert(t.Value); v != nil {
			s.AdditionalProperties = v
		}
		if k := convert(t.Key); k != nil && (k.Format != "" || k.Description != "") {
			s.PropertyNames = k
		}
		if !schema.AllowsEmpty(t) {
			s.MinProperties = one()
		}
	default:
		return &Schema{Description: a.Description}
	}
	if s.Description == "" {
		s.Description = a.Description
	}
	if a.AllowNone && s.Type != "" {
		s = &Schema{
			Description: s.Description,
			Default:     s.Default,
			OneOf:       []*Schema{withoutDoc(s), {Type: "null"}},
		}
	}
	return s
}

func basic(b *schema.Basic) *Schema {
	a := b.Attributes()
	if a.Deprecated != "" {
		desc := "Deprecated, use " + a.Deprecated + " instead"
		if a.Description != "" {
			desc += ": " + a.Description
		}
		return &Schema{Deprecated: true, Description: desc}
	}
	s := &Schema{Default: a.Default}
	switch b.Type {
	case schema.String:
		s.Type = "string"
	case schema.Integer:
		s.Type = "integer"
	case schema.Number:
		s.Type = "number"
	case schema.Bool:
		s.Type = "boolean"
	case schema.Date:
		s.Type, s.Format = "string", "date"
	case schema.DateTime:
		s.Type, s.Format = "string", "date-time"
	}
	return s
}

func withoutDoc(s *Schema) *Schema {
	c := *s
	c.Description = ""
	c.Default = nil
	return &c
}

func one() *int {
	n := 1
	return &n
}
