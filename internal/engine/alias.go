package engine

import (
	"github.com/equinor/configsuite/internal/tree"
	"github.com/equinor/configsuite/keypath"
	"github.com/equinor/configsuite/schema"
)

// Alias describes a deprecated record field found in a layer.
type Alias struct {
	Field       string
	Replacement string
	Description string
	Path        keypath.Path // path of the record holding the field
}

// ResolveAliases returns a copy of v where values of deprecated record fields
// are moved to their replacement. When both are present the replacement
// wins. notify is called once per deprecated field found.
func ResolveAliases(v any, n schema.Node, notify func(Alias)) any {
	return resolve(v, n, keypath.Root(), notify)
}

func resolve(v any, n schema.Node, p keypath.Path, notify func(Alias)) any {
	switch node := n.(type) {
	case *schema.Record:
		m, ok := tree.AsMapping(v)
		if !ok {
			return v
		}
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		for _, f := range node.Fields {
			if !schema.IsDeprecated(f.Node) {
				continue
			}
			val, present := out[f.Name]
			if !present {
				continue
			}
			a := f.Node.Attributes()
			notify(Alias{Field: f.Name, Replacement: a.Deprecated, Description: a.Description, Path: p})
			if _, taken := out[a.Deprecated]; !taken {
				out[a.Deprecated] = val
			}
			delete(out, f.Name)
		}
		for _, f := range node.Fields {
			if val, ok := out[f.Name]; ok && !schema.IsDeprecated(f.Node) {
				out[f.Name] = resolve(val, f.Node, p.Key(f.Name), notify)
			}
		}
		return out
	case *schema.List:
		l, ok := tree.AsList(v)
		if !ok {
			return v
		}
		out := make([]any, len(l))
		for i, item := range l {
			out[i] = resolve(item, node.Item, p.Index(i), notify)
		}
		return out
	case *schema.Map:
		m, ok := tree.AsMapping(v)
		if !ok {
			return v
		}
		out := make(map[string]any, len(m))
		for _, k := range tree.SortedKeys(m) {
			out[k] = resolve(m[k], node.Value, p.Key(k), notify)
		}
		return out
	}
	return v
}
