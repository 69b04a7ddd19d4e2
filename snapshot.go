package configsuite

import (
	"github.com/equinor/configsuite/internal/tree"
	"github.com/equinor/configsuite/schema"
)

// Record is the snapshot of a schema Record. It holds exactly the declared
// fields; absent fields are nil.
type Record struct {
	fields []string
	values map[string]any
}

// Fields returns the field names in declaration order.
func (r *Record) Fields() []string { return append([]string(nil), r.fields...) }

// Get returns the value of a field, nil when unset or undeclared.
func (r *Record) Get(name string) any { return r.values[name] }

// Has reports whether name is a declared field.
func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.fields) }

// List is the snapshot of a schema List.
type List struct {
	items []any
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// At returns the i-th item.
func (l *List) At(i int) any { return l.items[i] }

// Items returns a copy of the items.
func (l *List) Items() []any { return append([]any(nil), l.items...) }

// Pair is an entry of a Map snapshot.
type Pair struct {
	Key   string
	Value any
}

// Map is the snapshot of a schema Map. Pairs are sorted by key.
type Map struct {
	pairs []Pair
}

// Len returns the number of pairs.
func (m *Map) Len() int { return len(m.pairs) }

// Pairs returns a copy of the pairs, sorted by key.
func (m *Map) Pairs() []Pair { return append([]Pair(nil), m.pairs...) }

// Lookup returns the value stored under key.
func (m *Map) Lookup(key string) (any, bool) {
	for _, p := range m.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Keys returns the sorted keys.
func (m *Map) Keys() []string {
	out := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		out[i] = p.Key
	}
	return out
}

// buildSnapshot projects a readable tree onto the schema.
func buildSnapshot(v any, n schema.Node) any {
	if v == nil {
		return nil
	}
	switch node := n.(type) {
	case *schema.Record:
		m, _ := tree.AsMapping(v)
		r := &Record{values: make(map[string]any, len(node.Fields))}
		for _, f := range node.Fields {
			if schema.IsDeprecated(f.Node) {
				continue
			}
			r.fields = append(r.fields, f.Name)
			r.values[f.Name] = buildSnapshot(m[f.Name], f.Node)
		}
		return r
	case *schema.List:
		items, _ := tree.AsList(v)
		l := &List{items: make([]any, len(items))}
		for i, item := range items {
			l.items[i] = buildSnapshot(item, node.Item)
		}
		return l
	case *schema.Map:
		m, _ := tree.AsMapping(v)
		out := &Map{pairs: make([]Pair, 0, len(m))}
		for _, k := range tree.SortedKeys(m) {
			out.pairs = append(out.pairs, Pair{Key: k, Value: buildSnapshot(m[k], node.Value)})
		}
		return out
	}
	return v
}

// ToNative converts a snapshot into plain Go values: records and maps become
// map[string]any and lists []any.
func ToNative(snapshot any) any {
	switch s := snapshot.(type) {
	case *Record:
		if s == nil {
			return nil
		}
		out := make(map[string]any, len(s.fields))
		for _, f := range s.fields {
			out[f] = ToNative(s.values[f])
		}
		return out
	case *List:
		if s == nil {
			return nil
		}
		out := make([]any, len(s.items))
		for i, item := range s.items {
			out[i] = ToNative(item)
		}
		return out
	case *Map:
		if s == nil {
			return nil
		}
		out := make(map[string]any, len(s.pairs))
		for _, p := range s.pairs {
			out[p.Key] = ToNative(p.Value)
		}
		return out
	}
	return snapshot
}
