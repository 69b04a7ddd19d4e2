// Package keypath identifies a location inside a configuration tree.
package keypath

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is an ordered sequence of keys. Each element is a string (record or
// map key) or an int (list index). The zero value is the root.
type Path []any

// Root returns the empty path.
func Root() Path { return nil }

// Key returns a copy of p extended with a record or map key.
func (p Path) Key(name string) Path { return p.append(name) }

// Index returns a copy of p extended with a list index.
func (p Path) Index(i int) Path { return p.append(i) }

func (p Path) append(elem any) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, elem)
}

// Pointer renders the path as a JSON Pointer (RFC 6901). The root is "/".
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, elem := range p {
		b.WriteByte('/')
		switch e := elem.(type) {
		case int:
			b.WriteString(strconv.Itoa(e))
		case string:
			// escape '~' -> '~0', '/' -> '~1'
			b.WriteString(strings.ReplaceAll(strings.ReplaceAll(e, "~", "~0"), "/", "~1"))
		default:
			b.WriteString(fmt.Sprint(e))
		}
	}
	return b.String()
}

// String renders the path as a tuple, e.g. ('heroes', 0, 'name').
func (p Path) String() string {
	parts := make([]string, 0, len(p))
	for _, elem := range p {
		if s, ok := elem.(string); ok {
			parts = append(parts, strconv.Quote(s))
			continue
		}
		parts = append(parts, fmt.Sprint(elem))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Equal reports whether p and q name the same location.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}
