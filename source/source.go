// Package source defines what format loaders hand to a Suite: a raw layer
// plus, when the format allows it, where each value was written.
package source

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/equinor/configsuite/keypath"
)

// Position is a location in a source file. Line and Column start at 1.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Positions maps a key path, as a JSON Pointer, to the start of its value.
type Positions map[string]Position

// Lookup returns the position of p or of its closest recorded ancestor.
func (ps Positions) Lookup(p keypath.Path) (Position, bool) {
	for n := len(p); n >= 0; n-- {
		if pos, ok := ps[p[:n].Pointer()]; ok {
			return pos, true
		}
	}
	return Position{}, false
}

// Document is a loaded layer.
type Document struct {
	Name      string
	Value     any
	Positions Positions // nil when the format carries no positions
}

// Normalize converts decoded values into the shapes the engine expects:
// map[string]any with string keys, []any, int64 for integers and float64 for
// other numbers.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = Normalize(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(t.String(), 10, 64); err == nil {
			return u
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case *big.Float:
		if t.IsInt() {
			if i, acc := t.Int64(); acc == big.Exact {
				return i
			}
			if u, acc := t.Uint64(); acc == big.Exact {
				return u
			}
		}
		f, _ := t.Float64()
		return f
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint:
		if uint64(t) <= math.MaxInt64 {
			return int64(t)
		}
		return t
	case uint64:
		if t <= math.MaxInt64 {
			return int64(t)
		}
		return t
	case float32:
		return float64(t)
	}
	return v
}
