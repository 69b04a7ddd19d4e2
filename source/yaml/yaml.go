// Package yaml loads YAML layers, keeping the position of every value and
// rejecting duplicate keys.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/equinor/configsuite/keypath"
	"github.com/equinor/configsuite/source"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	Path      keypath.Path // path of the mapping holding the key
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q in %s at %d:%d (first at %d:%d)", e.Key, e.Path.Pointer(), e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// LoadFile reads the first document of a YAML file.
func LoadFile(path string) (source.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return source.Document{}, err
	}
	defer f.Close()
	return Read(path, f)
}

// Load decodes the first document of data. name is used in positions.
func Load(name string, data []byte) (source.Document, error) {
	return Read(name, strings.NewReader(string(data)))
}

// Read decodes the first YAML document of r into JSON-like Go values
// (map[string]any, []any, primitives). An empty stream yields a nil value.
func Read(name string, r io.Reader) (source.Document, error) {
	doc := source.Document{Name: name, Positions: source.Positions{}}
	var root yamlv3.Node
	if err := yamlv3.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		return doc, fmt.Errorf("yaml: %s: %w", name, err)
	}
	w := &walker{file: name, positions: doc.Positions}
	v, err := w.node(&root, keypath.Root())
	if err != nil {
		return doc, err
	}
	doc.Value = v
	return doc, nil
}

type walker struct {
	file      string
	positions source.Positions
}

func (w *walker) mark(n *yamlv3.Node, p keypath.Path) {
	w.positions[p.Pointer()] = source.Position{File: w.file, Line: n.Line, Column: n.Column}
}

func (w *walker) node(n *yamlv3.Node, p keypath.Path) (any, error) {
	switch n.Kind {
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.node(n.Content[0], p)
	case yamlv3.AliasNode:
		w.mark(n, p)
		return w.node(n.Alias, p)
	case yamlv3.MappingNode:
		w.mark(n, p)
		return w.mapping(n, p)
	case yamlv3.SequenceNode:
		w.mark(n, p)
		arr := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := w.node(c, p.Index(i))
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yamlv3.ScalarNode:
		w.mark(n, p)
		return scalar(n)
	}
	return nil, nil
}

func (w *walker) mapping(n *yamlv3.Node, p keypath.Path) (any, error) {
	m := make(map[string]any, len(n.Content)/2)
	first := make(map[string][2]int, len(n.Content)/2)
	var merged []map[string]any
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		v := n.Content[i+1]
		if k.ShortTag() == "!!merge" {
			more, err := w.mergeSources(v, p)
			if err != nil {
				return nil, err
			}
			merged = append(merged, more...)
			continue
		}
		if k.Kind != yamlv3.ScalarNode {
			return nil, fmt.Errorf("yaml: %s:%d:%d: unsupported non-scalar key", w.file, k.Line, k.Column)
		}
		key := k.Value
		if pos, dup := first[key]; dup {
			return nil, &DuplicateKeyError{Key: key, Path: p, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
		}
		first[key] = [2]int{k.Line, k.Column}
		val, err := w.node(v, p.Key(key))
		if err != nil {
			return nil, err
		}
		m[key] = val
	}
	// Explicit keys override merged ones, earlier merge sources override later ones.
	for _, src := range merged {
		for k, v := range src {
			if _, set := m[k]; !set {
				m[k] = v
			}
		}
	}
	return m, nil
}

func (w *walker) mergeSources(v *yamlv3.Node, p keypath.Path) ([]map[string]any, error) {
	nodes := []*yamlv3.Node{v}
	if v.Kind == yamlv3.SequenceNode {
		nodes = v.Content
	}
	var out []map[string]any
	for _, n := range nodes {
		val, err := w.node(n, p)
		if err != nil {
			return nil, err
		}
		m, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("yaml: %s:%d:%d: merge source is not a mapping", w.file, n.Line, n.Column)
		}
		out = append(out, m)
	}
	return out, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-1-2T15:4:5.999999999Z07:00",
	"2006-1-2t15:4:5.999999999Z07:00",
	"2006-1-2 15:4:5.999999999",
	"2006-1-2",
}

func scalar(n *yamlv3.Node) (any, error) {
	tag := n.ShortTag()
	switch tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		if b, err := strconv.ParseBool(n.Value); err == nil {
			return b, nil
		}
		return n.Value, nil
	case "!!int":
		// Use int64 to avoid overflow surprises; callers can coerce later
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return i, nil
		}
		if u, err := strconv.ParseUint(n.Value, 0, 64); err == nil {
			return u, nil
		}
		return n.Value, nil
	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".inf", "+.inf":
			return math.Inf(1), nil
		case "-.inf":
			return math.Inf(-1), nil
		case ".nan":
			return math.NaN(), nil
		}
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return f, nil
		}
		return n.Value, nil
	case "!!timestamp":
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, n.Value); err == nil {
				return t, nil
			}
		}
		return n.Value, nil
	default:
		// Fallback to raw string
		return n.Value, nil
	}
}
