package schema

import (
	"log/slog"
	"regexp"

	"github.com/equinor/configsuite/internal/logging"
	"github.com/equinor/configsuite/keypath"
)

var identifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// CheckOptions tunes Check.
type CheckOptions struct {
	// DeduceRequired ignores the deprecated Required attribute and derives
	// requiredness from AllowNone and Default only.
	DeduceRequired bool
	// Logger receives deprecation warnings. nil discards them.
	Logger *slog.Logger
}

// Check reports whether n is a well formed schema. The returned error is a
// *SchemaError.
func Check(n Node, opts CheckOptions) error {
	c := &checker{opts: opts, log: opts.Logger}
	if c.log == nil {
		c.log = logging.NewNop()
	}
	return c.node(n, keypath.Root(), false)
}

type checker struct {
	opts CheckOptions
	log  *slog.Logger
}

func (c *checker) node(n Node, p keypath.Path, inRecord bool) error {
	if n == nil {
		return keyError(p, "Type must be present")
	}
	a := n.Attributes()
	if a.Deprecated != "" && !inRecord {
		return valueError(p, "Deprecated can only be used for Record fields")
	}
	if err := c.callables(a, p); err != nil {
		return err
	}
	if a.Required != nil {
		if IsContainer(n) {
			return valueError(p, "Required can only be used for BasicType")
		}
		if c.opts.DeduceRequired {
			c.log.Warn("Required is deprecated and ignored when deducing requiredness. Please remove them from your schema", "path", p.Pointer())
		} else {
			c.log.Warn("Required is deprecated. Use `configsuite.WithDeduceRequired(true)` and express optional fields with AllowNone or Default", "path", p.Pointer())
		}
	}
	if IsContainer(n) {
		if a.AllowNone {
			return valueError(p, "AllowNone can only be used for BasicType")
		}
		if a.Default != nil {
			return valueError(p, "Default can only be used for BasicType")
		}
	}

	switch t := n.(type) {
	case *Basic:
		return c.basic(t, p, inRecord)
	case *Record:
		if a.AllowEmpty != nil {
			return valueError(p, "Only variable length containers can specify AllowEmpty")
		}
		return c.record(t, p)
	case *List:
		if t.Item == nil {
			return keyError(p, "List schema has no Item")
		}
		return c.node(t.Item, p.Key("Item"), false)
	case *Map:
		if t.Key == nil || t.Value == nil {
			return keyError(p, "Map schema must have both Key and Value")
		}
		if IsContainer(t.Key) {
			return typeError(p.Key("Key"), "Map keys must be of a BasicType")
		}
		if err := c.node(t.Key, p.Key("Key"), false); err != nil {
			return err
		}
		return c.node(t.Value, p.Key("Value"), false)
	default:
		return typeError(p, "Unknown schema node %T", n)
	}
}

func (c *checker) basic(b *Basic, p keypath.Path, inRecord bool) error {
	if b.Deprecated != "" {
		// Aliases carry no type; they only redirect.
		return nil
	}
	if b.Type == nil {
		return keyError(p, "Type must be present")
	}
	if b.AllowEmpty != nil {
		return valueError(p, "Only variable length containers can specify AllowEmpty")
	}
	if b.Default != nil {
		if !inRecord {
			return valueError(p, "Default value is only allowed for contents in a Record")
		}
		if out := b.Type.Check(b.Default); !out.Passed {
			return valueError(p, "Default value is not a valid %s: %s", b.Type.Name, out.Message)
		}
	}
	if b.Required != nil && !c.opts.DeduceRequired {
		required := *b.Required
		if required && b.Default != nil {
			return valueError(p, "Required can not have Default")
		}
		if required == (b.AllowNone || b.Default != nil) {
			return valueError(p, "A schema element can be required or allow None, not both nor neither")
		}
	}
	return nil
}

func (c *checker) record(r *Record, p keypath.Path) error {
	seen := make(map[string]bool, len(r.Fields))
	for _, f := range r.Fields {
		if !identifier.MatchString(f.Name) {
			return keyError(p, "Invalid key %q: record keys must match %s", f.Name, identifier.String())
		}
		if seen[f.Name] {
			return keyError(p, "Duplicate key %q", f.Name)
		}
		seen[f.Name] = true
	}
	for _, f := range r.Fields {
		fp := p.Key(f.Name)
		if err := c.node(f.Node, fp, true); err != nil {
			return err
		}
		if !IsDeprecated(f.Node) {
			continue
		}
		target, ok := r.Field(f.Node.Attributes().Deprecated)
		if !ok || target == f.Node || IsDeprecated(target) {
			return valueError(fp, "Deprecated must refer to a valid key")
		}
	}
	return nil
}

func (c *checker) callables(a *Attrs, p keypath.Path) error {
	for _, v := range a.ElementValidators {
		if v.Func == nil {
			return valueError(p, "ElementValidators %q has no function", v.Description)
		}
	}
	for _, v := range a.ContextValidators {
		if v.Func == nil {
			return valueError(p, "ContextValidators %q has no function", v.Description)
		}
	}
	for _, t := range []*Transformation{a.LayerTransformation, a.Transformation} {
		if t != nil && t.Func == nil {
			return valueError(p, "Transformation %q has no function", t.Description)
		}
	}
	if t := a.ContextTransformation; t != nil && t.Func == nil {
		return valueError(p, "ContextTransformation %q has no function", t.Description)
	}
	return nil
}
