package configsuite

import (
	"fmt"
	"sync"

	"github.com/equinor/configsuite/internal/engine"
	"github.com/equinor/configsuite/internal/tree"
	"github.com/equinor/configsuite/schema"
)

// Suite validates a layered configuration against a schema. It is immutable:
// results are computed once, on first access.
type Suite struct {
	raw  any
	node schema.Node
	opts options

	once sync.Once
	res  *result
}

type result struct {
	readable bool
	errors   Errors
	snapshot any
}

// New checks node and returns a Suite for raw, the most significant layer.
// A malformed schema is reported as a *schema.SchemaError.
func New(raw any, node schema.Node, opts ...Option) (*Suite, error) {
	o := buildOptions(opts)
	if err := schema.Check(node, schema.CheckOptions{DeduceRequired: o.deduceRequired, Logger: o.logger}); err != nil {
		return nil, err
	}
	for i, l := range o.layers {
		o.layers[i] = tree.Clone(l)
	}
	return &Suite{raw: tree.Clone(raw), node: node, opts: o}, nil
}

// MustNew is like New but panics on a malformed schema.
func MustNew(raw any, node schema.Node, opts ...Option) *Suite {
	s, err := New(raw, node, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Push returns a new Suite with raw as the most significant layer. The raw
// config of s becomes the top of the inherited layers.
func (s *Suite) Push(raw any) *Suite {
	o := s.opts
	o.layers = append(append(make([]any, 0, len(s.opts.layers)+1), s.opts.layers...), s.raw)
	return &Suite{raw: tree.Clone(raw), node: s.node, opts: o}
}

// Valid reports whether the configuration has no errors.
func (s *Suite) Valid() bool { return len(s.eval().errors) == 0 }

// Errors returns the configuration errors in the order they were found.
func (s *Suite) Errors() Errors {
	es := s.eval().errors
	if es == nil {
		return nil
	}
	return append(Errors(nil), es...)
}

// Err returns Errors when the configuration is invalid and nil otherwise.
func (s *Suite) Err() error {
	if s.Valid() {
		return nil
	}
	return s.Errors()
}

// Readable reports whether every layer has the container shapes the schema
// expects, so that it can be merged and snapshotted.
func (s *Suite) Readable() bool { return s.eval().readable }

// Snapshot returns the merged configuration as a *Record, *List, *Map or
// basic value, following the schema root. It panics when the configuration
// is not readable.
func (s *Suite) Snapshot() any {
	r := s.eval()
	if !r.readable {
		panic("configsuite: snapshot of a configuration that is not readable")
	}
	return r.snapshot
}

// Layers returns the number of layers, the raw config included.
func (s *Suite) Layers() int { return len(s.opts.layers) + 1 }

func (s *Suite) eval() *result {
	s.once.Do(func() { s.res = s.run() })
	return s.res
}

func (s *Suite) run() *result {
	r := &result{}
	log := s.opts.logger

	layers := append(append(make([]any, 0, len(s.opts.layers)+1), s.opts.layers...), s.raw)
	readable := true
	for i, layer := range layers {
		if layer == nil {
			continue
		}
		resolved := engine.ResolveAliases(layer, s.node, s.warnDeprecated)
		transformed, issues := engine.Transform(resolved, s.node, engine.SlotLayer, nil)
		r.errors = fromIssues(r.errors, engine.InLayer(issues, i))
		if ok, shape := engine.Validate(transformed, s.node, engine.Readability()); !ok {
			readable = false
			r.errors = fromIssues(r.errors, engine.InLayer(shape, i))
		}
		layers[i] = transformed
	}
	if !readable {
		log.Debug("configuration is not readable", "errors", len(r.errors))
		return r
	}

	merged, _ := engine.Merge(layers, s.node)
	merged, issues := engine.Transform(merged, s.node, engine.SlotTransform, nil)
	r.errors = fromIssues(r.errors, issues)
	if !s.readable(merged, r) {
		return r
	}

	partial := buildSnapshot(merged, s.node)
	ctx, err := extract(s.opts.transformationContext, partial)
	if err != nil {
		r.readable = true
		r.snapshot = partial
		r.errors = append(r.errors, contextError("transformation", err))
		return r
	}
	merged, issues = engine.Transform(merged, s.node, engine.SlotContext, ctx)
	r.errors = fromIssues(r.errors, issues)
	if !s.readable(merged, r) {
		return r
	}

	r.readable = true
	r.snapshot = buildSnapshot(merged, s.node)
	vctx, err := extract(s.opts.validationContext, r.snapshot)
	if err != nil {
		r.errors = append(r.errors, contextError("validation", err))
	}
	_, issues = engine.Validate(merged, s.node, engine.Full(vctx, err == nil))
	r.errors = fromIssues(r.errors, issues)
	return r
}

func (s *Suite) readable(v any, r *result) bool {
	ok, issues := engine.Validate(v, s.node, engine.Readability())
	if !ok {
		r.errors = fromIssues(r.errors, issues)
		s.opts.logger.Debug("transformed configuration is not readable", "errors", len(issues))
	}
	return ok
}

func (s *Suite) warnDeprecated(a engine.Alias) {
	msg := fmt.Sprintf("%s is deprecated, use %s", a.Field, a.Replacement)
	if a.Description != "" {
		msg += ": " + a.Description
	}
	s.opts.logger.Warn(msg, "field", a.Field, "replacement", a.Replacement, "path", a.Path.Pointer())
}

// extract runs a context extractor, turning a panic into an error.
func extract(fn ContextExtractor, snapshot any) (ctx any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	return fn(snapshot)
}

func contextError(which string, err error) Error {
	return Error{
		Kind:    ContextExtraction,
		Message: fmt.Sprintf("Failed to extract %s context: %v", which, err),
		Layer:   NoLayer,
	}
}
