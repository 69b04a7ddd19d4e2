package configsuite

import (
	"log/slog"

	"github.com/equinor/configsuite/internal/logging"
)

// ContextExtractor derives a context value from a preliminary snapshot. The
// snapshot has the same shape as Suite.Snapshot.
type ContextExtractor func(snapshot any) (any, error)

type options struct {
	layers                []any
	validationContext     ContextExtractor
	transformationContext ContextExtractor
	deduceRequired        bool
	logger                *slog.Logger
}

// Option configures New.
type Option func(*options)

// WithLayers sets the layers below the raw config, lowest precedence first.
func WithLayers(layers ...any) Option {
	return func(o *options) { o.layers = append([]any(nil), layers...) }
}

// WithValidationContext sets the extractor whose result is passed to context
// validators.
func WithValidationContext(fn ContextExtractor) Option {
	return func(o *options) { o.validationContext = fn }
}

// WithTransformationContext sets the extractor whose result is passed to
// context transformations.
func WithTransformationContext(fn ContextExtractor) Option {
	return func(o *options) { o.transformationContext = fn }
}

// WithDeduceRequired derives requiredness from AllowNone and Default only and
// ignores the deprecated Required attribute.
func WithDeduceRequired(deduce bool) Option {
	return func(o *options) { o.deduceRequired = deduce }
}

// WithLogger sets the logger receiving deprecation warnings. The default
// discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func noContext(any) (any, error) { return nil, nil }

func buildOptions(opts []Option) options {
	o := options{
		validationContext:     noContext,
		transformationContext: noContext,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.validationContext == nil {
		o.validationContext = noContext
	}
	if o.transformationContext == nil {
		o.transformationContext = noContext
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	return o
}
