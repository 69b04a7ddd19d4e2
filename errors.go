package configsuite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/equinor/configsuite/internal/engine"
	"github.com/equinor/configsuite/keypath"
)

// ErrorKind classifies a configuration error.
type ErrorKind int

const (
	// UnknownKey: a record holds a key the schema does not declare.
	UnknownKey ErrorKind = iota
	// MissingKey: a required record field is absent.
	MissingKey
	// InvalidType: a value failed its type predicate.
	InvalidType
	// InvalidValue: a value failed an element or context validator.
	InvalidValue
	// Transformation: a user transformation failed.
	Transformation
	// ContextExtraction: a context extraction callback failed.
	ContextExtraction
)

// Codes used by Error.Code, stable for logs and i18n lookups.
const (
	CodeUnknownKey        = "unknown_key"
	CodeMissingKey        = "missing_key"
	CodeInvalidType       = "invalid_type"
	CodeInvalidValue      = "invalid_value"
	CodeTransformation    = "transformation"
	CodeContextExtraction = "context_extraction"
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownKey:
		return CodeUnknownKey
	case MissingKey:
		return CodeMissingKey
	case InvalidType:
		return CodeInvalidType
	case InvalidValue:
		return CodeInvalidValue
	case Transformation:
		return CodeTransformation
	case ContextExtraction:
		return CodeContextExtraction
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// NoLayer is the Layer of an error found after merging.
const NoLayer = engine.NoLayer

// Error is a single configuration error.
type Error struct {
	Kind    ErrorKind
	Message string
	// KeyPath locates the value. For UnknownKey and MissingKey it is the
	// path of the record holding the key.
	KeyPath keypath.Path
	// Layer is the index of the offending layer, counting the layers given
	// with WithLayers first and the raw config last, or NoLayer.
	Layer int
}

// Code returns the stable code of the error kind.
func (e Error) Code() string { return e.Kind.String() }

func (e Error) Error() string {
	if e.Layer != NoLayer {
		return fmt.Sprintf("%s at %s (layer %d): %s", e.Kind, e.KeyPath.Pointer(), e.Layer, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.KeyPath.Pointer(), e.Message)
}

// Errors is an ordered collection of configuration errors that implements
// error.
type Errors []Error

// Error summarizes the first few errors.
func (es Errors) Error() string {
	if len(es) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(es)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. invalid_type at /heroes/0/name
		fmt.Fprintf(b, "%s at %s", es[i].Kind, es[i].KeyPath.Pointer())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// OfKind returns the errors of kind k.
func (es Errors) OfKind(k ErrorKind) Errors {
	var out Errors
	for _, e := range es {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// AsErrors extracts Errors from an error using errors.As internally.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var es Errors
	if errors.As(err, &es) {
		return es, true
	}
	return nil, false
}

func fromIssues(dst Errors, issues []engine.Issue) Errors {
	for _, is := range issues {
		dst = append(dst, Error{
			Kind:    kindOf(is.Kind),
			Message: is.Message,
			KeyPath: is.Path,
			Layer:   is.Layer,
		})
	}
	return dst
}

func kindOf(k engine.Kind) ErrorKind {
	switch k {
	case engine.KindUnknownKey:
		return UnknownKey
	case engine.KindMissingKey:
		return MissingKey
	case engine.KindInvalidType:
		return InvalidType
	case engine.KindInvalidValue:
		return InvalidValue
	case engine.KindTransformation:
		return Transformation
	default:
		return ContextExtraction
	}
}
