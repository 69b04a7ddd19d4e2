package schema

import (
	"errors"
	"fmt"

	"github.com/equinor/configsuite/keypath"
)

// Classes of schema authoring errors. A *SchemaError matches exactly one of
// them with errors.Is.
var (
	// ErrKey reports missing or unexpected schema keys.
	ErrKey = errors.New("schema key error")
	// ErrType reports a node of the wrong shape.
	ErrType = errors.New("schema type error")
	// ErrValue reports a semantic violation such as a misplaced default.
	ErrValue = errors.New("schema value error")
)

// SchemaError describes why a schema is malformed.
type SchemaError struct {
	Kind    error // one of ErrKey, ErrType, ErrValue
	Path    keypath.Path
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Path)
}

func (e *SchemaError) Unwrap() error { return e.Kind }

func keyError(p keypath.Path, format string, args ...any) error {
	return &SchemaError{Kind: ErrKey, Path: p, Message: fmt.Sprintf(format, args...)}
}

func typeError(p keypath.Path, format string, args ...any) error {
	return &SchemaError{Kind: ErrType, Path: p, Message: fmt.Sprintf(format, args...)}
}

func valueError(p keypath.Path, format string, args ...any) error {
	return &SchemaError{Kind: ErrValue, Path: p, Message: fmt.Sprintf(format, args...)}
}
