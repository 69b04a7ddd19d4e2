package schema

// Validator is a described predicate over a configuration value. Func must
// be total: a panic is not recovered.
type Validator struct {
	Description string
	Func        func(v any) bool
}

// Check runs the validator.
func (v Validator) Check(value any) Outcome {
	return NewOutcome(v.Func(value), v.Description, value)
}

// ContextValidator is a Validator that also receives the validation context.
type ContextValidator struct {
	Description string
	Func        func(v, ctx any) bool
}

// Check runs the validator against value and ctx.
func (v ContextValidator) Check(value, ctx any) Outcome {
	return NewOutcome(v.Func(value, ctx), v.Description, value)
}

// Transformation rewrites a configuration value. A returned error is
// reported as a transformation error and the input is kept.
type Transformation struct {
	Description string
	Func        func(v any) (any, error)
}

// ContextTransformation is a Transformation that also receives the
// transformation context.
type ContextTransformation struct {
	Description string
	Func        func(v, ctx any) (any, error)
}

// NewValidator is shorthand for a Validator literal.
func NewValidator(description string, fn func(any) bool) Validator {
	return Validator{Description: description, Func: fn}
}

// NewTransformation is shorthand for a Transformation literal.
func NewTransformation(description string, fn func(any) (any, error)) *Transformation {
	return &Transformation{Description: description, Func: fn}
}
