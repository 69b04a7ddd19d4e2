package main

import (
	"strings"

	"github.com/equinor/configsuite"
	"github.com/equinor/configsuite/codec"
	"github.com/equinor/configsuite/schema"
)

// Validators that schema documents may name in element_validators.
var validators = map[string]schema.Validator{
	"positive": schema.NewValidator("Is x positive", func(v any) bool {
		f, err := configsuite.AsFloat(v)
		return err == nil && f > 0
	}),
	"non_negative": schema.NewValidator("Is x non-negative", func(v any) bool {
		f, err := configsuite.AsFloat(v)
		return err == nil && f >= 0
	}),
	"non_blank": schema.NewValidator("Is x a non-blank string", func(v any) bool {
		s, ok := v.(string)
		return ok && strings.TrimSpace(s) != ""
	}),
}

// Transformations that schema documents may name.
var transformations = map[string]*schema.Transformation{
	"date":     codec.Date(),
	"datetime": codec.DateTime(),
	"trim": schema.NewTransformation("Trim surrounding whitespace", func(v any) (any, error) {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s), nil
		}
		return v, nil
	}),
	"lower": schema.NewTransformation("Lower case", func(v any) (any, error) {
		if s, ok := v.(string); ok {
			return strings.ToLower(s), nil
		}
		return v, nil
	}),
}
