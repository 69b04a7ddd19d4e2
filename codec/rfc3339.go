// Package codec provides transformations that turn the wire form of common
// values into the Go values the built-in basic types accept. Formats without
// a native date type (JSON, HCL) carry dates and datetimes as strings.
package codec

import (
	"fmt"
	"time"

	"github.com/equinor/configsuite/schema"
)

// DateLayout is the layout of dates accepted by Date.
const DateLayout = "2006-01-02"

// DateTime returns a transformation that parses RFC3339 strings into
// time.Time. time.Time values and non-strings pass through unchanged so the
// type check reports them.
func DateTime() *schema.Transformation {
	return schema.NewTransformation("Parse an RFC3339 datetime", func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return v, nil
		}
		return parseRFC3339(s)
	})
}

// Date returns a transformation that parses YYYY-MM-DD strings into a
// time.Time at midnight UTC.
func Date() *schema.Transformation {
	return schema.NewTransformation("Parse a YYYY-MM-DD date", func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return v, nil
		}
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q", s)
		}
		return t, nil
	})
}

// FormatRFC3339 is the canonical form of a datetime: UTC, RFC3339Nano
// (trailing zeros trimmed).
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, fmt.Errorf("invalid RFC3339 time %q", s)
	}
	return t, nil
}
