package schema

import (
	"fmt"
	"reflect"
	"time"

	"github.com/equinor/configsuite/internal/tree"
)

// Outcome is the result of a predicate together with an explanation.
type Outcome struct {
	Passed  bool
	Message string
}

// NewOutcome formats the explanation of a predicate result as
// "<description> is <true|false> on input '<value>'".
func NewOutcome(passed bool, description string, input any) Outcome {
	verdict := "false"
	if passed {
		verdict = "true"
	}
	return Outcome{
		Passed:  passed,
		Message: fmt.Sprintf("%s is %s on input '%s'", description, verdict, FormatValue(input)),
	}
}

// FormatValue renders a configuration value for messages. nil renders as None.
func FormatValue(v any) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprint(v)
}

// BasicType is a named leaf type with a validity predicate.
type BasicType struct {
	Name        string
	Description string
	valid       func(any) bool
}

// NewBasicType builds a user defined leaf type. description is used in
// messages, e.g. "Is x a positive integer".
func NewBasicType(name, description string, valid func(any) bool) *BasicType {
	return &BasicType{Name: name, Description: description, valid: valid}
}

// Check applies the type predicate to v.
func (t *BasicType) Check(v any) Outcome {
	return NewOutcome(t.valid(v), t.Description, v)
}

func (t *BasicType) String() string { return t.Name }

// Built-in basic types.
var (
	String   = NewBasicType("string", "Is x a string", isString)
	Integer  = NewBasicType("integer", "Is x an integer", isInteger)
	Number   = NewBasicType("number", "Is x a number", isNumber)
	Bool     = NewBasicType("bool", "Is x a bool", isBool)
	Date     = NewBasicType("date", "Is x a date", isDate)
	DateTime = NewBasicType("datetime", "Is x a datetime", isTime)
)

// BuiltinTypes lists the basic types known without registration.
func BuiltinTypes() []*BasicType {
	return []*BasicType{String, Integer, Number, Bool, Date, DateTime}
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isInteger(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isNumber(v any) bool {
	if isInteger(v) {
		return true
	}
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Float32 || k == reflect.Float64
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

func isTime(v any) bool {
	switch t := v.(type) {
	case time.Time:
		return true
	case *time.Time:
		return t != nil
	}
	return false
}

// isDate accepts times whose clock reads midnight in their own location.
func isDate(v any) bool {
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case *time.Time:
		if x == nil {
			return false
		}
		t = *x
	default:
		return false
	}
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

func isMapping(v any) bool {
	_, ok := tree.AsMapping(v)
	return ok
}

func isList(v any) bool {
	_, ok := tree.AsList(v)
	return ok
}
