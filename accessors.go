package configsuite

import (
	"errors"
	"fmt"
	"time"

	"fortio.org/safecast"
)

// ErrUnset is returned by typed accessors for nil values.
var ErrUnset = errors.New("configsuite: value is not set")

// AsString returns v as a string.
func AsString(v any) (string, error) {
	if v == nil {
		return "", ErrUnset
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("configsuite: %T is not a string", v)
	}
	return s, nil
}

// AsInt returns v as an int, failing when it does not fit.
func AsInt(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, ErrUnset
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return safecast.Conv[int](n)
	case uint:
		return safecast.Conv[int](n)
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return safecast.Conv[int](n)
	case uint64:
		return safecast.Conv[int](n)
	}
	return 0, fmt.Errorf("configsuite: %T is not an integer", v)
}

// AsInt64 returns v as an int64, failing when it does not fit.
func AsInt64(v any) (int64, error) {
	switch n := v.(type) {
	case uint:
		return safecast.Conv[int64](n)
	case uint64:
		return safecast.Conv[int64](n)
	case int64:
		return n, nil
	}
	i, err := AsInt(v)
	return int64(i), err
}

// AsFloat returns v as a float64. Integers are converted.
func AsFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case nil:
		return 0, ErrUnset
	}
	i, err := AsInt64(v)
	if err != nil {
		return 0, fmt.Errorf("configsuite: %T is not a number", v)
	}
	return float64(i), nil
}

// AsBool returns v as a bool.
func AsBool(v any) (bool, error) {
	if v == nil {
		return false, ErrUnset
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("configsuite: %T is not a bool", v)
	}
	return b, nil
}

// AsTime returns v as a time.Time.
func AsTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, ErrUnset
	case time.Time:
		return t, nil
	case *time.Time:
		if t != nil {
			return *t, nil
		}
		return time.Time{}, ErrUnset
	}
	return time.Time{}, fmt.Errorf("configsuite: %T is not a time", v)
}

func field[T any](r *Record, name string, conv func(any) (T, error)) (T, error) {
	if !r.Has(name) {
		var zero T
		return zero, fmt.Errorf("configsuite: no field %q", name)
	}
	out, err := conv(r.values[name])
	if err != nil {
		return out, fmt.Errorf("field %q: %w", name, err)
	}
	return out, nil
}

// GetString returns a string field.
func (r *Record) GetString(name string) (string, error) { return field(r, name, AsString) }

// GetInt returns an integer field as an int.
func (r *Record) GetInt(name string) (int, error) { return field(r, name, AsInt) }

// GetInt64 returns an integer field as an int64.
func (r *Record) GetInt64(name string) (int64, error) { return field(r, name, AsInt64) }

// GetFloat returns a number field.
func (r *Record) GetFloat(name string) (float64, error) { return field(r, name, AsFloat) }

// GetBool returns a bool field.
func (r *Record) GetBool(name string) (bool, error) { return field(r, name, AsBool) }

// GetTime returns a date or datetime field.
func (r *Record) GetTime(name string) (time.Time, error) { return field(r, name, AsTime) }

// GetRecord returns a nested record, nil when absent.
func (r *Record) GetRecord(name string) *Record {
	v, _ := r.values[name].(*Record)
	return v
}

// GetList returns a nested list, nil when absent.
func (r *Record) GetList(name string) *List {
	v, _ := r.values[name].(*List)
	return v
}

// GetMap returns a nested map, nil when absent.
func (r *Record) GetMap(name string) *Map {
	v, _ := r.values[name].(*Map)
	return v
}
