package configsuite

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag read by Decode.
const TagName = "config"

// Decode copies a snapshot into out, a pointer to a struct, map or slice.
// Struct fields are matched by their `config` tag or, case-insensitively, by
// name. Strings are converted to time.Duration fields.
func Decode(snapshot any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     out,
		TagName:    TagName,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("configsuite: decoder: %w", err)
	}
	if err := dec.Decode(ToNative(snapshot)); err != nil {
		return fmt.Errorf("configsuite: decode snapshot: %w", err)
	}
	return nil
}

// Decode copies the snapshot of s into out. It fails with the configuration
// errors when s is not valid.
func (s *Suite) Decode(out any) error {
	if err := s.Err(); err != nil {
		return err
	}
	return Decode(s.Snapshot(), out)
}
