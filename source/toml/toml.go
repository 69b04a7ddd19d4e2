// Package toml loads TOML layers with BurntSushi/toml.
package toml

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/equinor/configsuite/source"
)

// LoadFile reads a TOML file.
func LoadFile(path string) (source.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return source.Document{}, err
	}
	return Load(path, data)
}

// Load decodes data into a layer. Arrays of tables become lists of mappings.
// Parse errors carry the line reported by the decoder.
func Load(name string, data []byte) (source.Document, error) {
	doc := source.Document{Name: name}
	var out map[string]any
	if _, err := toml.Decode(string(data), &out); err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			msg := strings.TrimPrefix(perr.Error(), "toml: ")
			return doc, fmt.Errorf("toml: %s:%d: %s", name, perr.Position.Line, msg)
		}
		return doc, fmt.Errorf("toml: %s: %w", name, err)
	}
	doc.Value = source.Normalize(out)
	return doc, nil
}
