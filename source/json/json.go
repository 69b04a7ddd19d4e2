// Package json loads JSON layers with goccy/go-json. Numbers keep their
// integer-ness and duplicate object keys are rejected.
package json

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	j "github.com/goccy/go-json"

	"github.com/equinor/configsuite/keypath"
	"github.com/equinor/configsuite/source"
)

// DuplicateKeyError reports an object key seen twice in the same object.
type DuplicateKeyError struct {
	Key  string
	Path keypath.Path // path of the object holding the key
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate JSON key %q in %s", e.Key, e.Path.Pointer())
}

// LoadFile reads a JSON file.
func LoadFile(path string) (source.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return source.Document{}, err
	}
	defer f.Close()
	return Read(path, f)
}

// Load decodes data. name is kept on the returned document.
func Load(name string, data []byte) (source.Document, error) {
	return Read(name, bytes.NewReader(data))
}

// Read decodes a single JSON value from r. An empty stream yields a nil value.
func Read(name string, r io.Reader) (source.Document, error) {
	doc := source.Document{Name: name}
	dec := j.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		return doc, fmt.Errorf("json: %s: %w", name, err)
	}
	v, err := value(dec, tok, keypath.Root())
	if err != nil {
		return doc, fmt.Errorf("json: %s: %w", name, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return doc, fmt.Errorf("json: %s: trailing data after top-level value", name)
	}
	doc.Value = v
	return doc, nil
}

func value(dec *j.Decoder, tok j.Token, p keypath.Path) (any, error) {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return object(dec, p)
		case '[':
			return array(dec, p)
		}
		return nil, fmt.Errorf("unexpected %q at %s", rune(v), p.Pointer())
	case j.Number:
		return source.Normalize(v), nil
	case float64:
		return v, nil
	case string, bool, nil:
		return v, nil
	}
	return nil, fmt.Errorf("unexpected token %T at %s", tok, p.Pointer())
}

func object(dec *j.Decoder, p keypath.Path) (any, error) {
	m := map[string]any{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(j.Delim); ok && d == '}' {
			return m, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key at %s", p.Pointer())
		}
		if _, dup := m[key]; dup {
			return nil, &DuplicateKeyError{Key: key, Path: p}
		}
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		v, err := value(dec, tok, p.Key(key))
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
}

func array(dec *j.Decoder, p keypath.Path) (any, error) {
	arr := []any{}
	for i := 0; ; i++ {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(j.Delim); ok && d == ']' {
			return arr, nil
		}
		v, err := value(dec, tok, p.Index(i))
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}
