// Package msgpack loads and writes MessagePack layers with
// vmihailenco/msgpack.
package msgpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/equinor/configsuite/source"
)

// LoadFile reads a MessagePack file.
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

// Read decodes a single value from r. An empty stream yields a nil value.
func Read(name string, r io.Reader) (source.Document, error) {
	doc := source.Document{Name: name}
	dec := msgpack.NewDecoder(r)
	v, err := dec.DecodeInterface()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		return doc, fmt.Errorf("msgpack: %s: %w", name, err)
	}
	doc.Value = source.Normalize(v)
	return doc, nil
}

// Write encodes v, typically the native form of a snapshot, to w.
func Write(w io.Writer, v any) error {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return enc.Encode(v)
}
