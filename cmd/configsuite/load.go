package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/equinor/configsuite"
	"github.com/equinor/configsuite/schema"
	"github.com/equinor/configsuite/source"
	"github.com/equinor/configsuite/source/hcl"
	"github.com/equinor/configsuite/source/json"
	"github.com/equinor/configsuite/source/msgpack"
	"github.com/equinor/configsuite/source/toml"
	"github.com/equinor/configsuite/source/yaml"
)

// loadDocument picks a loader by file extension.
func loadDocument(path string) (source.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.LoadFile(path)
	case ".json":
		return json.LoadFile(path)
	case ".toml":
		return toml.LoadFile(path)
	case ".hcl":
		return hcl.LoadFile(path)
	case ".msgpack", ".mpk":
		return msgpack.LoadFile(path)
	}
	return source.Document{}, fmt.Errorf("%s: unsupported file extension %q", path, filepath.Ext(path))
}

func (a *app) loadSchema() (schema.Node, error) {
	if a.schemaPath == "" {
		return nil, errors.New("--schema is required")
	}
	doc, err := loadDocument(a.schemaPath)
	if err != nil {
		return nil, err
	}
	n, err := schema.Decode(doc.Value,
		schema.WithValidators(validators),
		schema.WithTransformations(transformations),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.schemaPath, err)
	}
	return n, nil
}

// loadSuite builds a Suite from layer files, lowest precedence first.
func (a *app) loadSuite(paths []string) (*configsuite.Suite, []source.Document, error) {
	n, err := a.loadSchema()
	if err != nil {
		return nil, nil, err
	}
	docs := make([]source.Document, 0, len(paths))
	for _, p := range paths {
		doc, err := loadDocument(p)
		if err != nil {
			return nil, nil, err
		}
		a.logger.Debug("loaded layer", "file", p, "index", len(docs))
		docs = append(docs, doc)
	}
	layers := make([]any, 0, len(docs))
	for _, d := range docs[:len(docs)-1] {
		layers = append(layers, d.Value)
	}
	s, err := configsuite.New(docs[len(docs)-1].Value, n,
		configsuite.WithLayers(layers...),
		configsuite.WithDeduceRequired(a.deduceRequired),
		configsuite.WithLogger(a.logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", a.schemaPath, err)
	}
	return s, docs, nil
}

// locate finds where an error was written. Errors found after merging are
// attributed to the most significant layer that sets the exact path.
func locate(docs []source.Document, e configsuite.Error) (source.Position, bool) {
	if e.Layer >= 0 && e.Layer < len(docs) {
		return docs[e.Layer].Positions.Lookup(e.KeyPath)
	}
	ptr := e.KeyPath.Pointer()
	for i := len(docs) - 1; i >= 0; i-- {
		if pos, ok := docs[i].Positions[ptr]; ok {
			return pos, true
		}
	}
	return source.Position{}, false
}
