// Package configsuite provides:
//
// - Layered configuration: raw layers are merged by schema-directed precedence rules
// - Validation with a stable error model (kind, message, key path, layer)
// - Transformations per layer, after merge, and with an externally extracted context
// - Immutable snapshots with typed accessors and struct decoding
//
// Design policy:
// - Keep only public APIs in the root package; put the tree walks under internal/engine.
// - Schemas live in schema/, format loaders under source/, the CLI under cmd/configsuite.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	node := &schema.Record{Fields: []schema.Field{
//		{Name: "name", Node: &schema.Basic{Type: schema.String}},
//		{Name: "strength", Node: &schema.Basic{Type: schema.Integer, Attrs: schema.Attrs{Default: 10}}},
//	}}
//	suite, err := configsuite.New(raw, node, configsuite.WithLayers(defaults))
//	if err != nil {
//		// the schema is malformed
//	}
//	if !suite.Valid() {
//		for _, e := range suite.Errors() { ... }
//	}
//	hero := suite.Snapshot().(*configsuite.Record)
//	name, _ := hero.GetString("name")
package configsuite
