package schema

import (
	"github.com/equinor/configsuite/internal/tree"
	"github.com/equinor/configsuite/keypath"
)

// Vocabulary of schema documents.
const (
	KeyType                  = "type"
	KeyContent               = "content"
	KeyItem                  = "item"
	KeyKey                   = "key"
	KeyValue                 = "value"
	KeyAllowNone             = "allow_none"
	KeyAllowEmpty            = "allow_empty"
	KeyDefault               = "default"
	KeyDescription           = "description"
	KeyRequired              = "required"
	KeyDeprecated            = "deprecated"
	KeyElementValidators     = "element_validators"
	KeyContextValidators     = "context_validators"
	KeyTransformation        = "transformation"
	KeyContextTransformation = "context_transformation"
	KeyLayerTransformation   = "layer_transformation"
)

// Container type names of schema documents.
const (
	TypeRecord = "record"
	TypeList   = "list"
	TypeMap    = "map"
)

var vocabulary = map[string]bool{
	KeyType: true, KeyContent: true, KeyAllowNone: true, KeyAllowEmpty: true,
	KeyDefault: true, KeyDescription: true, KeyRequired: true, KeyDeprecated: true,
	KeyElementValidators: true, KeyContextValidators: true, KeyTransformation: true,
	KeyContextTransformation: true, KeyLayerTransformation: true,
}

// DecodeOption registers names that schema documents may refer to.
type DecodeOption func(*decoder)

// WithTypes makes user defined basic types available by name.
func WithTypes(types ...*BasicType) DecodeOption {
	return func(d *decoder) {
		for _, t := range types {
			d.types[t.Name] = t
		}
	}
}

// WithValidators registers element validators by name.
func WithValidators(m map[string]Validator) DecodeOption {
	return func(d *decoder) {
		for k, v := range m {
			d.validators[k] = v
		}
	}
}

// WithContextValidators registers context validators by name.
func WithContextValidators(m map[string]ContextValidator) DecodeOption {
	return func(d *decoder) {
		for k, v := range m {
			d.contextValidators[k] = v
		}
	}
}

// WithTransformations registers transformations by name. They can be used
// both as transformation and layer_transformation.
func WithTransformations(m map[string]*Transformation) DecodeOption {
	return func(d *decoder) {
		for k, v := range m {
			d.transformations[k] = v
		}
	}
}

// WithContextTransformations registers context transformations by name.
func WithContextTransformations(m map[string]*ContextTransformation) DecodeOption {
	return func(d *decoder) {
		for k, v := range m {
			d.contextTransformations[k] = v
		}
	}
}

type decoder struct {
	types                  map[string]*BasicType
	validators             map[string]Validator
	contextValidators      map[string]ContextValidator
	transformations        map[string]*Transformation
	contextTransformations map[string]*ContextTransformation
}

// Decode builds a Node from a schema document, typically loaded from YAML or
// JSON. Record fields are ordered by name. The result still has to pass
// Check. Errors are *SchemaError.
func Decode(doc any, opts ...DecodeOption) (Node, error) {
	d := &decoder{
		types:                  map[string]*BasicType{},
		validators:             map[string]Validator{},
		contextValidators:      map[string]ContextValidator{},
		transformations:        map[string]*Transformation{},
		contextTransformations: map[string]*ContextTransformation{},
	}
	for _, t := range BuiltinTypes() {
		d.types[t.Name] = t
	}
	for _, o := range opts {
		o(d)
	}
	return d.node(doc, keypath.Root())
}

func (d *decoder) node(doc any, p keypath.Path) (Node, error) {
	m, ok := tree.AsMapping(doc)
	if !ok {
		return nil, typeError(p, "Expected schema node to be a mapping, was %T", doc)
	}
	for _, k := range tree.SortedKeys(m) {
		if !vocabulary[k] {
			return nil, keyError(p, "Unknown schema key %q", k)
		}
	}
	attrs, err := d.attrs(m, p)
	if err != nil {
		return nil, err
	}

	rawType, hasType := m[KeyType]
	if !hasType {
		if attrs.Deprecated != "" {
			return &Basic{Attrs: attrs}, nil
		}
		return nil, keyError(p, "Type must be present")
	}
	typeName, ok := rawType.(string)
	if !ok {
		return nil, typeError(p, "Expected %s to be a string, was %T", KeyType, rawType)
	}
	content, hasContent := m[KeyContent]

	switch typeName {
	case TypeRecord, TypeList, TypeMap:
		if !hasContent {
			return nil, keyError(p, "%s schema has no %s", typeName, KeyContent)
		}
		cm, ok := tree.AsMapping(content)
		if !ok {
			return nil, valueError(p, "Expected %s to be a mapping, was %T", KeyContent, content)
		}
		switch typeName {
		case TypeRecord:
			return d.record(cm, attrs, p)
		case TypeList:
			return d.list(cm, attrs, p)
		default:
			return d.mapping(cm, attrs, p)
		}
	}

	if hasContent {
		return nil, keyError(p, "%s is only allowed for containers", KeyContent)
	}
	bt, ok := d.types[typeName]
	if !ok {
		return nil, typeError(p, "Unknown type %q", typeName)
	}
	return &Basic{Type: bt, Attrs: attrs}, nil
}

func (d *decoder) record(content map[string]any, attrs Attrs, p keypath.Path) (Node, error) {
	names := tree.SortedKeys(content)
	r := &Record{Fields: make([]Field, 0, len(names)), Attrs: attrs}
	for _, name := range names {
		if !identifier.MatchString(name) {
			return nil, keyError(p, "Invalid key %q: record keys must match %s", name, identifier.String())
		}
		n, err := d.node(content[name], p.Key(name))
		if err != nil {
			return nil, err
		}
		r.Fields = append(r.Fields, Field{Name: name, Node: n})
	}
	return r, nil
}

func (d *decoder) list(content map[string]any, attrs Attrs, p keypath.Path) (Node, error) {
	if len(content) != 1 || content[KeyItem] == nil {
		return nil, keyError(p, "Expected %s of a list to contain exactly the key %s, was %v", KeyContent, KeyItem, tree.SortedKeys(content))
	}
	item, err := d.node(content[KeyItem], p.Key("Item"))
	if err != nil {
		return nil, err
	}
	return &List{Item: item, Attrs: attrs}, nil
}

func (d *decoder) mapping(content map[string]any, attrs Attrs, p keypath.Path) (Node, error) {
	if len(content) != 2 || content[KeyKey] == nil || content[KeyValue] == nil {
		return nil, keyError(p, "Expected %s of a map to contain exactly the keys %s and %s, was %v", KeyContent, KeyKey, KeyValue, tree.SortedKeys(content))
	}
	k, err := d.node(content[KeyKey], p.Key("Key"))
	if err != nil {
		return nil, err
	}
	v, err := d.node(content[KeyValue], p.Key("Value"))
	if err != nil {
		return nil, err
	}
	return &Map{Key: k, Value: v, Attrs: attrs}, nil
}

func (d *decoder) attrs(m map[string]any, p keypath.Path) (Attrs, error) {
	var a Attrs
	var err error
	if a.Description, err = optString(m, KeyDescription, p); err != nil {
		return a, err
	}
	if a.Deprecated, err = optString(m, KeyDeprecated, p); err != nil {
		return a, err
	}
	if b, err := optBool(m, KeyAllowNone, p); err != nil {
		return a, err
	} else if b != nil {
		a.AllowNone = *b
	}
	if a.AllowEmpty, err = optBool(m, KeyAllowEmpty, p); err != nil {
		return a, err
	}
	if a.Required, err = optBool(m, KeyRequired, p); err != nil {
		return a, err
	}
	a.Default = m[KeyDefault]

	names, err := optNames(m, KeyElementValidators, p)
	if err != nil {
		return a, err
	}
	for _, name := range names {
		v, ok := d.validators[name]
		if !ok {
			return a, keyError(p, "Unknown validator %q", name)
		}
		a.ElementValidators = append(a.ElementValidators, v)
	}
	if names, err = optNames(m, KeyContextValidators, p); err != nil {
		return a, err
	}
	for _, name := range names {
		v, ok := d.contextValidators[name]
		if !ok {
			return a, keyError(p, "Unknown context validator %q", name)
		}
		a.ContextValidators = append(a.ContextValidators, v)
	}

	for key, slot := range map[string]**Transformation{
		KeyTransformation:      &a.Transformation,
		KeyLayerTransformation: &a.LayerTransformation,
	} {
		name, err := optString(m, key, p)
		if err != nil {
			return a, err
		}
		if name == "" {
			continue
		}
		t, ok := d.transformations[name]
		if !ok {
			return a, keyError(p, "Unknown transformation %q", name)
		}
		*slot = t
	}
	name, err := optString(m, KeyContextTransformation, p)
	if err != nil {
		return a, err
	}
	if name != "" {
		t, ok := d.contextTransformations[name]
		if !ok {
			return a, keyError(p, "Unknown context transformation %q", name)
		}
		a.ContextTransformation = t
	}
	return a, nil
}

func optString(m map[string]any, key string, p keypath.Path) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", typeError(p, "Expected %s to be a string, was %T", key, v)
	}
	return s, nil
}

func optBool(m map[string]any, key string, p keypath.Path) (*bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, typeError(p, "Expected %s to be a bool, was %T", key, v)
	}
	return &b, nil
}

// optNames accepts a single name or a list of names.
func optNames(m map[string]any, key string, p keypath.Path) ([]string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok {
		return []string{s}, nil
	}
	list, ok := tree.AsList(v)
	if !ok {
		return nil, typeError(p, "Expected %s to be a list of names, was %T", key, v)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, typeError(p, "Expected %s to be a list of names, found %T", key, item)
		}
		out = append(out, s)
	}
	return out, nil
}
