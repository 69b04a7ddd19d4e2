// Package schema describes the expected shape of a configuration.
//
// A schema is a tree of nodes. Leaves are Basic nodes carrying a BasicType;
// inner nodes are Records (fixed keys), Lists (homogeneous items) and Maps
// (homogeneous keys and values). Every node carries Attrs with defaults,
// validators and transformations.
package schema

import "fmt"

// Kind tags the variant of a Node.
type Kind int

const (
	KindBasic Kind = iota
	KindRecord
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindRecord:
		return "record"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is one of *Basic, *Record, *List or *Map.
type Node interface {
	Kind() Kind
	Attributes() *Attrs
	// Check applies the node's type predicate to v.
	Check(v any) Outcome
}

// Attrs are the optional attributes shared by all node kinds. Which of them
// are legal on a given node is enforced by Check.
type Attrs struct {
	Description string

	// AllowNone lets a Basic field be nil or absent.
	AllowNone bool
	// AllowEmpty defaults to true; set to false to reject empty Lists and Maps.
	AllowEmpty *bool
	// Default is used for a Basic record field absent from every layer.
	// nil means no default.
	Default any
	// Required is superseded by AllowNone and Default.
	//
	// Deprecated: leave unset and use AllowNone or Default.
	Required *bool

	ElementValidators []Validator
	ContextValidators []ContextValidator

	LayerTransformation   *Transformation
	Transformation        *Transformation
	ContextTransformation *ContextTransformation

	// Deprecated names the sibling record field superseding this one.
	Deprecated string
}

// Attributes returns a.
func (a *Attrs) Attributes() *Attrs { return a }

// Basic is a leaf node.
type Basic struct {
	Type *BasicType
	Attrs
}

func (*Basic) Kind() Kind { return KindBasic }

func (b *Basic) Check(v any) Outcome {
	if b.Type == nil {
		return NewOutcome(false, "Is x typed", v)
	}
	return b.Type.Check(v)
}

// Field is a named entry of a Record.
type Field struct {
	Name string
	Node Node
}

// Record is a container with a fixed, ordered set of keys.
type Record struct {
	Fields []Field
	Attrs
}

func (*Record) Kind() Kind { return KindRecord }

func (*Record) Check(v any) Outcome { return NewOutcome(isMapping(v), "Is x a dictionary", v) }

// Field looks up a field by name.
func (r *Record) Field(name string) (Node, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Node, true
		}
	}
	return nil, false
}

// List is a homogeneous sequence.
type List struct {
	Item Node
	Attrs
}

func (*List) Kind() Kind { return KindList }

func (*List) Check(v any) Outcome { return NewOutcome(isList(v), "Is x a list", v) }

// Map is a homogeneous mapping with string keys.
type Map struct {
	Key   Node
	Value Node
	Attrs
}

func (*Map) Kind() Kind { return KindMap }

func (*Map) Check(v any) Outcome { return NewOutcome(isMapping(v), "Is x a dictionary", v) }

// DeprecatedAlias returns the node of a record field superseded by the
// sibling field replacement. description is appended to the warning.
func DeprecatedAlias(replacement, description string) Node {
	return &Basic{Attrs: Attrs{Deprecated: replacement, Description: description}}
}

// IsContainer reports whether n is a Record, List or Map.
func IsContainer(n Node) bool { return n != nil && n.Kind() != KindBasic }

// IsDeprecated reports whether n is a deprecated alias of another field.
func IsDeprecated(n Node) bool { return n != nil && n.Attributes().Deprecated != "" }

// Optional reports whether a record field with node n may be absent after
// merge: only Basic fields that allow None or carry a default are.
func Optional(n Node) bool {
	if IsDeprecated(n) {
		return true
	}
	b, ok := n.(*Basic)
	if !ok {
		return false
	}
	return b.AllowNone || b.Default != nil
}

// AllowsEmpty reports whether an empty value is accepted for n.
func AllowsEmpty(n Node) bool {
	a := n.Attributes()
	return a.AllowEmpty == nil || *a.AllowEmpty
}

// BoolPtr returns a pointer to b, for AllowEmpty and Required.
func BoolPtr(b bool) *bool { return &b }
