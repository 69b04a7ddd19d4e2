// Package engine walks schema and configuration trees in lock-step: it
// transforms, merges and validates raw layers. Results are reported as
// Issues and converted to public errors by the root package.
package engine

import "github.com/equinor/configsuite/keypath"

// Kind classifies an Issue.
type Kind int

const (
	KindUnknownKey Kind = iota
	KindMissingKey
	KindInvalidType
	KindInvalidValue
	KindTransformation
	KindContextExtraction
)

// NoLayer marks an issue that is not tied to a single layer.
const NoLayer = -1

// Issue is a single configuration problem.
type Issue struct {
	Kind    Kind
	Message string
	Path    keypath.Path
	Layer   int
}

func newIssue(k Kind, p keypath.Path, msg string) Issue {
	return Issue{Kind: k, Message: msg, Path: p, Layer: NoLayer}
}

// InLayer tags issues with the index of the layer that produced them.
func InLayer(issues []Issue, layer int) []Issue {
	for i := range issues {
		issues[i].Layer = layer
	}
	return issues
}
