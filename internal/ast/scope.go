package ast

import "convlint/internal/source"

type ScopeKind uint8

const (
	ScopeFile ScopeKind = iota + 1
	ScopeModule
	ScopeItem
	ScopeVariant
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeModule:
		return "mod"
	case ScopeItem:
		return "item"
	case ScopeVariant:
		return "variant"
	}
	return "invalid"
}

// Scope is a node of the lint-level scope tree. Attrs holds both the outer
// attributes written before the node and the inner ones written inside it,
// in source order.
type Scope struct {
	Kind   ScopeKind
	Parent ScopeID
	Name   string
	Span   source.Span
	Attrs  []Attr
}
