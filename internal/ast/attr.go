package ast

import "convlint/internal/source"

// AttrForm is the shape of an attribute or of one nested meta item.
type AttrForm uint8

const (
	FormWord      AttrForm = iota // #[allow]
	FormList                      // #[allow(a, b)]
	FormNameValue                 // #[allow = "a"]
	FormLiteral                   // a bare literal inside a list
)

// MetaItem is one entry of a list attribute: `x`, `x::y`, `x = 1`, `x(..)` or a literal.
type MetaItem struct {
	Path  string
	Form  AttrForm
	Span  source.Span // path span, or literal span
	Items []MetaItem  // for FormList
}

// Attr is `#[path ...]` or, when Inner, `#![path ...]`.
type Attr struct {
	Path     string
	PathSpan source.Span
	Inner    bool
	Form     AttrForm
	Items    []MetaItem
	Span     source.Span
}

// HasItem reports whether a list attribute contains the word item name,
// e.g. HasItem("C") for #[repr(C, packed)].
func (a *Attr) HasItem(name string) bool {
	if a.Form != FormList {
		return false
	}
	for _, it := range a.Items {
		if it.Form == FormWord && it.Path == name {
			return true
		}
	}
	return false
}
