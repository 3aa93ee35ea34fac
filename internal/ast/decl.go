package ast

import "convlint/internal/source"

// DeclKind is the closed set of declaration sites the naming lint inspects.
type DeclKind uint8

const (
	DeclStruct DeclKind = iota + 1
	DeclEnum
	DeclUnion
	DeclVariant
	DeclTrait
	DeclTypeAlias
	DeclAssocType
	DeclTypeParam
)

// Noun is the word used in "<noun> `X` should have a camel case name".
func (k DeclKind) Noun() string {
	switch k {
	case DeclStruct, DeclEnum, DeclUnion, DeclTypeAlias:
		return "type"
	case DeclVariant:
		return "variant"
	case DeclTrait:
		return "trait"
	case DeclAssocType:
		return "associated type"
	case DeclTypeParam:
		return "type parameter"
	}
	panic("ast: invalid DeclKind")
}

func (k DeclKind) String() string {
	switch k {
	case DeclStruct:
		return "struct"
	case DeclEnum:
		return "enum"
	case DeclUnion:
		return "union"
	case DeclVariant:
		return "variant"
	case DeclTrait:
		return "trait"
	case DeclTypeAlias:
		return "type-alias"
	case DeclAssocType:
		return "assoc-type"
	case DeclTypeParam:
		return "type-param"
	}
	return "invalid"
}

// Decl is one declared name. Span covers the name only (without "r#").
type Decl struct {
	Kind  DeclKind
	Name  string
	Span  source.Span
	Scope ScopeID // scope whose lint levels apply to this name
	// Exempt marks names the naming lint must skip, e.g. #[repr(C)] types.
	Exempt bool
}
