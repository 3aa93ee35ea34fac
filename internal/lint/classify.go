package lint

import (
	"slices"

	"convlint/internal/ast"
	"convlint/internal/casing"
	"convlint/internal/source"
)

// Identifier is a declared name and where it was written.
type Identifier struct {
	Text string
	Span source.Span
}

// Candidate is one declaration site the pass must inspect.
type Candidate struct {
	Kind   ast.DeclKind
	Ident  Identifier
	Scope  ast.ScopeID
	Exempt bool
}

// Classify lists the declaration sites of f in source order.
func Classify(f *ast.File) []Candidate {
	decls := f.Decls.Slice()
	out := make([]Candidate, 0, len(decls))
	for _, d := range decls {
		out = append(out, Candidate{
			Kind:   d.Kind,
			Ident:  Identifier{Text: d.Name, Span: d.Span},
			Scope:  d.Scope,
			Exempt: d.Exempt,
		})
	}
	slices.SortStableFunc(out, func(a, b Candidate) int {
		return int(a.Ident.Span.Start) - int(b.Ident.Span.Start)
	})
	return out
}

// Finding is the casing verdict for one candidate.
type Finding struct {
	Kind          ast.DeclKind
	Ident         Identifier
	Suggestion    string
	HasSuggestion bool
	Conforms      bool
}

// Check runs the case converter on a candidate.
func Check(c Candidate, p casing.Policy) Finding {
	res := casing.Convert(c.Ident.Text, p)
	return Finding{
		Kind:          c.Kind,
		Ident:         c.Ident,
		Suggestion:    res.Rewritten,
		HasSuggestion: res.HasRewrite,
		Conforms:      res.Conforms,
	}
}
