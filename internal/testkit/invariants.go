package testkit

import (
	"fmt"

	"convlint/internal/ast"
	"convlint/internal/source"
)

// CheckSpanInvariants validates a parsed declaration file against its source:
// every declaration span lies inside the file and spells the declared name
// (or its raw form), declarations are in source order, every declaration
// points at an existing scope whose span contains it, and every scope
// parent precedes the scope itself.
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	if f.Source != sf.ID {
		return fmt.Errorf("file points to different source id: got=%d want=%d", f.Source, sf.ID)
	}
	for i, s := range f.Scopes.Slice() {
		id := ast.ScopeID(i + 1)
		if id != f.Root() && (!s.Parent.IsValid() || s.Parent >= id) {
			return fmt.Errorf("scope %d has parent %d", id, s.Parent)
		}
		if !s.Span.Valid(sf.Len()) {
			return fmt.Errorf("scope %d span %v out of bounds", id, s.Span)
		}
	}
	var prev uint32
	for i, d := range f.Decls.Slice() {
		if !d.Span.Valid(sf.Len()) || d.Span.Empty() {
			return fmt.Errorf("decl %d (%s) has bad span %v", i, d.Name, d.Span)
		}
		// NFC normalization may change the byte form of non-ASCII names
		if got := sf.Text(d.Span); got != d.Name && isASCII(got) {
			return fmt.Errorf("decl %d: span text %q != name %q", i, got, d.Name)
		}
		if d.Span.Start < prev {
			return fmt.Errorf("decl %d (%s) out of source order", i, d.Name)
		}
		prev = d.Span.Start
		s := f.Scope(d.Scope)
		if s == nil {
			return fmt.Errorf("decl %d (%s) has unknown scope %d", i, d.Name, d.Scope)
		}
		if !s.Span.Contains(d.Span) {
			return fmt.Errorf("decl %d (%s) span %v outside scope span %v", i, d.Name, d.Span, s.Span)
		}
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
