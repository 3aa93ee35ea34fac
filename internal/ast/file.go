package ast

import "convlint/internal/source"

// File is the declaration-level view of one source file: a scope tree with
// its lint attributes and every declared type-level name in source order.
type File struct {
	Path   string
	Source source.FileID
	Scopes Arena[Scope]
	Decls  Arena[Decl]
}

// NewFile creates the file with its root scope.
func NewFile(path string, id source.FileID, span source.Span) *File {
	f := &File{Path: path, Source: id}
	f.Scopes.Allocate(Scope{Kind: ScopeFile, Span: span})
	return f
}

// Root is the file scope.
func (f *File) Root() ScopeID { return 1 }

func (f *File) NewScope(kind ScopeKind, parent ScopeID, name string, span source.Span, attrs []Attr) ScopeID {
	return ScopeID(f.Scopes.Allocate(Scope{Kind: kind, Parent: parent, Name: name, Span: span, Attrs: attrs}))
}

func (f *File) Scope(id ScopeID) *Scope {
	return f.Scopes.Get(uint32(id))
}

func (f *File) AddDecl(d Decl) DeclID {
	return DeclID(f.Decls.Allocate(d))
}

func (f *File) Decl(id DeclID) *Decl {
	return f.Decls.Get(uint32(id))
}

// Chain returns id followed by its ancestors up to the root.
func (f *File) Chain(id ScopeID) []ScopeID {
	var out []ScopeID
	for id.IsValid() {
		out = append(out, id)
		s := f.Scope(id)
		if s == nil {
			break
		}
		id = s.Parent
	}
	return out
}

// Rebase points every span at a new source file id. Cached files are
// decoded with the id they were parsed under.
func (f *File) Rebase(id source.FileID) {
	f.Source = id
	for i := range f.Scopes.Data {
		s := &f.Scopes.Data[i]
		s.Span.File = id
		for j := range s.Attrs {
			rebaseAttr(&s.Attrs[j], id)
		}
	}
	for i := range f.Decls.Data {
		f.Decls.Data[i].Span.File = id
	}
}

func rebaseAttr(a *Attr, id source.FileID) {
	a.Span.File = id
	a.PathSpan.File = id
	rebaseItems(a.Items, id)
}

func rebaseItems(items []MetaItem, id source.FileID) {
	for i := range items {
		items[i].Span.File = id
		rebaseItems(items[i].Items, id)
	}
}
