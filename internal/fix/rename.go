package fix

import (
	"convlint/internal/diag"
	"convlint/internal/lexer"
	"convlint/internal/source"
	"convlint/internal/token"
)

// identIndex caches the identifier tokens of each file.
type identIndex struct {
	fs     *source.FileSet
	tokens map[source.FileID][]token.Token
}

func newIdentIndex(fs *source.FileSet) *identIndex {
	return &identIndex{fs: fs, tokens: make(map[source.FileID][]token.Token)}
}

func (ix *identIndex) idents(id source.FileID) []token.Token {
	if toks, ok := ix.tokens[id]; ok {
		return toks
	}
	var toks []token.Token
	if file := ix.fs.Get(id); file != nil {
		lx := lexer.New(file, lexer.Options{})
		for tok := lx.Next(); tok.Kind != token.EOF; tok = lx.Next() {
			if tok.Kind == token.Ident {
				toks = append(toks, tok)
			}
		}
	}
	ix.tokens[id] = toks
	return toks
}

// expandRename adds an edit for every other identifier token spelled like
// the renamed one. Only edits guarded by OldText are expanded; the lexer
// does not know scopes, so a use of an unrelated item with the same name
// is renamed too.
func (ix *identIndex) expandRename(f diag.Fix) diag.Fix {
	out := f
	out.Edits = append([]diag.TextEdit(nil), f.Edits...)
	for _, edit := range f.Edits {
		if edit.OldText == "" {
			continue
		}
		file := ix.fs.Get(edit.Span.File)
		if file == nil {
			continue
		}
		for _, tok := range ix.idents(edit.Span.File) {
			sp := tok.NameSpan()
			if sp == edit.Span || file.Text(sp) != edit.OldText {
				continue
			}
			out.Edits = append(out.Edits, diag.TextEdit{Span: sp, NewText: edit.NewText, OldText: edit.OldText})
		}
	}
	if len(out.Edits) > len(f.Edits) {
		out.Kind = diag.FixKindRefactor
	}
	return out
}
