package fuzztests

import (
	"testing"

	"convlint/internal/diag"
	"convlint/internal/lexer"
	"convlint/internal/source"
	"convlint/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.rs", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		for i := 0; i <= 2*len(input)+16; i++ {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				return
			}
			if tok.Span.Start < prevEnd || tok.Span.End > file.Len() {
				t.Fatalf("token %v has span %v after offset %d (len %d)", tok.Kind, tok.Span, prevEnd, file.Len())
			}
			prevEnd = tok.Span.End
		}
		t.Fatalf("lexer did not reach EOF on %d bytes", len(input))
	})
}
