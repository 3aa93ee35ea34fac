package parser

import (
	"slices"

	"convlint/internal/ast"
	"convlint/internal/diag"
	"convlint/internal/lexer"
	"convlint/internal/source"
	"convlint/internal/token"
)

type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
}

// Parser reads declaration headers of one file. Function bodies,
// expressions and field lists are skipped by delimiter matching.
type Parser struct {
	lx         *lexer.Lexer
	file       *source.File
	out        *ast.File
	opts       Options
	errors     uint
	recovering bool
	lastSpan   source.Span
}

// ParseFile parses src into its scope tree and declaration list.
func ParseFile(src *source.File, opts Options) *ast.File {
	p := &Parser{
		lx:   lexer.New(src, lexer.Options{Reporter: opts.Reporter}),
		file: src,
		opts: opts,
		out:  ast.NewFile(src.Path, src.ID, source.Span{File: src.ID, Start: 0, End: src.Len()}),
	}
	p.parseItems(p.out.Root(), ctxModule, token.EOF)
	return p.out
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// atIdentText reports an identifier with the given text, e.g. contextual keywords.
func (p *Parser) atIdentText(text string) bool {
	tok := p.peek()
	return tok.Kind == token.Ident && !tok.Raw && tok.Text == text
}

// expectIdent consumes an identifier or reports SynExpectIdent.
func (p *Parser) expectIdent(what string) (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	p.errorAt(diag.SynExpectIdent, p.diagSpan(), "expected identifier for "+what+", found "+p.peek().Kind.String())
	return token.Token{}, false
}

func (p *Parser) expect(k token.Kind, code diag.Code) bool {
	if p.eat(k) {
		return true
	}
	p.errorAt(code, p.diagSpan(), "expected "+k.String()+", found "+p.peek().Kind.String())
	return false
}

// diagSpan points at the next token, or just past the last one at EOF.
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

func (p *Parser) errorAt(code diag.Code, sp source.Span, msg string) {
	if p.recovering {
		return
	}
	p.recovering = true
	p.errors++
	if p.opts.Reporter == nil || (p.opts.MaxErrors != 0 && p.errors > p.opts.MaxErrors) {
		return
	}
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
}
