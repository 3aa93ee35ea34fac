package parser

import (
	"convlint/internal/ast"
	"convlint/internal/diag"
	"convlint/internal/token"
)

// parseGenerics reads `<'a, T: Bound = Default, const N: usize>` and declares
// every type parameter in scope. Lifetimes and const parameters are skipped.
func (p *Parser) parseGenerics(scope ast.ScopeID) {
	if !p.eat(token.Lt) {
		return
	}
	for !p.atAny(token.Gt, token.EOF) {
		p.parseAttrs(scope)
		tok := p.peek()
		switch tok.Kind {
		case token.Lifetime:
			p.advance()
		case token.KwConst:
			p.advance()
			p.expectIdent("const parameter")
		case token.Ident:
			p.advance()
			p.out.AddDecl(ast.Decl{Kind: ast.DeclTypeParam, Name: tok.Text, Span: tok.NameSpan(), Scope: scope})
		default:
			p.errorAt(diag.SynUnexpectedToken, tok.Span, "expected generic parameter, found "+tok.Kind.String())
		}
		// bounds and defaults
		p.skipUntil(token.Comma, token.Gt)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.Gt, diag.SynUnclosedDelimiter)
}
