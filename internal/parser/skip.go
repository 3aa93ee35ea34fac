package parser

import (
	"convlint/internal/diag"
	"convlint/internal/token"
)

// skipGroup consumes a balanced (..), [..] or {..} group starting at the
// current opening delimiter.
func (p *Parser) skipGroup() {
	open := p.advance()
	stack := []token.Token{open}
	for len(stack) > 0 {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			top := stack[len(stack)-1]
			p.recovering = false
			p.errorAt(diag.SynUnclosedDelimiter, top.Span, "this file contains an unclosed delimiter")
			return
		case tok.IsOpen():
			stack = append(stack, p.advance())
		case tok.IsClose():
			top := stack[len(stack)-1]
			if token.Closer(top.Kind) != tok.Kind {
				p.recovering = false
				p.errorAt(diag.SynUnclosedDelimiter, tok.Span, "mismatched closing delimiter: "+tok.Kind.String())
			}
			p.advance()
			stack = stack[:len(stack)-1]
		default:
			p.advance()
		}
	}
}

// skipUntil consumes tokens until one of stops appears outside any group
// or angle bracket. Stops are not consumed. Closing delimiters of an
// enclosing group also stop the scan.
func (p *Parser) skipUntil(stops ...token.Kind) {
	angle := 0
	for {
		tok := p.peek()
		if tok.Kind == token.EOF || tok.IsClose() {
			return
		}
		if angle == 0 && p.atAny(stops...) {
			return
		}
		switch tok.Kind {
		case token.Lt:
			angle++
			p.advance()
		case token.Gt:
			if angle > 0 {
				angle--
			}
			p.advance()
		case token.LParen, token.LBracket, token.LBrace:
			p.skipGroup()
		default:
			p.advance()
		}
	}
}

// skipPastSemicolon skips an item we do not inspect (use, const, static, extern crate).
func (p *Parser) skipPastSemicolon() {
	p.skipUntil(token.Semicolon)
	p.expect(token.Semicolon, diag.SynExpectSemicolon)
}
