package parser

import (
	"strings"

	"convlint/internal/ast"
	"convlint/internal/diag"
	"convlint/internal/source"
	"convlint/internal/token"
)

// parseAttrs reads a run of `#[..]` and `#![..]`. Inner attributes are
// appended to the scope they appear in, outer ones are returned for the
// item that follows.
func (p *Parser) parseAttrs(scope ast.ScopeID) []ast.Attr {
	var outer []ast.Attr
	for p.at(token.Pound) {
		attr, ok := p.parseAttr()
		if !ok {
			continue
		}
		if attr.Inner {
			s := p.out.Scope(scope)
			s.Attrs = append(s.Attrs, attr)
			continue
		}
		outer = append(outer, attr)
	}
	return outer
}

func (p *Parser) parseAttr() (ast.Attr, bool) {
	start := p.advance() // '#'
	attr := ast.Attr{Inner: p.eat(token.Bang)}
	if !p.at(token.LBracket) {
		p.errorAt(diag.SynBadAttribute, p.diagSpan(), "expected `[` after `#`")
		return attr, false
	}
	p.advance()

	path, pathSpan, ok := p.parsePath()
	if !ok {
		p.errorAt(diag.SynBadAttribute, p.diagSpan(), "expected attribute path")
		p.skipUntil(token.RBracket)
		p.eat(token.RBracket)
		return attr, false
	}
	attr.Path, attr.PathSpan = path, pathSpan

	switch {
	case p.at(token.LParen):
		attr.Form = ast.FormList
		attr.Items = p.parseMetaList()
	case p.eat(token.Assign):
		attr.Form = ast.FormNameValue
		p.skipUntil(token.RBracket)
	default:
		attr.Form = ast.FormWord
	}

	if !p.at(token.RBracket) {
		p.errorAt(diag.SynBadAttribute, p.diagSpan(), "expected `]` to close attribute")
		p.skipUntil(token.RBracket)
	}
	p.eat(token.RBracket)
	attr.Span = start.Span.Cover(p.lastSpan)
	return attr, true
}

// parsePath reads `a::b::c`. Keywords are accepted as segments so paths
// like `crate::x` or `r#type` work.
func (p *Parser) parsePath() (string, source.Span, bool) {
	var parts []string
	var sp source.Span
	p.eat(token.ColonColon)
	for {
		tok := p.peek()
		if tok.Kind != token.Ident && !tok.IsKeyword() {
			break
		}
		p.advance()
		if len(parts) == 0 {
			sp = tok.Span
		} else {
			sp = sp.Cover(tok.Span)
		}
		parts = append(parts, tok.Text)
		if !p.eat(token.ColonColon) {
			break
		}
	}
	return strings.Join(parts, "::"), sp, len(parts) > 0
}

// parseMetaList reads `( item, item, ... )`.
func (p *Parser) parseMetaList() []ast.MetaItem {
	p.advance() // '('
	var items []ast.MetaItem
	for !p.atAny(token.RParen, token.EOF, token.RBracket, token.RBrace) {
		items = append(items, p.parseMetaItem())
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.eat(token.RParen) {
		p.errorAt(diag.SynUnclosedDelimiter, p.diagSpan(), "expected `)` in attribute")
		p.skipUntil(token.RBracket)
	}
	return items
}

func (p *Parser) parseMetaItem() ast.MetaItem {
	tok := p.peek()
	if tok.IsLiteral() {
		p.advance()
		return ast.MetaItem{Form: ast.FormLiteral, Span: tok.Span, Path: tok.Text}
	}
	path, sp, ok := p.parsePath()
	if !ok {
		// unrecognized token tree; keep its span so resolvers can point at it
		start := p.peek().Span
		p.skipUntil(token.Comma, token.RParen)
		return ast.MetaItem{Form: ast.FormLiteral, Span: start.Cover(p.lastSpan)}
	}
	item := ast.MetaItem{Path: path, Span: sp, Form: ast.FormWord}
	switch {
	case p.at(token.LParen):
		item.Form = ast.FormList
		item.Items = p.parseMetaList()
	case p.eat(token.Assign):
		item.Form = ast.FormNameValue
		p.skipUntil(token.Comma, token.RParen)
	}
	return item
}
