package parser

import (
	"convlint/internal/ast"
	"convlint/internal/diag"
	"convlint/internal/source"
	"convlint/internal/token"
)

// itemCtx tells items inside a body what they are nested in.
type itemCtx uint8

const (
	ctxModule itemCtx = iota
	ctxTrait
	ctxImpl
	ctxExtern
)

// parseItems parses items until end (EOF or `}`), which is not consumed.
func (p *Parser) parseItems(scope ast.ScopeID, ctx itemCtx, end token.Kind) {
	for {
		attrs := p.parseAttrs(scope)
		tok := p.peek()
		if tok.Kind == end || tok.Kind == token.EOF {
			return
		}
		if tok.Kind == token.RBrace || tok.Kind == token.RParen || tok.Kind == token.RBracket {
			p.errorAt(diag.SynUnexpectedToken, tok.Span, "unexpected closing delimiter: "+tok.Kind.String())
			p.advance()
			continue
		}
		if !p.parseItem(scope, ctx, attrs) {
			p.recover()
		}
	}
}

// recover skips to something that can start an item.
func (p *Parser) recover() {
	for {
		switch p.peek().Kind {
		case token.EOF, token.RBrace, token.Pound,
			token.KwStruct, token.KwEnum, token.KwTrait, token.KwType, token.KwFn,
			token.KwImpl, token.KwMod, token.KwUse, token.KwPub, token.KwExtern,
			token.KwConst, token.KwStatic, token.KwUnsafe:
			return
		case token.Semicolon:
			p.advance()
			return
		case token.LParen, token.LBracket, token.LBrace:
			p.skipGroup()
		default:
			p.advance()
		}
	}
}

// parseItem parses one item after its outer attributes. False means the
// input did not start an item and the caller must resynchronize.
func (p *Parser) parseItem(parent ast.ScopeID, ctx itemCtx, attrs []ast.Attr) bool {
	start := p.peek().Span
	if len(attrs) > 0 {
		start = attrs[0].Span
	}

	for {
		tok := p.peek()
		switch tok.Kind {
		case token.KwPub:
			p.advance()
			if p.at(token.LParen) {
				p.skipGroup()
			}
			continue
		case token.KwUnsafe, token.KwAsync:
			p.advance()
			continue
		case token.KwConst:
			p.advance()
			if p.atAny(token.Ident, token.Underscore) {
				p.skipPastSemicolon()
				p.recovering = false
				return true
			}
			continue
		case token.KwStatic, token.KwUse:
			p.skipPastSemicolon()
			p.recovering = false
			return true
		case token.KwExtern:
			p.advance()
			p.eat(token.StringLit)
			switch {
			case p.at(token.KwCrate):
				p.skipPastSemicolon()
				p.recovering = false
				return true
			case p.at(token.LBrace):
				p.parseBlockItem(parent, start, attrs, "extern", ctxExtern)
				return true
			}
			continue
		case token.Semicolon:
			p.advance()
			return true
		case token.Ident:
			if tok.Raw {
				break
			}
			switch tok.Text {
			case "auto", "default", "safe":
				p.advance()
				continue
			case "union":
				p.advance()
				if p.at(token.Ident) {
					p.recovering = false
					p.parseStructLike(parent, start, attrs, ast.DeclUnion)
					return true
				}
				return p.finishMacroCall(tok)
			}
			p.advance()
			return p.finishMacroCall(tok)
		}
		break
	}

	tok := p.peek()
	switch tok.Kind {
	case token.KwStruct:
		p.recovering = false
		p.advance()
		p.parseStructLike(parent, start, attrs, ast.DeclStruct)
	case token.KwEnum:
		p.recovering = false
		p.advance()
		p.parseEnum(parent, start, attrs)
	case token.KwTrait:
		p.recovering = false
		p.advance()
		p.parseTrait(parent, start, attrs)
	case token.KwType:
		p.recovering = false
		p.advance()
		p.parseTypeItem(parent, start, attrs, ctx)
	case token.KwFn:
		p.recovering = false
		p.advance()
		p.parseFn(parent, start, attrs)
	case token.KwImpl:
		p.recovering = false
		p.advance()
		p.parseImpl(parent, start, attrs)
	case token.KwMod:
		p.recovering = false
		p.advance()
		p.parseMod(parent, start, attrs)
	default:
		p.errorAt(diag.SynUnexpectedToken, p.diagSpan(), "expected item, found "+tok.Kind.String())
		return false
	}
	return true
}

// finishMacroCall handles `name! ...` at item position, including macro_rules.
func (p *Parser) finishMacroCall(name token.Token) bool {
	if !p.eat(token.Bang) {
		p.errorAt(diag.SynUnexpectedToken, name.Span, "expected item, found identifier `"+name.Text+"`")
		return false
	}
	p.recovering = false
	p.eat(token.Ident)
	if p.atAny(token.LParen, token.LBracket, token.LBrace) {
		brace := p.at(token.LBrace)
		p.skipGroup()
		if !brace {
			p.expect(token.Semicolon, diag.SynExpectSemicolon)
		}
		return true
	}
	p.errorAt(diag.SynUnexpectedToken, p.diagSpan(), "expected macro body, found "+p.peek().Kind.String())
	return false
}

// openItem creates the item scope and the name declaration.
func (p *Parser) openItem(parent ast.ScopeID, start source.Span, attrs []ast.Attr, kind ast.DeclKind, name token.Token) ast.ScopeID {
	scope := p.out.NewScope(ast.ScopeItem, parent, name.Text, start, attrs)
	if kind != 0 {
		p.out.AddDecl(ast.Decl{
			Kind:   kind,
			Name:   name.Text,
			Span:   name.NameSpan(),
			Scope:  scope,
			Exempt: hasReprC(attrs),
		})
	}
	return scope
}

func (p *Parser) closeItem(scope ast.ScopeID) {
	s := p.out.Scope(scope)
	s.Span = s.Span.Cover(p.lastSpan)
}

// struct Name<..> where ..;  struct Name<..>(..) where ..;  struct Name<..> where .. { .. }
func (p *Parser) parseStructLike(parent ast.ScopeID, start source.Span, attrs []ast.Attr, kind ast.DeclKind) {
	name, ok := p.expectIdent("type")
	if !ok {
		return
	}
	scope := p.openItem(parent, start, attrs, kind, name)
	defer p.closeItem(scope)

	p.parseGenerics(scope)
	if p.at(token.LParen) {
		p.skipGroup()
		p.skipPastSemicolon()
		return
	}
	p.skipUntil(token.Semicolon, token.LBrace)
	if p.at(token.LBrace) {
		p.skipGroup()
		return
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon)
}

func (p *Parser) parseEnum(parent ast.ScopeID, start source.Span, attrs []ast.Attr) {
	name, ok := p.expectIdent("enum")
	if !ok {
		return
	}
	scope := p.openItem(parent, start, attrs, ast.DeclEnum, name)
	defer p.closeItem(scope)

	p.parseGenerics(scope)
	p.skipUntil(token.LBrace, token.Semicolon)
	if !p.expect(token.LBrace, diag.SynUnexpectedToken) {
		return
	}
	for {
		vattrs := p.parseAttrs(scope)
		if p.atAny(token.RBrace, token.EOF) {
			break
		}
		p.eat(token.KwPub)
		vname, ok := p.expectIdent("variant")
		if !ok {
			p.skipUntil(token.Comma)
			if !p.eat(token.Comma) {
				break
			}
			continue
		}
		vstart := vname.Span
		if len(vattrs) > 0 {
			vstart = vattrs[0].Span
		}
		vscope := p.out.NewScope(ast.ScopeVariant, scope, vname.Text, vstart, vattrs)
		p.out.AddDecl(ast.Decl{Kind: ast.DeclVariant, Name: vname.Text, Span: vname.NameSpan(), Scope: vscope})
		if p.atAny(token.LParen, token.LBrace) {
			p.skipGroup()
		}
		if p.eat(token.Assign) {
			p.skipUntil(token.Comma)
		}
		p.closeItem(vscope)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.eat(token.RBrace) {
		p.errorAt(diag.SynUnexpectedToken, p.diagSpan(), "expected `,` or `}` after variant, found "+p.peek().Kind.String())
		p.skipUntil()
		p.eat(token.RBrace)
	}
}

// trait Name<..>: Bounds where .. { items }  or  trait Name = Bounds;
func (p *Parser) parseTrait(parent ast.ScopeID, start source.Span, attrs []ast.Attr) {
	name, ok := p.expectIdent("trait")
	if !ok {
		return
	}
	scope := p.openItem(parent, start, attrs, ast.DeclTrait, name)
	defer p.closeItem(scope)

	p.parseGenerics(scope)
	p.skipUntil(token.LBrace, token.Semicolon)
	if p.eat(token.Semicolon) {
		return
	}
	p.parseBody(scope, ctxTrait)
}

// type Name<..>: Bounds = Ty;  In traits this declares an associated type.
// Inside impls it only defines one and extern blocks declare foreign types,
// so neither is a declaration site for the naming lint.
func (p *Parser) parseTypeItem(parent ast.ScopeID, start source.Span, attrs []ast.Attr, ctx itemCtx) {
	name, ok := p.expectIdent("type alias")
	if !ok {
		return
	}
	var kind ast.DeclKind
	switch ctx {
	case ctxTrait:
		kind = ast.DeclAssocType
	case ctxImpl, ctxExtern:
		kind = 0
	default:
		kind = ast.DeclTypeAlias
	}
	scope := p.openItem(parent, start, attrs, kind, name)
	defer p.closeItem(scope)

	p.parseGenerics(scope)
	p.skipPastSemicolon()
}

// fn name<..>(..) -> R where .. { body }   The body is skipped.
func (p *Parser) parseFn(parent ast.ScopeID, start source.Span, attrs []ast.Attr) {
	name, ok := p.expectIdent("function")
	if !ok {
		return
	}
	scope := p.openItem(parent, start, attrs, 0, name)
	defer p.closeItem(scope)

	p.parseGenerics(scope)
	p.skipUntil(token.LBrace, token.Semicolon)
	if p.at(token.LBrace) {
		p.skipGroup()
		return
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon)
}

// impl<..> Trait for Type where .. { items }
func (p *Parser) parseImpl(parent ast.ScopeID, start source.Span, attrs []ast.Attr) {
	scope := p.out.NewScope(ast.ScopeItem, parent, "impl", start, attrs)
	defer p.closeItem(scope)

	p.parseGenerics(scope)
	p.skipUntil(token.LBrace, token.Semicolon)
	if p.eat(token.Semicolon) {
		return
	}
	p.parseBody(scope, ctxImpl)
}

// mod name;  or  mod name { items }
func (p *Parser) parseMod(parent ast.ScopeID, start source.Span, attrs []ast.Attr) {
	name, ok := p.expectIdent("module")
	if !ok {
		return
	}
	scope := p.out.NewScope(ast.ScopeModule, parent, name.Text, start, attrs)
	defer p.closeItem(scope)
	if p.eat(token.Semicolon) {
		return
	}
	p.parseBody(scope, ctxModule)
}

func (p *Parser) parseBlockItem(parent ast.ScopeID, start source.Span, attrs []ast.Attr, name string, ctx itemCtx) {
	scope := p.out.NewScope(ast.ScopeItem, parent, name, start, attrs)
	defer p.closeItem(scope)
	p.parseBody(scope, ctx)
}

// parseBody parses `{ items }` with inner attributes applying to scope.
func (p *Parser) parseBody(scope ast.ScopeID, ctx itemCtx) {
	if !p.expect(token.LBrace, diag.SynUnexpectedToken) {
		return
	}
	open := p.lastSpan
	p.parseItems(scope, ctx, token.RBrace)
	if !p.eat(token.RBrace) {
		p.recovering = false
		p.errorAt(diag.SynUnclosedDelimiter, open, "this file contains an unclosed delimiter")
	}
}

func hasReprC(attrs []ast.Attr) bool {
	for i := range attrs {
		if attrs[i].Path == "repr" && attrs[i].HasItem("C") {
			return true
		}
	}
	return false
}
