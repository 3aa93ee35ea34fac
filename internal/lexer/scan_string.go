package lexer

import (
	"convlint/internal/diag"
	"convlint/internal/token"
)

// atPrefixedLiteral reports b"..", b'..', c"..", and raw strings r".." / r#".."#
// with an optional b or c prefix.
func (lx *Lexer) atPrefixedLiteral() bool {
	c := lx.cursor
	switch c.Peek() {
	case 'b':
		next := c.PeekAt(1)
		return next == '"' || next == '\'' || lx.rawStringAt(1)
	case 'c':
		return c.PeekAt(1) == '"' || lx.rawStringAt(1)
	case 'r':
		return lx.rawStringAt(0)
	}
	return false
}

// rawStringAt checks for r#*" starting n bytes ahead.
func (lx *Lexer) rawStringAt(n uint32) bool {
	if lx.cursor.PeekAt(n) != 'r' {
		return false
	}
	n++
	for lx.cursor.PeekAt(n) == '#' {
		n++
	}
	return lx.cursor.PeekAt(n) == '"'
}

func (lx *Lexer) scanPrefixedLiteral() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Peek() != 'r' {
		lx.cursor.Bump() // b or c
	}
	switch lx.cursor.Peek() {
	case 'r':
		return lx.scanRawString(start)
	case '\'':
		return lx.scanChar(start)
	default:
		return lx.scanString(start)
	}
}

// scanString scans "..." with escapes; strings may span lines.
func (lx *Lexer) scanString(start Mark) token.Token {
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		case '\\':
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated double quote string")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanRawString(start Mark) token.Token {
	lx.cursor.Bump() // r
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanCharOrLifetime separates 'a' (char) from 'a (lifetime or label).
func (lx *Lexer) scanCharOrLifetime() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.PeekAt(1) == '\\' {
		return lx.scanChar(start)
	}
	lx.cursor.Bump() // '
	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.bumpRune()
	if lx.cursor.Peek() == '\'' {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
	}
	if isIdentStartRune(r) {
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Lifetime, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanChar scans a quoted character starting at the opening quote.
func (lx *Lexer) scanChar(start Mark) token.Token {
	lx.cursor.Bump() // '
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\'':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
		case '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		default:
			lx.bumpRune()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
