package lexer

import (
	"fmt"

	"convlint/internal/diag"
	"convlint/internal/token"
)

var singlePunct = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'<': token.Lt,
	'>': token.Gt,
	',': token.Comma,
	';': token.Semicolon,
	':': token.Colon,
	'#': token.Pound,
	'!': token.Bang,
	'=': token.Assign,
	'.': token.Dot,
	'&': token.Amp,
	'*': token.Star,
	'+': token.Plus,
	'-': token.Minus,
	'/': token.Slash,
	'%': token.Percent,
	'^': token.Caret,
	'|': token.Pipe,
	'?': token.Question,
	'@': token.At,
	'$': token.Dollar,
	'~': token.Tilde,
}

// scanOperatorOrPunct emits "::", "->" and "=>" as single tokens and every
// other operator character on its own, so `>>` closing two generic lists
// needs no splitting.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	if b0, b1, ok := lx.cursor.Peek2(); ok {
		var k token.Kind
		switch {
		case b0 == ':' && b1 == ':':
			k = token.ColonColon
		case b0 == '-' && b1 == '>':
			k = token.Arrow
		case b0 == '=' && b1 == '>':
			k = token.FatArrow
		}
		if k != token.Invalid {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return emit(k)
		}
	}

	if k, ok := singlePunct[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return emit(k)
	}

	r, _ := lx.peekRune()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown start of token: %q", r))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
