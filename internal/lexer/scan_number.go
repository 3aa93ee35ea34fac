package lexer

import (
	"convlint/internal/token"
)

// scanNumber accepts decimal, 0x/0o/0b, '_' separators, a fractional part,
// an exponent and any type suffix (u8, f32). Values are never interpreted.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	hex := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'o' || b1 == 'b') {
		hex = b1 == 'x'
		lx.cursor.Bump()
		lx.cursor.Bump()
	}
	lx.eatDigitsAndSuffix(hex)

	if !hex && lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.eatDigitsAndSuffix(false)
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) eatDigitsAndSuffix(hex bool) {
	for {
		b := lx.cursor.Peek()
		if !hex && (b == 'e' || b == 'E') {
			next := lx.cursor.PeekAt(1)
			if (next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2)) {
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
		}
		if !isIdentContinueByte(b) || lx.cursor.EOF() {
			return
		}
		lx.cursor.Bump()
	}
}
