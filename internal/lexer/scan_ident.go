package lexer

import (
	"convlint/internal/token"

	"golang.org/x/text/unicode/norm"
)

// scanIdentOrKeyword scans an identifier and classifies keywords.
// Non-ASCII names are normalized to NFC so equal names compare equal.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	if !lx.scanIdentBody() {
		return lx.scanOperatorOrPunct()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if text == "_" {
		return token.Token{Kind: token.Underscore, Span: sp, Text: text}
	}
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: normalizeIdent(text)}
}

// scanRawIdent scans r#name. Raw identifiers are never keywords.
func (lx *Lexer) scanRawIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	nameStart := lx.cursor.Off
	lx.scanIdentBody()
	sp := lx.cursor.SpanFrom(start)
	name := string(lx.file.Content[nameStart:sp.End])
	return token.Token{Kind: token.Ident, Span: sp, Text: normalizeIdent(name), Raw: true}
}

// scanIdentBody consumes one identifier; false when the cursor is not at one.
func (lx *Lexer) scanIdentBody() bool {
	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return false
	}
	lx.bumpRune()
	for {
		if b := lx.cursor.Peek(); b < utf8RuneSelf {
			if !isIdentContinueByte(b) || lx.cursor.EOF() {
				return true
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			return true
		}
		lx.bumpRune()
	}
}

func normalizeIdent(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8RuneSelf {
			return norm.NFC.String(s)
		}
	}
	return s
}
