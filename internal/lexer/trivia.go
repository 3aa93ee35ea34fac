package lexer

import (
	"convlint/internal/diag"
	"convlint/internal/token"
)

// collectLeadingTrivia gathers whitespace and comments before the next token.
// Runs of ' ', '\t' and '\r' coalesce into one TriviaSpace, runs of '\n' into
// one TriviaNewline. Block comments nest.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r':
			for c := lx.cursor.Peek(); c == ' ' || c == '\t' || c == '\r'; c = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			lx.scanLineComment(start)
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.scanBlockComment(start)
		default:
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

// "//", "///" and "//!"; "////" is an ordinary comment.
func (lx *Lexer) scanLineComment(start Mark) {
	lx.cursor.Bump()
	lx.cursor.Bump()
	kind := token.TriviaLineComment
	if c := lx.cursor.Peek(); (c == '/' && lx.cursor.PeekAt(1) != '/') || c == '!' {
		kind = token.TriviaDocLine
	}
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.pushTrivia(kind, start)
}

func (lx *Lexer) scanBlockComment(start Mark) {
	lx.cursor.Bump()
	lx.cursor.Bump()
	kind := token.TriviaBlockComment
	if c := lx.cursor.Peek(); (c == '*' && lx.cursor.PeekAt(1) != '*' && lx.cursor.PeekAt(1) != '/') || c == '!' {
		kind = token.TriviaDocBlock
	}
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok {
			if b0 == '/' && b1 == '*' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
				continue
			}
			if b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
				continue
			}
		}
		lx.cursor.Bump()
	}
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
	lx.pushTrivia(kind, start)
}
