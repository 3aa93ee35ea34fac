package token

import (
	"convlint/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Raw     bool // r#ident
	Leading []Trivia
}

// NameSpan is the span of the identifier name, skipping a raw "r#" prefix.
func (t Token) NameSpan() source.Span {
	sp := t.Span
	if t.Raw {
		sp.Start += 2
	}
	return sp
}

func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

func (t Token) IsKeyword() bool {
	_, ok := keywordText[t.Kind]
	return ok
}


// IsOpen reports whether the token opens a delimited group.
func (t Token) IsOpen() bool {
	return t.Kind == LParen || t.Kind == LBrace || t.Kind == LBracket
}

// IsClose reports whether the token closes a delimited group.
func (t Token) IsClose() bool {
	return t.Kind == RParen || t.Kind == RBrace || t.Kind == RBracket
}

// Closer returns the closing kind for an opening delimiter.
func Closer(k Kind) Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	}
	return Invalid
}
