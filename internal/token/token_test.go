package token_test

import (
	"testing"

	"convlint/internal/source"
	"convlint/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		text string
		kind token.Kind
		ok   bool
	}{
		{"struct", token.KwStruct, true},
		{"Self", token.KwSelfType, true},
		{"self", token.KwSelfValue, true},
		{"union", token.Invalid, false},
		{"Struct", token.Invalid, false},
		{"macro_rules", token.Invalid, false},
	}
	for _, tt := range tests {
		k, ok := token.LookupKeyword(tt.text)
		if ok != tt.ok || (ok && k != tt.kind) {
			t.Errorf("LookupKeyword(%q) = %v, %v", tt.text, k, ok)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := token.KwTrait.String(); got != "`trait`" {
		t.Errorf("KwTrait = %q", got)
	}
	if got := token.Semicolon.String(); got != "`;`" {
		t.Errorf("Semicolon = %q", got)
	}
	if got := token.Ident.String(); got != "identifier" {
		t.Errorf("Ident = %q", got)
	}
}

func TestNameSpanSkipsRawPrefix(t *testing.T) {
	tok := token.Token{Kind: token.Ident, Text: "foo", Raw: true, Span: source.Span{Start: 4, End: 9}}
	if sp := tok.NameSpan(); sp.Start != 6 || sp.End != 9 {
		t.Fatalf("NameSpan = %v", sp)
	}
	if !(token.Token{Kind: token.LBrace}).IsOpen() || token.Closer(token.LBracket) != token.RBracket {
		t.Fatalf("delimiter helpers mismatch")
	}
}
