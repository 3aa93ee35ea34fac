package lexer_test

import (
	"testing"

	"convlint/internal/diag"
	"convlint/internal/lexer"
	"convlint/internal/source"
	"convlint/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.rs", []byte(input)))
	bag := diag.NewBag(0)
	return lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, bag := makeTestLexer(input)
	toks := lx.All()
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %+v", input, bag.Items())
	}
	got := kinds(toks)
	if len(got) != len(expected) {
		t.Fatalf("input %q: got %v, want %v", input, got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("input %q: token %d is %v, want %v", input, i, got[i], expected[i])
		}
	}
	return toks
}

func TestItemHeaders(t *testing.T) {
	expectTokens(t, "pub struct Foo<'a, T: Bar> { x: &'a T }",
		token.KwPub, token.KwStruct, token.Ident, token.Lt, token.Lifetime, token.Comma,
		token.Ident, token.Colon, token.Ident, token.Gt, token.LBrace, token.Ident,
		token.Colon, token.Amp, token.Lifetime, token.Ident, token.RBrace)

	expectTokens(t, "#![forbid(non_camel_case_types)]",
		token.Pound, token.Bang, token.LBracket, token.Ident, token.LParen,
		token.Ident, token.RParen, token.RBracket)

	expectTokens(t, "fn f() -> Vec<Vec<u8>> { x::y => z }",
		token.KwFn, token.Ident, token.LParen, token.RParen, token.Arrow, token.Ident,
		token.Lt, token.Ident, token.Lt, token.Ident, token.Gt, token.Gt, token.LBrace,
		token.Ident, token.ColonColon, token.Ident, token.FatArrow, token.Ident, token.RBrace)
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{`"a \" b"`, token.StringLit},
		{"\"multi\nline\"", token.StringLit},
		{`r"raw \ string"`, token.StringLit},
		{`r#"has "quotes""#`, token.StringLit},
		{`br##"x"#y"##`, token.StringLit},
		{`b"bytes"`, token.StringLit},
		{`c"cstr"`, token.StringLit},
		{`'a'`, token.CharLit},
		{`'\n'`, token.CharLit},
		{`'\''`, token.CharLit},
		{`b'x'`, token.CharLit},
		{`'ж'`, token.CharLit},
		{`'static`, token.Lifetime},
		{`0x1F_u8`, token.IntLit},
		{`1_000i64`, token.IntLit},
		{`1.5e-3f32`, token.FloatLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := expectTokens(t, tt.input, tt.kind)
			if toks[0].Text != tt.input {
				t.Fatalf("text = %q", toks[0].Text)
			}
		})
	}
}

func TestRangeIsNotFloat(t *testing.T) {
	expectTokens(t, "0..10", token.IntLit, token.Dot, token.Dot, token.IntLit)
}

func TestRawIdentifier(t *testing.T) {
	toks := expectTokens(t, "struct r#type;", token.KwStruct, token.Ident, token.Semicolon)
	id := toks[1]
	if !id.Raw || id.Text != "type" {
		t.Fatalf("raw ident = %+v", id)
	}
	if sp := id.NameSpan(); sp.Start != 9 || sp.End != 13 {
		t.Fatalf("NameSpan = %v", sp)
	}
}

func TestIdentifierNFC(t *testing.T) {
	toks := expectTokens(t, "struct Cafe\u0301;", token.KwStruct, token.Ident, token.Semicolon)
	if toks[1].Text != "Caf\u00e9" {
		t.Fatalf("identifier not NFC: %q", toks[1].Text)
	}
	if toks[1].Span.Len() != 6 {
		t.Fatalf("span must cover source bytes, got %d", toks[1].Span.Len())
	}
}

func TestTriviaAndDocComments(t *testing.T) {
	lx, bag := makeTestLexer("/// doc\n// plain\n/* a /* nested */ b */ struct A;")
	tok := lx.Next()
	if tok.Kind != token.KwStruct {
		t.Fatalf("first token %v", tok.Kind)
	}
	var got []token.TriviaKind
	for _, tr := range tok.Leading {
		got = append(got, tr.Kind)
	}
	want := []token.TriviaKind{
		token.TriviaDocLine, token.TriviaNewline, token.TriviaLineComment,
		token.TriviaNewline, token.TriviaBlockComment, token.TriviaSpace,
	}
	if len(got) != len(want) {
		t.Fatalf("trivia = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trivia = %v, want %v", got, want)
		}
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{`"open`, diag.LexUnterminatedString},
		{`r#"open"`, diag.LexUnterminatedString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{"'\\n", diag.LexUnterminatedChar},
		{"→", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.input)
			lx.All()
			if bag.Len() != 1 || bag.Items()[0].Code != tt.code {
				t.Fatalf("diagnostics = %+v, want one %v", bag.Items(), tt.code)
			}
		})
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("enum E")
	if lx.Peek().Kind != token.KwEnum || lx.Peek().Kind != token.KwEnum {
		t.Fatalf("peek mismatch")
	}
	if lx.Next().Kind != token.KwEnum || lx.Next().Kind != token.Ident {
		t.Fatalf("next mismatch")
	}
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatalf("expected sticky EOF")
	}
}
