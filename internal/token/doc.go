// Package token defines lexical token kinds and trivia for the Rust-syntax
// sources convlint reads.
// Invariants:
//   - Token.Span covers the whole lexeme, including a raw identifier's "r#".
//   - Ident Text is the identifier name in NFC form, without "r#".
//   - '<' and '>' are always single tokens; generic depth is tracked by the parser.
//   - Comments and whitespace never appear in the stream; they are leading Trivia.
package token
