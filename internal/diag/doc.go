// Package diag defines the diagnostic model shared by the lexer, the parsers,
// the lint-level resolver and the naming lint.
//
// A Diagnostic carries a severity, a numeric Code, an optional lint name, a
// primary span, notes and fix suggestions. Notes either point at a span
// ("lint level defined here") or are footers without a location
// ("#[warn(non_camel_case_types)] on by default").
//
// Fix suggestions are data only: a title and a list of TextEdits guarded by
// the text they expect to replace. internal/fix applies them and
// internal/diagfmt renders them as inline help.
//
// Package diag does no formatting or IO beyond the golden helper used by
// tests.
package diag
