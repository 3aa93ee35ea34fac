package lintlevel

import "strings"

const (
	NonCamelCaseTypes = "non_camel_case_types"
	NonstandardStyle  = "nonstandard_style"
	UnknownLints      = "unknown_lints"
	// Warnings is the pseudo lint covering every warn-level lint.
	Warnings = "warnings"
)

var groups = map[string][]string{
	NonstandardStyle: {NonCamelCaseTypes, "non_snake_case", "non_upper_case_globals"},
	"unused": {
		"unused_imports", "unused_variables", "unused_assignments", "dead_code",
		"unused_mut", "unreachable_code", "unused_must_use", "unused_parens",
	},
}

// builtin lints accepted in directives. Only NonCamelCaseTypes is checked;
// the rest are recognised so that real sources do not trip unknown_lints.
var builtin = func() map[string]bool {
	m := make(map[string]bool)
	for _, name := range []string{
		NonCamelCaseTypes, UnknownLints, Warnings,
		"non_snake_case", "non_upper_case_globals", "bad_style",
		"dead_code", "unused_imports", "unused_variables", "unused_assignments",
		"unused_mut", "unused_must_use", "unused_parens", "unused_attributes",
		"unreachable_code", "unreachable_patterns", "deprecated", "missing_docs",
		"missing_debug_implementations", "unsafe_code", "improper_ctypes",
		"non_shorthand_field_patterns", "overflowing_literals", "path_statements",
		"while_true",
	} {
		m[name] = true
	}
	return m
}()

var tools = []string{"clippy::", "rustdoc::", "rustfmt::"}

// Canonical turns a command line spelling (`non-camel-case-types`) into
// the attribute spelling.
func Canonical(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "-", "_")
}

// Known reports whether name is a lint, a group or a tool lint.
func Known(name string) bool {
	if builtin[name] {
		return true
	}
	if _, ok := groups[name]; ok {
		return true
	}
	for _, t := range tools {
		if strings.HasPrefix(name, t) {
			return true
		}
	}
	return false
}

// Expand returns the lints a directive name stands for.
func Expand(name string) []string {
	if name == "bad_style" {
		name = NonstandardStyle
	}
	if members, ok := groups[name]; ok {
		return members
	}
	return []string{name}
}

// IsGroup reports whether name denotes several lints.
func IsGroup(name string) bool {
	_, ok := groups[name]
	return ok || name == "bad_style"
}
