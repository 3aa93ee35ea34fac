package lintlevel

import (
	"fmt"
	"strings"

	"convlint/internal/ast"
	"convlint/internal/diag"
	"convlint/internal/source"
)

// Level is the effective level of one lint at one place in the source.
type Level uint8

const (
	Allow Level = iota
	Warn
	Deny
	Forbid
)

func (l Level) String() string {
	switch l {
	case Allow:
		return "allow"
	case Warn:
		return "warn"
	case Deny:
		return "deny"
	case Forbid:
		return "forbid"
	}
	return fmt.Sprintf("Level(%d)", uint8(l))
}

// Flag is the rustc command line switch for the level.
func (l Level) Flag() string {
	switch l {
	case Allow:
		return "-A"
	case Warn:
		return "-W"
	case Deny:
		return "-D"
	}
	return "-F"
}

// Severity maps a reportable level to a diagnostic severity.
func (l Level) Severity() diag.Severity {
	if l >= Deny {
		return diag.SevError
	}
	return diag.SevWarning
}

// ParseLevel accepts the attribute spelling of a level.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow":
		return Allow, true
	case "warn":
		return Warn, true
	case "deny":
		return Deny, true
	case "forbid":
		return Forbid, true
	}
	return Allow, false
}

type SourceKind uint8

const (
	SourceDefault SourceKind = iota
	SourceCommandLine
	SourceConfig
	SourceDirective
)

func (k SourceKind) String() string {
	switch k {
	case SourceDefault:
		return "default"
	case SourceCommandLine:
		return "command-line"
	case SourceConfig:
		return "config"
	case SourceDirective:
		return "directive"
	}
	return "unknown"
}

// Source tells where a level came from.
type Source struct {
	Kind SourceKind
	// Span is the lint name inside the directive; zero for other kinds.
	Span source.Span
	// Scope owns the directive.
	Scope ast.ScopeID
	// Flag is the command line switch or config file that set the level.
	Flag string
	// Group is set when the level was implied by a lint group or by
	// the `warnings` pseudo lint.
	Group string
}
