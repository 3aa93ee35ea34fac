// Package directive checks diagnostics against `//~` annotations written in
// the linted sources, the convention of rustc UI tests:
//
//	struct foo; //~ ERROR type `foo` should have a camel case name
//	//~^ ERROR ...   (one line up per caret)
//	//~| NOTE ...    (same line as the previous annotation)
//	//~v ERROR ...   (one line down per v)
package directive

import (
	"fmt"
	"strings"

	"convlint/internal/source"
)

// Kind is the diagnostic kind an annotation expects.
type Kind uint8

const (
	KindError Kind = iota + 1
	KindWarning
	KindNote
	KindHelp
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "ERROR"
	case KindWarning:
		return "WARN"
	case KindNote:
		return "NOTE"
	case KindHelp:
		return "HELP"
	}
	return "UNKNOWN"
}

// ParseKind accepts the compiletest spellings in either case.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToUpper(s) {
	case "ERROR":
		return KindError, true
	case "WARN", "WARNING":
		return KindWarning, true
	case "NOTE":
		return KindNote, true
	case "HELP", "SUGGESTION":
		return KindHelp, true
	}
	return 0, false
}

// Expectation is one annotation: a diagnostic of Kind whose message
// contains Message must be reported on Line of File.
type Expectation struct {
	File    source.FileID
	Path    string
	Line    uint32
	Kind    Kind
	Message string
	// Span covers the annotation comment itself.
	Span source.Span
}

func (e *Expectation) String() string {
	return fmt.Sprintf("%s:%d: %s %s", e.Path, e.Line, e.Kind, e.Message)
}
