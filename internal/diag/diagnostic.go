package diag

import (
	"convlint/internal/source"
)

// Note adds context to a diagnostic. Footer notes carry no span and are
// rendered as "= note: ..." under the snippet.
type Note struct {
	Span   source.Span
	Msg    string
	Footer bool
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	// Lint is the lint name for lint findings, empty for hard errors.
	Lint    string
	Message string
	Primary source.Span
	Notes   []Note
	Fixes   []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// NewSpanless creates a diagnostic rendered without a source excerpt.
func NewSpanless(sev Severity, code Code, msg string) Diagnostic {
	return New(sev, code, source.Span{File: source.NoFileID}, msg)
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFooter(msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Msg: msg, Footer: true})
	return d
}

func (d Diagnostic) WithFix(fix Fix) Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	return d
}

// InlineHelp returns the help text shown next to the primary carets:
// the first fix that rewrites exactly the primary span.
func (d Diagnostic) InlineHelp() (string, bool) {
	for _, f := range d.Fixes {
		if len(f.Edits) == 1 && f.Edits[0].Span == d.Primary {
			return f.Title + ": `" + f.Edits[0].NewText + "`", true
		}
	}
	return "", false
}
