package lint

import (
	"errors"
	"fmt"
	"strings"

	"convlint/internal/ast"
	"convlint/internal/diag"
	"convlint/internal/lintlevel"
)

// ErrMalformedSpan means a declaration span does not fit its file. It is
// the only error that aborts a run.
var ErrMalformedSpan = errors.New("malformed span")

const (
	helpTitle = "convert the identifier to camel case"
	fixID     = "non_camel_case_types.rename"
)

// Emitter turns findings into diagnostics and keeps the counters of its
// context current.
type Emitter struct {
	ctx *AnalysisContext
}

func NewEmitter(ctx *AnalysisContext) *Emitter {
	return &Emitter{ctx: ctx}
}

// Emit builds the diagnostic for a non-conforming finding. ok is false
// when the level is allow and nothing must be shown.
func (e *Emitter) Emit(kind ast.DeclKind, ident Identifier, f Finding, level lintlevel.Level, src lintlevel.Source) (diag.Diagnostic, bool, error) {
	file := e.ctx.Files.Get(ident.Span.File)
	if file == nil || !ident.Span.Valid(file.Len()) || ident.Span.Empty() {
		return diag.Diagnostic{}, false, fmt.Errorf("%w: `%s` at %s", ErrMalformedSpan, ident.Text, ident.Span)
	}
	if level == lintlevel.Allow {
		return diag.Diagnostic{}, false, nil
	}

	lint := lintlevel.NonCamelCaseTypes
	upgraded := false
	if level == lintlevel.Warn && e.ctx.Opts.DenyWarnings {
		level = lintlevel.Deny
		upgraded = true
	}

	d := diag.New(level.Severity(), diag.LintNonCamelCaseTypes, ident.Span,
		fmt.Sprintf("%s `%s` should have a camel case name", kind.Noun(), ident.Text))
	d.Lint = lint
	if f.HasSuggestion {
		d = d.WithFix(diag.Fix{
			ID:            fixID,
			Title:         helpTitle,
			Kind:          diag.FixKindQuickFix,
			Applicability: diag.FixApplicabilitySafeWithHeuristics,
			IsPreferred:   true,
			Edits: []diag.TextEdit{{
				Span:    ident.Span,
				NewText: f.Suggestion,
				OldText: file.Text(ident.Span),
			}},
		})
	}

	if upgraded {
		d = e.deniedWarning(d, lint)
	} else {
		d = e.levelNote(d, lint, level, src)
	}
	e.count(d.Severity)
	return d, true, nil
}

// Forward counts a diagnostic produced outside the pass (attribute errors,
// syntax errors) and applies the deny-warnings upgrade to it.
func (e *Emitter) Forward(d diag.Diagnostic) diag.Diagnostic {
	if d.Severity == diag.SevWarning && e.ctx.Opts.DenyWarnings {
		d.Severity = diag.SevError
		if d.Lint != "" {
			d = e.deniedWarning(dropFooters(d), d.Lint)
		}
	}
	e.count(d.Severity)
	return d
}

func (e *Emitter) count(sev diag.Severity) {
	switch sev {
	case diag.SevError:
		e.ctx.Counters.Errors++
	case diag.SevWarning:
		e.ctx.Counters.Warnings++
	}
}

// levelNote explains where the level came from, once per source.
func (e *Emitter) levelNote(d diag.Diagnostic, lint string, level lintlevel.Level, src lintlevel.Source) diag.Diagnostic {
	key := noteKey{lint: lint, kind: src.Kind}
	switch src.Kind {
	case lintlevel.SourceDirective:
		key.file, key.scope, key.flag = src.Span.File, src.Scope, src.Group
	case lintlevel.SourceCommandLine, lintlevel.SourceConfig:
		key.flag = src.Flag
	}
	if !e.ctx.firstTime(key) {
		return d
	}

	switch src.Kind {
	case lintlevel.SourceDefault:
		d = d.WithFooter(fmt.Sprintf("#[%s(%s)] on by default", level, lint))
	case lintlevel.SourceDirective:
		d = d.WithNote(src.Span, "lint level defined here")
		if src.Group != "" {
			d = d.WithFooter(fmt.Sprintf("#[%s(%s)] implied by #[%s(%s)]", level, lint, level, src.Group))
		}
	case lintlevel.SourceCommandLine:
		if src.Group != "" {
			d = d.WithFooter(fmt.Sprintf("`%s %s` implied by `%s`", level.Flag(), dashed(lint), src.Flag))
		} else {
			d = d.WithFooter("requested on the command line with `" + src.Flag + "`")
		}
	case lintlevel.SourceConfig:
		d = d.WithFooter(fmt.Sprintf("`%s` level set in %s", level, src.Flag))
	}
	return d
}

func (e *Emitter) deniedWarning(d diag.Diagnostic, lint string) diag.Diagnostic {
	if e.ctx.firstTime(noteKey{lint: lint, kind: lintlevel.SourceCommandLine, flag: "-D warnings"}) {
		d = d.WithFooter(fmt.Sprintf("`-D %s` implied by `-D warnings`", dashed(lint)))
	}
	return d
}

func dropFooters(d diag.Diagnostic) diag.Diagnostic {
	notes := d.Notes[:0:0]
	for _, n := range d.Notes {
		if !n.Footer {
			notes = append(notes, n)
		}
	}
	d.Notes = notes
	return d
}

func dashed(lint string) string {
	return strings.ReplaceAll(lint, "_", "-")
}
