package directive

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"convlint/internal/diag"
	"convlint/internal/source"
)

// RunnerConfig configures a check.
type RunnerConfig struct {
	// Filter limits the check to these kinds (empty = all).
	Filter []Kind

	// Output receives one line per mismatch and the summary.
	Output io.Writer
}

// RunResult counts the outcome of a check.
type RunResult struct {
	Total      int
	Passed     int
	Missing    int
	Unexpected int
}

// Failed reports whether any expectation or diagnostic went unmatched.
func (r RunResult) Failed() bool {
	return r.Missing > 0 || r.Unexpected > 0
}

// Runner matches reported diagnostics against registered expectations.
type Runner struct {
	config   RunnerConfig
	registry *Registry
}

func NewRunner(registry *Registry, config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = io.Discard
	}
	return &Runner{config: config, registry: registry}
}

// actual is one reported message at a line: a diagnostic header, one of
// its notes or its inline help.
type actual struct {
	file    source.FileID
	path    string
	line    uint32
	kind    Kind
	message string
	matched bool
}

// Run checks diags. Every expectation must be met by a message of the same
// kind on its line containing its text. Errors must all be annotated;
// warnings only in files that annotate at least one warning.
func (r *Runner) Run(fs *source.FileSet, diags []diag.Diagnostic) RunResult {
	actuals := r.flatten(fs, diags)
	var result RunResult

	for _, exp := range r.registry.All() {
		if !r.wants(exp.Kind) {
			continue
		}
		result.Total++
		i := slices.IndexFunc(actuals, func(a actual) bool {
			return !a.matched && a.file == exp.File && a.line == exp.Line &&
				a.kind == exp.Kind && strings.Contains(a.message, exp.Message)
		})
		if i < 0 {
			result.Missing++
			fmt.Fprintf(r.config.Output, "%s:%d: expected %s not found: %s\n", exp.Path, exp.Line, exp.Kind, exp.Message)
			continue
		}
		actuals[i].matched = true
		result.Passed++
	}

	for _, a := range actuals {
		if a.matched || !r.wants(a.kind) {
			continue
		}
		switch a.kind {
		case KindError:
		case KindWarning:
			if a.file == source.NoFileID || !r.registry.HasKind(a.file, KindWarning) {
				continue
			}
		default:
			continue
		}
		result.Unexpected++
		if a.file == source.NoFileID {
			fmt.Fprintf(r.config.Output, "unexpected %s: %s\n", strings.ToLower(a.kind.String()), a.message)
		} else {
			fmt.Fprintf(r.config.Output, "%s:%d: unexpected %s: %s\n", a.path, a.line, strings.ToLower(a.kind.String()), a.message)
		}
	}

	fmt.Fprintf(r.config.Output, "annotations: %d expected, %d matched, %d missing, %d unexpected\n",
		result.Total, result.Passed, result.Missing, result.Unexpected)
	return result
}

func (r *Runner) wants(k Kind) bool {
	return len(r.config.Filter) == 0 || slices.Contains(r.config.Filter, k)
}

func (r *Runner) flatten(fs *source.FileSet, diags []diag.Diagnostic) []actual {
	var out []actual
	for _, d := range diags {
		head := actual{file: d.Primary.File, kind: severityKind(d.Severity), message: d.Message}
		if d.Primary.File != source.NoFileID && fs.CheckSpan(d.Primary) {
			head.path = fs.Get(d.Primary.File).Path
			start, _ := fs.Resolve(d.Primary)
			head.line = start.Line
		} else {
			head.file = source.NoFileID
		}
		out = append(out, head)
		for _, n := range d.Notes {
			note := head
			note.kind = KindNote
			note.message = n.Msg
			if !n.Footer && n.Span.File == head.file && fs.CheckSpan(n.Span) {
				start, _ := fs.Resolve(n.Span)
				note.line = start.Line
			}
			out = append(out, note)
		}
		if help, ok := d.InlineHelp(); ok {
			h := head
			h.kind = KindHelp
			h.message = help
			out = append(out, h)
		}
	}
	return out
}

func severityKind(s diag.Severity) Kind {
	switch s {
	case diag.SevError:
		return KindError
	case diag.SevWarning:
		return KindWarning
	}
	return KindNote
}
