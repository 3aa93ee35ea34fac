package diag

import (
	"fmt"
	"sort"
	"strings"

	"convlint/internal/source"
)

type goldenLine struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders one line per diagnostic (and per spanned
// note when includeNotes is set), sorted by position, for golden tests.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	lines := make([]goldenLine, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		code := d.Code.ID()
		if code == "" {
			code = d.Lint
		}
		if loc, ok := resolve(fs, d.Primary); ok {
			lines = append(lines, goldenLine{d.Severity.Label(), code, loc.path, loc.line, loc.col, oneLine(d.Message)})
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if n.Footer {
				continue
			}
			if loc, ok := resolve(fs, n.Span); ok {
				lines = append(lines, goldenLine{"note", code, loc.path, loc.line, loc.col, oneLine(n.Msg)})
			}
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", l.Severity, l.Code, l.Path, l.Line, l.Column, l.Message)
	}
	return b.String()
}

type location struct {
	path      string
	line, col uint32
}

func resolve(fs *source.FileSet, span source.Span) (location, bool) {
	if !fs.CheckSpan(span) {
		return location{}, false
	}
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return location{path: f.Path, line: start.Line, col: start.Col}, true
}

func oneLine(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	return strings.TrimSpace(strings.ReplaceAll(msg, "\n", " "))
}
