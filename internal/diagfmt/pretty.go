package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"convlint/internal/diag"
	"convlint/internal/source"
)

// Pretty форматирует диагностики в стиле rustc: заголовок, строка "-->",
// фрагмент исходника с подчёркиванием ^^^ и подсказкой, затем заметки.
// Каждая диагностика завершается пустой строкой.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	for _, d := range diags {
		if err := PrettyDiagnostic(w, d, fs, opts); err != nil {
			return err
		}
	}
	return nil
}

// PrettyDiagnostic renders a single diagnostic.
func PrettyDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	r := prettyRenderer{fs: fs, opts: opts, pal: newPalette(opts.Color)}
	_, err := io.WriteString(w, r.render(d))
	return err
}

// PrettyLine renders a free-standing message such as the closing summary,
// coloring its "error:" or "warning:" prefix.
func PrettyLine(w io.Writer, line string, colored bool) error {
	pal := newPalette(colored)
	for _, sev := range []diag.Severity{diag.SevError, diag.SevWarning} {
		prefix := sev.Label() + ":"
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			line = pal.level(sev)(sev.Label()) + pal.bold(":"+rest)
			break
		}
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

type palette struct {
	err, warn, note, help, gutter, bold func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		if !enabled {
			return fmt.Sprint
		}
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		note:   mk(color.FgGreen, color.Bold),
		help:   mk(color.FgCyan, color.Bold),
		gutter: mk(color.FgBlue, color.Bold),
		bold:   mk(color.Bold),
	}
}

func (p palette) level(sev diag.Severity) func(a ...any) string {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.note
}

type prettyRenderer struct {
	fs    *source.FileSet
	opts  PrettyOpts
	pal   palette
	b     strings.Builder
	width int
}

func (r *prettyRenderer) render(d diag.Diagnostic) string {
	head := d.Severity.Label()
	if id := d.Code.ID(); id != "" {
		head += "[" + id + "]"
	}
	r.b.WriteString(r.pal.level(d.Severity)(head) + r.pal.bold(": "+d.Message) + "\n")

	var spanned, footers []diag.Note
	for _, n := range d.Notes {
		switch {
		case n.Footer:
			footers = append(footers, n)
		case resolvable(r.fs, n.Span):
			spanned = append(spanned, n)
		default:
			footers = append(footers, diag.Note{Msg: n.Msg, Footer: true})
		}
	}
	help, hasInline := d.InlineHelp()
	var helps []string
	for _, fix := range d.Fixes {
		if !hasInline || len(fix.Edits) != 1 || fix.Edits[0].Span != d.Primary {
			helps = append(helps, fix.Title)
		}
	}

	hasPrimary := resolvable(r.fs, d.Primary)
	r.width = r.gutterWidth(d.Primary, hasPrimary, spanned)
	pad := strings.Repeat(" ", r.width)

	if hasPrimary {
		label := ""
		if hasInline {
			label = r.pal.help("help") + ": " + help
		}
		r.snippet(d.Primary, label, r.pal.level(d.Severity))
	}
	for _, n := range spanned {
		r.b.WriteString(pad + r.pal.gutter(" |") + "\n")
		r.b.WriteString(r.pal.note("note") + ": " + n.Msg + "\n")
		r.snippet(n.Span, "", r.pal.note)
	}
	if len(spanned) == 0 && len(footers)+len(helps) > 0 {
		r.b.WriteString(pad + r.pal.gutter(" |") + "\n")
	}
	for _, n := range footers {
		r.b.WriteString(pad + r.pal.gutter(" =") + " " + r.pal.bold("note") + ": " + n.Msg + "\n")
	}
	for _, h := range helps {
		r.b.WriteString(pad + r.pal.gutter(" =") + " " + r.pal.bold("help") + ": " + h + "\n")
	}
	r.b.WriteString("\n")
	return r.b.String()
}

// gutterWidth is the digit count of the largest line number shown.
func (r *prettyRenderer) gutterWidth(primary source.Span, hasPrimary bool, notes []diag.Note) int {
	maxLine := uint32(0)
	if hasPrimary {
		start, _ := r.fs.Resolve(primary)
		maxLine = start.Line
	}
	for _, n := range notes {
		if start, _ := r.fs.Resolve(n.Span); start.Line > maxLine {
			maxLine = start.Line
		}
	}
	if maxLine == 0 {
		return 1
	}
	return len(strconv.FormatUint(uint64(maxLine), 10))
}

// snippet writes the location arrow and one excerpt line with its marks.
func (r *prettyRenderer) snippet(span source.Span, label string, mark func(a ...any) string) {
	f := r.fs.Get(span.File)
	start, _ := r.fs.Resolve(span)
	pad := strings.Repeat(" ", r.width)

	fmt.Fprintf(&r.b, "%s%s %s:%d:%d\n", pad, r.pal.gutter("-->"), displayPath(r.fs, f, r.opts.PathMode), start.Line, start.Col)
	r.b.WriteString(pad + r.pal.gutter(" |") + "\n")

	line := f.GetLine(start.Line)
	lineStart := lineStartOffset(f, start.Line)
	num := fmt.Sprintf("%*d |", r.width, start.Line)
	if text := r.expandTabs(line); text != "" {
		r.b.WriteString(r.pal.gutter(num) + " " + text + "\n")
	} else {
		r.b.WriteString(r.pal.gutter(num) + "\n")
	}

	lineEnd := lineStart + mustU32(len(line))
	from := min(span.Start, lineEnd) - lineStart
	to := min(max(span.End, span.Start), lineEnd) - lineStart
	indent := runewidth.StringWidth(r.expandTabs(line[:from]))
	underline := max(runewidth.StringWidth(r.expandTabs(line[from:to])), 1)

	marks := pad + r.pal.gutter(" |") + " " + strings.Repeat(" ", indent) + mark(strings.Repeat("^", underline))
	if label != "" {
		marks += " " + label
	}
	r.b.WriteString(marks + "\n")
}

func (r *prettyRenderer) expandTabs(s string) string {
	tw := r.opts.TabWidth
	if tw <= 0 {
		tw = 4
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tw))
}
