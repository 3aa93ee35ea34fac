package diagfmt

import (
	"encoding/json"
	"io"
	"slices"

	"convlint/internal/diag"
	"convlint/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON: у сносок (footer) нет location.
type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	OldText     string       `json:"old_text,omitempty"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type FixJSON struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title"`
	Kind          string        `json:"kind"`
	Applicability string        `json:"applicability"`
	IsPreferred   bool          `json:"is_preferred,omitempty"`
	Edits         []FixEditJSON `json:"edits,omitempty"`
}

type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code,omitempty"`
	Lint     string        `json:"lint,omitempty"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
	Fixes    []FixJSON     `json:"fixes,omitempty"`
}

// SummaryJSON mirrors the end-of-run verdict.
type SummaryJSON struct {
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
	ExitCode int    `json:"exit_code"`
	Message  string `json:"message,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Summary     *SummaryJSON     `json:"summary,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) *LocationJSON {
	if !resolvable(fs, span) {
		return nil
	}
	loc := &LocationJSON{
		File:      displayPath(fs, fs.Get(span.File), pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	n := len(diags)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := make([]DiagnosticJSON, 0, n)
	for _, d := range diags[:n] {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Lint:     d.Lint,
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions),
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				nj := NoteJSON{Message: note.Msg}
				if !note.Footer {
					nj.Location = makeLocation(note.Span, fs, opts.PathMode, opts.IncludePositions)
				}
				dj.Notes = append(dj.Notes, nj)
			}
		}
		if opts.IncludeFixes {
			dj.Fixes = buildFixes(d.Fixes, fs, opts)
		}
		out = append(out, dj)
	}
	return DiagnosticsOutput{Diagnostics: out, Count: len(out)}
}

// buildFixes lists preferred and safer fixes first.
func buildFixes(fixes []diag.Fix, fs *source.FileSet, opts JSONOpts) []FixJSON {
	if len(fixes) == 0 {
		return nil
	}
	sorted := slices.Clone(fixes)
	slices.SortStableFunc(sorted, func(a, b diag.Fix) int {
		if a.IsPreferred != b.IsPreferred {
			if a.IsPreferred {
				return -1
			}
			return 1
		}
		return int(a.Applicability) - int(b.Applicability)
	})
	out := make([]FixJSON, 0, len(sorted))
	for _, fix := range sorted {
		fj := FixJSON{
			ID:            fix.ID,
			Title:         fix.Title,
			Kind:          fix.Kind.String(),
			Applicability: fix.Applicability.String(),
			IsPreferred:   fix.IsPreferred,
		}
		for _, edit := range fix.Edits {
			loc := makeLocation(edit.Span, fs, opts.PathMode, opts.IncludePositions)
			if loc == nil {
				continue
			}
			ej := FixEditJSON{Location: *loc, NewText: edit.NewText, OldText: edit.OldText}
			if opts.IncludePreviews {
				if preview, err := BuildFixPreview(fs, edit); err == nil {
					ej.BeforeLines, ej.AfterLines = preview.Before, preview.After
				}
			}
			fj.Edits = append(fj.Edits, ej)
		}
		out = append(out, fj)
	}
	return out
}

// JSON выводит диагностики и, если передан, итог прогона.
func JSON(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts, summary *SummaryJSON) error {
	output := BuildDiagnosticsOutput(diags, fs, opts)
	output.Summary = summary
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
