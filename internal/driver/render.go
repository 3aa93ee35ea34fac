package driver

import (
	"fmt"
	"io"

	"convlint/internal/diagfmt"
)

// RenderOptions picks the output format of a run.
type RenderOptions struct {
	Format diagfmt.Format
	Pretty diagfmt.PrettyOpts
	JSON   diagfmt.JSONOpts
	Sarif  diagfmt.SarifRunMeta
}

// Render writes the diagnostics of res followed by the closing summary.
func Render(w io.Writer, res *Result, opts RenderOptions) error {
	switch opts.Format {
	case diagfmt.FormatJSON:
		return diagfmt.JSON(w, res.Diagnostics, res.FileSet, opts.JSON, &diagfmt.SummaryJSON{
			Errors:   res.Summary.ErrorCount,
			Warnings: res.Summary.WarningCount,
			ExitCode: res.Summary.ExitCode,
			Message:  res.Summary.Line,
		})
	case diagfmt.FormatSARIF:
		return diagfmt.Sarif(w, res.Diagnostics, res.FileSet, opts.Sarif)
	case diagfmt.FormatShort:
		if err := diagfmt.Short(w, res.Diagnostics, res.FileSet, opts.Pretty.PathMode); err != nil {
			return err
		}
		if res.Summary.Line != "" {
			_, err := fmt.Fprintln(w, res.Summary.Line)
			return err
		}
		return nil
	}
	if err := diagfmt.Pretty(w, res.Diagnostics, res.FileSet, opts.Pretty); err != nil {
		return err
	}
	if res.Summary.Line == "" {
		return nil
	}
	if err := diagfmt.PrettyLine(w, res.Summary.Line, opts.Pretty.Color); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
