package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"convlint/internal/casing"
	"convlint/internal/diagfmt"
	"convlint/internal/driver"
	"convlint/internal/lint"
	"convlint/internal/source"
)

// declRow is one line of the decls dump.
type declRow struct {
	Line       uint32 `json:"line"`
	Col        uint32 `json:"col"`
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Suggestion string `json:"suggestion,omitempty"`
}

func newDeclsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decls <file.rs>",
		Short: "List the type-level declarations of a file with their verdicts",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecls,
	}
	cmd.Flags().String("frontend", "native", "parser front end (native|tree-sitter)")
	cmd.Flags().String("acronyms", "preserve", "acronym policy for suggestions (preserve|fold)")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runDecls(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	frontendStr, _ := f.GetString("frontend")
	acronymsStr, _ := f.GetString("acronyms")
	format, _ := f.GetString("format")

	frontend, ok := driver.ParseFrontend(frontendStr)
	if !ok {
		return &exitError{code: 2, err: fmt.Errorf("unknown frontend %q", frontendStr)}
	}
	acronyms, ok := casing.ParseAcronymPolicy(acronymsStr)
	if !ok {
		return &exitError{code: 2, err: fmt.Errorf("unknown acronym policy %q", acronymsStr)}
	}
	if format != "pretty" && format != "json" {
		return &exitError{code: 2, err: fmt.Errorf("unsupported format %q (must be pretty or json)", format)}
	}

	res, err := driver.ParseDecls(cmd.Context(), args[0], frontend)
	if err != nil {
		return &exitError{code: 2, err: fmt.Errorf("decls: %w", err)}
	}
	rows := declRows(res.FileSet, lint.Classify(res.AST), casing.Policy{Acronyms: acronyms})

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return err
		}
	} else {
		writeDeclRows(out, rows)
	}
	if len(res.Diags) > 0 {
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), res.Diags, res.FileSet, diagfmt.PrettyOpts{}); err != nil {
			return err
		}
		return &exitError{code: 1}
	}
	return nil
}

func declRows(fs *source.FileSet, cands []lint.Candidate, policy casing.Policy) []declRow {
	rows := make([]declRow, 0, len(cands))
	for _, c := range cands {
		start, _ := fs.Resolve(c.Ident.Span)
		row := declRow{
			Line: start.Line,
			Col:  start.Col,
			Kind: c.Kind.String(),
			Name: c.Ident.Text,
		}
		finding := lint.Check(c, policy)
		switch {
		case c.Exempt:
			row.Status = "exempt"
		case finding.Conforms:
			row.Status = "ok"
		default:
			row.Status = "violation"
			if finding.HasSuggestion {
				row.Suggestion = finding.Suggestion
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func writeDeclRows(w io.Writer, rows []declRow) {
	for _, r := range rows {
		pos := fmt.Sprintf("%d:%d", r.Line, r.Col)
		line := fmt.Sprintf("%-8s %-12s %-24s %s", pos, r.Kind, r.Name, r.Status)
		if r.Suggestion != "" {
			line += " -> " + r.Suggestion
		}
		fmt.Fprintln(w, line)
	}
}
