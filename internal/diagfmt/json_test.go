package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"convlint/internal/diag"
	"convlint/internal/source"
)

func sampleDiagnostics() (*source.FileSet, []diag.Diagnostic) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("src/lib.rs", []byte("#![deny(non_camel_case_types)]\nstruct foo;\n"))
	primary := source.Span{File: id, Start: 38, End: 41}
	d := diag.New(diag.SevError, diag.LintNonCamelCaseTypes, primary, "type `foo` should have a camel case name").
		WithFix(diag.Fix{
			ID:            "non_camel_case_types.rename",
			Title:         "convert the identifier to camel case",
			Applicability: diag.FixApplicabilitySafeWithHeuristics,
			IsPreferred:   true,
			Edits:         []diag.TextEdit{{Span: primary, NewText: "Foo", OldText: "foo"}},
		}).
		WithNote(source.Span{File: id, Start: 8, End: 28}, "lint level defined here").
		WithFooter("footer")
	d.Lint = "non_camel_case_types"
	spanless := diag.NewSpanless(diag.SevError, diag.IOReadFailed, "couldn't read `gone.rs`")
	return fs, []diag.Diagnostic{d, spanless}
}

func TestJSONOutput(t *testing.T) {
	fs, diags := sampleDiagnostics()
	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, IncludeNotes: true, IncludeFixes: true, IncludePreviews: true}
	summary := &SummaryJSON{Errors: 2, ExitCode: 1, Message: "error: aborting due to 2 previous errors"}
	if err := JSON(&buf, diags, fs, opts, summary); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || out.Summary == nil || out.Summary.Errors != 2 {
		t.Fatalf("output = %+v", out)
	}

	first := out.Diagnostics[0]
	wantLoc := &LocationJSON{File: "src/lib.rs", StartByte: 38, EndByte: 41, StartLine: 2, StartCol: 8, EndLine: 2, EndCol: 11}
	if diff := cmp.Diff(wantLoc, first.Location); diff != "" {
		t.Fatalf("location (-want +got):\n%s", diff)
	}
	if first.Lint != "non_camel_case_types" || first.Code != "" || first.Severity != "ERROR" {
		t.Fatalf("first = %+v", first)
	}
	if len(first.Notes) != 2 || first.Notes[0].Location == nil || first.Notes[1].Location != nil {
		t.Fatalf("notes = %+v", first.Notes)
	}
	edit := first.Fixes[0].Edits[0]
	if edit.NewText != "Foo" || edit.OldText != "foo" {
		t.Fatalf("edit = %+v", edit)
	}
	if diff := cmp.Diff([]string{"struct Foo;"}, edit.AfterLines); diff != "" {
		t.Fatalf("preview (-want +got):\n%s", diff)
	}

	second := out.Diagnostics[1]
	if second.Location != nil || second.Code != "IO5001" {
		t.Fatalf("second = %+v", second)
	}
}

func TestJSONMaxAndOmissions(t *testing.T) {
	fs, diags := sampleDiagnostics()
	out := BuildDiagnosticsOutput(diags, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Notes != nil || d.Fixes != nil || d.Location.StartLine != 0 {
		t.Fatalf("unexpected detail: %+v", d)
	}
}

func TestShort(t *testing.T) {
	fs, diags := sampleDiagnostics()
	var buf bytes.Buffer
	if err := Short(&buf, diags, fs, PathModeAuto); err != nil {
		t.Fatal(err)
	}
	want := "src/lib.rs:2:8: error: type `foo` should have a camel case name [non_camel_case_types]\n" +
		"error: couldn't read `gone.rs` [IO5001]\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestSarif(t *testing.T) {
	fs, diags := sampleDiagnostics()
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "convlint", ToolVersion: "0.1.0", InvocationArgs: []string{"lint", "src"}}
	if err := Sarif(&buf, diags, fs, meta); err != nil {
		t.Fatal(err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("log = %+v", log)
	}
	run := log.Runs[0]
	var rules []string
	for _, r := range run.Tool.Driver.Rules {
		rules = append(rules, r.ID)
	}
	if diff := cmp.Diff([]string{"non_camel_case_types", "IO5001"}, rules); diff != "" {
		t.Fatalf("rules (-want +got):\n%s", diff)
	}
	res := run.Results[0]
	if res.Level != "error" || len(res.Locations) != 1 || len(res.RelatedLocations) != 1 {
		t.Fatalf("result = %+v", res)
	}
	region := res.Locations[0].PhysicalLocation.Region
	if region.StartLine != 2 || region.StartColumn != 8 || region.EndColumn != 11 {
		t.Fatalf("region = %+v", region)
	}
	if len(res.Fixes) != 1 || res.Fixes[0].ArtifactChanges[0].Replacements[0].InsertedContent.Text != "Foo" {
		t.Fatalf("fixes = %+v", res.Fixes)
	}
	if len(run.Results[1].Locations) != 0 {
		t.Fatalf("spanless result has a location")
	}
	if len(run.Invocations) != 1 || run.Invocations[0].ExecutionSuccessful {
		t.Fatalf("invocations = %+v", run.Invocations)
	}
	if !strings.Contains(buf.String(), `"$schema"`) {
		t.Fatalf("missing schema")
	}
}
