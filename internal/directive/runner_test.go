package directive

import (
	"bytes"
	"strings"
	"testing"

	"convlint/internal/diag"
	"convlint/internal/source"
)

const runnerSrc = "struct a; //~ ERROR type `a`\n//~| HELP `A`\nstruct b;\n"

func spanOf(f *source.File, text string, nth int) source.Span {
	off := 0
	for i := 0; ; i++ {
		idx := bytes.Index(f.Content[off:], []byte(text))
		if idx < 0 {
			panic("text not found: " + text)
		}
		if i == nth {
			start := uint32(off + idx)
			return source.Span{File: f.ID, Start: start, End: start + uint32(len(text))}
		}
		off += idx + len(text)
	}
}

func lintDiag(f *source.File, sev diag.Severity, name string, nth int) diag.Diagnostic {
	sp := spanOf(f, name, nth)
	d := diag.New(sev, diag.Code(0), sp, "type `"+name+"` should have a camel case name")
	return d.WithFix(diag.Fix{
		Title: "convert the identifier to upper camel case",
		Edits: []diag.TextEdit{{Span: sp, NewText: strings.ToUpper(name), OldText: name}},
	})
}

func setup(t *testing.T) (*source.FileSet, *source.File, *Registry) {
	t.Helper()
	fs := source.NewFileSet()
	f := addFile(t, fs, "ui.rs", runnerSrc)
	r := NewRegistry()
	if err := r.CollectFromFile(f); err != nil {
		t.Fatal(err)
	}
	return fs, f, r
}

func TestRunner_Run_AllMatched(t *testing.T) {
	fs, f, r := setup(t)
	var buf bytes.Buffer
	res := NewRunner(r, RunnerConfig{Output: &buf}).Run(fs, []diag.Diagnostic{
		lintDiag(f, diag.SevError, "a", 0),
		// unannotated warnings are ignored in a file without WARN annotations
		lintDiag(f, diag.SevWarning, "b", 0),
	})
	if res.Failed() || res.Total != 2 || res.Passed != 2 {
		t.Fatalf("unexpected result %+v\n%s", res, buf.String())
	}
	if !strings.Contains(buf.String(), "2 expected, 2 matched, 0 missing, 0 unexpected") {
		t.Errorf("summary missing: %s", buf.String())
	}
}

func TestRunner_Run_MissingAndUnexpected(t *testing.T) {
	fs, f, r := setup(t)
	var buf bytes.Buffer
	res := NewRunner(r, RunnerConfig{Output: &buf}).Run(fs, []diag.Diagnostic{
		lintDiag(f, diag.SevError, "b", 0),
		diag.NewSpanless(diag.SevError, diag.Code(0), "aborting"),
	})
	if res.Missing != 2 || res.Unexpected != 2 || !res.Failed() {
		t.Fatalf("unexpected result %+v\n%s", res, buf.String())
	}
	out := buf.String()
	for _, want := range []string{
		"ui.rs:1: expected ERROR not found: type `a`",
		"ui.rs:1: expected HELP not found: `A`",
		"ui.rs:3: unexpected error: type `b`",
		"unexpected error: aborting",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunner_Run_FilteredKinds(t *testing.T) {
	fs, f, r := setup(t)
	d := lintDiag(f, diag.SevError, "a", 0)
	d.Fixes = nil
	res := NewRunner(r, RunnerConfig{Filter: []Kind{KindError}}).Run(fs, []diag.Diagnostic{d})
	if res.Failed() || res.Total != 1 {
		t.Fatalf("help annotations should be ignored by the filter: %+v", res)
	}
}

func TestRunner_Run_WarningsCheckedWhenAnnotated(t *testing.T) {
	fs := source.NewFileSet()
	f := addFile(t, fs, "w.rs", "struct a; //~ WARN type `a`\nstruct b;\n")
	r := NewRegistry()
	if err := r.CollectFromFile(f); err != nil {
		t.Fatal(err)
	}
	res := NewRunner(r, RunnerConfig{}).Run(fs, []diag.Diagnostic{
		lintDiag(f, diag.SevWarning, "a", 0),
		lintDiag(f, diag.SevWarning, "b", 0),
	})
	if res.Passed != 1 || res.Unexpected != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}
