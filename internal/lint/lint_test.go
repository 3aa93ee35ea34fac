package lint

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"convlint/internal/ast"
	"convlint/internal/casing"
	"convlint/internal/diag"
	"convlint/internal/lintlevel"
	"convlint/internal/parser"
	"convlint/internal/source"
	"convlint/internal/testkit"
)

type run struct {
	fs     *source.FileSet
	ctx    *AnalysisContext
	levels *lintlevel.Resolver
	diags  []diag.Diagnostic
}

func newRun(t *testing.T, opts Options, settings ...lintlevel.Setting) *run {
	t.Helper()
	levels, err := lintlevel.NewResolver(settings...)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	fs := source.NewFileSet()
	return &run{fs: fs, ctx: NewContext(fs, opts), levels: levels}
}

func (r *run) add(t *testing.T, name, src string) *ast.File {
	t.Helper()
	sf := r.fs.Get(r.fs.AddVirtual(name, []byte(src)))
	f := parser.ParseFile(sf, parser.Options{})
	em := NewEmitter(r.ctx)
	for _, d := range r.levels.AddFile(f) {
		r.diags = append(r.diags, em.Forward(d))
	}
	res, err := r.ctx.CheckFile(f, r.levels)
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	r.diags = append(r.diags, res.Diagnostics...)
	return f
}

// brief renders "severity: message | help | notes..." per diagnostic.
func brief(diags []diag.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		s := d.Severity.Label() + ": " + d.Message
		if help, ok := d.InlineHelp(); ok {
			s += " | " + help
		}
		for _, n := range d.Notes {
			s += " | note: " + n.Msg
		}
		out = append(out, s)
	}
	return out
}

func TestGoldenFixtureFindings(t *testing.T) {
	content, err := os.ReadFile(testkit.GoldenPath(t, "ui", "lint-non-camel-case-types.rs"))
	if err != nil {
		t.Fatal(err)
	}
	r := newRun(t, Options{})
	r.add(t, "lint-non-camel-case-types.rs", string(content))

	want := []string{
		"error: type `ONE_TWO_THREE` should have a camel case name | convert the identifier to camel case: `OneTwoThree` | note: lint level defined here",
		"error: type `foo` should have a camel case name | convert the identifier to camel case: `Foo`",
		"error: type `foo2` should have a camel case name | convert the identifier to camel case: `Foo2`",
		"error: type `foo3` should have a camel case name | convert the identifier to camel case: `Foo3`",
		"error: type `foo4` should have a camel case name | convert the identifier to camel case: `Foo4`",
		"error: variant `bar` should have a camel case name | convert the identifier to camel case: `Bar`",
		"error: trait `foo6` should have a camel case name | convert the identifier to camel case: `Foo6`",
		"error: type parameter `ty` should have a camel case name | convert the identifier to camel case: `Ty`",
		"error: type `X86__64` should have a camel case name | convert the identifier to camel case: `X86_64`",
		"error: type `Abc_123` should have a camel case name | convert the identifier to camel case: `Abc123`",
		"error: type `A1_b2_c3` should have a camel case name | convert the identifier to camel case: `A1B2C3`",
	}
	if diff := cmp.Diff(want, brief(r.diags)); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}

	sf := r.fs.Get(r.diags[0].Primary.File)
	if got := sf.Text(r.diags[0].Notes[0].Span); got != "non_camel_case_types" {
		t.Fatalf("note points at %q", got)
	}
	if start, _ := r.fs.Resolve(r.diags[0].Notes[0].Span); start.Line != 11 || start.Col != 11 {
		t.Fatalf("note at %d:%d", start.Line, start.Col)
	}

	sum := r.ctx.Finalize()
	if sum.ErrorCount != 11 || sum.WarningCount != 0 || sum.ExitCode != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Line != "error: aborting due to 11 previous errors" {
		t.Fatalf("line = %q", sum.Line)
	}
}

func TestClassifyKeepsSourceOrder(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("c.rs", []byte("struct S<T>;\nenum E { A, B }\n#[repr(C)]\nstruct c_t;")))
	got := Classify(parser.ParseFile(sf, parser.Options{}))
	var names []string
	for i, c := range got {
		if i > 0 && c.Ident.Span.Start < got[i-1].Ident.Span.Start {
			t.Fatalf("candidate %d out of order", i)
		}
		names = append(names, fmt.Sprintf("%s:%s:%v", c.Kind, c.Ident.Text, c.Exempt))
	}
	want := []string{"struct:S:false", "type-param:T:false", "enum:E:false", "variant:A:false", "variant:B:false", "struct:c_t:true"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("candidates (-want +got):\n%s", diff)
	}
}

func TestDefaultLevelNoteOncePerRun(t *testing.T) {
	r := newRun(t, Options{})
	r.add(t, "a.rs", "struct a;\nstruct b;")
	r.add(t, "b.rs", "trait c {}")
	want := []string{
		"warning: type `a` should have a camel case name | convert the identifier to camel case: `A` | note: #[warn(non_camel_case_types)] on by default",
		"warning: type `b` should have a camel case name | convert the identifier to camel case: `B`",
		"warning: trait `c` should have a camel case name | convert the identifier to camel case: `C`",
	}
	if diff := cmp.Diff(want, brief(r.diags)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if !r.diags[0].Notes[0].Footer {
		t.Fatalf("default note must be a footer")
	}
	sum := r.ctx.Finalize()
	if sum.WarningCount != 3 || sum.ErrorCount != 0 || sum.ExitCode != 0 || sum.Line != "" {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestLevelNoteOncePerDirectiveScope(t *testing.T) {
	r := newRun(t, Options{})
	r.add(t, "m.rs", `mod one {
    #![deny(non_camel_case_types)]
    struct a;
    struct b;
}
mod two {
    #![deny(non_camel_case_types)]
    struct c;
}
#[deny(nonstandard_style)]
struct d;
`)
	got := brief(r.diags)
	notes := 0
	for _, line := range got {
		notes += strings.Count(line, "note: lint level defined here")
	}
	if notes != 3 {
		t.Fatalf("expected one note per directive scope:\n%s", strings.Join(got, "\n"))
	}
	last := r.diags[len(r.diags)-1]
	if len(last.Notes) != 2 || last.Notes[1].Msg != "#[deny(non_camel_case_types)] implied by #[deny(nonstandard_style)]" {
		t.Fatalf("group notes = %+v", last.Notes)
	}
}

func TestCommandLineAndConfigNotes(t *testing.T) {
	r := newRun(t, Options{}, lintlevel.Setting{
		Lint: "non-camel-case-types", Level: lintlevel.Deny, Kind: lintlevel.SourceCommandLine, Flag: "-D non-camel-case-types",
	})
	r.add(t, "a.rs", "struct a;\nstruct b;")
	if n := r.diags[0].Notes; len(n) != 1 || n[0].Msg != "requested on the command line with `-D non-camel-case-types`" {
		t.Fatalf("notes = %+v", n)
	}
	if len(r.diags[1].Notes) != 0 {
		t.Fatalf("second finding repeats the note")
	}

	r = newRun(t, Options{}, lintlevel.Setting{
		Lint: lintlevel.NonCamelCaseTypes, Level: lintlevel.Forbid, Kind: lintlevel.SourceConfig, Flag: "convlint.toml",
	})
	r.add(t, "a.rs", "struct a;")
	if n := r.diags[0].Notes; len(n) != 1 || n[0].Msg != "`forbid` level set in convlint.toml" {
		t.Fatalf("notes = %+v", n)
	}
}

func TestAllowEmitsNothing(t *testing.T) {
	r := newRun(t, Options{})
	r.add(t, "a.rs", "#![allow(non_camel_case_types)]\nstruct a;\nenum b { c }")
	if len(r.diags) != 0 || r.ctx.Counters != (Counters{}) {
		t.Fatalf("diags = %v counters = %+v", brief(r.diags), r.ctx.Counters)
	}
}

func TestDenyWarnings(t *testing.T) {
	r := newRun(t, Options{DenyWarnings: true})
	r.add(t, "a.rs", "#![warn(no_such_lint)]\nstruct a;\nstruct b;")
	want := []string{
		"error: unknown lint: `no_such_lint` | note: `-D unknown-lints` implied by `-D warnings`",
		"error: type `a` should have a camel case name | convert the identifier to camel case: `A` | note: `-D non-camel-case-types` implied by `-D warnings`",
		"error: type `b` should have a camel case name | convert the identifier to camel case: `B`",
	}
	if diff := cmp.Diff(want, brief(r.diags)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if sum := r.ctx.Finalize(); sum.ErrorCount != 3 || sum.WarningCount != 0 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestResolutionFailureSkipsScope(t *testing.T) {
	r := newRun(t, Options{})
	f := r.add(t, "a.rs", "#[allow]\nstruct a;\nstruct b;")
	want := []string{
		"error: malformed lint attribute input",
		"warning: type `b` should have a camel case name | convert the identifier to camel case: `B` | note: #[warn(non_camel_case_types)] on by default",
	}
	if diff := cmp.Diff(want, brief(r.diags)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	res, err := r.ctx.CheckFile(f, r.levels)
	if err != nil || res.Unresolved != 1 || res.Checked != 2 {
		t.Fatalf("res = %+v, err = %v", res, err)
	}
}

func TestUnrenderableSuggestionHasNoHelp(t *testing.T) {
	r := newRun(t, Options{})
	r.add(t, "u.rs", "struct 中_文;")
	if len(r.diags) != 1 {
		t.Fatalf("diags = %v", brief(r.diags))
	}
	d := r.diags[0]
	if _, ok := d.InlineHelp(); ok || len(d.Fixes) != 0 {
		t.Fatalf("unexpected fix: %+v", d.Fixes)
	}
}

func TestFixCarriesOldText(t *testing.T) {
	r := newRun(t, Options{Policy: casing.Policy{Acronyms: casing.AcronymsFold}})
	r.add(t, "r.rs", "struct r#io_error;")
	fix := r.diags[0].Fixes[0]
	if fix.Edits[0].OldText != "io_error" || fix.Edits[0].NewText != "IoError" {
		t.Fatalf("edit = %+v", fix.Edits[0])
	}
	if !fix.IsPreferred || fix.Applicability != diag.FixApplicabilitySafeWithHeuristics {
		t.Fatalf("fix = %+v", fix)
	}
}

func TestMalformedSpanIsFatal(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.rs", []byte("struct a;"))
	em := NewEmitter(NewContext(fs, Options{}))
	ident := Identifier{Text: "a", Span: source.Span{File: id, Start: 7, End: 99}}
	_, _, err := em.Emit(ast.DeclStruct, ident, Finding{Kind: ast.DeclStruct, Ident: ident}, lintlevel.Warn, lintlevel.Source{})
	if !errors.Is(err, ErrMalformedSpan) {
		t.Fatalf("err = %v", err)
	}
}

func TestFinalizeLines(t *testing.T) {
	tests := []struct {
		errors int
		line   string
		code   int
	}{
		{0, "", 0},
		{1, "error: aborting due to 1 previous error", 1},
		{2, "error: aborting due to 2 previous errors", 1},
	}
	for _, tt := range tests {
		ctx := NewContext(source.NewFileSet(), Options{})
		ctx.Counters.Errors = tt.errors
		ctx.Counters.Warnings = 5
		sum := ctx.Finalize()
		if sum.Line != tt.line || sum.ExitCode != tt.code || sum.WarningCount != 5 {
			t.Errorf("errors=%d: %+v", tt.errors, sum)
		}
	}
}
