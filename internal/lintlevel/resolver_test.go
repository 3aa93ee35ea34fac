package lintlevel

import (
	"errors"
	"testing"

	"convlint/internal/ast"
	"convlint/internal/diag"
	"convlint/internal/parser"
	"convlint/internal/source"
)

type fixture struct {
	t     *testing.T
	sf    *source.File
	file  *ast.File
	r     *Resolver
	diags []diag.Diagnostic
}

func load(t *testing.T, src string, settings ...Setting) *fixture {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("levels.rs", []byte(src)))
	bag := diag.NewBag(0)
	f := parser.ParseFile(sf, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("parse diagnostics: %+v", bag.Items())
	}
	r, err := NewResolver(settings...)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return &fixture{t: t, sf: sf, file: f, r: r, diags: r.AddFile(f)}
}

func (fx *fixture) decl(name string) *ast.Decl {
	fx.t.Helper()
	for i := range fx.file.Decls.Data {
		if d := &fx.file.Decls.Data[i]; d.Name == name {
			return d
		}
	}
	fx.t.Fatalf("no declaration %q", name)
	return nil
}

func (fx *fixture) resolve(name string) (Level, Source) {
	fx.t.Helper()
	d := fx.decl(name)
	level, src, err := fx.r.Resolve(NonCamelCaseTypes, fx.file.Source, d.Scope)
	if err != nil {
		fx.t.Fatalf("Resolve(%s): %v", name, err)
	}
	return level, src
}

func (fx *fixture) noDiagnostics() {
	fx.t.Helper()
	if len(fx.diags) != 0 {
		fx.t.Fatalf("unexpected diagnostics: %+v", fx.diags)
	}
}

func TestResolveLevels(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		decl  string
		level Level
		kind  SourceKind
		text  string // directive text the source points at
	}{
		{"default", "struct foo;", "foo", Warn, SourceDefault, ""},
		{"file forbid", "#![forbid(non_camel_case_types)]\n#![allow(dead_code)]\nstruct foo;", "foo", Forbid, SourceDirective, "non_camel_case_types"},
		{"outer allow", "#[allow(non_camel_case_types)]\nstruct foo;", "foo", Allow, SourceDirective, "non_camel_case_types"},
		{"nearest wins", "#![deny(non_camel_case_types)]\nmod m {\n#![allow(non_camel_case_types)]\nstruct a;\n}\nstruct b;", "a", Allow, SourceDirective, "non_camel_case_types"},
		{"outer scope", "#![deny(non_camel_case_types)]\nmod m {\n#![allow(non_camel_case_types)]\nstruct a;\n}\nstruct b;", "b", Deny, SourceDirective, "non_camel_case_types"},
		{"group", "#![deny(nonstandard_style)]\nstruct a;", "a", Deny, SourceDirective, "nonstandard_style"},
		{"variant", "enum E {\n#[allow(non_camel_case_types)]\na,\nb }", "a", Allow, SourceDirective, "non_camel_case_types"},
		{"sibling variant", "enum E {\n#[allow(non_camel_case_types)]\na,\nb }", "b", Warn, SourceDefault, ""},
		{"type param", "#[deny(non_camel_case_types)]\nfn f<t>() {}", "t", Deny, SourceDirective, "non_camel_case_types"},
		{"later attribute wins", "#[deny(non_camel_case_types)]\n#[allow(non_camel_case_types)]\nstruct a;", "a", Allow, SourceDirective, "non_camel_case_types"},
		{"deny warnings", "#![deny(warnings)]\nstruct a;", "a", Deny, SourceDirective, "warnings"},
		{"allow beats warnings", "#![deny(warnings)]\n#[allow(non_camel_case_types)]\nstruct a;", "a", Allow, SourceDirective, "non_camel_case_types"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := load(t, tt.src)
			fx.noDiagnostics()
			level, src := fx.resolve(tt.decl)
			if level != tt.level || src.Kind != tt.kind {
				t.Fatalf("got %s/%s, want %s/%s", level, src.Kind, tt.level, tt.kind)
			}
			if got := fx.sf.Text(src.Span); tt.text != "" && got != tt.text {
				t.Fatalf("source span text %q, want %q", got, tt.text)
			}
		})
	}
}

func TestGroupSourceIsMarked(t *testing.T) {
	fx := load(t, "#![deny(nonstandard_style)]\nstruct a;")
	if _, src := fx.resolve("a"); src.Group != NonstandardStyle || src.Scope != fx.file.Root() {
		t.Fatalf("source = %+v", src)
	}
}

func TestForbidCannotBeLowered(t *testing.T) {
	fx := load(t, "#![forbid(non_camel_case_types)]\n#[allow(non_camel_case_types)]\nstruct a;")
	if len(fx.diags) != 1 {
		t.Fatalf("diagnostics = %+v", fx.diags)
	}
	d := fx.diags[0]
	if d.Code != diag.LvlForbidOverride || d.Code.ID() != "E0453" || d.Severity != diag.SevError {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Message != "allow(non_camel_case_types) incompatible with previous forbid" {
		t.Fatalf("message = %q", d.Message)
	}
	if fx.sf.Text(d.Primary) != "non_camel_case_types" || d.Primary.Start < 40 {
		t.Fatalf("primary points at %v", d.Primary)
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "`forbid` level set here" || d.Notes[0].Span.Start != 10 {
		t.Fatalf("notes = %+v", d.Notes)
	}
	level, src := fx.resolve("a")
	if level != Forbid || src.Scope != fx.file.Root() {
		t.Fatalf("got %s from %+v", level, src)
	}
}

func TestCommandLineLevels(t *testing.T) {
	deny := Setting{Lint: "non-camel-case-types", Level: Deny, Kind: SourceCommandLine, Flag: "-D non-camel-case-types"}

	fx := load(t, "struct a;\n#[allow(non_camel_case_types)]\nstruct b;", deny)
	fx.noDiagnostics()
	if level, src := fx.resolve("a"); level != Deny || src.Kind != SourceCommandLine || src.Flag != deny.Flag {
		t.Fatalf("a: %s %+v", level, src)
	}
	if level, _ := fx.resolve("b"); level != Allow {
		t.Fatalf("b: %s", level)
	}

	forbid := deny
	forbid.Level = Forbid
	fx = load(t, "#[allow(non_camel_case_types)]\nstruct b;", forbid)
	if len(fx.diags) != 1 || fx.diags[0].Notes[0].Msg != "`forbid` lint level was set on the command line" {
		t.Fatalf("diagnostics = %+v", fx.diags)
	}
	if level, _ := fx.resolve("b"); level != Forbid {
		t.Fatalf("b: %s", level)
	}
}

func TestSettingsOrder(t *testing.T) {
	config := Setting{Lint: NonCamelCaseTypes, Level: Allow, Kind: SourceConfig, Flag: "convlint.toml"}
	flag := Setting{Lint: NonCamelCaseTypes, Level: Deny, Kind: SourceCommandLine, Flag: "-D non_camel_case_types"}
	fx := load(t, "struct a;", config, flag)
	if level, src := fx.resolve("a"); level != Deny || src.Kind != SourceCommandLine {
		t.Fatalf("got %s %+v", level, src)
	}
	fx = load(t, "struct a;", flag, config)
	if level, src := fx.resolve("a"); level != Allow || src.Kind != SourceConfig {
		t.Fatalf("got %s %+v", level, src)
	}
}

func TestUnknownCommandLineLint(t *testing.T) {
	_, err := NewResolver(Setting{Lint: "no-such-lint", Level: Deny, Kind: SourceCommandLine, Flag: "-D no-such-lint"})
	if !errors.Is(err, ErrUnknownLint) {
		t.Fatalf("err = %v", err)
	}
}

func TestMalformedAttributes(t *testing.T) {
	fx := load(t, "#[allow]\nstruct a;\n#[warn(x = 1)]\nstruct b;\n#[deny = \"x\"]\nenum c { D }\nstruct e;")
	if len(fx.diags) != 3 {
		t.Fatalf("diagnostics = %+v", fx.diags)
	}
	wantPrimary := []string{"#[allow]", "x", "#[deny = \"x\"]"}
	for i, d := range fx.diags {
		if d.Code.ID() != "E0452" || d.Message != "malformed lint attribute input" {
			t.Errorf("diag %d = %+v", i, d)
		}
		if got := fx.sf.Text(d.Primary); got != wantPrimary[i] {
			t.Errorf("diag %d primary %q, want %q", i, got, wantPrimary[i])
		}
	}
	for _, name := range []string{"a", "b", "c", "D"} {
		d := fx.decl(name)
		_, _, err := fx.r.Resolve(NonCamelCaseTypes, fx.file.Source, d.Scope)
		var rerr *ResolutionError
		if !errors.As(err, &rerr) || !errors.Is(err, ErrLevelResolution) {
			t.Fatalf("%s: err = %v", name, err)
		}
	}
	if level, _ := fx.resolve("e"); level != Warn {
		t.Fatalf("e: %s", level)
	}
}

func TestUnknownLints(t *testing.T) {
	fx := load(t, "#![warn(no_such_lint)]\nstruct a;")
	if len(fx.diags) != 1 {
		t.Fatalf("diagnostics = %+v", fx.diags)
	}
	d := fx.diags[0]
	if d.Severity != diag.SevWarning || d.Message != "unknown lint: `no_such_lint`" || d.Lint != UnknownLints {
		t.Fatalf("diagnostic = %+v", d)
	}
	if len(d.Notes) != 1 || !d.Notes[0].Footer {
		t.Fatalf("notes = %+v", d.Notes)
	}

	load(t, "#![allow(unknown_lints)]\n#![warn(no_such_lint)]\nstruct a;").noDiagnostics()
	load(t, "#![allow(clippy::pedantic, dead_code)]\nstruct a;").noDiagnostics()

	fx = load(t, "#![deny(unknown_lints)]\n#![warn(no_such_lint)]\nstruct a;")
	if len(fx.diags) != 1 || fx.diags[0].Severity != diag.SevError {
		t.Fatalf("diagnostics = %+v", fx.diags)
	}
}

func TestDiagnosticsAccumulateAcrossFiles(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	for _, src := range []string{"#![warn(nope)]", "#[allow]\nstruct a;"} {
		sf := fs.Get(fs.AddVirtual("f.rs", []byte(src)))
		r.AddFile(parser.ParseFile(sf, parser.Options{}))
	}
	if got := len(r.Diagnostics()); got != 2 {
		t.Fatalf("got %d diagnostics", got)
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{Allow, Warn, Deny, Forbid} {
		got, ok := ParseLevel(l.String())
		if !ok || got != l {
			t.Errorf("ParseLevel(%q) = %v, %v", l.String(), got, ok)
		}
	}
	if _, ok := ParseLevel("error"); ok {
		t.Error("ParseLevel accepted error")
	}
}
