package parser

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"convlint/internal/ast"
	"convlint/internal/diag"
	"convlint/internal/source"
	"convlint/internal/testkit"
)

func parseSource(t *testing.T, src string) (*ast.File, *source.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("test.rs", []byte(src)))
	bag := diag.NewBag(0)
	f := ParseFile(sf, Options{Reporter: diag.BagReporter{Bag: bag}})
	if err := testkit.CheckSpanInvariants(f, sf); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return f, sf, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag.Len() == 0 {
		return "<none>"
	}
	lines := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		lines = append(lines, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(lines, "; ")
}

// declSummary renders "kind:name@scope-name" per declaration.
func declSummary(f *ast.File) []string {
	var out []string
	for _, d := range f.Decls.Slice() {
		s := f.Scope(d.Scope)
		entry := fmt.Sprintf("%s:%s@%s", d.Kind, d.Name, s.Name)
		if d.Exempt {
			entry += "!"
		}
		out = append(out, entry)
	}
	return out
}

func expectDecls(t *testing.T, src string, want ...string) *ast.File {
	t.Helper()
	f, _, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	got := declSummary(f)
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("decls:\n got  %v\n want %v", got, want)
	}
	return f
}

func TestParseItemKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"unit struct", "struct A;", []string{"struct:A@A"}},
		{"tuple struct", "pub struct B<T>(T) where T: Copy;", []string{"struct:B@B", "type-param:T@B"}},
		{"braced struct", "pub(crate) struct C<'a, T: Fn(u8) -> u8 = X> where T: Fn(u8) { x: &'a T }", []string{"struct:C@C", "type-param:T@C"}},
		{"union", "union D { a: u8 }", []string{"union:D@D"}},
		{"enum", "enum E<U> { A, B(u8), C { x: u8 }, D = 4, }", []string{"enum:E@E", "type-param:U@E", "variant:A@A", "variant:B@B", "variant:C@C", "variant:D@D"}},
		{"trait", "pub unsafe trait F<G>: Sized { type Out: Clone; const N: usize; fn go(&self) -> Self::Out; }", []string{"trait:F@F", "type-param:G@F", "assoc-type:Out@Out"}},
		{"trait alias", "trait H = Clone + Send;", []string{"trait:H@H"}},
		{"type alias", "type I<J> = Vec<J>;", []string{"type-alias:I@I", "type-param:J@I"}},
		{"fn generics", "const fn k<L, 'a, const M: usize>(_: L) -> [u8; M] { struct Hidden; }", []string{"type-param:L@k"}},
		{"impl", "impl<N: Default> Tr for W<N> { type Assoc = N; fn f() {} }", []string{"type-param:N@impl"}},
		{"module", "mod m { pub struct O; mod n; }", []string{"struct:O@O"}},
		{"extern block", `extern "C" { type Opaque; fn c(); static X: u8; }`, nil},
		{"skipped items", "use a::{b, c}; static S: u8 = 1; const _: () = (); extern crate core; macro_rules! m { () => {} } m!(x);", nil},
		{"raw ident", "struct r#foo;", []string{"struct:foo@foo"}},
		{"auto trait", "pub auto trait P {}", []string{"trait:P@P"}},
		{"nested generics", "struct Q<R: Iterator<Item = Vec<u8>>, S>;", []string{"struct:Q@Q", "type-param:R@Q", "type-param:S@Q"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectDecls(t, tt.src, tt.want...)
		})
	}
}

func TestRawIdentSpanSkipsPrefix(t *testing.T) {
	f, sf, _ := parseSource(t, "struct r#foo;")
	d := f.Decl(1)
	if got := sf.Text(d.Span); got != "foo" {
		t.Fatalf("span text %q", got)
	}
}

func TestAttributesAttachToScopes(t *testing.T) {
	src := `#![forbid(non_camel_case_types)]
#![allow(dead_code)]

#[allow(non_camel_case_types)]
#[repr(C, packed)]
struct foo7 { bar: isize }

mod inner {
    #![deny(nonstandard_style)]
    enum E {
        #[warn(non_camel_case_types)]
        bad_variant,
    }
}
`
	f, sf, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}

	root := f.Scope(f.Root())
	if len(root.Attrs) != 2 || root.Attrs[0].Path != "forbid" || !root.Attrs[0].Inner {
		t.Fatalf("root attrs = %+v", root.Attrs)
	}
	lint := root.Attrs[0].Items[0]
	if lint.Path != "non_camel_case_types" || sf.Text(lint.Span) != "non_camel_case_types" {
		t.Fatalf("lint item = %+v", lint)
	}

	foo7 := f.Decl(1)
	if !foo7.Exempt {
		t.Fatalf("repr(C) struct must be exempt")
	}
	if attrs := f.Scope(foo7.Scope).Attrs; len(attrs) != 2 || attrs[0].Path != "allow" {
		t.Fatalf("foo7 attrs = %+v", attrs)
	}

	variant := f.Decl(3)
	if variant.Kind != ast.DeclVariant || variant.Name != "bad_variant" {
		t.Fatalf("decl 3 = %+v", variant)
	}
	chain := f.Chain(variant.Scope)
	var kinds []string
	for _, id := range chain {
		kinds = append(kinds, f.Scope(id).Kind.String())
	}
	if strings.Join(kinds, ",") != "variant,item,mod,file" {
		t.Fatalf("scope chain = %v", kinds)
	}
	if mod := f.Scope(chain[2]); len(mod.Attrs) != 1 || mod.Attrs[0].Path != "deny" {
		t.Fatalf("module attrs = %+v", mod.Attrs)
	}
}

func TestAttributeForms(t *testing.T) {
	src := `#[allow]
#[deny = "x"]
#[warn(a = 1, b(c), "lit", clippy::pedantic)]
struct S;`
	f, _, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	attrs := f.Scope(f.Decl(1).Scope).Attrs
	if len(attrs) != 3 {
		t.Fatalf("attrs = %+v", attrs)
	}
	if attrs[0].Form != ast.FormWord || attrs[1].Form != ast.FormNameValue || attrs[2].Form != ast.FormList {
		t.Fatalf("forms = %v %v %v", attrs[0].Form, attrs[1].Form, attrs[2].Form)
	}
	items := attrs[2].Items
	want := []ast.AttrForm{ast.FormNameValue, ast.FormList, ast.FormLiteral, ast.FormWord}
	if len(items) != len(want) {
		t.Fatalf("items = %+v", items)
	}
	for i := range want {
		if items[i].Form != want[i] {
			t.Errorf("item %d form = %v, want %v", i, items[i].Form, want[i])
		}
	}
	if items[3].Path != "clippy::pedantic" {
		t.Errorf("path = %q", items[3].Path)
	}
}

func TestRecoversFromGarbage(t *testing.T) {
	src := "struct A;\nlet x = 1;\nstruct B;\nstruct;\nenum C { 1, D }\nstruct E"
	f, _, bag := parseSource(t, src)
	if bag.Len() == 0 {
		t.Fatalf("expected diagnostics")
	}
	got := strings.Join(declSummary(f), " ")
	for _, want := range []string{"struct:A@A", "struct:B@B", "enum:C@C", "variant:D@D", "struct:E@E"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %s", want, got)
		}
	}
}

func TestUnclosedDelimiter(t *testing.T) {
	_, _, bag := parseSource(t, "mod m {\n struct A;\n fn f() { (\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynUnclosedDelimiter {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unclosed delimiter, got %s", diagnosticsSummary(bag))
	}
}

func TestMaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("e.rs", []byte("1; struct A; 2; struct B; 3; struct C; 4;")))
	bag := diag.NewBag(0)
	ParseFile(sf, Options{MaxErrors: 2, Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %s", diagnosticsSummary(bag))
	}
}

func TestGoldenFixtureDecls(t *testing.T) {
	path := testkit.GoldenPath(t, "ui", "lint-non-camel-case-types.rs")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	f := expectDecls(t, string(content),
		"struct:ONE_TWO_THREE@ONE_TWO_THREE",
		"struct:foo@foo",
		"enum:foo2@foo2",
		"variant:Bar@Bar",
		"struct:foo3@foo3",
		"type-alias:foo4@foo4",
		"enum:Foo5@Foo5",
		"variant:bar@bar",
		"trait:foo6@foo6",
		"type-param:ty@f",
		"struct:foo7@foo7!",
		"struct:X86_64@X86_64",
		"struct:X86__64@X86__64",
		"struct:Abc_123@Abc_123",
		"struct:A1_b2_c3@A1_b2_c3",
	)
	if attrs := f.Scope(f.Root()).Attrs; len(attrs) != 2 {
		t.Fatalf("root attrs = %+v", attrs)
	}
}
