package tsparse

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"convlint/internal/ast"
	"convlint/internal/diag"
	"convlint/internal/parser"
	"convlint/internal/source"
	"convlint/internal/testkit"
)

type declView struct {
	Kind   string
	Name   string
	Scope  string
	Span   string
	Exempt bool
}

func view(f *ast.File) []declView {
	var out []declView
	for _, d := range f.Decls.Slice() {
		out = append(out, declView{
			Kind:   d.Kind.String(),
			Name:   d.Name,
			Scope:  f.Scope(d.Scope).Name,
			Span:   fmt.Sprintf("%d..%d", d.Span.Start, d.Span.End),
			Exempt: d.Exempt,
		})
	}
	return out
}

func parseBoth(t *testing.T, src string) (native, ts *ast.File, tsBag *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("test.rs", []byte(src)))
	native = parser.ParseFile(sf, parser.Options{Reporter: diag.BagReporter{Bag: diag.NewBag(0)}})
	tsBag = diag.NewBag(0)
	ts, err := ParseFile(context.Background(), sf, Options{Reporter: diag.BagReporter{Bag: tsBag}})
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if err := testkit.CheckSpanInvariants(ts, sf); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return native, ts, tsBag
}

func TestGoldenFixtureParity(t *testing.T) {
	content, err := os.ReadFile(testkit.GoldenPath(t, "ui", "lint-non-camel-case-types.rs"))
	if err != nil {
		t.Fatal(err)
	}
	native, ts, bag := parseBoth(t, string(content))
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
	if diff := cmp.Diff(view(native), view(ts)); diff != "" {
		t.Errorf("declarations differ (-native +tree-sitter):\n%s", diff)
	}
	rootAttrs := ts.Scope(ts.Root()).Attrs
	if len(rootAttrs) != 2 || rootAttrs[0].Path != "forbid" || !rootAttrs[0].Inner {
		t.Fatalf("root attrs = %+v", rootAttrs)
	}
	if diff := cmp.Diff(native.Scope(native.Root()).Attrs, rootAttrs); diff != "" {
		t.Errorf("root attributes differ (-native +tree-sitter):\n%s", diff)
	}
}

func TestItemKindsParity(t *testing.T) {
	src := `mod inner {
    #![allow(non_camel_case_types)]
    pub struct in_mod<T: Clone, U = u8>(T, U);
}
union my_union { a: u32 }
trait tr { type assoc_ty; fn m<q>(&self); }
impl tr for () { type assoc_ty = u8; fn m<q>(&self) {} }
extern "C" { type Opaque; }
enum E { #[allow(non_camel_case_types)] a_b, C = 3 }
struct r#raw_name;
`
	native, ts, _ := parseBoth(t, src)
	if diff := cmp.Diff(view(native), view(ts)); diff != "" {
		t.Errorf("declarations differ (-native +tree-sitter):\n%s", diff)
	}
}

func TestMetaItems(t *testing.T) {
	src := "#![allow(clippy::all, non_camel_case_types = \"x\", nested(a), \"lit\")]\n"
	_, ts, _ := parseBoth(t, src)
	attrs := ts.Scope(ts.Root()).Attrs
	if len(attrs) != 1 {
		t.Fatalf("attrs = %+v", attrs)
	}
	var got []string
	for _, it := range attrs[0].Items {
		got = append(got, fmt.Sprintf("%d:%s", it.Form, it.Path))
	}
	want := []string{
		fmt.Sprintf("%d:clippy::all", ast.FormWord),
		fmt.Sprintf("%d:non_camel_case_types", ast.FormNameValue),
		fmt.Sprintf("%d:nested", ast.FormList),
		fmt.Sprintf("%d:\"lit\"", ast.FormLiteral),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("meta items (-want +got):\n%s", diff)
	}
}

func TestSyntaxErrorReported(t *testing.T) {
	_, ts, bag := parseBoth(t, "struct foo_bar;\nstruct {\n")
	if bag.Len() == 0 {
		t.Fatal("expected a syntax diagnostic")
	}
	if ts.Decls.Len() == 0 || ts.Decl(1).Name != "foo_bar" {
		t.Fatalf("decls before the error must survive: %+v", ts.Decls.Slice())
	}
}
