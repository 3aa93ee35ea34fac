// Package tsparse builds the declaration view of a file from the
// tree-sitter Rust grammar. It produces the same ast.File as the native
// parser so the lint pass does not care which front end ran.
package tsparse

import (
	"context"
	"fmt"
	"strings"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
	"golang.org/x/text/unicode/norm"

	"convlint/internal/ast"
	"convlint/internal/diag"
	"convlint/internal/source"
)

type Options struct {
	Reporter diag.Reporter
}

type builder struct {
	src  *source.File
	text []byte
	out  *ast.File
}

// ParseFile parses src with tree-sitter. Syntax errors are reported once,
// at the first ERROR or MISSING node; the declarations that could still be
// recognized are returned.
func ParseFile(ctx context.Context, src *source.File, opts Options) (*ast.File, error) {
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(rust.GetLanguage())
	tree, err := p.ParseCtx(ctx, nil, src.Content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse %s: %w", src.Path, err)
	}
	defer tree.Close()

	b := &builder{
		src:  src,
		text: src.Content,
		out:  ast.NewFile(src.Path, src.ID, source.Span{File: src.ID, Start: 0, End: src.Len()}),
	}
	root := tree.RootNode()
	b.items(root, b.out.Root(), ctxModule)
	if root.HasError() && opts.Reporter != nil {
		if bad := firstError(root); bad != nil {
			msg := "syntax error"
			if bad.IsMissing() {
				msg = "expected " + bad.Type()
			}
			diag.ReportError(opts.Reporter, diag.SynUnexpectedToken, b.span(bad), msg).Emit()
		}
	}
	return b.out, nil
}

type itemCtx uint8

const (
	ctxModule itemCtx = iota
	ctxTrait
	ctxImpl
	ctxExtern
)

func (b *builder) span(n *sitter.Node) source.Span {
	return source.Span{File: b.src.ID, Start: n.StartByte(), End: n.EndByte()}
}

func (b *builder) content(n *sitter.Node) string {
	return n.Content(b.text)
}

func count(n uint32) int {
	v, err := safecast.Conv[int](n)
	if err != nil {
		panic(fmt.Errorf("child count overflow: %w", err))
	}
	return v
}

func children(n *sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, n.ChildCount())
	for i := range count(n.ChildCount()) {
		out = append(out, n.Child(i))
	}
	return out
}

// items walks a list of items (source_file or declaration_list). Outer
// attributes are siblings that precede the item they belong to.
func (b *builder) items(list *sitter.Node, scope ast.ScopeID, ctx itemCtx) {
	var pending []ast.Attr
	for _, c := range children(list) {
		switch c.Type() {
		case "inner_attribute_item":
			if a, ok := b.attr(c, true); ok {
				s := b.out.Scope(scope)
				s.Attrs = append(s.Attrs, a)
			}
			continue
		case "attribute_item":
			if a, ok := b.attr(c, false); ok {
				pending = append(pending, a)
			}
			continue
		case "line_comment", "block_comment", "{", "}":
			continue
		}
		b.item(c, scope, ctx, pending)
		pending = nil
	}
}

func (b *builder) item(n *sitter.Node, parent ast.ScopeID, ctx itemCtx, attrs []ast.Attr) {
	start := b.span(n)
	if len(attrs) > 0 {
		start = start.Cover(attrs[0].Span)
	}
	switch n.Type() {
	case "struct_item":
		b.named(n, parent, start, attrs, ast.DeclStruct)
	case "union_item":
		b.named(n, parent, start, attrs, ast.DeclUnion)
	case "enum_item":
		scope := b.named(n, parent, start, attrs, ast.DeclEnum)
		if body := n.ChildByFieldName("body"); body != nil && scope.IsValid() {
			b.variants(body, scope)
		}
	case "trait_item":
		scope := b.named(n, parent, start, attrs, ast.DeclTrait)
		if body := n.ChildByFieldName("body"); body != nil && scope.IsValid() {
			b.items(body, scope, ctxTrait)
		}
	case "type_item":
		kind := ast.DeclTypeAlias
		if ctx == ctxImpl || ctx == ctxExtern {
			kind = 0
		}
		b.named(n, parent, start, attrs, kind)
	case "associated_type":
		kind := ast.DeclAssocType
		if ctx != ctxTrait {
			kind = 0
		}
		b.named(n, parent, start, attrs, kind)
	case "function_item", "function_signature_item":
		b.named(n, parent, start, attrs, 0)
	case "impl_item":
		scope := b.out.NewScope(ast.ScopeItem, parent, "impl", start, attrs)
		b.generics(n, scope)
		if body := n.ChildByFieldName("body"); body != nil {
			b.items(body, scope, ctxImpl)
		}
	case "mod_item":
		name := n.ChildByFieldName("name")
		if name == nil {
			return
		}
		scope := b.out.NewScope(ast.ScopeModule, parent, b.identText(name), start, attrs)
		if body := n.ChildByFieldName("body"); body != nil {
			b.items(body, scope, ctxModule)
		}
	case "foreign_mod_item":
		scope := b.out.NewScope(ast.ScopeItem, parent, "extern", start, attrs)
		if body := n.ChildByFieldName("body"); body != nil {
			b.items(body, scope, ctxExtern)
		}
	}
}

// named opens the scope of an item with a name field and declares the
// name (unless kind is 0) and the item's type parameters.
func (b *builder) named(n *sitter.Node, parent ast.ScopeID, start source.Span, attrs []ast.Attr, kind ast.DeclKind) ast.ScopeID {
	name := n.ChildByFieldName("name")
	if name == nil || name.IsMissing() {
		return ast.NoScopeID
	}
	text := b.identText(name)
	scope := b.out.NewScope(ast.ScopeItem, parent, text, start, attrs)
	if kind != 0 {
		b.out.AddDecl(ast.Decl{
			Kind:   kind,
			Name:   text,
			Span:   b.nameSpan(name),
			Scope:  scope,
			Exempt: hasReprC(attrs),
		})
	}
	b.generics(n, scope)
	return scope
}

func (b *builder) variants(body *sitter.Node, scope ast.ScopeID) {
	var pending []ast.Attr
	for _, c := range children(body) {
		switch c.Type() {
		case "attribute_item":
			if a, ok := b.attr(c, false); ok {
				pending = append(pending, a)
			}
		case "enum_variant":
			name := c.ChildByFieldName("name")
			if name == nil {
				pending = nil
				continue
			}
			text := b.identText(name)
			vstart := b.span(c)
			if len(pending) > 0 {
				vstart = vstart.Cover(pending[0].Span)
			}
			vscope := b.out.NewScope(ast.ScopeVariant, scope, text, vstart, pending)
			b.out.AddDecl(ast.Decl{Kind: ast.DeclVariant, Name: text, Span: b.nameSpan(name), Scope: vscope})
			pending = nil
		}
	}
}

// generics declares the type parameters of n. Older grammar releases put
// type_identifier, constrained_type_parameter and optional_type_parameter
// directly under type_parameters; newer ones wrap them in type_parameter.
func (b *builder) generics(n *sitter.Node, scope ast.ScopeID) {
	params := n.ChildByFieldName("type_parameters")
	if params == nil {
		return
	}
	for _, c := range children(params) {
		if name := typeParamName(c); name != nil {
			text := b.identText(name)
			b.out.AddDecl(ast.Decl{Kind: ast.DeclTypeParam, Name: text, Span: b.nameSpan(name), Scope: scope})
		}
	}
}

func typeParamName(n *sitter.Node) *sitter.Node {
	switch n.Type() {
	case "type_identifier":
		return n
	case "constrained_type_parameter":
		return typeParamName(n.ChildByFieldName("left"))
	case "type_parameter", "optional_type_parameter":
		if name := n.ChildByFieldName("name"); name != nil {
			return typeParamName(name)
		}
	}
	return nil
}

// identText strips the raw prefix and normalizes like the native lexer.
func (b *builder) identText(n *sitter.Node) string {
	return norm.NFC.String(strings.TrimPrefix(b.content(n), "r#"))
}

func (b *builder) nameSpan(n *sitter.Node) source.Span {
	sp := b.span(n)
	if strings.HasPrefix(b.content(n), "r#") {
		sp.Start += 2
	}
	return sp
}

func hasReprC(attrs []ast.Attr) bool {
	for i := range attrs {
		if attrs[i].Path == "repr" && attrs[i].HasItem("C") {
			return true
		}
	}
	return false
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for _, c := range children(n) {
		if c.HasError() || c.IsMissing() {
			if bad := firstError(c); bad != nil {
				return bad
			}
		}
	}
	return nil
}
