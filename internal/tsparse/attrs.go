package tsparse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"convlint/internal/ast"
	"convlint/internal/source"
)

// attr converts `#[..]` / `#![..]`. The attribute body is a raw token tree
// in the grammar, so meta items are recovered by splitting it on commas.
func (b *builder) attr(n *sitter.Node, inner bool) (ast.Attr, bool) {
	var body *sitter.Node
	for _, c := range children(n) {
		if c.Type() == "attribute" {
			body = c
			break
		}
	}
	if body == nil || body.NamedChildCount() == 0 {
		return ast.Attr{}, false
	}
	path := body.NamedChild(0)
	a := ast.Attr{
		Path:     compactPath(b.content(path)),
		PathSpan: b.span(path),
		Inner:    inner,
		Form:     ast.FormWord,
		Span:     b.span(n),
	}
	if args := body.ChildByFieldName("arguments"); args != nil {
		a.Form = ast.FormList
		a.Items = b.metaList(args)
	} else if body.ChildByFieldName("value") != nil {
		a.Form = ast.FormNameValue
	}
	return a, true
}

// metaList reads the items of a token_tree, skipping its delimiters.
func (b *builder) metaList(tree *sitter.Node) []ast.MetaItem {
	all := children(tree)
	if len(all) >= 2 {
		all = all[1 : len(all)-1]
	}
	var items []ast.MetaItem
	var group []*sitter.Node
	flush := func() {
		if len(group) > 0 {
			items = append(items, b.metaItem(group))
		}
		group = nil
	}
	for _, c := range all {
		if c.Type() == "," {
			flush()
			continue
		}
		group = append(group, c)
	}
	flush()
	return items
}

func (b *builder) metaItem(group []*sitter.Node) ast.MetaItem {
	whole := b.span(group[0]).Cover(b.span(group[len(group)-1]))
	if len(group) == 1 && isLiteral(group[0].Type()) {
		return ast.MetaItem{Form: ast.FormLiteral, Path: b.content(group[0]), Span: whole}
	}

	var parts []string
	var sp source.Span
	i := 0
	for i < len(group) {
		c := group[i]
		if !isPathSegment(c.Type()) {
			break
		}
		text := strings.TrimPrefix(b.content(c), "r#")
		if len(parts) == 0 {
			sp = b.span(c)
		} else {
			sp = sp.Cover(b.span(c))
		}
		parts = append(parts, text)
		i++
		if i < len(group) && group[i].Type() == "::" {
			i++
			continue
		}
		break
	}
	if len(parts) == 0 {
		return ast.MetaItem{Form: ast.FormLiteral, Span: whole}
	}
	item := ast.MetaItem{Path: strings.Join(parts, "::"), Span: sp, Form: ast.FormWord}
	rest := group[i:]
	switch {
	case len(rest) == 0:
	case rest[0].Type() == "token_tree" && len(rest) == 1:
		item.Form = ast.FormList
		item.Items = b.metaList(rest[0])
	case rest[0].Type() == "=":
		item.Form = ast.FormNameValue
	default:
		// trailing tokens the meta grammar has no form for
		return ast.MetaItem{Form: ast.FormLiteral, Span: whole}
	}
	return item
}

func isPathSegment(kind string) bool {
	switch kind {
	case "identifier", "self", "super", "crate":
		return true
	}
	return false
}

func isLiteral(kind string) bool {
	switch kind {
	case "string_literal", "raw_string_literal", "char_literal",
		"integer_literal", "float_literal", "boolean_literal":
		return true
	}
	return false
}

func compactPath(s string) string {
	return strings.Join(strings.Fields(s), "")
}
