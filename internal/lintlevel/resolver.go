package lintlevel

import (
	"fmt"
	"maps"

	"convlint/internal/ast"
	"convlint/internal/diag"
	"convlint/internal/source"
)

// Setting is a level requested outside the sources.
type Setting struct {
	Lint  string
	Level Level
	Kind  SourceKind // SourceCommandLine or SourceConfig
	Flag  string     // e.g. "-D non-camel-case-types" or "convlint.toml"
}

type entry struct {
	level Level
	src   Source
}

type levelMap map[string]entry

// fileLevels holds the effective directive levels of every scope of one file.
// A scope without directives shares its parent's map.
type fileLevels struct {
	file   *ast.File
	eff    []levelMap // indexed by ScopeID
	failed map[ast.ScopeID]*ResolutionError
}

// Resolver answers "which level applies to lint L at scope S". It is built
// once per run and fed every parsed file before the lint pass asks.
type Resolver struct {
	base  levelMap
	files map[source.FileID]*fileLevels
	diags []diag.Diagnostic
}

// NewResolver applies settings in order; config settings should come
// before command line ones so that flags win. A forbid setting cannot be
// lowered by a later one.
func NewResolver(settings ...Setting) (*Resolver, error) {
	r := &Resolver{
		base:  levelMap{},
		files: make(map[source.FileID]*fileLevels),
	}
	for _, s := range settings {
		name := Canonical(s.Lint)
		if !Known(name) {
			return nil, fmt.Errorf("%w: `%s` (requested by %s)", ErrUnknownLint, name, s.Flag)
		}
		src := Source{Kind: s.Kind, Flag: s.Flag}
		if IsGroup(name) {
			src.Group = name
		}
		for _, lint := range Expand(name) {
			if cur, ok := r.base[lint]; ok && cur.level == Forbid && s.Level != Forbid {
				continue
			}
			r.base[lint] = entry{level: s.Level, src: src}
		}
	}
	return r, nil
}

// AddFile walks the scope tree of f, records the directives of every scope
// and returns the attribute diagnostics found on the way (E0452, E0453,
// unknown lints) in source order.
func (r *Resolver) AddFile(f *ast.File) []diag.Diagnostic {
	fl := &fileLevels{
		file:   f,
		eff:    make([]levelMap, f.Scopes.Len()+1),
		failed: make(map[ast.ScopeID]*ResolutionError),
	}
	r.files[f.Source] = fl

	var out []diag.Diagnostic
	for i, s := range f.Scopes.Slice() {
		id := ast.ScopeID(i + 1)
		inherited := levelMap{}
		if s.Parent.IsValid() {
			inherited = fl.eff[s.Parent]
		}
		fl.eff[id] = inherited
		if len(s.Attrs) == 0 {
			continue
		}
		own := inherited
		copied := false
		for ai := range s.Attrs {
			attr := &s.Attrs[ai]
			level, ok := ParseLevel(attr.Path)
			if !ok || attr.Path != level.String() {
				continue
			}
			if bad, ok := malformed(attr); ok {
				if _, seen := fl.failed[id]; !seen {
					fl.failed[id] = &ResolutionError{File: f.Source, Scope: id, Attr: attr.Span}
				}
				out = append(out, diag.NewError(diag.LvlMalformedAttr, bad, "malformed lint attribute input"))
				continue
			}
			for _, item := range attr.Items {
				if !Known(item.Path) {
					if d, ok := r.unknownLint(own, item); ok {
						out = append(out, d)
					}
					continue
				}
				if !copied {
					own = maps.Clone(inherited)
					copied = true
				}
				if d, ok := r.apply(own, level, item, id); ok {
					out = append(out, d)
				}
			}
		}
		fl.eff[id] = own
	}
	r.diags = append(r.diags, out...)
	return out
}

// apply records one directive item. A lower level under forbid is an error
// and leaves the forbid in place.
func (r *Resolver) apply(m levelMap, level Level, item ast.MetaItem, scope ast.ScopeID) (diag.Diagnostic, bool) {
	src := Source{Kind: SourceDirective, Span: item.Span, Scope: scope}
	if IsGroup(item.Path) {
		src.Group = item.Path
	}
	var conflict *entry
	for _, lint := range Expand(item.Path) {
		if cur, ok := r.lookup(m, lint); ok && cur.level == Forbid && level != Forbid {
			if conflict == nil {
				c := cur
				conflict = &c
			}
			continue
		}
		m[lint] = entry{level: level, src: src}
	}
	if conflict == nil {
		return diag.Diagnostic{}, false
	}
	d := diag.NewError(diag.LvlForbidOverride, item.Span,
		fmt.Sprintf("%s(%s) incompatible with previous forbid", level, item.Path))
	if conflict.src.Kind == SourceDirective {
		d = d.WithNote(conflict.src.Span, "`forbid` level set here")
	} else {
		d = d.WithFooter("`forbid` lint level was set " + conflict.src.describe())
	}
	return d, true
}

func (r *Resolver) unknownLint(m levelMap, item ast.MetaItem) (diag.Diagnostic, bool) {
	level := Warn
	if e, ok := r.lookup(m, UnknownLints); ok {
		level = e.level
	}
	if level == Allow {
		return diag.Diagnostic{}, false
	}
	d := diag.New(level.Severity(), diag.LvlUnknownLint, item.Span, "unknown lint: `"+item.Path+"`")
	d.Lint = UnknownLints
	if _, explicit := r.lookup(m, UnknownLints); !explicit {
		d = d.WithFooter("#[warn(unknown_lints)] on by default")
	}
	return d, true
}

// Resolve returns the level of lint for declarations in scope of file.
func (r *Resolver) Resolve(lint string, file source.FileID, scope ast.ScopeID) (Level, Source, error) {
	var m levelMap
	if fl := r.files[file]; fl != nil {
		for _, id := range fl.file.Chain(scope) {
			if err := fl.failed[id]; err != nil {
				return Allow, Source{}, err
			}
		}
		if int(scope) < len(fl.eff) {
			m = fl.eff[scope]
		}
	}

	e, ok := r.lookup(m, lint)
	if !ok {
		e = entry{level: Warn, src: Source{Kind: SourceDefault}}
	}
	if e.level == Warn && lint != Warnings {
		if w, ok := r.lookup(m, Warnings); ok && w.level != Warn {
			e = w
			e.src.Group = Warnings
		}
	}
	return e.level, e.src, nil
}

// Diagnostics returns every attribute diagnostic produced so far.
func (r *Resolver) Diagnostics() []diag.Diagnostic {
	return append([]diag.Diagnostic(nil), r.diags...)
}

func (r *Resolver) lookup(m levelMap, lint string) (entry, bool) {
	if e, ok := m[lint]; ok {
		return e, true
	}
	e, ok := r.base[lint]
	return e, ok
}

// malformed reports the span to blame when a lint attribute is not a list
// of lint paths.
func malformed(attr *ast.Attr) (source.Span, bool) {
	if attr.Form != ast.FormList {
		return attr.Span, true
	}
	for _, it := range attr.Items {
		if it.Form != ast.FormWord {
			return it.Span, true
		}
	}
	return source.Span{}, false
}

func (s Source) describe() string {
	switch s.Kind {
	case SourceCommandLine:
		return "on the command line"
	case SourceConfig:
		return "in " + s.Flag
	}
	return s.Kind.String()
}
