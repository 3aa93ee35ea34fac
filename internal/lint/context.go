package lint

import (
	"convlint/internal/ast"
	"convlint/internal/casing"
	"convlint/internal/lintlevel"
	"convlint/internal/source"
)

// Counters only grow during a run.
type Counters struct {
	Errors   int
	Warnings int
}

type Options struct {
	Policy casing.Policy
	// DenyWarnings turns every warn-level diagnostic into an error.
	DenyWarnings bool
}

// noteKey identifies where a level came from. Directive levels are keyed by
// the scope owning the directive; the other kinds are keyed once per run.
type noteKey struct {
	lint  string
	kind  lintlevel.SourceKind
	file  source.FileID
	scope ast.ScopeID
	flag  string
}

// AnalysisContext holds everything one run mutates.
type AnalysisContext struct {
	Files    *source.FileSet
	Opts     Options
	Counters Counters
	noted    map[noteKey]struct{}
}

func NewContext(files *source.FileSet, opts Options) *AnalysisContext {
	return &AnalysisContext{
		Files: files,
		Opts:  opts,
		noted: make(map[noteKey]struct{}),
	}
}

// firstTime records key and reports whether it was new.
func (c *AnalysisContext) firstTime(key noteKey) bool {
	if _, ok := c.noted[key]; ok {
		return false
	}
	c.noted[key] = struct{}{}
	return true
}
