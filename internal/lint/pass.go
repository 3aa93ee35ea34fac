package lint

import (
	"errors"

	"convlint/internal/ast"
	"convlint/internal/diag"
	"convlint/internal/lintlevel"
)

// FileResult is what the pass produced for one file.
type FileResult struct {
	Diagnostics []diag.Diagnostic
	Checked     int
	// Unresolved counts declarations skipped because their scope had a
	// malformed lint attribute.
	Unresolved int
}

// CheckFile runs the pass over one parsed file. Attribute diagnostics of
// the file must have been forwarded already. Only ErrMalformedSpan is
// returned as an error.
func (c *AnalysisContext) CheckFile(f *ast.File, levels *lintlevel.Resolver) (FileResult, error) {
	var res FileResult
	em := NewEmitter(c)
	for _, cand := range Classify(f) {
		if cand.Exempt {
			continue
		}
		res.Checked++
		finding := Check(cand, c.Opts.Policy)
		if finding.Conforms {
			continue
		}
		level, src, err := levels.Resolve(lintlevel.NonCamelCaseTypes, f.Source, cand.Scope)
		if err != nil {
			var rerr *lintlevel.ResolutionError
			if errors.As(err, &rerr) {
				res.Unresolved++
				continue
			}
			return res, err
		}
		d, ok, err := em.Emit(cand.Kind, cand.Ident, finding, level, src)
		if err != nil {
			return res, err
		}
		if ok {
			res.Diagnostics = append(res.Diagnostics, d)
		}
	}
	return res, nil
}
