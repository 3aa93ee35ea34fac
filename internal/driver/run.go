package driver

import (
	"context"
	"fmt"
	"strconv"

	"convlint/internal/casing"
	"convlint/internal/diag"
	"convlint/internal/lint"
	"convlint/internal/lintlevel"
	"convlint/internal/observ"
	"convlint/internal/source"
	"convlint/internal/trace"
)

// Options configures one lint run.
type Options struct {
	Paths        []string
	Filter       FileFilter
	Frontend     Frontend
	Policy       casing.Policy
	DenyWarnings bool
	// Settings are config levels followed by command-line levels.
	Settings  []lintlevel.Setting
	Jobs      int
	MaxErrors uint
	Cache     *DiskCache
	Timer     *observ.Timer
	Progress  ProgressFunc
	// BaseDir anchors relative display paths; empty means the working directory.
	BaseDir string
}

// Stats counts work done by a run.
type Stats struct {
	Files      int
	Cached     int
	Checked    int
	Unresolved int
}

// Result is everything needed to render a run.
type Result struct {
	FileSet     *source.FileSet
	Units       []Unit
	Diagnostics []diag.Diagnostic
	Summary     lint.Summary
	Stats       Stats
}

// Run lints opts.Paths. Per-file failures become diagnostics; the returned
// error is fatal (bad settings or lint.ErrMalformedSpan).
func Run(ctx context.Context, opts Options) (*Result, error) {
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "lint")
	defer span.End("")

	levels, err := lintlevel.NewResolver(opts.Settings...)
	if err != nil {
		return nil, err
	}

	stop := opts.Timer.Start(string(PhaseDiscover))
	paths, err := Discover(opts.Paths, opts.Filter)
	stop(fmt.Sprintf("%d files", len(paths)))
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	opts.Progress.emit(ProgressEvent{Phase: PhaseParse, Total: len(paths)})

	fs := source.NewFileSetWithBase(opts.BaseDir)
	stop = opts.Timer.Start(string(PhaseParse))
	units := loadAll(fs, paths)
	err = parseAll(ctx, fs, units, parseOpts{
		frontend:  opts.Frontend,
		jobs:      opts.Jobs,
		maxErrors: opts.MaxErrors,
		cache:     opts.Cache,
		progress:  opts.Progress,
	})
	stop(string(opts.Frontend))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	res := &Result{FileSet: fs, Units: units, Stats: Stats{Files: len(units)}}
	actx := lint.NewContext(fs, lint.Options{Policy: opts.Policy, DenyWarnings: opts.DenyWarnings})
	em := lint.NewEmitter(actx)

	opts.Progress.emit(ProgressEvent{Phase: PhaseLint, Total: len(units)})
	stop = opts.Timer.Start(string(PhaseLint))
	pass, pctx := trace.Start(ctx, trace.ScopePass, lintlevel.NonCamelCaseTypes)
	for i := range units {
		u := &units[i]
		if u.Cached {
			res.Stats.Cached++
		}
		for _, d := range u.Diags {
			res.Diagnostics = append(res.Diagnostics, em.Forward(d))
		}
		if u.AST == nil {
			opts.Progress.emit(ProgressEvent{Phase: PhaseLint, Path: u.Path})
			continue
		}
		for _, d := range levels.AddFile(u.AST) {
			res.Diagnostics = append(res.Diagnostics, em.Forward(d))
		}
		fileRes, err := actx.CheckFile(u.AST, levels)
		if err != nil {
			pass.End("aborted")
			stop("aborted")
			return nil, fmt.Errorf("%s: %w", u.Path, err)
		}
		res.Diagnostics = append(res.Diagnostics, fileRes.Diagnostics...)
		res.Stats.Checked += fileRes.Checked
		res.Stats.Unresolved += fileRes.Unresolved
		trace.Point(pctx, trace.ScopeFile, u.Path, strconv.Itoa(len(fileRes.Diagnostics))+" findings")
		opts.Progress.emit(ProgressEvent{Phase: PhaseLint, Path: u.Path})
	}
	pass.With("checked", strconv.Itoa(res.Stats.Checked)).End("")
	stop(fmt.Sprintf("%d diagnostics", len(res.Diagnostics)))

	res.Summary = actx.Finalize()
	opts.Progress.emit(ProgressEvent{Phase: PhaseDone})
	return res, nil
}
