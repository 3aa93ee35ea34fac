package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"convlint/internal/ast"
	"convlint/internal/diag"
	"convlint/internal/parser"
	"convlint/internal/source"
	"convlint/internal/trace"
	"convlint/internal/tsparse"
)

// Frontend names the parser that builds declaration files.
type Frontend string

const (
	FrontendNative     Frontend = "native"
	FrontendTreeSitter Frontend = "tree-sitter"
)

func ParseFrontend(s string) (Frontend, bool) {
	switch Frontend(s) {
	case "", FrontendNative:
		return FrontendNative, true
	case FrontendTreeSitter:
		return FrontendTreeSitter, true
	}
	return FrontendNative, false
}

// Unit is one input file after loading and parsing.
type Unit struct {
	Path   string
	FileID source.FileID
	AST    *ast.File // nil when the file could not be read
	Diags  []diag.Diagnostic
	Cached bool
}

// ParseOne parses a loaded file with the given front end.
func ParseOne(ctx context.Context, src *source.File, frontend Frontend, maxErrors uint) (*ast.File, []diag.Diagnostic, error) {
	bag := diag.NewBag(0)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	var f *ast.File
	switch frontend {
	case FrontendTreeSitter:
		var err error
		f, err = tsparse.ParseFile(ctx, src, tsparse.Options{Reporter: rep})
		if err != nil {
			return nil, nil, err
		}
	default:
		f = parser.ParseFile(src, parser.Options{Reporter: rep, MaxErrors: maxErrors})
	}
	return f, bag.Items(), nil
}

type parseOpts struct {
	frontend  Frontend
	jobs      int
	maxErrors uint
	cache     *DiskCache
	progress  ProgressFunc
}

// loadAll reads every path into fs. FileSet is not safe for concurrent
// use, so this runs before the parallel parse.
func loadAll(fs *source.FileSet, paths []string) []Unit {
	units := make([]Unit, len(paths))
	for i, path := range paths {
		units[i] = Unit{Path: path, FileID: source.NoFileID}
		id, err := fs.Load(path)
		if err != nil {
			units[i].Diags = []diag.Diagnostic{
				diag.NewSpanless(diag.SevError, diag.IOReadFailed, fmt.Sprintf("couldn't read `%s`: %v", path, err)),
			}
			continue
		}
		units[i].FileID = id
	}
	return units
}

// parseAll parses the loaded units in parallel; results are stored by
// index so the order stays that of the input.
func parseAll(ctx context.Context, fs *source.FileSet, units []Unit, opts parseOpts) error {
	jobs := opts.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if len(units) == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(units)))

	for i := range units {
		u := &units[i]
		if u.FileID == source.NoFileID {
			continue
		}
		src := fs.Get(u.FileID)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			span, fctx := trace.Start(gctx, trace.ScopeFile, "parse")
			defer span.With("path", u.Path).End("")

			key := cacheKey(opts.frontend, src.Hash)
			var payload DiskPayload
			if ok, err := opts.cache.Get(key, &payload); err == nil && ok && payload.Frontend == string(opts.frontend) {
				payload.File.Path = src.Path
				payload.File.Rebase(u.FileID)
				u.AST, u.Cached = payload.File, true
				opts.progress.emit(ProgressEvent{Phase: PhaseParse, Path: u.Path})
				return nil
			}

			f, diags, err := ParseOne(fctx, src, opts.frontend, opts.maxErrors)
			if err != nil {
				return err
			}
			u.AST, u.Diags = f, diags
			if len(diags) == 0 && opts.cache != nil {
				if err := opts.cache.Put(key, &DiskPayload{Frontend: string(opts.frontend), File: f}); err != nil {
					trace.Point(fctx, trace.ScopeFile, "cache-put-failed", err.Error())
				}
			}
			opts.progress.emit(ProgressEvent{Phase: PhaseParse, Path: u.Path})
			return nil
		})
	}
	return g.Wait()
}
