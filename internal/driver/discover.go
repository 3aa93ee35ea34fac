package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// FileFilter selects files inside directories given on the command line.
// Files named explicitly are always linted.
type FileFilter struct {
	Include   []string
	Exclude   []string
	Gitignore bool
}

func (f FileFilter) validate() error {
	for _, p := range append(slices.Clone(f.Include), f.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

// Discover expands paths into a sorted, duplicate-free file list. A path
// that cannot be stat'ed is kept so that reading it reports the error.
func Discover(paths []string, filter FileFilter) ([]string, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			add(p)
			continue
		}
		files, err := walkDir(p, filter)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	slices.Sort(out)
	return out, nil
}

func walkDir(root string, filter FileFilter) ([]string, error) {
	var gi *ignore.GitIgnore
	if filter.Gitignore {
		compiled, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
		switch {
		case err == nil:
			gi = compiled
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read .gitignore: %w", err)
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" || matchAny(filter.Exclude, rel) || matchAny(filter.Exclude, rel+"/") ||
				(gi != nil && gi.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !matchAny(filter.Include, rel) || matchAny(filter.Exclude, rel) {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
