package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"convlint/internal/lintlevel"
)

// levelEntry is one -A/-W/-D/-F occurrence; order across the four flags
// matters, so they share one list.
type levelEntry struct {
	level lintlevel.Level
	lint  string
}

type levelList struct {
	entries []levelEntry
}

type levelFlag struct {
	level lintlevel.Level
	list  *levelList
}

func (f *levelFlag) String() string { return "" }

func (f *levelFlag) Type() string { return "lint" }

func (f *levelFlag) Set(v string) error {
	for _, name := range strings.Split(v, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("empty lint name")
		}
		f.list.entries = append(f.list.entries, levelEntry{level: f.level, lint: name})
	}
	return nil
}

// addLintFlags registers the flags shared by lint and fix.
func addLintFlags(cmd *cobra.Command) {
	list := &levelList{}
	f := cmd.Flags()
	f.VarP(&levelFlag{level: lintlevel.Allow, list: list}, "allow", "A", "set lint allowed")
	f.VarP(&levelFlag{level: lintlevel.Warn, list: list}, "warn", "W", "set lint warnings")
	f.VarP(&levelFlag{level: lintlevel.Deny, list: list}, "deny", "D", "set lint denied")
	f.VarP(&levelFlag{level: lintlevel.Forbid, list: list}, "forbid", "F", "set lint forbidden")
	f.String("acronyms", "", "acronym policy for suggestions (preserve|fold)")
	f.String("frontend", "", "parser front end (native|tree-sitter)")
	f.String("format", "", "output format (pretty|short|json|sarif)")
	f.String("path-mode", "auto", "how paths are shown (auto|absolute|relative|basename)")
	f.Int("jobs", 0, "parallel parse jobs (0 = GOMAXPROCS)")
	f.Uint("max-errors", 0, "syntax errors reported per file (0 = unlimited)")
	f.Bool("disk-cache", false, "cache parsed files under $XDG_CACHE_HOME/convlint")
	f.String("ui", "off", "progress view (auto|on|off)")
	f.Bool("deny-warnings", false, "treat every warning as an error")
	f.StringArray("include", nil, "glob of files to lint inside directories (repeatable)")
	f.StringArray("exclude", nil, "glob of files to skip inside directories (repeatable)")
	f.Bool("no-gitignore", false, "do not honor .gitignore")
}

// levelSettings converts the level flags into resolver settings. Denying
// or forbidding `warnings` turns on deny-warnings instead.
func levelSettings(cmd *cobra.Command) (settings []lintlevel.Setting, denyWarnings bool) {
	flag := cmd.Flags().Lookup("allow")
	if flag == nil {
		return nil, false
	}
	list := flag.Value.(*levelFlag).list
	for _, e := range list.entries {
		name := lintlevel.Canonical(e.lint)
		if name == lintlevel.Warnings && (e.level == lintlevel.Deny || e.level == lintlevel.Forbid) {
			denyWarnings = true
			continue
		}
		settings = append(settings, lintlevel.Setting{
			Lint:  name,
			Level: e.level,
			Kind:  lintlevel.SourceCommandLine,
			Flag:  e.level.Flag() + " " + strings.ReplaceAll(name, "_", "-"),
		})
	}
	return settings, denyWarnings
}
