package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"convlint/internal/casing"
	"convlint/internal/config"
	"convlint/internal/diagfmt"
	"convlint/internal/driver"
	"convlint/internal/observ"
	"convlint/internal/version"
)

// runSetup is everything lint and fix need, decoded from config and flags.
type runSetup struct {
	cfg    config.Config
	opts   driver.Options
	render driver.RenderOptions
	ui     uiMode
	timer  *observ.Timer
}

// loadConfig honors --config and --no-config, otherwise searches upwards
// from the working directory.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	root := cmd.Root().PersistentFlags()
	if noConfig, _ := root.GetBool("no-config"); noConfig {
		return config.Default(), nil
	}
	if path, _ := root.GetString("config"); path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}

func buildRunSetup(cmd *cobra.Command, args []string) (*runSetup, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	cliSettings, denyWarnings := levelSettings(cmd)
	deny, _ := f.GetBool("deny-warnings")
	ov := config.Overrides{DenyWarnings: deny || denyWarnings}
	ov.Acronyms, _ = f.GetString("acronyms")
	ov.Frontend, _ = f.GetString("frontend")
	ov.Format, _ = f.GetString("format")
	ov.Color, _ = cmd.Root().PersistentFlags().GetString("color")
	ov.Include, _ = f.GetStringArray("include")
	ov.Exclude, _ = f.GetStringArray("exclude")
	ov.NoGitignore, _ = f.GetBool("no-gitignore")
	cfg, err = cfg.Merge(ov)
	if err != nil {
		return nil, err
	}

	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	settings = append(settings, cliSettings...)

	frontend, _ := driver.ParseFrontend(cfg.Lint.Frontend)
	format, _ := diagfmt.ParseFormat(cfg.Output.Format)
	pathModeStr, _ := f.GetString("path-mode")
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return nil, fmt.Errorf("invalid --path-mode %q", pathModeStr)
	}
	uiStr, _ := f.GetString("ui")
	ui, err := readUIMode(uiStr)
	if err != nil {
		return nil, err
	}
	jobs, _ := f.GetInt("jobs")
	maxErrors, _ := f.GetUint("max-errors")

	acronyms, _ := casing.ParseAcronymPolicy(cfg.Lint.Acronyms)
	policy := casing.Policy{Acronyms: acronyms}

	var cache *driver.DiskCache
	if useCache, _ := f.GetBool("disk-cache"); useCache {
		cache, err = driver.OpenDiskCache("convlint")
		if err != nil {
			return nil, fmt.Errorf("open disk cache: %w", err)
		}
	}

	var timer *observ.Timer
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		timer = observ.NewTimer()
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	baseDir := ""
	if cfg.Path != "" {
		baseDir = filepath.Dir(cfg.Path)
	}

	return &runSetup{
		cfg: cfg,
		opts: driver.Options{
			Paths: paths,
			Filter: driver.FileFilter{
				Include:   cfg.Files.Include,
				Exclude:   cfg.Files.Exclude,
				Gitignore: cfg.Files.Gitignore,
			},
			Frontend:     frontend,
			Policy:       policy,
			DenyWarnings: cfg.Lint.DenyWarnings,
			Settings:     settings,
			Jobs:         jobs,
			MaxErrors:    maxErrors,
			Cache:        cache,
			Timer:        timer,
			BaseDir:      baseDir,
		},
		render: driver.RenderOptions{
			Format: format,
			Pretty: diagfmt.PrettyOpts{
				Color:    colorEnabled(cfg.Output.Color, cmd.ErrOrStderr()),
				PathMode: pathMode,
			},
			JSON: diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         pathMode,
				IncludeNotes:     true,
				IncludeFixes:     true,
			},
			Sarif: diagfmt.SarifRunMeta{
				ToolName:       "convlint",
				ToolVersion:    version.Version,
				InvocationArgs: os.Args,
			},
		},
		ui:    ui,
		timer: timer,
	}, nil
}

// run executes the lint pass, behind the progress view when enabled.
func (s *runSetup) run(ctx context.Context, progressOut io.Writer) (*driver.Result, error) {
	if !shouldUseTUI(s.ui, progressOut) {
		return driver.Run(ctx, s.opts)
	}
	var res *driver.Result
	err := runWithUI(ctx, "convlint", progressOut, func(progress driver.ProgressFunc) error {
		opts := s.opts
		opts.Progress = progress
		var err error
		res, err = driver.Run(ctx, opts)
		return err
	})
	return res, err
}

// output is where diagnostics go: rustc writes text to stderr, machine
// formats go to stdout.
func (s *runSetup) output(cmd *cobra.Command) io.Writer {
	switch s.render.Format {
	case diagfmt.FormatJSON, diagfmt.FormatSARIF:
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}

func (s *runSetup) printTimings(w io.Writer) {
	if s.timer == nil {
		return
	}
	if err := s.timer.WriteSummary(w); err != nil {
		fmt.Fprintf(w, "timings: %v\n", err)
	}
}

func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(w) && os.Getenv("NO_COLOR") == ""
}
