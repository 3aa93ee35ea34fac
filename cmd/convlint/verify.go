package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"convlint/internal/directive"
	"convlint/internal/source"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [paths...]",
		Short: "Check diagnostics against //~ annotations in the sources",
		Long: `Lint the given paths and compare the result with the rustc UI-test
annotations written in the files (//~ ERROR, //~^ WARN, //~| NOTE, //~v HELP).
Every annotation must be met on its line, and every error must be annotated.`,
		Args: cobra.ArbitraryArgs,
		RunE: runVerify,
	}
	addLintFlags(cmd)
	cmd.Flags().Bool("errors-only", false, "check ERROR annotations only")
	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return &exitError{code: 2, err: err}
	}
	defer stopProfiling()
	ctx, finishTrace, err := setupTracing(cmd)
	if err != nil {
		return &exitError{code: 2, err: err}
	}
	setup, err := buildRunSetup(cmd, args)
	if err != nil {
		finishTrace(true)
		return &exitError{code: 2, err: err}
	}
	res, err := setup.run(ctx, cmd.ErrOrStderr())
	if err != nil {
		finishTrace(true)
		return &exitError{code: 2, err: err}
	}
	finishTrace(false)

	registry := directive.NewRegistry()
	for _, u := range res.Units {
		if u.FileID == source.NoFileID {
			continue
		}
		if err := registry.CollectFromFile(res.FileSet.Get(u.FileID)); err != nil {
			return &exitError{code: 2, err: err}
		}
	}
	cfg := directive.RunnerConfig{Output: cmd.OutOrStdout()}
	if only, _ := cmd.Flags().GetBool("errors-only"); only {
		cfg.Filter = []directive.Kind{directive.KindError}
	}
	result := directive.NewRunner(registry, cfg).Run(res.FileSet, res.Diagnostics)
	setup.printTimings(cmd.ErrOrStderr())
	if result.Failed() {
		return &exitError{code: 1, err: fmt.Errorf("%d annotation mismatches", result.Missing+result.Unexpected)}
	}
	return nil
}
