package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"convlint/internal/driver"
)

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check type names and report non-camel-case ones",
		Long: `Lint Rust sources. Directories are walked recursively using the include
and exclude globs of convlint.toml; files named explicitly are always checked.
The exit status is 1 when an error was reported and 2 when the run itself failed.`,
		Args: cobra.ArbitraryArgs,
		RunE: runLint,
	}
	addLintFlags(cmd)
	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
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

	done := setup.timer.Start("render")
	err = driver.Render(setup.output(cmd), res, setup.render)
	done(fmt.Sprintf("%d diagnostics", len(res.Diagnostics)))
	if err != nil {
		finishTrace(true)
		return &exitError{code: 2, err: fmt.Errorf("render: %w", err)}
	}
	setup.printTimings(cmd.ErrOrStderr())
	finishTrace(false)

	if res.Summary.ExitCode != 0 {
		return &exitError{code: res.Summary.ExitCode}
	}
	return nil
}
