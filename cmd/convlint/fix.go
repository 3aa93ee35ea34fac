package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"convlint/internal/fix"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] [paths...]",
		Short: "Rename non-camel-case types to their suggested names",
		Long: `Lint the given paths and apply the rename suggestions. Only declaration
sites are rewritten unless --rename-uses is given, which also renames every
identifier in the same file spelled like the old name.`,
		Args: cobra.ArbitraryArgs,
		RunE: runFix,
	}
	addLintFlags(cmd)
	cmd.Flags().Bool("all", false, "apply every safe fix (default)")
	cmd.Flags().Bool("once", false, "apply the first available fix")
	cmd.Flags().String("id", "", "apply the fix with this identifier")
	cmd.Flags().Bool("rename-uses", false, "also rename matching identifiers in the same file")
	cmd.Flags().Bool("dry-run", false, "show the changes without writing them")
	return cmd
}

func fixOptions(cmd *cobra.Command) (fix.ApplyOptions, error) {
	f := cmd.Flags()
	applyAll, _ := f.GetBool("all")
	applyOnce, _ := f.GetBool("once")
	targetID, _ := f.GetString("id")
	renameUses, _ := f.GetBool("rename-uses")
	dryRun, _ := f.GetBool("dry-run")

	if targetID != "" && (applyAll || applyOnce) {
		return fix.ApplyOptions{}, fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fix.ApplyOptions{}, fmt.Errorf("--all and --once are mutually exclusive")
	}
	opts := fix.ApplyOptions{
		Mode:       fix.ApplyModeAll,
		TargetID:   targetID,
		RenameUses: renameUses,
		DryRun:     dryRun,
	}
	switch {
	case targetID != "":
		opts.Mode = fix.ApplyModeID
	case applyOnce:
		opts.Mode = fix.ApplyModeOnce
	}
	return opts, nil
}

func runFix(cmd *cobra.Command, args []string) error {
	opts, err := fixOptions(cmd)
	if err != nil {
		return &exitError{code: 2, err: err}
	}
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

	done := setup.timer.Start("fix")
	applied, applyErr := fix.Apply(res.FileSet, res.Diagnostics, opts)
	done("")
	setup.printTimings(cmd.ErrOrStderr())
	finishTrace(applyErr != nil && !errors.Is(applyErr, fix.ErrNoFixes))

	if err := printApplyResult(cmd.OutOrStdout(), applied, applyErr, opts.DryRun); err != nil {
		return &exitError{code: 2, err: err}
	}
	return nil
}

func printApplyResult(w io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}
	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(w, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(w, "  %s [%s] at %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability)
		}
	}
	if len(res.FileChanges) > 0 {
		if dryRun {
			fmt.Fprintln(w, "Changes:")
		} else {
			fmt.Fprintln(w, "Updated files:")
		}
		for _, change := range res.FileChanges {
			fmt.Fprintf(w, "  %s (%d edits)\n", change.Path, change.EditCount)
			if dryRun {
				writeLineDiff(w, change.Before, change.After)
			}
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(w, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(w, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}
	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			_, err := fmt.Fprintln(w, "No applicable fixes found.")
			return err
		}
		return applyErr
	}
	return nil
}

// writeLineDiff prints the lines that differ. Renames never add or remove
// newlines, so lines pair up one to one.
func writeLineDiff(w io.Writer, before, after []byte) {
	old := bytes.Split(before, []byte("\n"))
	cur := bytes.Split(after, []byte("\n"))
	for i := 0; i < len(old) && i < len(cur); i++ {
		if bytes.Equal(old[i], cur[i]) {
			continue
		}
		fmt.Fprintf(w, "    %d: - %s\n", i+1, old[i])
		fmt.Fprintf(w, "    %d: + %s\n", i+1, cur[i])
	}
}
