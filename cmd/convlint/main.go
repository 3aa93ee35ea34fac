package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"convlint/internal/version"
)

// exitError carries a process exit status through cobra. A nil err means
// the status was already explained on the output.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "convlint [paths...]",
		Short: "Naming-convention linter for Rust sources",
		Long: `convlint checks that type-level names (structs, enums, variants, traits,
type aliases, associated types and type parameters) are written in upper
camel case and reports violations in rustc's diagnostic format.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
	}
	pf := root.PersistentFlags()
	pf.String("color", "", "colorize output (auto|on|off)")
	pf.String("config", "", "path to convlint.toml (default: searched upwards)")
	pf.Bool("no-config", false, "ignore convlint.toml")
	pf.Bool("timings", false, "print phase timings to stderr")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept for crash dumps at trace level error")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	lintCmd := newLintCmd()
	root.RunE = lintCmd.RunE
	addLintFlags(root)
	root.AddCommand(lintCmd, newFixCmd(), newTokensCmd(), newDeclsCmd(), newInitCmd(), newVerifyCmd(), newVersionCmd())
	return root
}

// execute runs the CLI and returns the process exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "error: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 2
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
