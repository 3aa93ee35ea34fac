package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"convlint/internal/prof"
)

// setupProfiling starts the profilers named by the persistent flags. The
// returned stop func reports write failures on stderr.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	pf := cmd.Root().PersistentFlags()
	var cfg prof.Config
	cfg.CPU, _ = pf.GetString("cpu-profile")
	cfg.Mem, _ = pf.GetString("mem-profile")
	cfg.RuntimeTrace, _ = pf.GetString("runtime-trace")
	if !cfg.Enabled() {
		return func() {}, nil
	}
	session, err := prof.Start(cfg)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
		}
	}, nil
}
