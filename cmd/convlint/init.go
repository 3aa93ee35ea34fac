package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"convlint/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default " + config.FileName,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				return &exitError{code: 2, err: fmt.Errorf("init: %s is not a directory", dir)}
			}
			path, err := config.WriteTemplate(dir)
			if err != nil {
				return &exitError{code: 2, err: fmt.Errorf("init: %w", err)}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}
