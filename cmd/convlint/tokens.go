package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"convlint/internal/diagfmt"
	"convlint/internal/driver"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens <file.rs>",
		Short: "Dump the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			res, err := driver.Tokenize(args[0], 0)
			if err != nil {
				return &exitError{code: 2, err: fmt.Errorf("tokens: %w", err)}
			}
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				err = diagfmt.FormatTokensJSON(out, res.Tokens, res.FileSet)
			case "pretty", "":
				err = diagfmt.FormatTokensPretty(out, res.Tokens, res.FileSet)
			default:
				return &exitError{code: 2, err: fmt.Errorf("unsupported format %q (must be pretty or json)", format)}
			}
			if err != nil {
				return err
			}
			if err := diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag.Items(), res.FileSet, diagfmt.PrettyOpts{}); err != nil {
				return err
			}
			if res.Bag.HasErrors() {
				return &exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}
