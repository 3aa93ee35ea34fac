package diagfmt

import (
	"fmt"
	"io"

	"convlint/internal/diag"
	"convlint/internal/source"
)

// Short prints one line per diagnostic:
// <path>:<line>:<col>: <severity>: <message> [<lint-or-code>]
func Short(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, mode PathMode) error {
	for _, d := range diags {
		tag := d.Lint
		if tag == "" {
			tag = d.Code.ID()
		}
		suffix := ""
		if tag != "" {
			suffix = " [" + tag + "]"
		}
		var err error
		if resolvable(fs, d.Primary) {
			start, _ := fs.Resolve(d.Primary)
			path := displayPath(fs, fs.Get(d.Primary.File), mode)
			_, err = fmt.Fprintf(w, "%s:%d:%d: %s: %s%s\n", path, start.Line, start.Col, d.Severity.Label(), d.Message, suffix)
		} else {
			_, err = fmt.Fprintf(w, "%s: %s%s\n", d.Severity.Label(), d.Message, suffix)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
