package lexer

import (
	"convlint/internal/diag"
	"convlint/internal/source"
)

type Options struct {
	Reporter diag.Reporter // nil: errors are dropped, lexing continues
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
