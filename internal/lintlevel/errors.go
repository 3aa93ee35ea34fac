package lintlevel

import (
	"errors"
	"fmt"

	"convlint/internal/ast"
	"convlint/internal/source"
)

var (
	// ErrLevelResolution is wrapped by every *ResolutionError.
	ErrLevelResolution = errors.New("lint level resolution failed")
	ErrUnknownLint     = errors.New("unknown lint")
)

// ResolutionError is returned for declarations under a scope whose lint
// attributes could not be read. The attribute itself has already been
// reported as E0452.
type ResolutionError struct {
	File  source.FileID
	Scope ast.ScopeID
	Attr  source.Span
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("malformed lint attribute in scope %d of file %d", e.Scope, e.File)
}

func (e *ResolutionError) Unwrap() error { return ErrLevelResolution }
