package lint

import "fmt"

// Summary is the end-of-run verdict.
type Summary struct {
	ErrorCount   int
	WarningCount int
	// Line is the closing message, empty when nothing failed.
	Line     string
	ExitCode int
}

// Finalize reads the counters. It does not reset them.
func (c *AnalysisContext) Finalize() Summary {
	s := Summary{ErrorCount: c.Counters.Errors, WarningCount: c.Counters.Warnings}
	switch {
	case s.ErrorCount == 1:
		s.Line = "error: aborting due to 1 previous error"
	case s.ErrorCount > 1:
		s.Line = fmt.Sprintf("error: aborting due to %d previous errors", s.ErrorCount)
	}
	if s.ErrorCount > 0 {
		s.ExitCode = 1
	}
	return s
}
