package diag

import "convlint/internal/source"

// FixKind classifies a suggested change.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactor
)

func (k FixKind) String() string {
	if k == FixKindRefactor {
		return "refactor"
	}
	return "quickfix"
}

// FixApplicability tells the fix engine how much it can trust the edit.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// TextEdit replaces Span with NewText. A non-empty OldText guards the edit:
// the engine refuses to apply it when the source no longer matches.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []TextEdit
}
