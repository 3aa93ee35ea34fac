package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedChar         Code = 1004

	// syntax
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectIdent       Code = 2003
	SynExpectSemicolon   Code = 2004
	SynBadAttribute      Code = 2005

	// lints; rendered without a code, the lint name is shown instead
	LintNonCamelCaseTypes Code = 3001

	// lint level attributes; rendered with rustc error numbers
	LvlUnknownLint       Code = 4000
	LvlMalformedAttr     Code = 4452
	LvlForbidOverride    Code = 4453
	LvlUnknownLevelValue Code = 4454

	// io
	IOReadFailed Code = 5001
)

var codeTitles = map[Code]string{
	UnknownCode:                 "unknown",
	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexUnterminatedChar:         "unterminated character literal",
	SynUnexpectedToken:          "unexpected token",
	SynUnclosedDelimiter:        "unclosed delimiter",
	SynExpectIdent:              "expected identifier",
	SynExpectSemicolon:          "expected `;`",
	SynBadAttribute:             "malformed attribute",
	LintNonCamelCaseTypes:       "non_camel_case_types",
	LvlUnknownLint:              "unknown lint",
	LvlMalformedAttr:            "malformed lint attribute input",
	LvlForbidOverride:           "incompatible with previous forbid",
	LvlUnknownLevelValue:        "unknown lint level",
	IOReadFailed:                "failed to read source file",
}

// ID returns the stable identifier printed in brackets after the severity.
// Lint findings and unknown-lint warnings have no ID.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic > 4000 && ic < 5000:
		return fmt.Sprintf("E%04d", ic-4000)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return ""
}

func (c Code) Title() string {
	if t, ok := codeTitles[c]; ok {
		return t
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	if id := c.ID(); id != "" {
		return fmt.Sprintf("[%s]: %s", id, c.Title())
	}
	return c.Title()
}
