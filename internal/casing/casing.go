// Package casing converts identifiers to upper camel case.
//
// The conversion is pure and table tested. Words come from underscore
// separated segments and from case transitions inside a segment; each word
// gets an uppercase first character and words are joined without separators,
// except that a digit followed by a digit across a removed underscore keeps
// one underscore (X86__64 becomes X86_64, not X8664).
package casing

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AcronymPolicy decides what happens to uppercase runs such as "IO" or "ID".
type AcronymPolicy uint8

const (
	// AcronymsPreserve keeps runs as written: IOError stays IOError.
	AcronymsPreserve AcronymPolicy = iota
	// AcronymsFold lowercases everything after a word's first letter: IOError becomes IoError.
	AcronymsFold
)

func (p AcronymPolicy) String() string {
	if p == AcronymsFold {
		return "fold"
	}
	return "preserve"
}

// ParseAcronymPolicy accepts "preserve" and "fold".
func ParseAcronymPolicy(s string) (AcronymPolicy, bool) {
	switch strings.ToLower(s) {
	case "", "preserve":
		return AcronymsPreserve, true
	case "fold":
		return AcronymsFold, true
	}
	return AcronymsPreserve, false
}

// Policy configures how Convert treats names that mix acronyms and words.
type Policy struct {
	Acronyms AcronymPolicy
}

// Result of converting one identifier. When Conforms is false and
// HasRewrite is false, no unambiguous camel case spelling exists.
type Result struct {
	Conforms   bool
	Rewritten  string
	HasRewrite bool
}

// Convert checks ident against upper camel case and proposes a rewrite.
// A proposed rewrite always conforms under the same policy.
func Convert(ident string, p Policy) Result {
	core := strings.TrimLeft(ident, "_")
	lead := ident[:len(ident)-len(core)]
	trimmed := strings.TrimRight(core, "_")
	trail := core[len(trimmed):]
	core = trimmed

	if !strings.ContainsFunc(core, unicode.IsLetter) || conforms(core, p) {
		return Result{Conforms: true}
	}
	body, ok := rewrite(core, p)
	if !ok || !conforms(body, p) {
		return Result{}
	}
	return Result{Rewritten: lead + body + trail, HasRewrite: true}
}

// conforms reports whether an underscore-trimmed name is already camel case:
// it does not start lowercase, and every underscore sits between two digits.
// Under AcronymsFold no two uppercase letters may touch.
func conforms(core string, p Policy) bool {
	runes := []rune(core)
	if len(runes) == 0 {
		return true
	}
	if unicode.IsLower(runes[0]) {
		return false
	}
	for i, r := range runes {
		if r == '_' {
			if i == 0 || i == len(runes)-1 || !unicode.IsDigit(runes[i-1]) || !unicode.IsDigit(runes[i+1]) {
				return false
			}
		}
		if p.Acronyms == AcronymsFold && i > 0 && isUpper(r) && isUpper(runes[i-1]) {
			return false
		}
	}
	return true
}

func rewrite(core string, p Policy) (string, bool) {
	var segments []string
	for _, s := range strings.Split(core, "_") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	shouted := len(segments) > 1

	var b strings.Builder
	prev := ""
	for _, seg := range segments {
		var next string
		if shouted && !strings.ContainsFunc(seg, unicode.IsLower) {
			next = titleWord(seg)
		} else {
			next = convertSegment(seg, p)
		}
		if prev != "" {
			last, _ := utf8.DecodeLastRuneInString(prev)
			first, _ := utf8.DecodeRuneInString(next)
			switch {
			case unicode.IsDigit(last) && unicode.IsDigit(first):
				b.WriteByte('_')
			case uncasedLetter(last) && uncasedLetter(first):
				return "", false
			}
		}
		b.WriteString(next)
		prev = next
	}

	body := b.String()
	if p.Acronyms == AcronymsFold {
		body = foldRuns(body)
	}
	return body, true
}

// IsCamel reports whether ident already conforms.
func IsCamel(ident string, p Policy) bool {
	return Convert(ident, p).Conforms
}

// words splits one underscore-free segment on case transitions:
// lower→upper starts a word, and in an uppercase run followed by a lowercase
// letter the last uppercase letter starts the next word.
func words(seg string) []string {
	runes := []rune(seg)
	var out []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := unicode.IsLower(prev) && isUpper(cur)
		if !boundary && isUpper(prev) && isUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			boundary = true
		}
		if boundary {
			out = append(out, string(runes[start:i]))
			start = i
		}
	}
	return append(out, string(runes[start:]))
}

func convertSegment(seg string, p Policy) string {
	var b strings.Builder
	for _, w := range words(seg) {
		if p.Acronyms == AcronymsFold {
			b.WriteString(titleWord(w))
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToTitle(r))
		b.WriteString(w[size:])
	}
	return b.String()
}

// titleWord uppercases the first rune and lowercases the rest.
func titleWord(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToTitle(r)) + cases.Lower(language.Und).String(w[size:])
}

// foldRuns lowercases every uppercase letter that directly follows another
// one, so joined single-letter words (x_y -> XY) become Xy.
func foldRuns(s string) string {
	runes := []rune(s)
	for i := 1; i < len(runes); i++ {
		if isUpper(runes[i]) && isUpper(runes[i-1]) {
			runes[i] = unicode.ToLower(runes[i])
		}
	}
	return string(runes)
}

func isUpper(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsTitle(r)
}

func uncasedLetter(r rune) bool {
	return unicode.IsLetter(r) && !unicode.IsUpper(r) && !unicode.IsLower(r) && !unicode.IsTitle(r)
}
