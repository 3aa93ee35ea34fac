package directive

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"fortio.org/safecast"

	"convlint/internal/source"
)

const marker = "//~"

// Registry collects the expectations of every scanned file.
type Registry struct {
	mu           sync.Mutex
	expectations []Expectation
	byFile       map[source.FileID][]int
}

func NewRegistry() *Registry {
	return &Registry{byFile: make(map[source.FileID][]int)}
}

// Add registers one expectation.
func (r *Registry) Add(e Expectation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byFile[e.File] = append(r.byFile[e.File], len(r.expectations))
	r.expectations = append(r.expectations, e)
}

// All returns every expectation in registration order.
func (r *Registry) All() []Expectation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Expectation(nil), r.expectations...)
}

// ForFile returns the expectations of one file.
func (r *Registry) ForFile(id source.FileID) []Expectation {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.byFile[id]
	out := make([]Expectation, 0, len(idx))
	for _, i := range idx {
		out = append(out, r.expectations[i])
	}
	return out
}

// HasKind reports whether file id carries an annotation of kind k.
func (r *Registry) HasKind(id source.FileID, k Kind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.byFile[id] {
		if r.expectations[i].Kind == k {
			return true
		}
	}
	return false
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.expectations)
}

// CollectFromFile scans f for annotations. Malformed ones are reported
// together; well-formed ones are registered either way.
func (r *Registry) CollectFromFile(f *source.File) error {
	var errs []string
	var prevLine uint32
	havePrev := false
	offset := 0
	lines := bytes.Split(f.Content, []byte("\n"))
	for i, raw := range lines {
		lineNo, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			return err
		}
		lineStart := offset
		offset += len(raw) + 1

		idx := bytes.Index(raw, []byte(marker))
		if idx < 0 {
			continue
		}
		text := strings.TrimRight(string(raw[idx+len(marker):]), "\r")
		target, rest, err := resolveTarget(text, lineNo, prevLine, havePrev)
		if err == nil && (target < 1 || int(target) > len(lines)) {
			err = fmt.Errorf("annotation points outside the file")
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s:%d: %v", f.Path, lineNo, err))
			continue
		}
		kindWord, msg, _ := strings.Cut(strings.TrimSpace(rest), " ")
		kind, ok := ParseKind(strings.TrimSuffix(kindWord, ":"))
		if !ok {
			errs = append(errs, fmt.Sprintf("%s:%d: unknown annotation kind %q", f.Path, lineNo, kindWord))
			continue
		}
		start, err1 := safecast.Conv[uint32](lineStart + idx)
		end, err2 := safecast.Conv[uint32](lineStart + len(raw))
		if err1 != nil || err2 != nil {
			return fmt.Errorf("%s: file too large", f.Path)
		}
		r.Add(Expectation{
			File:    f.ID,
			Path:    f.Path,
			Line:    target,
			Kind:    kind,
			Message: strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(msg), ":")),
			Span:    source.Span{File: f.ID, Start: start, End: end},
		})
		prevLine, havePrev = target, true
	}
	if len(errs) > 0 {
		return fmt.Errorf("malformed annotations:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// resolveTarget decodes the ^, v or | prefix after the marker.
func resolveTarget(text string, line, prev uint32, havePrev bool) (uint32, string, error) {
	switch {
	case strings.HasPrefix(text, "|"):
		if !havePrev {
			return 0, "", fmt.Errorf("`//~|` without a preceding annotation")
		}
		return prev, text[1:], nil
	case strings.HasPrefix(text, "^"):
		n := len(text) - len(strings.TrimLeft(text, "^"))
		up, err := safecast.Conv[uint32](n)
		if err != nil || up >= line {
			return 0, "", fmt.Errorf("annotation points outside the file")
		}
		return line - up, text[n:], nil
	case strings.HasPrefix(text, "v"):
		n := len(text) - len(strings.TrimLeft(text, "v"))
		down, err := safecast.Conv[uint32](n)
		if err != nil {
			return 0, "", err
		}
		return line + down, text[n:], nil
	}
	return line, text, nil
}
