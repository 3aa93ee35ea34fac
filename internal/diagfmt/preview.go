package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"convlint/internal/diag"
	"convlint/internal/source"
)

// FixPreview holds the lines touched by an edit before and after applying it.
type FixPreview struct {
	Before []string
	After  []string
}

// BuildFixPreview applies edit to a copy of the lines it touches.
func BuildFixPreview(fs *source.FileSet, edit diag.TextEdit) (FixPreview, error) {
	if fs == nil {
		return FixPreview{}, fmt.Errorf("nil FileSet")
	}
	file := fs.Get(edit.Span.File)
	if file == nil {
		return FixPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	if !edit.Span.Valid(file.Len()) {
		return FixPreview{}, fmt.Errorf("edit span %s out of range", edit.Span)
	}

	startPos, endPos := fs.Resolve(edit.Span)
	blockStart := lineStartOffset(file, startPos.Line)
	blockEnd := min(max(lineEndOffsetInclusive(file, max(endPos.Line, startPos.Line)), blockStart), file.Len())

	original := file.Content[blockStart:blockEnd]
	relStart := int(edit.Span.Start - blockStart)
	relEnd := int(edit.Span.End - blockStart)

	after := make([]byte, 0, len(original)+len(edit.NewText))
	after = append(after, original[:relStart]...)
	after = append(after, edit.NewText...)
	after = append(after, original[relEnd:]...)

	return FixPreview{
		Before: splitPreviewLines(original),
		After:  splitPreviewLines(after),
	}, nil
}

// splitPreviewLines drops the final newline so "a\n" yields one line.
func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return f.Len()
}

func lineEndOffsetInclusive(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	idx := line - 1
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return f.Len()
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}
