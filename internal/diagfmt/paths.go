package diagfmt

import "convlint/internal/source"

func displayPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	}
	return f.FormatPath("auto", "")
}

// resolvable reports whether span can be shown with a source excerpt.
func resolvable(fs *source.FileSet, span source.Span) bool {
	return fs != nil && span.File != source.NoFileID && fs.CheckSpan(span)
}
