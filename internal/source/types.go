package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

// NoFileID marks spans of diagnostics that are not tied to any source text,
// such as a file that could not be read.
const NoFileID FileID = ^FileID(0)

const (
	// FileVirtual marks a file added from memory (stdin, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position. Col counts characters, not bytes.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Len returns the content length as uint32.
func (f *File) Len() uint32 {
	return mustU32(len(f.Content))
}
