package source

import (
	"path/filepath"
)

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags record what Normalize changed while loading.
	FileFlags uint8
)

const (
	// FileVirtual marks text added from memory (test, container unit).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileDecodedLegacy marks content that was not valid UTF-8 and was decoded as Windows-1252.
	FileDecodedLegacy
)

// File is one text known to a FileSet.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

// WithContent returns a copy of f sharing ID, Path and line index but carrying content.
// content must keep every newline of f at the same offset.
func (f *File) WithContent(content []byte) *File {
	clone := *f
	clone.Content = content
	return &clone
}

// Text returns the text covered by span, clamped to the content.
func (f *File) Text(span Span) string {
	end := min(int(span.End), len(f.Content))
	start := min(int(span.Start), end)
	return string(f.Content[start:end])
}

// Position resolves a byte offset into a line/column pair.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// GetLine returns line n (1-based) without its newline, or "" past the end.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return ""
	}
	start, end := 0, len(f.Content)
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	if int(n) <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	return string(f.Content[start:end])
}

// FormatPath renders Path for output. mode is one of absolute, relative,
// basename or auto; auto shortens long absolute paths to their base name.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if baseDir == "" {
			baseDir = workingDir()
		}
		if rel, err := relativeTo(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}
