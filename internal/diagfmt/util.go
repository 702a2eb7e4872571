package diagfmt

import (
	"fmt"

	"plcst/internal/source"
)

// formatSpan prints "line:col-line:col" when fs knows the file and raw byte
// offsets otherwise.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if f := lookupFile(span, fs); f != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

func filePath(span source.Span, fs *source.FileSet, mode PathMode) string {
	if f := lookupFile(span, fs); f != nil {
		return f.FormatPath(mode.format(), fs.BaseDir())
	}
	return ""
}

func lookupFile(span source.Span, fs *source.FileSet) *source.File {
	if fs == nil {
		return nil
	}
	return fs.Get(span.File)
}
