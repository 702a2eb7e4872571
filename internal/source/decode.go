package source

import (
	"bytes"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
)

// Normalize prepares raw file bytes for the lexer: strips a UTF-8 BOM,
// decodes non-UTF-8 input as Windows-1252 (the TwinCAT editor default)
// and folds CRLF into LF. A lone CR is kept.
func Normalize(raw []byte) ([]byte, FileFlags) {
	var flags FileFlags
	content, hadBOM := bytes.CutPrefix(raw, utf8BOM)
	if hadBOM {
		flags |= FileHadBOM
	}
	if !utf8.Valid(content) {
		if decoded, err := charmap.Windows1252.NewDecoder().Bytes(content); err == nil {
			content = decoded
			flags |= FileDecodedLegacy
		}
	}
	if bytes.Contains(content, crlf) {
		content = bytes.ReplaceAll(content, crlf, []byte{'\n'})
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

// NormalizeString is Normalize for text that is already in memory.
func NormalizeString(raw string) string {
	content, _ := Normalize([]byte(raw))
	return string(content)
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- размер проверяется в Add
		}
	}
	return out
}

// toLineCol: the line is one more than the number of newlines before off.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	line, _ := slices.BinarySearch(lineIdx, off)
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - lineStart + 1} // #nosec G115
}
