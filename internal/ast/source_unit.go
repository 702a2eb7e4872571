package ast

import (
	"plcst/internal/comments"
	"plcst/internal/source"
)

// SourceUnit is one parsed text: the input after preprocessing, its tree and
// the full comment table the tree was built with.
type SourceUnit struct {
	Identifier string
	Text       string
	File       source.FileID
	Root       *SourceCode
	Comments   []comments.Record
}

// Source returns the text covered by n, or "" when the span is outside Text.
func (u *SourceUnit) Source(n Node) string {
	sp := SpanOf(n)
	if int(sp.End) > len(u.Text) || sp.Start > sp.End {
		return ""
	}
	return u.Text[sp.Start:sp.End]
}
