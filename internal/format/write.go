package format

import (
	"strings"

	"plcst/internal/comments"
)

// Writer builds the rendered text. Indentation is written lazily at the first
// byte of each line, so blank lines never carry trailing whitespace.
type Writer struct {
	sb    strings.Builder
	unit  string // один уровень отступа
	depth int
	bol   bool // at the beginning of a line
	last  byte
}

func NewWriter(opt Options) *Writer {
	opt = opt.withDefaults()
	unit := "\t"
	if !opt.UseTabs {
		unit = strings.Repeat(" ", opt.IndentWidth)
	}
	return &Writer{unit: unit, bol: true}
}

func (w *Writer) Bytes() []byte {
	return []byte(w.sb.String())
}

// WriteString writes s after the pending indentation.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	if w.bol && s[0] != '\n' {
		for range w.depth {
			w.sb.WriteString(w.unit)
		}
	}
	w.sb.WriteString(s)
	w.last = s[len(s)-1]
	w.bol = w.last == '\n'
}

// Space separates two tokens unless the line is empty or already ends in blank.
func (w *Writer) Space() {
	if w.bol || w.last == ' ' || w.last == '\t' || w.sb.Len() == 0 {
		return
	}
	w.sb.WriteByte(' ')
	w.last = ' '
}

// Newline ends the current line; repeated calls do not add blank lines.
func (w *Writer) Newline() {
	if w.sb.Len() > 0 && w.last != '\n' {
		w.sb.WriteByte('\n')
		w.last = '\n'
	}
	w.bol = true
}

func (w *Writer) IndentPush() { w.depth++ }

func (w *Writer) IndentPop() { w.depth = max(w.depth-1, 0) }

// Comment writes a comment or pragma verbatim. A // comment always ends the line.
func (w *Writer) Comment(r comments.Record) {
	w.Space()
	w.WriteString(r.Text)
	if r.IsLine() {
		w.Newline()
	}
}
