package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"plcst/internal/diag"
	"plcst/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		path:   mk(color.FgWhite, color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgGreen),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	file := resolvable(d.Primary, fs, d.Positioned())
	loc := d.Path
	if file != nil {
		start, _ := fs.Resolve(d.Primary)
		loc = fmt.Sprintf("%s:%d:%d", filePath(d.Primary, fs, opts.PathMode), start.Line, start.Col)
	}
	if loc == "" {
		loc = "<unknown>"
	}
	msg := d.Message
	if opts.Width > 0 {
		msg = runewidth.Truncate(msg, int(opts.Width), "…")
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprint(loc),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		msg,
	)
	if file != nil {
		snippet(w, file, fs, d.Primary, int(opts.Context), pal)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := resolvable(n.Span, fs, n.Span != (source.Span{}))
		if nf == nil {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
			continue
		}
		start, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"), filePath(n.Span, fs, opts.PathMode), start.Line, start.Col, n.Msg)
	}
}

func resolvable(sp source.Span, fs *source.FileSet, positioned bool) *source.File {
	if !positioned {
		return nil
	}
	return lookupFile(sp, fs)
}

// snippet prints the primary line with context lines around it and a caret
// line under the span. Column alignment counts display cells, not bytes.
func snippet(w io.Writer, f *source.File, fs *source.FileSet, sp source.Span, context int, pal palette) {
	start, end := fs.Resolve(sp)
	first := max(int(start.Line)-context, 1)
	last := int(start.Line) + context
	last = min(last, len(f.LineIdx)+1)
	gutterWidth := len(fmt.Sprint(last))

	for line := first; line <= last; line++ {
		text := f.GetLine(uint32(line))
		fmt.Fprintf(w, "%s %s %s\n", pal.gutter.Sprintf("%*d", gutterWidth, line), pal.gutter.Sprint("|"), expandTabs(text))
		if line != int(start.Line) {
			continue
		}
		lineText := expandTabs(text)
		prefix := prefixCells(text, int(start.Col)-1)
		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			width = runewidth.StringWidth(sliceCols(text, int(start.Col)-1, int(end.Col)-1))
		} else if end.Line > start.Line {
			width = max(runewidth.StringWidth(lineText)-prefix, 1)
		}
		marker := "^" + strings.Repeat("~", max(width-1, 0))
		fmt.Fprintf(w, "%s %s %s%s\n", strings.Repeat(" ", gutterWidth), pal.gutter.Sprint("|"), strings.Repeat(" ", prefix), pal.caret.Sprint(marker))
	}
}

const tabWidth = 4

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// prefixCells is the display width of the first n bytes of line.
func prefixCells(line string, n int) int {
	return runewidth.StringWidth(expandTabs(sliceCols(line, 0, n)))
}

// sliceCols cuts line by 0-based byte columns, clamped.
func sliceCols(line string, from, to int) string {
	from = min(max(from, 0), len(line))
	to = min(max(to, from), len(line))
	return line[from:to]
}
