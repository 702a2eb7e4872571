package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"plcst/internal/source"
)

// shortLine is one rendered entry of the short format.
type shortLine struct {
	sev  string
	code string
	path string
	line uint32
	col  uint32
	msg  string
}

func (l shortLine) String() string {
	if l.line == 0 {
		return fmt.Sprintf("%s %s %s %s", l.sev, l.code, l.path, l.msg)
	}
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
}

// FormatGoldenDiagnostics renders diagnostics one per line, sorted by
// location: "error SYN2001 POUs/MAIN.st:5:6 message". Unpositioned
// diagnostics print their Path without line and column; spans of files
// unknown to fs are dropped. Used by --quiet failure reports and in tests.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	var lines []shortLine
	for i := range diags {
		d := &diags[i]
		if l, ok := shortOf(fs, d.Severity.label(), d.Code, d.Primary, d.Path, d.Positioned(), d.Message); ok {
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := shortOf(fs, "note", d.Code, n.Span, "", true, n.Msg); ok {
				lines = append(lines, l)
			}
		}
	}
	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.msg, b.msg),
		)
	})
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func shortOf(fs *source.FileSet, sev string, code Code, sp source.Span, path string, positioned bool, msg string) (shortLine, bool) {
	l := shortLine{sev: sev, code: code.ID(), path: path, msg: oneLine(msg)}
	if !positioned {
		if l.path == "" {
			l.path = "<unknown>"
		}
		return l, true
	}
	if int(sp.File) >= fs.Len() {
		return shortLine{}, false
	}
	start, _ := fs.Resolve(sp)
	l.path = relSlash(fs.Get(sp.File).FormatPath("relative", fs.BaseDir()))
	l.line, l.col = start.Line, start.Col
	return l, true
}

func relSlash(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

func oneLine(msg string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(msg), " "))
}
