package diagfmt

import (
	"encoding/json"
	"io"

	"plcst/internal/diag"
	"plcst/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file" yaml:"file"`
	StartByte uint32 `json:"start_byte" yaml:"start_byte"`
	EndByte   uint32 `json:"end_byte" yaml:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty" yaml:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" yaml:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty" yaml:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" yaml:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message" yaml:"message"`
	Location LocationJSON `json:"location" yaml:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity" yaml:"severity"`
	Code     string       `json:"code" yaml:"code"`
	Message  string       `json:"message" yaml:"message"`
	Location LocationJSON `json:"location" yaml:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" yaml:"diagnostics"`
	Count       int              `json:"count" yaml:"count"`
}

// makeLocation создаёт LocationJSON из Span; path is used when the span has no file.
func makeLocation(span source.Span, path string, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	if span == (source.Span{}) || fs == nil || fs.Get(span.File) == nil {
		return LocationJSON{File: path}
	}
	loc := LocationJSON{
		File:      filePath(span, fs, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}

	// Добавляем позиции строк/колонок если требуется
	if includePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for _, d := range items[:maxItems] {
		diagJSON := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, d.Path, fs, opts.PathMode, opts.IncludePositions),
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			diagJSON.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				diagJSON.Notes[j] = NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Span, d.Path, fs, opts.PathMode, opts.IncludePositions),
				}
			}
		}
		diagnostics = append(diagnostics, diagJSON)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	return encodeJSON(w, BuildDiagnosticsOutput(bag, fs, opts))
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
