package comments

import (
	"fmt"

	"fortio.org/safecast"

	"plcst/internal/diag"
	"plcst/internal/source"
)

type extractor struct {
	file    *source.File
	src     []byte
	clean   []byte
	off     int
	records []Record
}

// Extract scans file and returns the comment/pragma table in source order
// together with the clean text. The input is not modified.
func Extract(file *source.File) ([]Record, []byte, error) {
	ex := &extractor{
		file:  file,
		src:   file.Content,
		clean: make([]byte, len(file.Content)),
	}
	copy(ex.clean, file.Content)
	if err := ex.run(); err != nil {
		return nil, nil, err
	}
	return ex.records, ex.clean, nil
}

// ExtractString is Extract over an in-memory text (FileID 0).
func ExtractString(text string) ([]Record, string, error) {
	file := &source.File{Path: "<text>", Content: []byte(text)}
	records, clean, err := Extract(file)
	return records, string(clean), err
}

func (ex *extractor) run() error {
	for ex.off < len(ex.src) {
		switch b := ex.src[ex.off]; {
		case b == '\'' || b == '"':
			if err := ex.skipString(b); err != nil {
				return err
			}
		case b == '/' && ex.at(1, '/'):
			ex.lineComment()
		case b == '(' && ex.at(1, '*'):
			if err := ex.blockComment('(', ')'); err != nil {
				return err
			}
		case b == '/' && ex.at(1, '*'):
			if err := ex.blockComment('/', '/'); err != nil {
				return err
			}
		case b == '{':
			if err := ex.pragma(); err != nil {
				return err
			}
		default:
			ex.off++
		}
	}
	return nil
}

func (ex *extractor) at(delta int, b byte) bool {
	i := ex.off + delta
	return i < len(ex.src) && ex.src[i] == b
}

func (ex *extractor) span(start, end int) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("comment offset overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("comment offset overflow: %w", err))
	}
	return source.Span{File: ex.file.ID, Start: s, End: e}
}

func (ex *extractor) record(kind Kind, start, end int) {
	ex.records = append(ex.records, Record{
		Span: ex.span(start, end),
		Kind: kind,
		Text: string(ex.src[start:end]),
	})
	for i := start; i < end; i++ {
		if ex.clean[i] != '\n' {
			ex.clean[i] = ' '
		}
	}
}

func (ex *extractor) skipString(quote byte) error {
	start := ex.off
	ex.off++
	for ex.off < len(ex.src) {
		switch ex.src[ex.off] {
		case '$':
			ex.off += 2
			continue
		case quote:
			ex.off++
			return nil
		}
		ex.off++
	}
	return &LexicalError{
		Span: ex.span(start, len(ex.src)),
		Code: diag.LexUnterminatedString,
		Msg:  "unterminated string literal",
	}
}

func (ex *extractor) lineComment() {
	start := ex.off
	for ex.off < len(ex.src) && ex.src[ex.off] != '\n' {
		ex.off++
	}
	ex.record(KindComment, start, ex.off)
}

// blockComment handles (* *) and /* */; nesting of the same form is counted.
func (ex *extractor) blockComment(open, close byte) error {
	start := ex.off
	ex.off += 2
	depth := 1
	for ex.off < len(ex.src) {
		switch {
		case ex.src[ex.off] == open && ex.at(1, '*'):
			depth++
			ex.off += 2
		case ex.src[ex.off] == '*' && ex.at(1, close):
			depth--
			ex.off += 2
			if depth == 0 {
				ex.record(KindComment, start, ex.off)
				return nil
			}
		default:
			ex.off++
		}
	}
	return &LexicalError{
		Span: ex.span(start, len(ex.src)),
		Code: diag.LexUnterminatedComment,
		Msg:  "unterminated block comment",
	}
}

func (ex *extractor) pragma() error {
	start := ex.off
	ex.off++
	depth := 1
	for ex.off < len(ex.src) {
		switch ex.src[ex.off] {
		case '\'', '"':
			if err := ex.skipString(ex.src[ex.off]); err != nil {
				ex.off = len(ex.src)
			}
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				ex.off++
				ex.record(KindPragma, start, ex.off)
				return nil
			}
		}
		ex.off++
	}
	return &LexicalError{
		Span: ex.span(start, len(ex.src)),
		Code: diag.LexUnterminatedPragma,
		Msg:  "unterminated pragma",
	}
}
