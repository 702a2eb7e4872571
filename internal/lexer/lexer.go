package lexer

import (
	"plcst/internal/diag"
	"plcst/internal/source"
	"plcst/internal/token"
)

// Lexer turns clean Structured Text (comments and pragmas already blanked) into tokens.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipWhitespace()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '\'' || ch == '"':
		return lx.scanString()
	case ch == '%':
		return lx.scanDirectAddress()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Tokenize lexes the whole file, EOF token included.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/4)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanDirectAddress: %IX0.1, %QW10, %MD5, %I*
func (lx *Lexer) scanDirectAddress() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '%'
	letters := 0
	for isIdentStartByte(lx.cursor.Peek()) && lx.cursor.Peek() != '_' {
		lx.cursor.Bump()
		letters++
	}
	for {
		b := lx.cursor.Peek()
		if isDec(b) || b == '*' {
			lx.cursor.Bump()
			continue
		}
		if b == '.' {
			if _, b1, ok := lx.cursor.Peek2(); ok && isDec(b1) {
				lx.cursor.Bump()
				continue
			}
		}
		break
	}
	tok := lx.emit(token.DirectAddress, start)
	if letters == 0 || len(tok.Text) == 1+letters {
		lx.report(diag.LexUnknownChar, tok.Span, "malformed direct address "+tok.Text)
		tok.Kind = token.Invalid
	}
	return tok
}
