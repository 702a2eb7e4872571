package lexer

import (
	"plcst/internal/diag"
	"plcst/internal/token"
)

// scanString: 'STRING' и "WSTRING" с экранированием через '$'.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	kind := token.StringLit
	if quote == '"' {
		kind = token.WStringLit
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch b {
		case '$':
			lx.cursor.Bump()
		case quote:
			return lx.emit(kind, start)
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.report(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}
