package lexer

import (
	"plcst/internal/diag"
	"plcst/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Префиксы времени (T#, DT#, TOD#...) сразу дают TimeLit.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ident, start)

	if lx.cursor.Peek() == '#' && token.IsTimePrefix(tok.Text) {
		return lx.scanTimeLiteral(start, token.IsDatePrefix(tok.Text))
	}
	if kw, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = kw
	}
	return tok
}

// scanTimeLiteral: курсор стоит на '#'.
func (lx *Lexer) scanTimeLiteral(start Mark, date bool) token.Token {
	lx.cursor.Bump() // '#'
	if b := lx.cursor.Peek(); b == '-' || b == '+' {
		lx.cursor.Bump()
	}
	payload := 0
	for {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) || b == '.' || (date && (b == '-' || b == ':')) {
			if b == '.' {
				if _, b1, ok := lx.cursor.Peek2(); !ok || b1 == '.' {
					break
				}
			}
			lx.cursor.Bump()
			payload++
			continue
		}
		break
	}
	tok := lx.emit(token.TimeLit, start)
	if payload == 0 {
		lx.report(diag.LexBadTimeLiteral, tok.Span, "empty time literal "+tok.Text)
		tok.Kind = token.Invalid
	}
	return tok
}
