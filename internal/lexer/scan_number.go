package lexer

import (
	"plcst/internal/diag"
	"plcst/internal/token"
)

// scanNumber: 42, 1_000, 16#FF, 2#1010_0101, 3.14, 1.0E-3, 1E6.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.digits(isDec)

	if lx.cursor.Peek() == '#' {
		base := string(lx.file.Content[start:lx.cursor.Off])
		if base == "2" || base == "8" || base == "16" {
			lx.cursor.Bump()
			n := lx.digits(isHex)
			tok := lx.emit(token.IntLit, start)
			if n == 0 {
				lx.report(diag.LexBadNumber, tok.Span, "missing digits after base prefix")
				tok.Kind = token.Invalid
			}
			return tok
		}
		// 5#... не основание: пусть парсер увидит IntLit и '#'
		return lx.emit(token.IntLit, start)
	}

	kind := token.IntLit
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		lx.digits(isDec)
		kind = token.RealLit
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if lx.digits(isDec) == 0 {
			lx.cursor.Reset(mark)
		} else {
			kind = token.RealLit
		}
	}
	return lx.emit(kind, start)
}

// digits consumes digits accepted by ok plus '_' separators and returns the digit count.
func (lx *Lexer) digits(ok func(byte) bool) int {
	n := 0
	for {
		b := lx.cursor.Peek()
		switch {
		case ok(b):
			n++
		case b == '_' && n > 0:
		default:
			return n
		}
		lx.cursor.Bump()
	}
}
