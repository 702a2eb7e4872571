package lexer

import (
	"fmt"

	"plcst/internal/diag"
	"plcst/internal/token"
)

var singleOps = map[byte]token.Kind{
	'=': token.Eq,
	'<': token.Lt,
	'>': token.Gt,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'&': token.Amp,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	',': token.Comma,
	';': token.Semicolon,
	':': token.Colon,
	'.': token.Dot,
	'^': token.Caret,
	'#': token.Hash,
}

// Жадность: сначала 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	switch {
	case lx.try2(':', '='):
		return lx.emit(token.Assign, start)
	case lx.try2('=', '>'):
		return lx.emit(token.OutAssign, start)
	case lx.try2('<', '>'):
		return lx.emit(token.NotEq, start)
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start)
	case lx.try2('*', '*'):
		return lx.emit(token.Power, start)
	case lx.try2('.', '.'):
		return lx.emit(token.DotDot, start)
	}
	ch := lx.cursor.Bump()
	if k, ok := singleOps[ch]; ok {
		return lx.emit(k, start)
	}
	// многобайтовая руна целиком, чтобы не резать UTF-8
	for !lx.cursor.EOF() && lx.cursor.Peek()&0xC0 == 0x80 {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	lx.report(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", tok.Text))
	return tok
}
