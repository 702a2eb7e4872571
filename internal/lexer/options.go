package lexer

import (
	"plcst/internal/diag"
	"plcst/internal/source"
)

// Options configures a Lexer. A nil Reporter drops lexical errors; the lexer
// keeps going and emits Invalid tokens either way.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
}
