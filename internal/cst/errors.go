package cst

import (
	"fmt"
	"strings"

	"plcst/internal/diag"
	"plcst/internal/source"
)

// GrammarError is a parse failure at the furthest position the engine reached.
type GrammarError struct {
	Span     source.Span
	Pos      source.LineCol
	Found    string
	Expected []string
	Code     diag.Code
	Msg      string // set for lexical problems found by the tokenizer
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.message())
}

func (e *GrammarError) message() string {
	if e.Msg != "" {
		return e.Msg
	}
	found := e.Found
	if found == "" {
		found = "end of input"
	} else {
		found = fmt.Sprintf("%q", found)
	}
	switch len(e.Expected) {
	case 0:
		return "unexpected " + found
	case 1:
		return fmt.Sprintf("unexpected %s, expected %s", found, e.Expected[0])
	}
	return fmt.Sprintf("unexpected %s, expected one of %s", found, strings.Join(e.Expected, ", "))
}

// Diagnostic renders the error for diagfmt.
func (e *GrammarError) Diagnostic() diag.Diagnostic {
	code := e.Code
	if code == 0 {
		code = diag.SynUnexpectedToken
	}
	return diag.NewError(code, e.Span, e.message())
}
