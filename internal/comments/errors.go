package comments

import (
	"fmt"

	"plcst/internal/diag"
	"plcst/internal/source"
)

// LexicalError reports an unterminated comment, pragma or string literal.
type LexicalError struct {
	Span source.Span
	Code diag.Code
	Msg  string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at %d: %s", e.Span.Start, e.Msg)
}

// Diagnostic renders the error for diagfmt.
func (e *LexicalError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Msg)
}
