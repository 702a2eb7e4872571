package diag

import (
	"plcst/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	// Path names the file of a diagnostic that has no span (I/O, container errors).
	Path string
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// Positioned reports whether Primary refers to text. The zero span means
// "no location"; Path may still name the file.
func (d Diagnostic) Positioned() bool {
	return d.Primary != (source.Span{})
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Diagnoser is implemented by stage errors that can describe themselves as a Diagnostic.
type Diagnoser interface {
	error
	Diagnostic() Diagnostic
}
