package transform

import (
	"fmt"

	"plcst/internal/cst"
	"plcst/internal/diag"
	"plcst/internal/source"
)

// TransformError reports a concrete tree the reductions do not accept.
type TransformError struct {
	Rule cst.Rule
	Span source.Span
	Msg  string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %s [%d,%d): %s", e.Rule, e.Span.Start, e.Span.End, e.Msg)
}

func (e *TransformError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.AstInternal, e.Span, e.Error())
}

// DuplicateDeclarationError reports a name declared twice in one section kind of one scope.
type DuplicateDeclarationError struct {
	Name   string
	Kind   string
	First  source.Span
	Second source.Span
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("duplicate %s declaration %q", e.Kind, e.Name)
}

func (e *DuplicateDeclarationError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.AstDuplicateDeclaration, e.Second, e.Error()).
		WithNote(e.First, "first declared here")
}
