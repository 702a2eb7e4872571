package diag

import "plcst/internal/source"

// Reporter receives diagnostics from the lexer and the grammar engine.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	d := New(sev, code, primary, msg)
	d.Notes = notes
	r.Bag.Add(d)
}

// FirstErrorReporter keeps only the first error-level diagnostic.
// The grammar engine uses it to stop at the first lexical problem.
type FirstErrorReporter struct {
	First *Diagnostic
}

func (r *FirstErrorReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.First != nil || sev < SevError {
		return
	}
	d := New(sev, code, primary, msg)
	d.Notes = notes
	r.First = &d
}
