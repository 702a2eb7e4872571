// Package diag defines the diagnostic model shared by all pipeline stages.
//
// Stage errors (comments.LexicalError, cst.GrammarError, transform errors)
// stay plain Go errors; each also implements Diagnoser so the CLI can render
// it with source context. Diagnostic carries a Code, Severity, message,
// primary span and optional notes (for example "first declared here").
//
// Producers emit through a Reporter. BagReporter collects into a Bag that
// supports limits, sorting and deduplication; FirstErrorReporter keeps the
// first error only. Rendering lives in internal/diagfmt.
package diag
