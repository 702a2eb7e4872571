package cst

import (
	"plcst/internal/token"
)

// Start names an entry point of the grammar.
type Start string

const (
	StartSource       Start = "iec_source"
	StartDeclarations Start = "var_declarations"
	StartStatements   Start = "statement_list"
)

// Grammar is the declarative description an Engine is compiled from.
type Grammar struct {
	Name string
	// Starts lists the entry points the engine accepts.
	Starts []Start
	// Precedence lists binary operator levels from loosest to tightest.
	// '**' is always the tightest binary operator and is not listed.
	Precedence [][]token.Kind
	// SetResetAssign enables TwinCAT "x S= y", "x R= y" and "x REF= y".
	SetResetAssign bool
}

// DefaultGrammar returns the TwinCAT flavour of IEC 61131-3 Structured Text.
func DefaultGrammar() Grammar {
	return Grammar{
		Name:   "twincat-st",
		Starts: []Start{StartSource, StartDeclarations, StartStatements},
		Precedence: [][]token.Kind{
			{token.KwOrElse},
			{token.KwOr},
			{token.KwXor},
			{token.KwAndThen},
			{token.KwAnd, token.Amp},
			{token.Eq, token.NotEq},
			{token.Lt, token.Gt, token.LtEq, token.GtEq},
			{token.Plus, token.Minus},
			{token.Star, token.Slash, token.KwMod},
		},
		SetResetAssign: true,
	}
}
