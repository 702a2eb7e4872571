package ast

import (
	"plcst/internal/token"
)

// Statement is any Structured Text statement.
type Statement interface {
	Node
	stmtNode()
}

type (
	// Assignment covers :=, S=, R= and REF=.
	Assignment struct {
		Meta
		Target Expr
		Op     token.Kind
		Value  Expr
	}

	CallStatement struct {
		Meta
		Call *Call
	}

	If struct {
		Meta
		Cond    Expr
		Then    []Statement
		ElseIfs []*ElseIf
		Else    *Else
	}

	ElseIf struct {
		Meta
		Cond Expr
		Body []Statement
	}

	// Else is the ELSE branch of IF or CASE. A present but empty branch has a nil Body.
	Else struct {
		Meta
		Body []Statement
	}

	Case struct {
		Meta
		Selector Expr
		Elements []*CaseElement
		Else     *Else
	}

	// CaseElement labels are expressions or *Range.
	CaseElement struct {
		Meta
		Labels []Expr
		Body   []Statement
	}

	For struct {
		Meta
		Control *Ident
		From    Expr
		To      Expr
		By      Expr
		Body    []Statement
	}

	While struct {
		Meta
		Cond Expr
		Body []Statement
	}

	Repeat struct {
		Meta
		Body  []Statement
		Until Expr
	}

	Return struct{ Meta }

	Exit struct{ Meta }

	Continue struct{ Meta }

	Jmp struct {
		Meta
		Label *Ident
	}

	Label struct {
		Meta
		Name *Ident
	}

	// Empty is a lone ';'.
	Empty struct{ Meta }
)
