package token_test

import (
	"testing"

	"plcst/internal/source"
	"plcst/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.IntLit, token.RealLit, token.StringLit,
		token.WStringLit, token.TimeLit, token.KwTrue, token.KwFalse,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwIf, token.Plus, token.LParen, token.DirectAddress}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	for _, k := range []token.Kind{token.Assign, token.OutAssign, token.Power, token.Hash, token.DotDot} {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be an operator", k)
		}
	}
	if tok(token.KwAnd).IsPunctOrOp() {
		t.Fatal("AND is a keyword, not punctuation")
	}
}

func TestKindString(t *testing.T) {
	if got := token.KwEndFunctionBlock.String(); got != "END_FUNCTION_BLOCK" {
		t.Errorf("String() = %q", got)
	}
	if got := token.Assign.String(); got != "':='" {
		t.Errorf("String() = %q", got)
	}
}

func TestTokenIs(t *testing.T) {
	tk := token.Token{Kind: token.Ident, Text: "this"}
	if !tk.Is("THIS") {
		t.Error("Is must be case-insensitive")
	}
	if (token.Token{Kind: token.KwAnd, Text: "AND"}).Is("AND") {
		t.Error("Is only matches identifiers")
	}
}
