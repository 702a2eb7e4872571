package token

import (
	"testing"
)

func TestLookupKeyword_CaseInsensitive(t *testing.T) {
	cases := map[string]Kind{
		"FUNCTION_BLOCK": KwFunctionBlock,
		"function_block": KwFunctionBlock,
		"End_If":         KwEndIf,
		"var_in_out":     KwVarInOut,
		"Or_Else":        KwOrElse,
		"mod":            KwMod,
		"TRUE":           KwTrue,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// имена типов и стандартные идентификаторы: Ident
	notKw := []string{"INT", "BOOL", "LREAL", "THIS", "SUPER", "S", "R", "GET", "END", "VARS"}
	for _, lexeme := range notKw {
		if k, ok := LookupKeyword(lexeme); ok {
			t.Fatalf("LookupKeyword(%q) = %v, want not keyword", lexeme, k)
		}
	}
}

func TestEveryKeywordHasSpelling(t *testing.T) {
	for k := keywordBegin + 1; k < keywordEnd; k++ {
		if Spelling(k) == "" {
			t.Errorf("keyword kind %d has no spelling", k)
		}
	}
}

func TestTimePrefixes(t *testing.T) {
	for _, p := range []string{"t", "TIME", "ltime", "TOD", "dt", "DATE_AND_TIME"} {
		if !IsTimePrefix(p) {
			t.Errorf("IsTimePrefix(%q) = false", p)
		}
	}
	if IsTimePrefix("INT") {
		t.Error("INT is not a time prefix")
	}
	if IsDatePrefix("T") || !IsDatePrefix("DT") {
		t.Error("IsDatePrefix mismatch")
	}
}

func TestOperatorSpelling(t *testing.T) {
	for k, want := range map[Kind]string{Assign: ":=", Power: "**", RefAssign: "REF=", DotDot: "..", Ident: ""} {
		if got := Spelling(k); got != want {
			t.Errorf("Spelling(%v) = %q, want %q", k, got, want)
		}
	}
}
