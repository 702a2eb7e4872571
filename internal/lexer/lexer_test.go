package lexer_test

import (
	"testing"

	"plcst/internal/diag"
	"plcst/internal/lexer"
	"plcst/internal/source"
	"plcst/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.st", []byte(input))
	reporter := &testReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}), reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, rep := makeTestLexer(input)
	toks := collectAllTokens(lx)
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v (%q), want %v", input, i, got[i], toks[i].Text, want[i])
		}
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("%q: unexpected diagnostics %+v", input, rep.diagnostics)
	}
	return toks
}

func TestKeywordsCaseInsensitive(t *testing.T) {
	toks := expectKinds(t, "function_block Fb_Motor END_FUNCTION_BLOCK",
		token.KwFunctionBlock, token.Ident, token.KwEndFunctionBlock)
	if toks[0].Text != "function_block" {
		t.Errorf("keyword spelling lost: %q", toks[0].Text)
	}
}

func TestAssignmentStatement(t *testing.T) {
	expectKinds(t, "x := a ** 2 + b MOD 3;",
		token.Ident, token.Assign, token.Ident, token.Power, token.IntLit,
		token.Plus, token.Ident, token.KwMod, token.IntLit, token.Semicolon)
}

func TestOperators(t *testing.T) {
	expectKinds(t, "a <> b <= c >= d => e = f & g ^ h[1..2]",
		token.Ident, token.NotEq, token.Ident, token.LtEq, token.Ident, token.GtEq,
		token.Ident, token.OutAssign, token.Ident, token.Eq, token.Ident, token.Amp,
		token.Ident, token.Caret, token.Ident, token.LBracket, token.IntLit,
		token.DotDot, token.IntLit, token.RBracket)
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{"42", token.IntLit},
		{"1_000_000", token.IntLit},
		{"16#FF_FF", token.IntLit},
		{"2#1010", token.IntLit},
		{"8#777", token.IntLit},
		{"3.14", token.RealLit},
		{"1.0E-3", token.RealLit},
		{"1e6", token.RealLit},
	}
	for _, tc := range cases {
		toks := expectKinds(t, tc.in, tc.kind)
		if toks[0].Text != tc.in {
			t.Errorf("%q: text = %q", tc.in, toks[0].Text)
		}
	}
}

func TestRangeIsNotReal(t *testing.T) {
	expectKinds(t, "0..10", token.IntLit, token.DotDot, token.IntLit)
}

func TestTypedLiterals(t *testing.T) {
	expectKinds(t, "INT#16#7F", token.Ident, token.Hash, token.IntLit)
	expectKinds(t, "E_State#Idle", token.Ident, token.Hash, token.Ident)
}

func TestTimeLiterals(t *testing.T) {
	for _, in := range []string{"T#1s", "TIME#1h2m3s500ms", "t#-5s", "LTIME#1.5us", "TOD#12:30:00", "DT#2024-01-31-23:59:59", "D#2020-02-29"} {
		toks := expectKinds(t, in, token.TimeLit)
		if toks[0].Text != in {
			t.Errorf("%q: text = %q", in, toks[0].Text)
		}
	}
	// диапазон после литерала времени не поглощается
	expectKinds(t, "T#1s..T#2s", token.TimeLit, token.DotDot, token.TimeLit)
}

func TestStrings(t *testing.T) {
	toks := expectKinds(t, `'it$'s' "wide$"str"`, token.StringLit, token.WStringLit)
	if toks[0].Text != `'it$'s'` {
		t.Errorf("escaped quote: %q", toks[0].Text)
	}
	if toks[1].Text != `"wide$"str"` {
		t.Errorf("escaped wide quote: %q", toks[1].Text)
	}
}

func TestDirectAddress(t *testing.T) {
	toks := expectKinds(t, "x AT %IX0.1 : BOOL;",
		token.Ident, token.KwAt, token.DirectAddress, token.Colon, token.Ident, token.Semicolon)
	if toks[2].Text != "%IX0.1" {
		t.Errorf("address = %q", toks[2].Text)
	}
	expectKinds(t, "%Q*", token.DirectAddress)
}

func TestSpansMatchText(t *testing.T) {
	input := "IF a THEN\n  b := 'x';\nEND_IF"
	lx, _ := makeTestLexer(input)
	for _, tok := range collectAllTokens(lx) {
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("span %v covers %q, text %q", tok.Span, got, tok.Text)
		}
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		in   string
		code diag.Code
	}{
		{"'open", diag.LexUnterminatedString},
		{"a ? b", diag.LexUnknownChar},
		{"16#", diag.LexBadNumber},
		{"T#", diag.LexBadTimeLiteral},
		{"%", diag.LexUnknownChar},
	}
	for _, tc := range cases {
		lx, rep := makeTestLexer(tc.in)
		toks := collectAllTokens(lx)
		if len(rep.diagnostics) == 0 || rep.diagnostics[0].Code != tc.code {
			t.Errorf("%q: diagnostics %+v, want %v", tc.in, rep.diagnostics, tc.code)
		}
		hasInvalid := false
		for _, tok := range toks {
			if tok.Kind == token.Invalid {
				hasInvalid = true
			}
		}
		if !hasInvalid {
			t.Errorf("%q: expected an Invalid token", tc.in)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if lx.Peek().Text != "a" || lx.Next().Text != "a" || lx.Next().Text != "b" {
		t.Fatal("Peek/Next mismatch")
	}
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatal("EOF must be sticky")
	}
}
