package cst_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"plcst/internal/cst"
	"plcst/internal/diag"
	"plcst/internal/token"
)

func newEngine(t *testing.T) *cst.Engine {
	t.Helper()
	eng, err := cst.NewEngine(cst.DefaultGrammar())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return eng
}

func mustParse(t *testing.T, eng *cst.Engine, text string, start cst.Start) *cst.Node {
	t.Helper()
	root, err := eng.ParseString(text, start)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return root
}

const motor = `FUNCTION_BLOCK PUBLIC FB_Motor EXTENDS FB_Base IMPLEMENTS I_Motor, I_Drive
VAR_INPUT
    bEnable : BOOL;
    fSpeed AT %IW10 : REAL := 1.5;
END_VAR
VAR
    aBuf : ARRAY[0..9, 1..2] OF INT := [1, 2, 3(0)];
    tmr : TON(PT := T#1S);
    st : ST_Pos := (x := 1, y := -2);
    p : POINTER TO BYTE;
    s : STRING(80) := 'it$'s';
END_VAR
IF bEnable AND NOT bBusy THEN
    fOut := fSpeed * 2 + 1;
ELSIF x > 1 THEN
    ;
ELSE
    tmr(IN := TRUE, Q => bDone);
END_IF
CASE nState OF
    0, 1..3: nState := E_State#Idle;
    Idle: x S= TRUE;
ELSE
    RETURN;
END_CASE
END_FUNCTION_BLOCK
`

func TestParseFunctionBlockShape(t *testing.T) {
	eng := newEngine(t)
	root := mustParse(t, eng, motor, cst.StartSource)
	if root.Rule != cst.RuleSource || len(root.Children) != 1 {
		t.Fatalf("root = %s with %d children", root.Rule, len(root.Children))
	}
	fb := root.ChildNode(0)
	if fb.Rule != cst.RuleFunctionBlock {
		t.Fatalf("unit rule = %s", fb.Rule)
	}
	if len(fb.Children) != 6 {
		t.Fatalf("function block has %d children, want 6", len(fb.Children))
	}
	if mods := fb.ChildNode(0); mods == nil || mods.ChildLeaf(0).Kind != token.KwPublic {
		t.Errorf("modifiers = %v", fb.Children[0])
	}
	if name := fb.ChildLeaf(1); name == nil || name.Text != "FB_Motor" {
		t.Errorf("name = %v", fb.Children[1])
	}
	if impl := fb.ChildNode(3); impl == nil || len(impl.Children) != 2 {
		t.Errorf("implements = %v", fb.Children[3])
	}
	blocks := fb.ChildNode(4)
	if blocks == nil || len(blocks.Children) != 2 {
		t.Fatalf("var blocks = %v", fb.Children[4])
	}
	body := fb.ChildNode(5)
	if body == nil || len(body.Children) != 2 {
		t.Fatalf("body = %v", fb.Children[5])
	}
	if fb.Span.Start != 0 || int(fb.Span.End) != strings.LastIndex(motor, "END_FUNCTION_BLOCK")+len("END_FUNCTION_BLOCK") {
		t.Errorf("fb span = %v", fb.Span)
	}
}

func TestPlaceholdersForAbsentElements(t *testing.T) {
	eng := newEngine(t)
	root := mustParse(t, eng, "PROGRAM Main\nEND_PROGRAM", cst.StartSource)
	prog := root.ChildNode(0)
	if prog.Rule != cst.RuleProgram || len(prog.Children) != 3 {
		t.Fatalf("program = %s %d", prog.Rule, len(prog.Children))
	}
	if prog.Children[1] != nil || prog.Children[2] != nil {
		t.Errorf("absent var blocks/body must be nil placeholders: %#v", prog.Children)
	}

	decls := mustParse(t, eng, "VAR x : INT; END_VAR", cst.StartDeclarations)
	decl := decls.ChildNode(0).ChildNode(2)
	if decl.Rule != cst.RuleVarDecl || len(decl.Children) != 5 {
		t.Fatalf("var decl = %s %d", decl.Rule, len(decl.Children))
	}
	for _, i := range []int{1, 3, 4} {
		if decl.Children[i] != nil {
			t.Errorf("child %d should be a placeholder, got %#v", i, decl.Children[i])
		}
	}
}

func TestOperatorPrecedence(t *testing.T) {
	eng := newEngine(t)
	root := mustParse(t, eng, "x := a OR b AND c = d + e * f ** g;", cst.StartStatements)
	assign := root.ChildNode(0)
	value := assign.ChildNode(2)
	// OR связывает слабее всего
	if value.Rule != cst.RuleBinary || value.ChildLeaf(1).Kind != token.KwOr {
		t.Fatalf("top operator = %s", value.Dump())
	}
	and := value.ChildNode(2)
	if and.ChildLeaf(1).Kind != token.KwAnd {
		t.Fatalf("second operator = %s", and.Dump())
	}
	eq := and.ChildNode(2)
	if eq.ChildLeaf(1).Kind != token.Eq {
		t.Fatalf("third operator = %s", eq.Dump())
	}
	add := eq.ChildNode(2)
	mul := add.ChildNode(2)
	pow := mul.ChildNode(2)
	if add.ChildLeaf(1).Kind != token.Plus || mul.ChildLeaf(1).Kind != token.Star || pow.ChildLeaf(1).Kind != token.Power {
		t.Fatalf("arithmetic chain wrong: %s", value.Dump())
	}
}

func TestLeftAssociativity(t *testing.T) {
	eng := newEngine(t)
	root := mustParse(t, eng, "x := a - b - c;", cst.StartStatements)
	value := root.ChildNode(0).ChildNode(2)
	if left := value.ChildNode(0); left.Rule != cst.RuleBinary {
		t.Fatalf("a - b - c must group left: %s", value.Dump())
	}
}

func TestStatementForms(t *testing.T) {
	eng := newEngine(t)
	text := `
FOR i := 0 TO 10 BY 2 DO a[i] := i; END_FOR
WHILE b DO EXIT; END_WHILE;
REPEAT n := n + 1; UNTIL n > 5 END_REPEAT
lbl:
JMP lbl;
ptr^.field.3 := TRUE;
obj.Method(1, 2)^.x R= FALSE;
ref REF= target;
CONTINUE;
`
	root := mustParse(t, eng, text, cst.StartStatements)
	want := []cst.Rule{
		cst.RuleFor, cst.RuleWhile, cst.RuleRepeat, cst.RuleLabel, cst.RuleJmp,
		cst.RuleAssignment, cst.RuleAssignment, cst.RuleAssignment, cst.RuleContinue,
	}
	if len(root.Children) != len(want) {
		t.Fatalf("got %d statements:\n%s", len(root.Children), root.Dump())
	}
	for i, r := range want {
		if got := root.ChildNode(i).Rule; got != r {
			t.Errorf("statement %d = %s, want %s", i, got, r)
		}
	}
	if op := root.ChildNode(6).ChildLeaf(1); op.Kind != token.ResetAssign || op.Text != "R=" {
		t.Errorf("reset operator = %+v", op)
	}
	if op := root.ChildNode(7).ChildLeaf(1); op.Kind != token.RefAssign {
		t.Errorf("ref operator = %+v", op)
	}
}

func TestKeywordMemberNames(t *testing.T) {
	eng := newEngine(t)
	root := mustParse(t, eng, "fb.Method();\nx := st.Type + st.END_VAR;", cst.StartStatements)
	call := root.ChildNode(0).ChildNode(0)
	if call.Rule != cst.RuleCall {
		t.Fatalf("first statement:\n%s", root.Dump())
	}
	if sel := call.ChildNode(0).ChildLeaf(1); sel.Kind != token.KwMethod || sel.Text != "Method" {
		t.Errorf("selector = %+v", sel)
	}
}

func TestStringTypedLiterals(t *testing.T) {
	eng := newEngine(t)
	root := mustParse(t, eng, "s := STRING#'abc';\nw := WSTRING#\"abc\";", cst.StartStatements)
	for i := range 2 {
		if lit := root.ChildNode(i).ChildNode(2); lit.Rule != cst.RuleTypedLiteral {
			t.Errorf("statement %d value = %s", i, lit.Rule)
		}
	}
}

func TestUnitExpectedSet(t *testing.T) {
	eng := newEngine(t)
	_, err := eng.ParseString("x := 1;", cst.StartSource)
	var gerr *cst.GrammarError
	if !errors.As(err, &gerr) {
		t.Fatalf("err = %v", err)
	}
	for _, want := range []string{"VAR_GLOBAL", "VAR_CONFIG"} {
		found := false
		for _, e := range gerr.Expected {
			found = found || e == want
		}
		if !found {
			t.Errorf("expected set %v lacks %s", gerr.Expected, want)
		}
	}
}

func TestDataTypes(t *testing.T) {
	eng := newEngine(t)
	text := `TYPE
    ST_Pos EXTENDS ST_Base : STRUCT
        x, y : LREAL;
    END_STRUCT
    E_State : (Idle := 0, Busy, Error := 99) INT := Idle;
    T_Alias : ARRAY[*] OF STRING[20];
    U_Word : UNION w : WORD; b : ARRAY[0..1] OF BYTE; END_UNION
    T_Range : INT(0..100) := 5;
END_TYPE`
	root := mustParse(t, eng, text, cst.StartSource)
	dt := root.ChildNode(0)
	want := []cst.Rule{cst.RuleStructTypeDecl, cst.RuleEnumTypeDecl, cst.RuleAliasTypeDecl, cst.RuleUnionTypeDecl, cst.RuleAliasTypeDecl}
	if len(dt.Children) != len(want) {
		t.Fatalf("got %d type decls:\n%s", len(dt.Children), dt.Dump())
	}
	for i, r := range want {
		if got := dt.ChildNode(i).Rule; got != r {
			t.Errorf("type %d = %s, want %s", i, got, r)
		}
	}
	if sub := dt.ChildNode(4).ChildNode(1); sub.Rule != cst.RuleSubrangeType {
		t.Errorf("T_Range type = %s", sub.Rule)
	}
}

func TestGrammarErrorAtFurthestPosition(t *testing.T) {
	eng := newEngine(t)
	text := "PROGRAM Main\nVAR\n  x : INT\nEND_VAR\nEND_PROGRAM"
	_, err := eng.ParseString(text, cst.StartSource)
	var gerr *cst.GrammarError
	if !errors.As(err, &gerr) {
		t.Fatalf("err = %v, want *GrammarError", err)
	}
	if gerr.Pos.Line != 4 || gerr.Pos.Col != 1 || gerr.Found != "END_VAR" {
		t.Errorf("error at %+v found %q", gerr.Pos, gerr.Found)
	}
	found := false
	for _, e := range gerr.Expected {
		if e == "';'" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected set %v must contain ';'", gerr.Expected)
	}
	if d := gerr.Diagnostic(); d.Code != diag.SynUnexpectedToken {
		t.Errorf("diagnostic code = %v", d.Code)
	}
}

func TestLexicalProblemBecomesGrammarError(t *testing.T) {
	eng := newEngine(t)
	_, err := eng.ParseString("x := a ? b;", cst.StartStatements)
	var gerr *cst.GrammarError
	if !errors.As(err, &gerr) || gerr.Code != diag.LexUnknownChar {
		t.Fatalf("err = %v", err)
	}
}

func TestUnknownStart(t *testing.T) {
	eng := newEngine(t)
	if _, err := eng.ParseString("x := 1;", cst.Start("nope")); err == nil {
		t.Fatal("expected error for unknown start symbol")
	}
}

func TestNewEngineValidates(t *testing.T) {
	g := cst.DefaultGrammar()
	g.Precedence = append(g.Precedence, []token.Kind{token.Plus})
	if _, err := cst.NewEngine(g); err == nil {
		t.Error("duplicate operator must be rejected")
	}
	g = cst.DefaultGrammar()
	g.Starts = nil
	if _, err := cst.NewEngine(g); err == nil {
		t.Error("grammar without starts must be rejected")
	}
	g = cst.DefaultGrammar()
	g.Precedence = [][]token.Kind{{token.Comma}}
	if _, err := cst.NewEngine(g); err == nil {
		t.Error("non-operator must be rejected")
	}
}

func TestSetResetDisabled(t *testing.T) {
	g := cst.DefaultGrammar()
	g.SetResetAssign = false
	eng, err := cst.NewEngine(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := eng.ParseString("x S= TRUE;", cst.StartStatements); err == nil {
		t.Fatal("S= must fail when disabled")
	}
}

func TestEngineConcurrentUse(t *testing.T) {
	eng := newEngine(t)
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := eng.ParseString(motor, cst.StartSource); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestRuleNames(t *testing.T) {
	for _, r := range cst.Rules() {
		if r.String() == "" || r.String() == "invalid" {
			t.Errorf("rule %d has no name", r)
		}
	}
}
