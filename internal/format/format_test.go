package format_test

import (
	"errors"
	"strings"
	"testing"

	"plcst/internal/ast"
	"plcst/internal/cst"
	"plcst/internal/driver"
	"plcst/internal/format"
	"plcst/internal/source"
	"plcst/internal/testkit"
)

func engine(t *testing.T) *cst.Engine {
	t.Helper()
	eng, err := cst.NewEngine(cst.DefaultGrammar())
	if err != nil {
		t.Fatal(err)
	}
	return eng
}

func parse(t *testing.T, eng *cst.Engine, text string) *ast.SourceUnit {
	t.Helper()
	u, err := driver.ParseText(eng, text, "test.st", driver.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return u
}

var samples = map[string]string{
	"function block": `{attribute 'hide'}
function_block FB_Motor EXTENDS FB_Base IMPLEMENTS I_Motor, I_Drive // motor block
VAR_INPUT
    (* enable input *)
    bEnable : BOOL; // trailing
    nSpeed : INT := 5 (* inside *);
END_VAR
VAR RETAIN
    aBuf : ARRAY[0..9, 1..2] OF INT := [2(0), 8(1)];
    stPos : ST_Pos := (x := 1, y := 2);
    sName : STRING[20] := 'motor';
    pNext : POINTER TO FB_Motor;
    fbTon : TON(PT := T#1S);
END_VAR
nSpeed := nSpeed + (* mid *) 1; // inc
fbTimer(IN := bEnable, Q => bDone);
IF bEnable AND NOT bDone THEN
    nSpeed := -nSpeed;
ELSIF nSpeed > 10 THEN
    RETURN;
ELSE
    ;
END_IF
END_FUNCTION_BLOCK
`,
	"statements": `PROGRAM MAIN
VAR
    i : INT;
    x AT %IX0.1 : BOOL;
END_VAR
CASE i OF
    1, 2..5: i := i * 2 ** 3;
ELSE
    i := 0;
END_CASE
FOR i := 0 TO 10 BY 2 DO
    IF i = 4 THEN CONTINUE; END_IF
END_FOR
WHILE x DO x := FALSE; END_WHILE
REPEAT i := i + 1; UNTIL i >= 3 END_REPEAT
p^.field[i] := INT#16#FF;
x S= TRUE;
fbAxis.Method(1).Type := STRING#'abc';
END_PROGRAM
`,
	"types and globals": `TYPE
    E_Mode : (Idle := 0, Run) DINT := Idle; // mode
    ST_Pos EXTENDS ST_Base : STRUCT
        x, y : REAL := 1.5;
    END_STRUCT
    U_Raw : UNION
        b : BYTE;
        w : WORD;
    END_UNION
    T_Small : INT(0..100) := 5;
END_TYPE

VAR_GLOBAL CONSTANT
    cMax : INT := 10;
END_VAR
`,
	"members": `INTERFACE I_Motor EXTENDS I_Base, I_Other
END_INTERFACE

METHOD PUBLIC Stop : BOOL
VAR_INPUT
    bForce : BOOL;
END_VAR
Stop := THIS^.Halt(bForce);
END_METHOD

PROPERTY Speed : INT
Speed := nSpeed;
END_PROPERTY

ACTION Reset:
nSpeed := 0;
END_ACTION
`,
}

func TestRoundTrip(t *testing.T) {
	eng := engine(t)
	for name, text := range samples {
		t.Run(name, func(t *testing.T) {
			u := parse(t, eng, text)
			for _, opt := range []format.Options{{}, {UseTabs: true}, {IndentWidth: 2}} {
				if _, err := format.RoundTrip(eng, u, opt); err != nil {
					t.Errorf("%+v: %v", opt, err)
				}
			}
		})
	}
}

func TestRenderedTreesKeepInvariants(t *testing.T) {
	eng := engine(t)
	for name, text := range samples {
		t.Run(name, func(t *testing.T) {
			fs := source.NewFileSet()
			out := format.Unit(parse(t, eng, text), format.Options{})
			u, err := driver.ParseText(eng, out, "rendered.st", driver.Options{FileSet: fs})
			if err != nil {
				t.Fatalf("reparse: %v", err)
			}
			if err := testkit.CheckUnit(u, fs); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestRenderIsStable(t *testing.T) {
	eng := engine(t)
	for name, text := range samples {
		t.Run(name, func(t *testing.T) {
			first := format.Unit(parse(t, eng, text), format.Options{})
			second := format.Unit(parse(t, eng, first), format.Options{})
			if first != second {
				t.Errorf("second render differs:\n%s\n---\n%s", first, second)
			}
		})
	}
}

func TestCommentsSurvive(t *testing.T) {
	eng := engine(t)
	u := parse(t, eng, samples["function block"])
	out := format.Unit(u, format.Options{})
	for _, c := range []string{"{attribute 'hide'}", "// motor block", "(* enable input *)", "// trailing", "(* inside *)", "(* mid *)", "// inc"} {
		if !strings.Contains(out, c) {
			t.Errorf("rendered text lost %s:\n%s", c, out)
		}
	}
}

func TestCommentsKeepPosition(t *testing.T) {
	eng := engine(t)
	out := format.Unit(parse(t, eng, samples["function block"]), format.Options{})
	for _, want := range []string{
		"IMPLEMENTS I_Motor, I_Drive // motor block\n",
		"nSpeed := nSpeed + (* mid *) 1; // inc\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered text lacks %q:\n%s", want, out)
		}
	}
	if i, j := strings.Index(out, "// motor block"), strings.Index(out, "VAR_INPUT"); i > j {
		t.Errorf("header comment moved below the declarations:\n%s", out)
	}
}

func TestDropComments(t *testing.T) {
	eng := engine(t)
	u := parse(t, eng, samples["function block"])
	out, err := format.RoundTrip(eng, u, format.Options{DropComments: true})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "//") || strings.Contains(out, "(*") || strings.Contains(out, "{attribute") {
		t.Errorf("comments rendered:\n%s", out)
	}
}

func TestRenderFragment(t *testing.T) {
	u := parse(t, engine(t), "PROGRAM P\nx:=a+b*c;\nEND_PROGRAM\n")
	prog := u.Root.Units[0].(*ast.Program)
	if got := format.Render(prog.Body[0], format.Options{}); strings.TrimSpace(got) != "x := a + b * c;" {
		t.Errorf("Render = %q", got)
	}
}

func TestEqualIgnoresSpans(t *testing.T) {
	eng := engine(t)
	a := parse(t, eng, "PROGRAM P\nx := 1;\nEND_PROGRAM\n")
	b := parse(t, eng, "program P\n\n   x:=1; // c\nend_program")
	if !format.Equal(a.Root, b.Root) {
		t.Errorf("trees differ:\n%s", format.Diff(a.Root, b.Root))
	}
	c := parse(t, eng, "PROGRAM P\nx := 2;\nEND_PROGRAM\n")
	if format.Equal(a.Root, c.Root) {
		t.Error("different literals compare equal")
	}
}

func TestRoundTripReportsBrokenRender(t *testing.T) {
	eng := engine(t)
	u := parse(t, eng, "PROGRAM P\nx := 1;\nEND_PROGRAM\n")
	// подменяем дерево: оператор без цели не переживёт повторный разбор
	u.Root.Units[0].(*ast.Program).Body = []ast.Statement{&ast.Jmp{Label: &ast.Ident{Name: "END_IF"}}}
	_, err := format.RoundTrip(eng, u, format.Options{})
	var rt *format.RoundTripError
	if !errors.As(err, &rt) || rt.Rendered == "" {
		t.Errorf("err = %v", err)
	}
}
