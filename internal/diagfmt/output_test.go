package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"plcst/internal/ast"
	"plcst/internal/cst"
	"plcst/internal/diagfmt"
	"plcst/internal/driver"
	"plcst/internal/source"
	"plcst/internal/summary"
)

const motor = `FUNCTION_BLOCK FB_Motor EXTENDS FB_Base
VAR_INPUT
	bEnable : BOOL; // разрешение
END_VAR
nSpeed := 10 + 2;
END_FUNCTION_BLOCK
METHOD Stop : BOOL
Stop := TRUE;
END_METHOD
`

func parse(t *testing.T, fs *source.FileSet) *ast.SourceUnit {
	t.Helper()
	eng, err := cst.NewEngine(cst.DefaultGrammar())
	if err != nil {
		t.Fatal(err)
	}
	u, err := driver.ParseText(eng, motor, "FB_Motor.st", driver.Options{FileSet: fs})
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	return u
}

func TestFormatASTPretty(t *testing.T) {
	fs := source.NewFileSet()
	u := parse(t, fs)
	var buf bytes.Buffer
	if err := diagfmt.FormatASTPretty(&buf, u, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"FB_Motor.st (span: 1:1-",
		"FunctionBlock FB_Motor",
		"VariableBlock VAR_INPUT",
		"Declaration bEnable",
		`comment="// разрешение"`,
		"Binary +",
		"└─ Method Stop",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree lacks %q:\n%s", want, out)
		}
	}
}

func TestASTOutputJSON(t *testing.T) {
	u := parse(t, nil)
	var buf bytes.Buffer
	if err := diagfmt.FormatASTJSON(&buf, u); err != nil {
		t.Fatal(err)
	}
	var root diagfmt.ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	if root.Type != "SourceCode" || len(root.Children) != 2 {
		t.Fatalf("root = %s with %d children", root.Type, len(root.Children))
	}
	if root.Children[1].Label != "Stop" {
		t.Errorf("second unit label = %q", root.Children[1].Label)
	}
}

func TestSummaryPretty(t *testing.T) {
	s := summary.Summarize(parse(t, nil))
	var buf bytes.Buffer
	if err := diagfmt.SummaryPretty(&buf, s, false); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"FUNCTION_BLOCK FB_Motor EXTENDS FB_Base  FB_Motor.st",
		"  VAR_INPUT",
		"    bEnable : BOOL  // разрешение",
		"  METHOD FB_Motor.Stop : BOOL",
	}
	out := buf.String()
	for _, w := range want {
		if !strings.Contains(out, w+"\n") {
			t.Errorf("summary lacks %q:\n%s", w, out)
		}
	}
}

func TestSummaryJSON(t *testing.T) {
	s := summary.Summarize(parse(t, nil))
	var buf bytes.Buffer
	if err := diagfmt.SummaryJSON(&buf, s); err != nil {
		t.Fatal(err)
	}
	var back summary.CodeSummary
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	fb, err := back.Find("fb_motor")
	if err != nil {
		t.Fatalf("FB_Motor lost in JSON:\n%s", buf.String())
	}
	if fb.Filename != "FB_Motor.st" || len(fb.Methods) != 1 {
		t.Errorf("function block = %+v", fb)
	}
}
