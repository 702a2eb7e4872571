package driver

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"plcst/internal/ast"
	"plcst/internal/comments"
	"plcst/internal/cst"
	"plcst/internal/diag"
	"plcst/internal/observ"
	"plcst/internal/transform"
)

func newEngine(t *testing.T) *cst.Engine {
	t.Helper()
	eng, err := cst.NewEngine(cst.DefaultGrammar())
	if err != nil {
		t.Fatal(err)
	}
	return eng
}

const counter = `// counts
FUNCTION_BLOCK FB_Counter
VAR
	n : INT;
END_VAR
n := n + 1;
END_FUNCTION_BLOCK
`

func TestParseText(t *testing.T) {
	timer := observ.NewTimer()
	u, err := ParseText(newEngine(t), counter, "FB_Counter.st", Options{Timer: timer})
	if err != nil {
		t.Fatal(err)
	}
	if u.Identifier != "FB_Counter.st" || u.Text != counter {
		t.Errorf("unit = %q %q", u.Identifier, u.Text)
	}
	if len(u.Root.Units) != 1 || u.Root.Units[0].UnitName() != "FB_Counter" {
		t.Fatalf("units = %+v", u.Root.Units)
	}
	if len(u.Comments) != 1 || u.Comments[0].Text != "// counts" {
		t.Errorf("comments = %+v", u.Comments)
	}
	if got := u.Source(u.Root.Units[0]); !strings.HasPrefix(got, "// counts\nFUNCTION_BLOCK") {
		t.Errorf("Source = %q", got)
	}
	for _, name := range []string{"extract", "parse", "transform"} {
		if !strings.Contains(timer.Summary(), name) {
			t.Errorf("timer has no %s phase:\n%s", name, timer.Summary())
		}
	}
}

func TestParseTextPreprocessors(t *testing.T) {
	pps, err := LookupPreprocessors([]string{"tabs-to-spaces", "strip-trailing-whitespace"})
	if err != nil {
		t.Fatal(err)
	}
	u, err := ParseText(newEngine(t), strings.ReplaceAll(counter, ";", ";  "), "x.st", Options{Preprocessors: pps})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(u.Text, "\t") || strings.Contains(u.Text, " \n") {
		t.Errorf("preprocessors not applied: %q", u.Text)
	}
	if _, err := LookupPreprocessors([]string{"nope"}); err == nil {
		t.Error("expected error for an unknown preprocessor")
	}
}

func TestParseTextStages(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		stage  Stage
		target any
		code   diag.Code
	}{
		{"unterminated comment", "PROGRAM P (* open\nEND_PROGRAM\n", StageExtract, new(*comments.LexicalError), diag.LexUnterminatedComment},
		{"syntax", "PROGRAM P\nVAR x : INT END_VAR\nEND_PROGRAM\n", StageParse, new(*cst.GrammarError), 0},
		{"duplicate", "PROGRAM P\nVAR x : INT; X : BOOL; END_VAR\nEND_PROGRAM\n", StageTransform, new(*transform.DuplicateDeclarationError), diag.AstDuplicateDeclaration},
	}
	eng := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseText(eng, tt.text, "u.st", Options{})
			var ue *UnitError
			if !errors.As(err, &ue) {
				t.Fatalf("err = %v", err)
			}
			if ue.Stage != tt.stage || ue.Identifier != "u.st" {
				t.Errorf("stage = %s id = %s", ue.Stage, ue.Identifier)
			}
			if !errors.As(err, tt.target) {
				t.Errorf("err %T does not unwrap to %T", ue.Err, tt.target)
			}
			if d := ue.Diagnostic(); tt.code != 0 && d.Code != tt.code {
				t.Errorf("diagnostic code = %s", d.Code.ID())
			}
		})
	}
}

func TestParseFragmentDuplicate(t *testing.T) {
	_, err := ParseFragment(newEngine(t), "VAR a: INT; a: BOOL; END_VAR", "decls", cst.StartDeclarations, Options{})
	var dup *transform.DuplicateDeclarationError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want *DuplicateDeclarationError", err)
	}
	if dup.Name != "a" || dup.First.Start != 4 || dup.Second.Start != 12 {
		t.Errorf("duplicate = %+v", dup)
	}
}

func TestParseFragmentStarts(t *testing.T) {
	eng := newEngine(t)
	decls, err := ParseFragment(eng, "VAR_INPUT a : INT; END_VAR // in\nVAR b : BOOL; END_VAR", "decls", cst.StartDeclarations, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if list, ok := decls.(*ast.DeclarationList); !ok || len(list.Blocks) != 2 {
		t.Errorf("declarations = %#v", decls)
	}
	stmts, err := ParseFragment(eng, "x := 1;\nfb.Method();", "body", cst.StartStatements, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if list, ok := stmts.(*ast.StatementList); !ok || len(list.Statements) != 2 {
		t.Errorf("statements = %#v", stmts)
	}
	if _, err := ParseFragment(eng, "x := 1;", "body", cst.StartSource, Options{}); err == nil {
		t.Error("statements are not a source file")
	}
}

func TestParseFileTwinCAT(t *testing.T) {
	path := filepath.Join("..", "twincat", "testdata", "sample", "PLC1", "POUs", "FB_Motor.TcPOU")
	u, err := ParseFile(newEngine(t), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, unit := range u.Root.Units {
		names = append(names, unit.UnitName())
	}
	if got := strings.Join(names, " "); got != "FB_Motor Stop Speed Reset" {
		t.Errorf("units = %s", got)
	}
	if _, ok := u.Root.Units[0].(*ast.FunctionBlock); !ok {
		t.Errorf("first unit = %T", u.Root.Units[0])
	}
}

func TestParseFileMissing(t *testing.T) {
	name := filepath.Join(t.TempDir(), "none.st")
	_, err := ParseFile(newEngine(t), name, Options{})
	var ue *UnitError
	if !errors.As(err, &ue) || ue.Stage != StageRead {
		t.Fatalf("err = %v", err)
	}
	d := ue.Diagnostic()
	if d.Code != diag.IOReadFailure || d.Path != name {
		t.Errorf("diagnostic = %+v", d)
	}
}
