package transform_test

import (
	"errors"
	"testing"

	"plcst/internal/ast"
	"plcst/internal/comments"
	"plcst/internal/cst"
	"plcst/internal/source"
	"plcst/internal/testkit"
	"plcst/internal/token"
	"plcst/internal/transform"
)

type parsed struct {
	file    *source.File
	records []comments.Record
	root    *cst.Node
}

func prepare(t *testing.T, text string, start cst.Start) parsed {
	t.Helper()
	eng, err := cst.NewEngine(cst.DefaultGrammar())
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.st", []byte(text)))
	records, clean, err := comments.Extract(file)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	cleanFile := file.WithContent(clean)
	root, err := eng.Parse(cleanFile, start)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return parsed{file: cleanFile, records: records, root: root}
}

func transformSource(t *testing.T, text string) (*ast.SourceCode, []comments.Record) {
	t.Helper()
	p := prepare(t, text, cst.StartSource)
	code, err := transform.Transform(p.root, p.file, p.records)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	return code, p.records
}

const motor = `{attribute 'hide'}
function_block FB_Motor EXTENDS FB_Base IMPLEMENTS I_Motor // motor block
VAR_INPUT
    (* enable input *)
    bEnable : BOOL; // trailing
    nSpeed : INT := 5 (* inside *);
END_VAR
VAR
    aBuf : ARRAY[0..9] OF INT := [2(0), 8(1)];
    stPos : ST_Pos := (x := 1, y := 2);
    sName : STRING[20];
END_VAR
nSpeed := nSpeed + (* mid *) 1; // inc
fbTimer(IN := bEnable, Q => bDone);
END_FUNCTION_BLOCK
`

func TestFunctionBlockReduction(t *testing.T) {
	code, _ := transformSource(t, motor)
	if len(code.Units) != 1 {
		t.Fatalf("units = %d", len(code.Units))
	}
	fb, ok := code.Units[0].(*ast.FunctionBlock)
	if !ok {
		t.Fatalf("unit = %T", code.Units[0])
	}
	if fb.Name.Name != "FB_Motor" || fb.Extends.String() != "FB_Base" || len(fb.Implements) != 1 {
		t.Errorf("header = %s extends %v implements %v", fb.Name.Name, fb.Extends, fb.Implements)
	}
	if len(fb.Blocks) != 2 || fb.Blocks[0].Kind != ast.VarInput || fb.Blocks[1].Kind != ast.VarLocal {
		t.Fatalf("blocks = %+v", fb.Blocks)
	}

	speed, ok := fb.Decls.Block(ast.VarInput).Lookup("NSPEED")
	if !ok {
		t.Fatal("nSpeed not indexed")
	}
	if lit, ok := speed.Init.(*ast.IntLiteral); !ok || lit.Text != "5" {
		t.Errorf("nSpeed init = %#v", speed.Init)
	}

	buf, _ := fb.Decls.Block(ast.VarLocal).Lookup("aBuf")
	arr, ok := buf.Init.(*ast.ArrayInit)
	if !ok || len(arr.Elems) != 2 || arr.Elems[0].Count == nil {
		t.Fatalf("aBuf init = %#v", buf.Init)
	}
	if _, ok := buf.Type.(*ast.ArrayType); !ok {
		t.Errorf("aBuf type = %T", buf.Type)
	}
	pos, _ := fb.Decls.Block(ast.VarLocal).Lookup("stPos")
	if si, ok := pos.Init.(*ast.StructInit); !ok || len(si.Fields) != 2 || si.Fields[1].Name.Name != "y" {
		t.Errorf("stPos init = %#v", pos.Init)
	}
	name, _ := fb.Decls.Block(ast.VarLocal).Lookup("sName")
	if st, ok := name.Type.(*ast.StringType); !ok || !st.Bracket || st.Wide {
		t.Errorf("sName type = %#v", name.Type)
	}

	if len(fb.Body) != 2 {
		t.Fatalf("body = %d statements", len(fb.Body))
	}
	assign := fb.Body[0].(*ast.Assignment)
	if bin, ok := assign.Value.(*ast.Binary); !ok || bin.Op != token.Plus {
		t.Errorf("assignment value = %#v", assign.Value)
	}
	call := fb.Body[1].(*ast.CallStatement).Call
	if call.Name() != "fbTimer" || len(call.Args) != 2 {
		t.Fatalf("call = %s with %d args", call.Name(), len(call.Args))
	}
	if _, ok := call.Args[0].(*ast.NamedArg); !ok {
		t.Errorf("arg 0 = %T", call.Args[0])
	}
	if out, ok := call.Args[1].(*ast.OutputArg); !ok || out.Name.Name != "Q" || out.Not {
		t.Errorf("arg 1 = %#v", call.Args[1])
	}
}

func TestCommentAttachment(t *testing.T) {
	code, records := transformSource(t, motor)
	fb := code.Units[0].(*ast.FunctionBlock)

	attrs := fb.Attributes()
	if len(attrs) != 1 || attrs[0].Name != "hide" {
		t.Errorf("fb attributes = %+v", attrs)
	}
	if cs := fb.Comments(); len(cs) != 1 || cs[0].Text != "// motor block" {
		t.Errorf("fb comments = %+v", cs)
	}

	enable := fb.Blocks[0].Declarations[0]
	if cs := enable.Comments(); len(cs) != 2 || cs[0].Text != "(* enable input *)" || cs[1].Text != "// trailing" {
		t.Errorf("bEnable comments = %+v", cs)
	}
	speed := fb.Blocks[0].Declarations[1]
	if cs := speed.Comments(); len(cs) != 1 || cs[0].Text != "(* inside *)" {
		t.Errorf("nSpeed comments = %+v", cs)
	}

	assign := fb.Body[0].(*ast.Assignment)
	if cs := assign.Comments(); len(cs) != 1 || cs[0].Text != "// inc" {
		t.Errorf("assignment comments = %+v", cs)
	}
	if cs := ast.MetaOf(assign.Value).Comments(); len(cs) != 1 || cs[0].Text != "(* mid *)" {
		t.Errorf("binary comments = %+v", cs)
	}

	// каждая запись принадлежит ровно одному узлу, и этот узел её покрывает
	if err := testkit.CheckAttachment(code, records); err != nil {
		t.Error(err)
	}
}

func TestSpansNested(t *testing.T) {
	p := prepare(t, motor, cst.StartSource)
	code, err := transform.Transform(p.root, p.file, p.records)
	if err != nil {
		t.Fatal(err)
	}
	if err := testkit.CheckSpanInvariants(code, p.file); err != nil {
		t.Error(err)
	}
}

func TestDuplicateDeclarations(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind string
		dup  string
	}{
		{"same section", "PROGRAM P\nVAR a : INT; A : BOOL; END_VAR\nEND_PROGRAM", "VAR", "A"},
		{"merged sections", "PROGRAM P\nVAR_INPUT x : INT; END_VAR\nVAR_INPUT y, X : INT; END_VAR\nEND_PROGRAM", "VAR_INPUT", "X"},
		{"struct members", "TYPE ST : STRUCT a : INT; a : INT; END_STRUCT END_TYPE", "STRUCT", "a"},
		{"global list", "VAR_GLOBAL g : INT; END_VAR\nVAR_GLOBAL g : INT; END_VAR", "VAR_GLOBAL", "g"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := prepare(t, tt.text, cst.StartSource)
			_, err := transform.Transform(p.root, p.file, p.records)
			var dup *transform.DuplicateDeclarationError
			if !errors.As(err, &dup) {
				t.Fatalf("err = %v, want DuplicateDeclarationError", err)
			}
			if dup.Kind != tt.kind || dup.Name != tt.dup || dup.First.Start >= dup.Second.Start {
				t.Errorf("dup = %+v", dup)
			}
		})
	}
}

func TestSameNameInOtherSectionIsAllowed(t *testing.T) {
	code, _ := transformSource(t, "FUNCTION_BLOCK F\nVAR_INPUT x : INT; END_VAR\nVAR_OUTPUT x : INT; END_VAR\nEND_FUNCTION_BLOCK")
	fb := code.Units[0].(*ast.FunctionBlock)
	if fb.Decls.Len() != 2 {
		t.Errorf("Len = %d", fb.Decls.Len())
	}
}

func TestFragments(t *testing.T) {
	p := prepare(t, "// header\nVAR_TEMP i : DINT; END_VAR", cst.StartDeclarations)
	decls, err := transform.TransformDeclarations(p.root, p.file, p.records)
	if err != nil {
		t.Fatal(err)
	}
	if len(decls.Blocks) != 1 || decls.Blocks[0].Kind != ast.VarTemp {
		t.Fatalf("blocks = %+v", decls.Blocks)
	}
	if cs := decls.Blocks[0].Comments(); len(cs) != 1 {
		t.Errorf("header comment went to %+v", cs)
	}
	if decls.Span.Start != 0 || int(decls.Span.End) != len(p.file.Content) {
		t.Errorf("fragment span = %v, want the whole file", decls.Span)
	}

	p = prepare(t, "CASE n OF 1, 2..4: x := 1; E#A: ; ELSE y := 2; END_CASE", cst.StartStatements)
	stmts, err := transform.TransformStatements(p.root, p.file, p.records)
	if err != nil {
		t.Fatal(err)
	}
	c := stmts.Statements[0].(*ast.Case)
	if len(c.Elements) != 2 || c.Else == nil || len(c.Else.Body) != 1 {
		t.Fatalf("case = %+v", c)
	}
	if _, ok := c.Elements[0].Labels[1].(*ast.Range); !ok {
		t.Errorf("label = %T", c.Elements[0].Labels[1])
	}
	if _, ok := c.Elements[1].Labels[0].(*ast.EnumLiteral); !ok {
		t.Errorf("label = %T", c.Elements[1].Labels[0])
	}
}

func TestUnitKinds(t *testing.T) {
	text := `
INTERFACE I_Drive EXTENDS I_Base, I_Other
END_INTERFACE
FUNCTION F_Add : INT
VAR_INPUT a, b : INT; END_VAR
F_Add := a + b;
END_FUNCTION
METHOD PUBLIC Start : BOOL
Start := TRUE;
END_METHOD
PROPERTY Speed : REAL
Speed := 1.0;
END_PROPERTY
ACTION Reset:
x R= TRUE;
END_ACTION
TYPE
  E_Mode : (Off, On := 5) UINT;
  T_Ptr : POINTER TO INT;
  U_Val : UNION i : INT; r : REAL; END_UNION
END_TYPE
VAR_GLOBAL CONSTANT
  cMax : INT := 10;
END_VAR
`
	code, _ := transformSource(t, text)
	want := []string{"*ast.Interface", "*ast.Function", "*ast.Method", "*ast.Property", "*ast.Action", "*ast.DataTypeDeclaration", "*ast.GlobalVariableList"}
	if len(code.Units) != len(want) {
		t.Fatalf("units = %d", len(code.Units))
	}
	for i, u := range code.Units {
		if got := typeName(u); got != want[i] {
			t.Errorf("unit %d = %s, want %s", i, got, want[i])
		}
	}
	if m := code.Units[2].(*ast.Method); m.Modifiers.Access() != token.KwPublic {
		t.Errorf("method access = %v", m.Modifiers)
	}
	dt := code.Units[5].(*ast.DataTypeDeclaration)
	enum := dt.Types[0].(*ast.EnumType)
	if len(enum.Values) != 2 || enum.Base == nil || enum.Default != nil {
		t.Errorf("enum = %+v", enum)
	}
	if p, ok := dt.Types[1].(*ast.AliasType).Type.(*ast.PointerType); !ok || p.Reference {
		t.Errorf("T_Ptr = %#v", dt.Types[1])
	}
	gvl := code.Units[6].(*ast.GlobalVariableList)
	if !gvl.Blocks[0].HasQualifier(token.KwConstant) {
		t.Error("CONSTANT qualifier lost")
	}
	if code.Units[4].(*ast.Action).Body[0].(*ast.Assignment).Op != token.ResetAssign {
		t.Error("R= lost")
	}
}

func typeName(n ast.Node) string {
	switch n.(type) {
	case *ast.Interface:
		return "*ast.Interface"
	case *ast.Function:
		return "*ast.Function"
	case *ast.Method:
		return "*ast.Method"
	case *ast.Property:
		return "*ast.Property"
	case *ast.Action:
		return "*ast.Action"
	case *ast.DataTypeDeclaration:
		return "*ast.DataTypeDeclaration"
	case *ast.GlobalVariableList:
		return "*ast.GlobalVariableList"
	}
	return "other"
}

func TestSpellingKept(t *testing.T) {
	code, _ := transformSource(t, "program pMain\nvar nCount : int; end_var\nend_program")
	p := code.Units[0].(*ast.Program)
	if p.Name.Name != "pMain" || p.Name.Canonical() != "PMAIN" {
		t.Errorf("name = %q / %q", p.Name.Name, p.Name.Canonical())
	}
	if _, kind, ok := p.Decls.Find("NCOUNT"); !ok || kind != ast.VarLocal {
		t.Error("case-insensitive lookup failed")
	}
}

func TestTransformErrors(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("x.st", []byte("x := 1;")))

	_, err := transform.Transform(nil, file, nil)
	var te *transform.TransformError
	if !errors.As(err, &te) {
		t.Fatalf("nil root: err = %v", err)
	}

	bad := &cst.Node{Rule: cst.RuleStatements, Children: []cst.Child{
		&cst.Node{Rule: cst.RuleAssignment, Children: []cst.Child{
			&cst.Node{Rule: cst.RuleIdentifier, Children: []cst.Child{&cst.Leaf{Token: token.Token{Kind: token.Ident, Text: "x"}}}},
			&cst.Leaf{Token: token.Token{Kind: token.Plus, Text: "+"}},
			&cst.Node{Rule: cst.RuleIntLiteral, Children: []cst.Child{&cst.Leaf{Token: token.Token{Kind: token.IntLit, Text: "1"}}}},
		}},
	}}
	_, err = transform.TransformStatements(bad, file, nil)
	if !errors.As(err, &te) || te.Rule != cst.RuleAssignment {
		t.Fatalf("bad operator: err = %v", err)
	}

	missing := &cst.Node{Rule: cst.RuleStatements, Children: []cst.Child{
		&cst.Node{Rule: cst.RuleCallStatement, Children: []cst.Child{
			&cst.Node{Rule: cst.RuleIdentifier, Children: []cst.Child{&cst.Leaf{Token: token.Token{Kind: token.Ident, Text: "f"}}}},
		}},
	}}
	_, err = transform.TransformStatements(missing, file, nil)
	if !errors.As(err, &te) || te.Rule != cst.RuleCallStatement {
		t.Fatalf("call statement without call: err = %v", err)
	}
	if d := te.Diagnostic(); d.Message == "" {
		t.Error("empty diagnostic")
	}
}
