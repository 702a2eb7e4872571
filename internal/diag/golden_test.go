package diag

import (
	"testing"

	"plcst/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	unit := fs.Add("/workspace/POUs/FB_Motor.st", []byte("VAR\n  a : INT;\n  a : BOOL;\nEND_VAR\n"), 0)

	diags := []Diagnostic{
		NewError(AstDuplicateDeclaration, source.Span{File: unit, Start: 17, End: 18}, "duplicate declaration\nof a").
			WithNote(source.Span{File: unit, Start: 6, End: 7}, "first declared here"),
		New(SevWarning, LexBadNumber, source.Span{File: unit, Start: 0, End: 3}, "odd"),
		NewError(SynUnexpectedToken, source.Span{File: 99, Start: 0, End: 1}, "unknown file is dropped"),
	}

	expected := "warning LEX1005 POUs/FB_Motor.st:1:1 odd\n" +
		"note AST3001 POUs/FB_Motor.st:2:3 first declared here\n" +
		"error AST3001 POUs/FB_Motor.st:3:3 duplicate declaration of a"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	bag := NewBag(3)
	r := BagReporter{Bag: bag}
	r.Report(SynUnexpectedToken, SevError, source.Span{Start: 9, End: 10}, "b", nil)
	r.Report(LexUnknownChar, SevError, source.Span{Start: 1, End: 2}, "a", nil)
	r.Report(LexUnknownChar, SevError, source.Span{Start: 1, End: 2}, "a again", nil)
	if bag.Add(NewError(LexBadNumber, source.Span{}, "over limit")) {
		t.Fatal("Add past the limit must fail")
	}
	bag.Sort()
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
	if bag.Items()[0].Message != "a" {
		t.Errorf("first item = %q, want a", bag.Items()[0].Message)
	}
	if !bag.HasErrors() {
		t.Error("HasErrors = false")
	}
}

func TestFirstErrorReporter(t *testing.T) {
	var r FirstErrorReporter
	r.Report(LexInfo, SevInfo, source.Span{}, "info", nil)
	r.Report(LexUnknownChar, SevError, source.Span{Start: 4, End: 5}, "first", nil)
	r.Report(LexBadNumber, SevError, source.Span{}, "second", nil)
	if r.First == nil || r.First.Message != "first" {
		t.Fatalf("First = %+v", r.First)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnterminatedComment:  "LEX1003",
		SynUnexpectedToken:      "SYN2001",
		AstDuplicateDeclaration: "AST3001",
		PrjManifestInvalid:      "PRJ5001",
		SumNotFound:             "SUM6001",
		UnknownCode:             "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}

func TestFormatGoldenUnpositioned(t *testing.T) {
	fs := source.NewFileSet()
	d := NewError(IOReadFailure, source.Span{}, "open POUs/MAIN.TcPOU: permission denied")
	d.Path = "PLC1/POUs/MAIN"
	want := "error IO4001 PLC1/POUs/MAIN open POUs/MAIN.TcPOU: permission denied"
	if got := FormatGoldenDiagnostics([]Diagnostic{d}, fs, false); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSeverityString(t *testing.T) {
	if SevError.String() != "ERROR" || SevWarning.String() != "WARNING" || Severity(9).String() != "UNKNOWN" {
		t.Error("unexpected severity names")
	}
}
