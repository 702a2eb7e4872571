package comments

import (
	"errors"
	"strings"
	"testing"

	"plcst/internal/diag"
)

func TestExtractForms(t *testing.T) {
	input := "{attribute 'hide'}\n" +
		"x := 1; // trailing\n" +
		"(* block (* nested *) still *)\n" +
		"/* c style */ y := 2;\n"

	records, clean, err := ExtractString(input)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := []struct {
		kind Kind
		text string
	}{
		{KindPragma, "{attribute 'hide'}"},
		{KindComment, "// trailing"},
		{KindComment, "(* block (* nested *) still *)"},
		{KindComment, "/* c style */"},
	}
	if len(records) != len(want) {
		t.Fatalf("got %d records: %+v", len(records), records)
	}
	for i, w := range want {
		r := records[i]
		if r.Kind != w.kind || r.Text != w.text {
			t.Errorf("record %d = %v %q, want %v %q", i, r.Kind, r.Text, w.kind, w.text)
		}
		if got := input[r.Span.Start:r.Span.End]; got != r.Text {
			t.Errorf("record %d span covers %q", i, got)
		}
	}
	if len(clean) != len(input) {
		t.Fatalf("clean length %d != %d", len(clean), len(input))
	}
	if strings.Count(clean, "\n") != strings.Count(input, "\n") {
		t.Error("newlines must be preserved")
	}
	if !strings.Contains(clean, "x := 1;") || !strings.Contains(clean, "y := 2;") {
		t.Errorf("code lost: %q", clean)
	}
	for _, r := range records {
		if strings.TrimSpace(clean[r.Span.Start:r.Span.End]) != "" {
			t.Errorf("record %q not blanked", r.Text)
		}
	}
}

func TestExtractSkipsStrings(t *testing.T) {
	input := "s := '(* not a comment *) $' // neither';\nw := \"{no pragma}\";"
	records, clean, err := ExtractString(input)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("unexpected records %+v", records)
	}
	if clean != input {
		t.Errorf("clean text changed: %q", clean)
	}
}

func TestExtractMultilineBlockKeepsLines(t *testing.T) {
	input := "a := 1;\n(* one\ntwo\nthree *)\nb := 2;"
	records, clean, err := ExtractString(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %+v", records)
	}
	if want := "a := 1;\n      \n   \n        \nb := 2;"; clean != want {
		t.Errorf("clean = %q, want %q", clean, want)
	}
}

func TestExtractNestedPragmaBraces(t *testing.T) {
	records, _, err := ExtractString("{warning 'a { b } c'} {x {y}}")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[1].Text != "{x {y}}" {
		t.Fatalf("records = %+v", records)
	}
}

func TestExtractErrors(t *testing.T) {
	cases := []struct {
		in    string
		code  diag.Code
		start uint32
	}{
		{"x := 1; (* open", diag.LexUnterminatedComment, 8},
		{"(* outer (* inner *)", diag.LexUnterminatedComment, 0},
		{"/* open", diag.LexUnterminatedComment, 0},
		{"a; {attribute", diag.LexUnterminatedPragma, 3},
		{"s := 'abc", diag.LexUnterminatedString, 5},
	}
	for _, tc := range cases {
		_, _, err := ExtractString(tc.in)
		var lexErr *LexicalError
		if !errors.As(err, &lexErr) {
			t.Fatalf("%q: err = %v, want *LexicalError", tc.in, err)
		}
		if lexErr.Code != tc.code || lexErr.Span.Start != tc.start {
			t.Errorf("%q: got %v at %d, want %v at %d", tc.in, lexErr.Code, lexErr.Span.Start, tc.code, tc.start)
		}
		if d := lexErr.Diagnostic(); d.Severity != diag.SevError || d.Code != tc.code {
			t.Errorf("%q: diagnostic %+v", tc.in, d)
		}
	}
}

func TestRecordBodyAndAttribute(t *testing.T) {
	cases := []struct {
		rec         Record
		body        string
		name, value string
		isAttr      bool
	}{
		{Record{Kind: KindComment, Text: "// hello "}, "hello", "", "", false},
		{Record{Kind: KindComment, Text: "(* doc *)"}, "doc", "", "", false},
		{Record{Kind: KindPragma, Text: "{attribute 'hide'}"}, "attribute 'hide'", "hide", "", true},
		{Record{Kind: KindPragma, Text: "{attribute 'pytmc' := 'pv: X'}"}, "attribute 'pytmc' := 'pv: X'", "pytmc", "pv: X", true},
		{Record{Kind: KindPragma, Text: "{warning 'x'}"}, "warning 'x'", "", "", false},
	}
	for _, tc := range cases {
		if got := tc.rec.Body(); got != tc.body {
			t.Errorf("%q Body() = %q, want %q", tc.rec.Text, got, tc.body)
		}
		name, value, ok := tc.rec.Attribute()
		if ok != tc.isAttr || name != tc.name || value != tc.value {
			t.Errorf("%q Attribute() = %q %q %v", tc.rec.Text, name, value, ok)
		}
	}
	if !(Record{Kind: KindComment, Text: "// x"}).IsLine() || (Record{Kind: KindComment, Text: "(* x *)"}).IsLine() {
		t.Error("IsLine mismatch")
	}
}
