package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"plcst/internal/diag"
	"plcst/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs, id := motorFile()
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 40, End: 45}, "unexpected string").
		WithNote(source.Span{File: id, Start: 18, End: 19}, "declared here"))
	d := diag.NewError(diag.IOUnitSourceFailure, source.Span{}, "no ST element")
	d.Path = "POUs/FB_Empty.TcPOU"
	bag.Add(d)
	return bag, fs
}

func TestBuildDiagnosticsOutput(t *testing.T) {
	bag, fs := sampleBag(t)
	got := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true})
	want := DiagnosticsOutput{
		Count: 2,
		Diagnostics: []DiagnosticJSON{
			{
				Severity: "ERROR",
				Code:     "SYN2001",
				Message:  "unexpected string",
				Location: LocationJSON{File: "MAIN.st", StartByte: 40, EndByte: 45, StartLine: 5, StartCol: 6, EndLine: 5, EndCol: 11},
				Notes: []NoteJSON{{
					Message:  "declared here",
					Location: LocationJSON{File: "MAIN.st", StartByte: 18, EndByte: 19, StartLine: 3, StartCol: 2, EndLine: 3, EndCol: 3},
				}},
			},
			{
				Severity: "ERROR",
				Code:     "IO4002",
				Message:  "no ST element",
				Location: LocationJSON{File: "POUs/FB_Empty.TcPOU"},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagnosticsMax(t *testing.T) {
	bag, fs := sampleBag(t)
	got := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if got.Count != 1 || got.Diagnostics[0].Notes != nil {
		t.Errorf("Max/IncludeNotes ignored: %+v", got)
	}
	if got.Diagnostics[0].Location.StartLine != 0 {
		t.Errorf("positions included without IncludePositions")
	}
}

func TestJSONAndYAMLAgree(t *testing.T) {
	bag, fs := sampleBag(t)
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeRelative, IncludeNotes: true}

	var jbuf, ybuf bytes.Buffer
	if err := JSON(&jbuf, bag, fs, opts); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if err := YAML(&ybuf, bag, fs, opts); err != nil {
		t.Fatalf("YAML: %v", err)
	}
	var fromJSON, fromYAML DiagnosticsOutput
	if err := json.Unmarshal(jbuf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if err := yaml.Unmarshal(ybuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("yaml.Unmarshal: %v\n%s", err, ybuf.String())
	}
	if diff := cmp.Diff(fromJSON, fromYAML); diff != "" {
		t.Errorf("JSON and YAML differ (-json +yaml):\n%s", diff)
	}
	if fromJSON.Diagnostics[0].Location.File != "POUs/MAIN.st" {
		t.Errorf("relative path = %q", fromJSON.Diagnostics[0].Location.File)
	}
}
