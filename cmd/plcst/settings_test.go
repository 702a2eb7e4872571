package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"plcst/internal/diag"
	"plcst/internal/driver"
	"plcst/internal/summary"
	"plcst/internal/xref"
)

func newTestRoot(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "plcst-test"}
	registerPersistentFlags(cmd)
	if err := cmd.PersistentFlags().Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func writeManifest(t *testing.T, data string) string {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, "plcst.toml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected error for an unknown mode")
	}
	if !shouldUseTUI(uiModeOn, 3) || shouldUseTUI(uiModeOff, 0) {
		t.Error("explicit --ui must win over verbosity")
	}
}

func TestLoadSettingsFromManifest(t *testing.T) {
	path := writeManifest(t, `
[parse]
jobs = 3
max_diagnostics = 7
preprocessors = ["normalize"]

[cache]
dir = "cache"
`)
	s, err := loadSettings(newTestRoot(t, "--config", path, "--color", "off"))
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.jobs != 3 || s.maxDiagnostics != 7 {
		t.Errorf("jobs, max = %d, %d; want 3, 7", s.jobs, s.maxDiagnostics)
	}
	if len(s.preprocessors) != 1 {
		t.Errorf("preprocessors = %d, want 1", len(s.preprocessors))
	}
	if !s.cache {
		t.Error("cache should default to enabled with a manifest")
	}
	if want := filepath.Join(filepath.Dir(path), "cache"); s.cacheDir != want {
		t.Errorf("cacheDir = %q, want %q", s.cacheDir, want)
	}
}

func TestFlagsOverrideManifest(t *testing.T) {
	path := writeManifest(t, "[parse]\njobs = 3\n[cache]\nenabled = true\n")
	s, err := loadSettings(newTestRoot(t, "--config", path, "--color", "off", "--jobs", "1", "--cache=false", "-vv"))
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.jobs != 1 || s.cache || s.verbose != 2 {
		t.Errorf("jobs=%d cache=%v verbose=%d; want 1 false 2", s.jobs, s.cache, s.verbose)
	}
}

func TestLoadSettingsRejectsUnknownPreprocessor(t *testing.T) {
	path := writeManifest(t, "")
	_, err := loadSettings(newTestRoot(t, "--config", path, "--color", "off", "--preprocess", "rot13"))
	if err == nil || !strings.Contains(err.Error(), "normalize") {
		t.Fatalf("err = %v, want the list of known preprocessors", err)
	}
}

func TestUnitDiagnosticKeepsIdentifier(t *testing.T) {
	d := unitDiagnostic(driver.UnitResult{Identifier: "PLC1/POUs/MAIN", Err: errors.New("boom")})
	if d.Path != "PLC1/POUs/MAIN" || d.Code != diag.UnknownCode {
		t.Errorf("diagnostic = %+v", d)
	}
}

func TestLookupQualifiedNames(t *testing.T) {
	eng, err := engine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	text := `FUNCTION_BLOCK FB_Motor
VAR_INPUT
    bEnable : BOOL;
END_VAR
END_FUNCTION_BLOCK

METHOD Start : BOOL
END_METHOD
`
	u, err := driver.ParseText(eng, text, "FB_Motor.st", driver.Options{})
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	s := summary.Summarize(u)

	got, err := lookup(s, "auto", "fb_motor.start")
	if err != nil {
		t.Fatalf("lookup method: %v", err)
	}
	if m, ok := got.(*summary.MemberSummary); !ok || m.Name != "Start" {
		t.Errorf("lookup = %#v, want method Start", got)
	}
	got, err = lookup(s, "auto", "FB_Motor.bEnable")
	if err != nil {
		t.Fatalf("lookup declaration: %v", err)
	}
	if _, ok := got.(*summary.DeclarationSummary); !ok {
		t.Errorf("lookup = %#v, want a declaration", got)
	}
	_, err = lookup(s, "type", "FB_Motor")
	var nf *summary.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("lookup type = %v, want NotFoundError", err)
	}
}

func TestFmtPathsExpandsDirectories(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.st", "sub/B.ST", "notes.txt", ".hidden/c.st"} {
		p := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	got, err := fmtPaths([]string{root})
	if err != nil {
		t.Fatalf("fmtPaths: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("fmtPaths = %v, want a.st and sub/B.ST", got)
	}
}

func TestPrintParseTotals(t *testing.T) {
	var buf bytes.Buffer
	printParseTotals(&buf, []driver.UnitResult{{}, {Cached: true}, {Err: errors.New("x")}})
	if got := buf.String(); got != "parsed 2 of 3 units (1 from cache)\n" {
		t.Errorf("totals = %q", got)
	}
}

func TestPrintTagsNotes(t *testing.T) {
	var buf bytes.Buffer
	printTags(&buf, []xref.Tag{
		{Symbol: xref.Symbol{Kind: "FUNCTION_BLOCK", Qualified: "FB_A", Filename: "a.st"}, Attribute: "pack_mode", Value: "1", Known: true, Misplaced: true},
		{Symbol: xref.Symbol{Kind: "VAR", Qualified: "FB_A.x", Filename: "a.st", StartByte: 40}, Attribute: "pytmc"},
	})
	out := buf.String()
	for _, want := range []string{"not valid on function_block", "unknown", "a.st:40"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
