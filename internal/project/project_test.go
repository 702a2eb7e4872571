package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plcst/internal/diag"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

const demoManifest = `
[project]
name = "demo"

[[target]]
name = "PLC1"
pous = ["pou/*.st"]
globals = ["gvl/*.st"]
data_types = ["dut/*.st"]

[parse]
jobs = 2
preprocessors = ["strip-bom"]
`

func TestManifestReader(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"plcst.toml":     demoManifest,
		"pou/MAIN.st":    "PROGRAM MAIN\r\nEND_PROGRAM\r\n",
		"pou/FB_A.st":    "FUNCTION_BLOCK FB_A END_FUNCTION_BLOCK",
		"gvl/GVL.st":     "VAR_GLOBAL END_VAR",
		"dut/E_Mode.st":  "TYPE E_Mode : (A, B); END_TYPE",
		"dut/readme.txt": "not matched",
	})

	proj, err := ManifestReader{}.ReadProject(dir)
	if err != nil {
		t.Fatalf("ReadProject: %v", err)
	}
	if proj.Name != "demo" || len(proj.Targets) != 1 {
		t.Fatalf("project = %+v", proj)
	}
	var got []string
	for _, u := range proj.Targets[0].Ordered() {
		got = append(got, u.Kind.String()+":"+u.Filename)
	}
	want := "data type:dut/E_Mode.st global variables:gvl/GVL.st POU:pou/FB_A.st POU:pou/MAIN.st"
	if strings.Join(got, " ") != want {
		t.Errorf("units = %v\nwant    %s", got, want)
	}

	var main Unit
	for _, u := range proj.Targets[0].Units {
		if u.Name == "MAIN" {
			main = u
		}
	}
	text, err := main.Source()
	if err != nil || text != "PROGRAM MAIN\nEND_PROGRAM\n" {
		t.Errorf("Source() = %q, %v", text, err)
	}
}

func TestLoadManifestValidation(t *testing.T) {
	tests := []struct {
		name, body, wantErr string
	}{
		{"target without project name", "[[target]]\nname = \"X\"\n", "missing [project].name"},
		{"target without name", "[project]\nname = \"p\"\n[[target]]\npous = []\n", "missing name"},
		{"duplicate target", "[project]\nname = \"p\"\n[[target]]\nname = \"a\"\n[[target]]\nname = \"A\"\n", "duplicate target"},
		{"unknown key", "[parse]\nthreads = 4\n", "unknown keys: parse.threads"},
		{"negative jobs", "[parse]\njobs = -1\n", "must not be negative"},
		{"bad toml", "[parse\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, map[string]string{"plcst.toml": tt.body})
			_, err := LoadManifest(filepath.Join(dir, "plcst.toml"))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
			var me *ManifestError
			if !errors.As(err, &me) || me.Diagnostic().Code != diag.PrjManifestInvalid {
				t.Errorf("err %T is not a PRJ5001 ManifestError", err)
			}
		})
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "plcst.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
	var me *ManifestError
	if !errors.As(err, &me) || me.Diagnostic().Code != diag.IOReadFailure {
		t.Errorf("missing manifest diagnostic = %+v", err)
	}
}

func TestLoadNearestDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"plcst.toml":       "[parse]\nmax_diagnostics = 10\n",
		"deep/nested/x.st": "",
	})
	m, ok, err := LoadNearest(filepath.Join(dir, "deep", "nested"))
	if err != nil || !ok {
		t.Fatalf("LoadNearest = %v, %v", ok, err)
	}
	if !m.Config.Cache.Enabled {
		t.Error("cache should default to enabled")
	}
	if m.Config.Parse.MaxDiagnostics != 10 || m.HasProject() {
		t.Errorf("config = %+v", m.Config)
	}
	if _, err := (ManifestReader{}).ReadProject(m.Path); !errors.Is(err, ErrNoTargets) {
		t.Errorf("ReadProject without targets: %v", err)
	}
}

func TestHashPrefixesLengths(t *testing.T) {
	if Hash("ab", "c") == Hash("a", "bc") {
		t.Error("length prefixes missing")
	}
	if Hash("x").IsZero() || len(Hash("x").String()) != 64 {
		t.Error("unexpected digest")
	}
}
