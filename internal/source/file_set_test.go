package source

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.st", []byte("PROGRAM Main END_PROGRAM"), 0)
	id2 := fs.Add("main.st", []byte("PROGRAM Main2 END_PROGRAM"), 0)
	if id1 == id2 {
		t.Fatal("expected a new FileID for the second Add")
	}
	latest, ok := fs.Latest("main.st")
	if !ok || latest != id2 {
		t.Fatalf("Latest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "PROGRAM Main END_PROGRAM" {
		t.Errorf("first version lost: %q", got)
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.st", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, expected)
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], val)
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.st", []byte("x := 1;\n  y := 2;\n"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{7, LineCol{Line: 1, Col: 8}}, // сам перевод строки
		{8, LineCol{Line: 2, Col: 1}},
		{10, LineCol{Line: 2, Col: 3}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	f := &File{Content: []byte("one\ntwo\nthree")}
	f.LineIdx = buildLineIndex(f.Content)
	for line, want := range map[uint32]string{1: "one", 2: "two", 3: "three", 4: "", 0: ""} {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		raw   []byte
		want  string
		flags FileFlags
	}{
		{"plain", []byte("a\nb\n"), "a\nb\n", 0},
		{"bom", []byte("\xEF\xBB\xBFa\n"), "a\n", FileHadBOM},
		{"crlf", []byte("a\r\nb\r\n"), "a\nb\n", FileNormalizedCRLF},
		{"lone cr kept", []byte("a\rb"), "a\rb", 0},
		{"windows-1252", []byte("s := '\xB0C';"), "s := '°C';", FileDecodedLegacy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flags := Normalize(tt.raw)
			if string(got) != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
			if flags != tt.flags {
				t.Errorf("flags = %b, want %b", flags, tt.flags)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.st")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Errorf("content = %q", file.Content)
	}
	if file.Flags&(FileHadBOM|FileNormalizedCRLF) != FileHadBOM|FileNormalizedCRLF {
		t.Errorf("flags = %b", file.Flags)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.st")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestFileSetConcurrentAdd(t *testing.T) {
	fs := NewFileSet()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fs.AddVirtual("unit.st", []byte("x"))
		}()
	}
	wg.Wait()
	if fs.Len() != 16 {
		t.Errorf("Len = %d, want 16", fs.Len())
	}
}

func TestFileText(t *testing.T) {
	f := &File{Content: []byte("FUNCTION_BLOCK FB_Motor")}
	if got := f.Text(Span{Start: 15, End: 23}); got != "FB_Motor" {
		t.Errorf("Text = %q", got)
	}
	if got := f.Text(Span{Start: 20, End: 99}); got != "tor" {
		t.Errorf("clamped Text = %q", got)
	}
}
