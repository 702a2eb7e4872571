package fuzztests

import (
	"io/fs"
	"path/filepath"
	"testing"

	"plcst/internal/twincat"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // 64 KiB
)

var inlineSeeds = []string{
	"",
	"PROGRAM MAIN\nVAR\n\tx : INT;\nEND_VAR\nx := x + 1;\nEND_PROGRAM\n",
	"FUNCTION_BLOCK FB_A EXTENDS FB_B IMPLEMENTS I_A\nVAR_INPUT\n\tb : BOOL; // c\nEND_VAR\nEND_FUNCTION_BLOCK\n",
	"TYPE E : (A := 1, B) INT; END_TYPE",
	"TYPE ST : STRUCT a : ARRAY[0..9] OF INT := [10(0)]; END_STRUCT END_TYPE",
	"VAR_GLOBAL CONSTANT c : INT := 16#FF; END_VAR",
	"(* (* nested *) *) {attribute 'hide'} x := 'it''s'; // tail",
	"IF a THEN b := 1; ELSIF c THEN b := 2; ELSE b := 3; END_IF",
	"CASE n OF 1, 2..5: x := T#1s; ELSE x := TIME#0ms; END_CASE",
	"FOR i := 0 TO 10 BY 2 DO fb(IN := TRUE, Q => q); END_FOR",
	"pX^.y[1, 2] := REF(z); s := \"wide\";",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds the assembled text of every TwinCAT unit under testdata.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "twincat", "testdata")
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !twincat.IsUnitFile(path) {
			return nil
		}
		_, _, text, err := twincat.ReadUnitFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed([]byte(text)))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
