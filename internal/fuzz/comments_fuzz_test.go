package fuzztests

import (
	"testing"

	"plcst/internal/comments"
	"plcst/internal/diag"
	"plcst/internal/lexer"
	"plcst/internal/source"
)

// FuzzExtractKeepsOffsets checks that the clean text has the input's length,
// that only comment bytes change, and that records are ordered and disjoint.
func FuzzExtractKeepsOffsets(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.st", input))

		records, clean, err := comments.Extract(file)
		if err != nil {
			return
		}
		if len(clean) != len(input) {
			t.Fatalf("clean text is %d bytes, input %d", len(clean), len(input))
		}
		inside := make([]bool, len(input))
		var prev source.Span
		for i, r := range records {
			if i > 0 && r.Span.Start < prev.End {
				t.Fatalf("record %d at %v overlaps %v", i, r.Span, prev)
			}
			prev = r.Span
			if got := string(input[r.Span.Start:r.Span.End]); got != r.Text {
				t.Fatalf("record text %q differs from input %q", r.Text, got)
			}
			for j := r.Span.Start; j < r.Span.End; j++ {
				inside[j] = true
			}
		}
		for i := range input {
			if !inside[i] && clean[i] != input[i] {
				t.Fatalf("byte %d outside comments changed: %q -> %q", i, input[i], clean[i])
			}
			if inside[i] && input[i] == '\n' && clean[i] != '\n' {
				t.Fatalf("newline at %d inside a comment was not kept", i)
			}
		}
	})
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.st", input))

		bag := diag.NewBag(64)
		toks := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		for i := 1; i < len(toks); i++ {
			if toks[i].Span.Start < toks[i-1].Span.End {
				t.Fatalf("token %d %v starts before previous ends %v", i, toks[i].Span, toks[i-1].Span)
			}
		}
	})
}
