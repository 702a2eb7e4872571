package lexer

import (
	"testing"

	"plcst/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.st", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("cursor must stay at EOF")
	}
}

func TestCursorPeek2(t *testing.T) {
	cursor := NewCursor(createFile(":="))
	b0, b1, ok := cursor.Peek2()
	if !ok || b0 != ':' || b1 != '=' {
		t.Fatalf("Peek2() = %q %q %v", b0, b1, ok)
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatal("Peek2 past the end must fail")
	}
}

func TestCursorMarkSpanReset(t *testing.T) {
	file := createFile("VAR x")
	cursor := NewCursor(file)
	m := cursor.Mark()
	for i := 0; i < 3; i++ {
		cursor.Bump()
	}
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 3 || sp.File != file.ID {
		t.Fatalf("SpanFrom = %+v", sp)
	}
	cursor.Reset(m)
	if !cursor.Eat('V') || cursor.Eat('x') {
		t.Fatal("Eat after Reset mismatch")
	}
}

func TestByteClasses(t *testing.T) {
	for _, tt := range []struct {
		b                       byte
		start, cont, dec, isHex bool
	}{
		{'a', true, true, false, true},
		{'G', true, true, false, false},
		{'_', true, true, false, false},
		{'7', false, true, true, true},
		{'#', false, false, false, false},
		{0xC3, false, false, false, false},
	} {
		if isIdentStartByte(tt.b) != tt.start || isIdentContinueByte(tt.b) != tt.cont ||
			isDec(tt.b) != tt.dec || isHex(tt.b) != tt.isHex {
			t.Errorf("classes of %q wrong", tt.b)
		}
	}
}
