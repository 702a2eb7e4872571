package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"plcst/internal/source"
)

// Cursor walks the clean (comment-free) text of one file byte by byte.
// Offsets are those of the original file since the extractor keeps lengths.
type Cursor struct {
	src  []byte
	file source.FileID
	end  uint32
	Off  uint32
}

// NewCursor creates a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("unit text too large: %w", err))
	}
	return Cursor{src: f.Content, file: f.ID, end: end}
}

func (c *Cursor) EOF() bool { return c.Off >= c.end }

// Peek returns the current byte or 0 at the end.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.Off]
}

// Peek2 returns the current and the next byte; ok is false if either is missing.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.end {
		return 0, 0, false
	}
	return c.src[c.Off], c.src[c.Off+1], true
}

// Bump consumes one byte and returns it.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.Off]
	c.Off++
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.Peek() != b || c.EOF() {
		return false
	}
	c.Off++
	return true
}

// Mark remembers a position for SpanFrom and Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

// классы байтов для идентификаторов и чисел
const (
	clLetter uint8 = 1 << iota
	clDigit
	clHex
)

var byteClass = func() (t [256]uint8) {
	for b := 'a'; b <= 'z'; b++ {
		t[b] |= clLetter
		t[b-'a'+'A'] |= clLetter
	}
	t['_'] |= clLetter
	for b := '0'; b <= '9'; b++ {
		t[b] |= clDigit | clHex
	}
	for b := 'a'; b <= 'f'; b++ {
		t[b] |= clHex
		t[b-'a'+'A'] |= clHex
	}
	return t
}()

func isIdentStartByte(b byte) bool    { return byteClass[b]&clLetter != 0 }
func isIdentContinueByte(b byte) bool { return byteClass[b]&(clLetter|clDigit) != 0 }
func isDec(b byte) bool               { return byteClass[b]&clDigit != 0 }
func isHex(b byte) bool               { return byteClass[b]&clHex != 0 }

// try2 consumes the two-byte operator ab if it is next.
func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Off += 2
	return true
}
