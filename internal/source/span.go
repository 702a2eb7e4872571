package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) of one file. Offsets always
// refer to the original text, also for spans produced from the clean text.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// Overlaps reports whether the two ranges share at least one byte; touching
// spans and empty spans do not overlap.
func (s Span) Overlaps(other Span) bool {
	if s.Start >= s.End || other.Start >= other.End {
		return false
	}
	return s.File == other.File && s.Start < other.End && other.Start < s.End
}

// Cover widens s to include other. Spans of another file are ignored.
func (s Span) Cover(other Span) Span {
	if s.File == other.File {
		s.Start = min(s.Start, other.Start)
		s.End = max(s.End, other.End)
	}
	return s
}
