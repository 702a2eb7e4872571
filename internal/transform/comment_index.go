package transform

import (
	"slices"
	"sort"

	"plcst/internal/comments"
	"plcst/internal/source"
)

// commentIndex keeps the records sorted by start offset and tracks which are taken.
type commentIndex struct {
	recs    []comments.Record
	claimed []bool
	clean   []byte
}

func newCommentIndex(records []comments.Record, clean []byte) *commentIndex {
	recs := slices.Clone(records)
	slices.SortStableFunc(recs, func(a, b comments.Record) int {
		return int(a.Span.Start) - int(b.Span.Start)
	})
	return &commentIndex{recs: recs, claimed: make([]bool, len(recs)), clean: clean}
}

// first returns the index of the first record starting at or after off.
func (x *commentIndex) first(off uint32) int {
	return sort.Search(len(x.recs), func(i int) bool { return x.recs[i].Span.Start >= off })
}

// claim takes every unclaimed record lying inside [lo, hi).
func (x *commentIndex) claim(lo, hi uint32) []comments.Record {
	var out []comments.Record
	for i := x.first(lo); i < len(x.recs) && x.recs[i].Span.Start < hi; i++ {
		if x.claimed[i] || x.recs[i].Span.End > hi {
			continue
		}
		x.claimed[i] = true
		out = append(out, x.recs[i])
	}
	return out
}

// leading takes the unclaimed records in [lo, hi) except those sharing a
// line with the token that ends at lo: they stay with that token's owner.
func (x *commentIndex) leading(lo, hi uint32) []comments.Record {
	var out []comments.Record
	for i := x.first(lo); i < len(x.recs) && x.recs[i].Span.Start < hi; i++ {
		r := x.recs[i]
		if x.claimed[i] || r.Span.End > hi {
			continue
		}
		if lo > 0 && x.blankLine(lo, r.Span.Start) {
			continue
		}
		x.claimed[i] = true
		out = append(out, r)
	}
	return out
}

// gapStart returns the end of the last token before off. Comments are blanked
// in the clean text, so skipping whitespace also skips them.
func (x *commentIndex) gapStart(off uint32) uint32 {
	for off > 0 && isSpace(x.clean[off-1]) {
		off--
	}
	return off
}

// trailing takes the records that follow end on the same line, separated only by blanks.
func (x *commentIndex) trailing(end, limit uint32) ([]comments.Record, uint32) {
	var out []comments.Record
	for i := x.first(end); i < len(x.recs); i++ {
		r := x.recs[i]
		if x.claimed[i] || r.Span.End > limit || !x.blankLine(end, r.Span.Start) {
			break
		}
		x.claimed[i] = true
		out = append(out, r)
		end = r.Span.End
	}
	return out, end
}

func (x *commentIndex) blankLine(from, to uint32) bool {
	for _, b := range x.clean[from:to] {
		if b != ' ' && b != '\t' {
			return false
		}
	}
	return true
}

func (x *commentIndex) unclaimed() int {
	n := 0
	for _, c := range x.claimed {
		if !c {
			n++
		}
	}
	return n
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func cover(sp source.Span, recs []comments.Record) source.Span {
	for _, r := range recs {
		sp = sp.Cover(r.Span)
	}
	return sp
}
