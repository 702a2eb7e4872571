package diag

import (
	"cmp"
	"slices"

	"plcst/internal/source"
)

// Bag collects diagnostics up to a limit.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag создаёт Bag с лимитом limit; limit <= 0 означает без лимита.
func NewBag(limit int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, min(max(limit, 0), 64)),
		max:   limit,
	}
}

// Add returns false once the limit is reached; the diagnostic is dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

func (b *Bag) Len() int { return len(b.items) }

// Items returns the internal slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sort orders by file, position, path, severity (highest first) and code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(x.Path, y.Path),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

type dedupKey struct {
	code Code
	path string
	span source.Span
}

// Dedup keeps the first diagnostic per code, path and primary span.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]bool, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := dedupKey{d.Code, d.Path, d.Primary}
		if seen[k] {
			return true
		}
		seen[k] = true
		return false
	})
}
