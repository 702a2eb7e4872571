// Package testkit holds tree checks shared by package tests and fuzz targets.
package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"plcst/internal/ast"
	"plcst/internal/comments"
	"plcst/internal/source"
)

// CheckSpanInvariants verifies the spans of a parsed tree:
// 1) the root span lies inside the file content
// 2) every child span is inside its parent and points at the same file
// 3) siblings do not overlap
func CheckSpanInvariants(root ast.Node, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil root or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	top := ast.SpanOf(root)
	if top.File != sf.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", top.File, sf.ID)
	}
	if top.Start > top.End || top.End > lenContent {
		return fmt.Errorf("root span %v outside content of %d bytes", top, lenContent)
	}

	var errs []error
	var check func(n ast.Node)
	check = func(n ast.Node) {
		parent := ast.SpanOf(n)
		kids := ast.Children(n)
		for i, c := range kids {
			sp := ast.SpanOf(c)
			if !parent.Contains(sp) {
				errs = append(errs, fmt.Errorf("%T %v escapes parent %T %v", c, sp, n, parent))
			}
			if i > 0 && ast.SpanOf(kids[i-1]).Overlaps(sp) {
				errs = append(errs, fmt.Errorf("siblings %T %v and %T %v overlap", kids[i-1], ast.SpanOf(kids[i-1]), c, sp))
			}
			check(c)
		}
	}
	check(root)
	return errors.Join(errs...)
}

// CheckAttachment verifies that every record in records is attached to exactly
// one node and that the node covers it. Leading must not exceed the number of
// attached records.
func CheckAttachment(root ast.Node, records []comments.Record) error {
	var errs []error
	seen := make(map[source.Span]int, len(records))
	ast.Inspect(root, func(n ast.Node) bool {
		m := ast.MetaOf(n)
		if m.Leading > len(m.Attached) {
			errs = append(errs, fmt.Errorf("%T: Leading=%d with %d attached", n, m.Leading, len(m.Attached)))
		}
		for _, r := range m.Attached {
			seen[r.Span]++
			if !m.Span.Contains(r.Span) {
				errs = append(errs, fmt.Errorf("%T %v does not contain attached %q", n, m.Span, r.Text))
			}
		}
		return true
	})
	for _, r := range records {
		switch seen[r.Span] {
		case 1:
		case 0:
			errs = append(errs, fmt.Errorf("record %q at %v not attached", r.Text, r.Span))
		default:
			errs = append(errs, fmt.Errorf("record %q at %v attached %d times", r.Text, r.Span, seen[r.Span]))
		}
		delete(seen, r.Span)
	}
	for sp := range seen {
		errs = append(errs, fmt.Errorf("attached record at %v was never extracted", sp))
	}
	return errors.Join(errs...)
}

// CheckUnit runs both checks on a SourceUnit; fs must hold its text.
func CheckUnit(u *ast.SourceUnit, fs *source.FileSet) error {
	if u.Root == nil {
		return fmt.Errorf("%s: no tree", u.Identifier)
	}
	sf := fs.Get(u.File)
	if sf == nil {
		return fmt.Errorf("%s: file %d not in set", u.Identifier, u.File)
	}
	return errors.Join(CheckSpanInvariants(u.Root, sf), CheckAttachment(u.Root, u.Comments))
}
