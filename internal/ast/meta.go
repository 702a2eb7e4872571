package ast

import (
	"plcst/internal/comments"
	"plcst/internal/source"
)

// Meta is embedded in every node.
type Meta struct {
	Span     source.Span
	Attached []comments.Record
	// Leading counts the Attached records written before the node itself.
	Leading int
}

func (m *Meta) meta() *Meta { return m }

// Comments returns the attached comments (not pragmas) in source order.
func (m *Meta) Comments() []comments.Record {
	return m.filter(comments.KindComment)
}

// Pragmas returns the attached pragmas in source order.
func (m *Meta) Pragmas() []comments.Record {
	return m.filter(comments.KindPragma)
}

func (m *Meta) filter(kind comments.Kind) []comments.Record {
	var out []comments.Record
	for _, r := range m.Attached {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// Attributes returns the {attribute ...} pragmas attached to the node.
func (m *Meta) Attributes() []Attribute {
	var out []Attribute
	for _, r := range m.Attached {
		if name, value, ok := r.Attribute(); ok {
			out = append(out, Attribute{Name: name, Value: value})
		}
	}
	return out
}

// Node is implemented by every AST node.
type Node interface {
	meta() *Meta
}

// MetaOf gives access to the shared fields of any node.
func MetaOf(n Node) *Meta { return n.meta() }

// SpanOf returns the span of n.
func SpanOf(n Node) source.Span { return n.meta().Span }
