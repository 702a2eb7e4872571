package xref

import (
	"strings"

	"plcst/internal/summary"
)

// symbols flattens s in summary order: each unit is followed by its
// declarations and members.
func symbols(s *summary.CodeSummary) []Symbol {
	var out []Symbol
	for _, fb := range s.FunctionBlocks {
		out = append(out, Symbol{
			Kind:      fb.Kind,
			Name:      fb.Name,
			Qualified: fb.Name,
			Type:      fb.ReturnType,
			Filename:  fb.Filename,
			StartByte: fb.Span.Start,
			EndByte:   fb.Span.End,
			Comments:  join(fb.Comments),
			attrs:     fb.Attributes,
		})
		out = appendBlocks(out, fb.Blocks)
		for _, group := range [][]*summary.MemberSummary{fb.Methods, fb.Properties, fb.Actions} {
			for _, m := range group {
				out = appendMember(out, m)
			}
		}
	}
	for _, dt := range s.DataTypes {
		out = append(out, Symbol{
			Kind:      "TYPE",
			Name:      dt.Name,
			Qualified: dt.Name,
			Type:      dt.Kind,
			Filename:  dt.Filename,
			StartByte: dt.Span.Start,
			EndByte:   dt.Span.End,
			Comments:  join(dt.Comments),
			attrs:     dt.Attributes,
		})
		for _, m := range dt.Members {
			out = append(out, declaration(m))
		}
		for _, v := range dt.Values {
			out = append(out, Symbol{
				Kind:      "ENUM_VALUE",
				Name:      v.Name,
				Parent:    dt.Name,
				Qualified: dt.Name + "." + v.Name,
				Type:      dt.Name,
				Filename:  dt.Filename,
			})
		}
	}
	for _, g := range s.Globals {
		out = append(out, Symbol{
			Kind:      "GVL",
			Name:      g.Name,
			Qualified: g.Name,
			Filename:  g.Filename,
			StartByte: g.Span.Start,
			EndByte:   g.Span.End,
			Comments:  join(g.Comments),
			attrs:     g.Attributes,
		})
		out = appendBlocks(out, g.Blocks)
	}
	for _, m := range s.Detached {
		out = appendMember(out, m)
	}
	return out
}

func appendMember(out []Symbol, m *summary.MemberSummary) []Symbol {
	out = append(out, Symbol{
		Kind:      m.Kind,
		Name:      m.Name,
		Parent:    m.Owner,
		Qualified: m.QualifiedName(),
		Type:      m.Type,
		Filename:  m.Filename,
		StartByte: m.Span.Start,
		EndByte:   m.Span.End,
		Comments:  join(m.Comments),
		attrs:     m.Attributes,
	})
	return appendBlocks(out, m.Blocks)
}

func appendBlocks(out []Symbol, blocks []*summary.BlockSummary) []Symbol {
	for _, b := range blocks {
		for _, d := range b.Declarations {
			out = append(out, declaration(d))
		}
	}
	return out
}

func declaration(d *summary.DeclarationSummary) Symbol {
	return Symbol{
		Kind:      d.Block,
		Name:      d.Name,
		Parent:    d.Parent,
		Qualified: d.QualifiedName(),
		Type:      d.Type,
		Filename:  d.Filename,
		StartByte: d.Span.Start,
		EndByte:   d.Span.End,
		Comments:  join(d.Comments),
		attrs:     d.Attributes,
	}
}

func relations(s *summary.CodeSummary) []Relation {
	var out []Relation
	for _, fb := range s.FunctionBlocks {
		for _, base := range fb.Extends {
			out = append(out, Relation{Name: fb.Name, Relation: "EXTENDS", Base: base})
		}
		for _, iface := range fb.Implements {
			out = append(out, Relation{Name: fb.Name, Relation: "IMPLEMENTS", Base: iface})
		}
	}
	for _, dt := range s.DataTypes {
		if dt.Extends != "" {
			out = append(out, Relation{Name: dt.Name, Relation: "EXTENDS", Base: dt.Extends})
		}
	}
	return out
}

func join(texts []string) string {
	return strings.Join(texts, "\n")
}
