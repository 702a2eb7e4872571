package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"plcst/internal/summary"
)

// SummaryPretty prints a CodeSummary as an indented outline.
func SummaryPretty(w io.Writer, s *summary.CodeSummary, useColor bool) error {
	kw := color.New(color.FgMagenta, color.Bold)
	name := color.New(color.Bold)
	dim := color.New(color.Faint)
	for _, c := range []*color.Color{kw, name, dim} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	p := &outline{w: w, kw: kw, name: name, dim: dim}

	for _, fb := range s.FunctionBlocks {
		head := kw.Sprint(fb.Kind) + " " + name.Sprint(fb.Name)
		if fb.ReturnType != "" {
			head += " : " + fb.ReturnType
		}
		if len(fb.Extends) > 0 {
			head += " " + kw.Sprint("EXTENDS") + " " + strings.Join(fb.Extends, ", ")
		}
		if len(fb.Implements) > 0 {
			head += " " + kw.Sprint("IMPLEMENTS") + " " + strings.Join(fb.Implements, ", ")
		}
		p.line(0, head+"  "+dim.Sprint(fb.Filename))
		p.notes(1, fb.Comments)
		p.blocks(1, fb.Blocks)
		for _, group := range [][]*summary.MemberSummary{fb.Methods, fb.Properties, fb.Actions} {
			for _, m := range group {
				p.member(1, m)
			}
		}
	}
	for _, dt := range s.DataTypes {
		head := kw.Sprint("TYPE") + " " + name.Sprint(dt.Name) + " : " + dt.Kind
		if dt.Extends != "" {
			head += " " + kw.Sprint("EXTENDS") + " " + dt.Extends
		}
		if dt.Base != "" {
			head += " " + dt.Base
		}
		if dt.Default != "" {
			head += " := " + dt.Default
		}
		p.line(0, head+"  "+dim.Sprint(dt.Filename))
		p.notes(1, dt.Comments)
		for _, v := range dt.Values {
			if v.Value != "" {
				p.line(1, v.Name+" := "+v.Value)
			} else {
				p.line(1, v.Name)
			}
		}
		for _, m := range dt.Members {
			p.decl(1, m)
		}
	}
	for _, g := range s.Globals {
		p.line(0, kw.Sprint("GVL")+" "+name.Sprint(g.Name)+"  "+dim.Sprint(g.Filename))
		p.notes(1, g.Comments)
		p.blocks(1, g.Blocks)
	}
	if len(s.Detached) > 0 {
		p.line(0, dim.Sprint("(detached members)"))
		for _, m := range s.Detached {
			p.member(1, m)
		}
	}
	return p.err
}

type outline struct {
	w             io.Writer
	kw, name, dim *color.Color
	err           error
}

func (o *outline) line(depth int, s string) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, "%s%s\n", strings.Repeat("  ", depth), s)
}

func (o *outline) notes(depth int, texts []string) {
	for _, t := range texts {
		o.line(depth, o.dim.Sprint(strings.ReplaceAll(t, "\n", " ")))
	}
}

func (o *outline) blocks(depth int, blocks []*summary.BlockSummary) {
	for _, b := range blocks {
		head := o.kw.Sprint(b.Kind)
		if len(b.Qualifiers) > 0 {
			head += " " + o.kw.Sprint(strings.Join(b.Qualifiers, " "))
		}
		o.line(depth, head)
		for _, d := range b.Declarations {
			o.decl(depth+1, d)
		}
	}
}

func (o *outline) decl(depth int, d *summary.DeclarationSummary) {
	s := d.Name
	if d.Address != "" {
		s += " AT " + d.Address
	}
	s += " : " + d.Type
	if d.Value != "" {
		s += " := " + d.Value
	}
	for _, c := range d.Comments {
		s += "  " + o.dim.Sprint(strings.ReplaceAll(c, "\n", " "))
	}
	o.line(depth, s)
}

func (o *outline) member(depth int, m *summary.MemberSummary) {
	head := o.kw.Sprint(m.Kind) + " " + o.name.Sprint(m.QualifiedName())
	if m.Type != "" {
		head += " : " + m.Type
	}
	o.line(depth, head)
	o.notes(depth+1, m.Comments)
	o.blocks(depth+1, m.Blocks)
}

func SummaryJSON(w io.Writer, s *summary.CodeSummary) error {
	return encodeJSON(w, s)
}

func SummaryYAML(w io.Writer, s *summary.CodeSummary) error {
	return encodeYAML(w, s)
}
