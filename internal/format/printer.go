package format

import (
	"plcst/internal/ast"
	"plcst/internal/comments"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
	// DropComments renders the tree without attached comments and pragmas.
	DropComments bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	w   *Writer
	opt Options
	// inner holds, per node being rendered, its non-leading comments that
	// are not written yet. They are sorted by offset.
	inner [][]comments.Record
}

// Render returns the Structured Text of any node.
func Render(n ast.Node, opt Options) string {
	p := &printer{w: NewWriter(opt), opt: opt}
	p.node(n)
	return string(p.w.Bytes())
}

// Unit renders a whole source unit: every top level unit separated by a blank line.
func Unit(u *ast.SourceUnit, opt Options) string {
	return Render(u.Root, opt)
}

// leading writes the comments placed before n; before line level nodes each gets its own line.
func (p *printer) leading(n ast.Node, line bool) {
	if p.opt.DropComments {
		return
	}
	m := ast.MetaOf(n)
	for _, r := range m.Attached[:m.Leading] {
		p.w.Comment(r)
		if line {
			p.w.Newline()
		}
	}
}

// flushBefore writes the pending comments of the enclosing nodes that start
// before off, so a comment between two children stays between them. It
// reports whether the last one written leaves the line open.
func (p *printer) flushBefore(off uint32) (open bool) {
	for i, recs := range p.inner {
		k := 0
		for k < len(recs) && recs[k].Span.Start < off {
			p.w.Comment(recs[k])
			open = !recs[k].IsLine()
			k++
		}
		p.inner[i] = recs[k:]
	}
	return open
}

func (p *printer) pending(n ast.Node) []comments.Record {
	if p.opt.DropComments {
		return nil
	}
	m := ast.MetaOf(n)
	return m.Attached[m.Leading:]
}

// node renders n wrapped in its comments. Line level nodes end with a newline.
// Comments inside n go before the first child that follows them, the rest
// after n's text.
func (p *printer) node(n ast.Node) {
	open := p.flushBefore(ast.SpanOf(n).Start)
	line := lineLevel(n)
	if line {
		p.w.Newline()
	} else if open {
		p.w.Space()
	}
	p.leading(n, line)
	p.inner = append(p.inner, p.pending(n))
	p.bare(n)
	top := len(p.inner) - 1
	rest := p.inner[top]
	p.inner = p.inner[:top]
	for _, r := range rest {
		p.w.Comment(r)
	}
	if line {
		p.w.Newline()
	}
}

func lineLevel(n ast.Node) bool {
	switch n.(type) {
	case ast.Statement, ast.Unit, ast.DataType, *ast.VariableBlock, *ast.Declaration,
		*ast.CaseElement, *ast.ElseIf, *ast.Else:
		return true
	}
	return false
}
