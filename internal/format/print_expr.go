package format

import (
	"plcst/internal/ast"
	"plcst/internal/token"
)

func (p *printer) exprList(list []ast.Expr) {
	for i, e := range list {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.node(e)
	}
}

func (p *printer) args(args []ast.Arg) {
	p.w.WriteString("(")
	for i, a := range args {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.node(a)
	}
	p.w.WriteString(")")
}

func (p *printer) binary(n *ast.Binary) {
	p.node(n.X)
	p.w.Space()
	p.w.WriteString(token.Spelling(n.Op))
	p.w.Space()
	p.node(n.Y)
}

func (p *printer) unary(n *ast.Unary) {
	p.w.WriteString(token.Spelling(n.Op))
	if n.Op == token.KwNot {
		p.w.Space()
	} else if u, ok := n.X.(*ast.Unary); ok && u.Op != token.KwNot {
		// "- -x", не "--x"
		p.w.Space()
	}
	p.node(n.X)
}

func (p *printer) outputArg(n *ast.OutputArg) {
	if n.Not {
		p.w.WriteString("NOT ")
	}
	p.node(n.Name)
	p.w.WriteString(" =>")
	if n.Target != nil {
		p.w.Space()
		p.node(n.Target)
	}
}

func (p *printer) enumValues(values []*ast.EnumValue) {
	p.w.WriteString("(")
	for i, v := range values {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.node(v)
	}
	p.w.WriteString(")")
}

func (p *printer) stringType(n *ast.StringType) {
	kw := token.KwString
	if n.Wide {
		kw = token.KwWString
	}
	p.w.WriteString(token.Spelling(kw))
	if n.Length == nil {
		return
	}
	open, closing := "(", ")"
	if n.Bracket {
		open, closing = "[", "]"
	}
	p.w.WriteString(open)
	p.node(n.Length)
	p.w.WriteString(closing)
}

func (p *printer) arrayType(n *ast.ArrayType) {
	p.w.WriteString("ARRAY[")
	for i, d := range n.Dims {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.node(d)
	}
	p.w.WriteString("] OF ")
	p.node(n.Elem)
}

func (p *printer) arrayDim(n *ast.ArrayDim) {
	if n.Star {
		p.w.WriteString("*")
		return
	}
	p.node(n.Lo)
	p.w.WriteString("..")
	p.node(n.Hi)
}
