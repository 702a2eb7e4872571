package format

import (
	"plcst/internal/ast"
	"plcst/internal/token"
)

func (p *printer) assignment(n *ast.Assignment) {
	p.node(n.Target)
	p.w.Space()
	p.w.WriteString(token.Spelling(n.Op))
	p.w.Space()
	p.node(n.Value)
	p.w.WriteString(";")
}

func (p *printer) ifStmt(n *ast.If) {
	p.w.WriteString("IF ")
	p.node(n.Cond)
	p.kw(token.KwThen)
	p.body(n.Then, true)
	for _, e := range n.ElseIfs {
		p.node(e)
	}
	if n.Else != nil {
		p.node(n.Else)
	}
	p.end(token.KwEndIf)
}

func (p *printer) elseIf(n *ast.ElseIf) {
	p.w.WriteString("ELSIF ")
	p.node(n.Cond)
	p.kw(token.KwThen)
	p.body(n.Body, true)
}

func (p *printer) elseBranch(n *ast.Else) {
	p.w.WriteString(token.Spelling(token.KwElse))
	p.body(n.Body, true)
}

func (p *printer) caseStmt(n *ast.Case) {
	p.w.WriteString("CASE ")
	p.node(n.Selector)
	p.kw(token.KwOf)
	p.w.IndentPush()
	for _, e := range n.Elements {
		p.node(e)
	}
	p.w.IndentPop()
	if n.Else != nil {
		p.node(n.Else)
	}
	p.end(token.KwEndCase)
}

func (p *printer) caseElement(n *ast.CaseElement) {
	p.exprList(n.Labels)
	p.w.WriteString(":")
	p.body(n.Body, true)
}

func (p *printer) forStmt(n *ast.For) {
	p.w.WriteString("FOR ")
	p.node(n.Control)
	p.w.WriteString(" := ")
	p.node(n.From)
	p.kw(token.KwTo)
	p.w.Space()
	p.node(n.To)
	if n.By != nil {
		p.kw(token.KwBy)
		p.w.Space()
		p.node(n.By)
	}
	p.kw(token.KwDo)
	p.body(n.Body, true)
	p.end(token.KwEndFor)
}

func (p *printer) whileStmt(n *ast.While) {
	p.w.WriteString("WHILE ")
	p.node(n.Cond)
	p.kw(token.KwDo)
	p.body(n.Body, true)
	p.end(token.KwEndWhile)
}

func (p *printer) repeatStmt(n *ast.Repeat) {
	p.w.WriteString(token.Spelling(token.KwRepeat))
	p.body(n.Body, true)
	p.end(token.KwUntil)
	p.w.Space()
	p.node(n.Until)
	p.end(token.KwEndRepeat)
}
