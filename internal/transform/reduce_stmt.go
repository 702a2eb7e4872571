package transform

import (
	"plcst/internal/ast"
	"plcst/internal/token"
)

func reduceAssignment(r *reduction) ast.Node {
	op := r.tok(1)
	switch op.Kind {
	case token.Assign, token.SetAssign, token.ResetAssign, token.RefAssign:
	default:
		r.fail("%s is not an assignment operator", op.Kind)
	}
	return &ast.Assignment{Meta: r.meta(), Target: r.expr(0), Op: op.Kind, Value: r.expr(2)}
}

func reduceCallStatement(r *reduction) ast.Node {
	return &ast.CallStatement{Meta: r.meta(), Call: as[*ast.Call](r, 0)}
}

func reduceIf(r *reduction) ast.Node {
	return &ast.If{
		Meta:    r.meta(),
		Cond:    r.expr(0),
		Then:    r.stmts(1),
		ElseIfs: items[*ast.ElseIf](r, r.list(2)),
		Else:    optAs[*ast.Else](r, 3),
	}
}

func reduceElsifClause(r *reduction) ast.Node {
	return &ast.ElseIf{Meta: r.meta(), Cond: r.expr(0), Body: r.stmts(1)}
}

func reduceElseClause(r *reduction) ast.Node {
	return &ast.Else{Meta: r.meta(), Body: r.stmts(0)}
}

func reduceCase(r *reduction) ast.Node {
	return &ast.Case{
		Meta:     r.meta(),
		Selector: r.expr(0),
		Elements: items[*ast.CaseElement](r, r.list(1)),
		Else:     optAs[*ast.Else](r, 2),
	}
}

func reduceCaseElement(r *reduction) ast.Node {
	labels := items[ast.Expr](r, r.list(0))
	if len(labels) == 0 {
		r.fail("case element without labels")
	}
	return &ast.CaseElement{Meta: r.meta(), Labels: labels, Body: r.stmts(1)}
}

func reduceCaseRange(r *reduction) ast.Node {
	return &ast.Range{Meta: r.meta(), Lo: r.expr(0), Hi: r.expr(1)}
}

func reduceFor(r *reduction) ast.Node {
	return &ast.For{
		Meta:    r.meta(),
		Control: r.ident(0),
		From:    r.expr(1),
		To:      r.expr(2),
		By:      r.optExpr(3),
		Body:    r.stmts(4),
	}
}

func reduceWhile(r *reduction) ast.Node {
	return &ast.While{Meta: r.meta(), Cond: r.expr(0), Body: r.stmts(1)}
}

func reduceRepeat(r *reduction) ast.Node {
	return &ast.Repeat{Meta: r.meta(), Body: r.stmts(0), Until: r.expr(1)}
}
