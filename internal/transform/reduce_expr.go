package transform

import (
	"plcst/internal/ast"
	"plcst/internal/token"
)

func reduceBinary(r *reduction) ast.Node {
	return &ast.Binary{Meta: r.meta(), X: r.expr(0), Op: r.tok(1).Kind, Y: r.expr(2)}
}

func reduceUnary(r *reduction) ast.Node {
	return &ast.Unary{Meta: r.meta(), Op: r.tok(0).Kind, X: r.expr(1)}
}

func reduceBoolLiteral(r *reduction) ast.Node {
	return &ast.BoolLiteral{Meta: r.meta(), Value: r.tok(0).Kind == token.KwTrue}
}

func reduceTypedLiteral(r *reduction) ast.Node {
	lit := &ast.TypedLiteral{Meta: r.meta(), Type: r.ident(0), Value: r.tok(2).Text}
	if sign, ok := r.optTok(1); ok {
		lit.Sign = sign.Text
	}
	return lit
}

func reduceEnumLiteral(r *reduction) ast.Node {
	return &ast.EnumLiteral{Meta: r.meta(), Type: r.ident(0), Value: r.ident(1)}
}

func reduceMember(r *reduction) ast.Node {
	return &ast.Member{Meta: r.meta(), X: r.expr(0), Sel: r.ident(1)}
}

func reduceIndex(r *reduction) ast.Node {
	idx := &ast.Index{Meta: r.meta(), X: r.expr(0), Indices: rest[ast.Expr](r, 1)}
	if len(idx.Indices) == 0 {
		r.fail("index without subscripts")
	}
	return idx
}

func reduceCall(r *reduction) ast.Node {
	args := as[*ast.Arguments](r, 1)
	return &ast.Call{Meta: r.meta(), Func: r.expr(0), Args: args.Args}
}

// reduceCallArgs wraps positional expressions so that every argument is an ast.Arg.
func reduceCallArgs(r *reduction) ast.Node {
	args := make([]ast.Arg, len(r.kids))
	for i, k := range r.kids {
		switch k := k.(type) {
		case ast.Arg:
			args[i] = k
		case ast.Expr:
			args[i] = &ast.PositionalArg{Meta: ast.Meta{Span: ast.SpanOf(k)}, Value: k}
		default:
			r.fail("argument %d: unexpected %T", i, k)
		}
	}
	nodes := make([]ast.Node, len(args))
	for i, a := range args {
		nodes[i] = a
	}
	r.t.attach(r.n.Span, nodes)
	return &ast.Arguments{Meta: r.meta(), Args: args}
}

func reduceNamedArg(r *reduction) ast.Node {
	return &ast.NamedArg{Meta: r.meta(), Name: r.ident(0), Value: r.expr(1)}
}

func reduceOutputArg(r *reduction) ast.Node {
	_, not := r.optTok(0)
	return &ast.OutputArg{Meta: r.meta(), Not: not, Name: r.ident(1), Target: r.optExpr(2)}
}
