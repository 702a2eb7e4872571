package transform

import (
	"plcst/internal/ast"
	"plcst/internal/token"
)

func reduceVarBlock(r *reduction) ast.Node {
	kw := r.tok(0)
	kind, ok := ast.VarKindFromToken(kw.Kind)
	if !ok {
		r.fail("%s does not open a variable section", kw.Kind)
	}
	var quals []token.Kind
	for _, q := range r.tokens(1) {
		quals = append(quals, q.Kind)
	}
	decls := rest[*ast.Declaration](r, 2)
	r.t.attach(r.n.Span, r.kids[2:])
	return &ast.VariableBlock{Meta: r.meta(), Kind: kind, Qualifiers: quals, Declarations: decls}
}

func reduceVarDecl(r *reduction) ast.Node {
	d := &ast.Declaration{Meta: r.meta()}
	for _, tok := range r.tokens(0) {
		d.Names = append(d.Names, &ast.Ident{Meta: ast.Meta{Span: tok.Span}, Name: tok.Text})
	}
	if len(d.Names) == 0 {
		r.fail("declaration without names")
	}
	if loc, ok := r.optTok(1); ok {
		d.Location = &ast.DirectAddress{Meta: ast.Meta{Span: loc.Span}, Text: loc.Text}
	}
	d.Type = r.typ(2)
	d.Ctor = optAs[*ast.Arguments](r, 3)
	d.Init = r.optInit(4)
	return d
}

func reduceQualifiedName(r *reduction) ast.Node {
	q := &ast.QualifiedName{Meta: r.meta()}
	for i := range r.kids {
		q.Parts = append(q.Parts, r.ident(i))
	}
	if len(q.Parts) == 0 {
		r.fail("empty qualified name")
	}
	return q
}

func reduceSimpleType(r *reduction) ast.Node {
	return &ast.SimpleType{Meta: r.meta(), Name: as[*ast.QualifiedName](r, 0)}
}

func reduceStringType(r *reduction) ast.Node {
	kw := r.tok(0)
	st := &ast.StringType{Meta: r.meta(), Wide: kw.Kind == token.KwWString, Length: r.optExpr(1)}
	if st.Length != nil {
		// STRING[80] и STRING(80) равнозначны, запоминаем написание
		clean := r.t.file.Content
		for i := int(kw.Span.End); i < len(clean); i++ {
			if !isSpace(clean[i]) {
				st.Bracket = clean[i] == '['
				break
			}
		}
	}
	return st
}

func reduceArrayType(r *reduction) ast.Node {
	return &ast.ArrayType{
		Meta: r.meta(),
		Dims: items[*ast.ArrayDim](r, r.list(0)),
		Elem: r.typ(1),
	}
}

func reduceArrayDim(r *reduction) ast.Node {
	if len(r.kids) == 1 {
		if star := r.tok(0); star.Kind != token.Star {
			r.fail("unexpected %s in array dimension", star.Kind)
		}
		return &ast.ArrayDim{Meta: r.meta(), Star: true}
	}
	return &ast.ArrayDim{Meta: r.meta(), Lo: r.expr(0), Hi: r.expr(1)}
}

func reducePointerType(r *reduction) ast.Node {
	return &ast.PointerType{Meta: r.meta(), Reference: r.tok(0).Kind == token.KwReference, Elem: r.typ(1)}
}

func reduceSubrangeType(r *reduction) ast.Node {
	return &ast.SubrangeType{
		Meta: r.meta(),
		Base: as[*ast.QualifiedName](r, 0),
		Lo:   r.expr(1),
		Hi:   r.expr(2),
	}
}

func reduceEnumSpec(r *reduction) ast.Node {
	r.t.attach(r.n.Span, r.kids)
	return &ast.EnumSpec{Meta: r.meta(), Values: rest[*ast.EnumValue](r, 0)}
}

func reduceArrayInit(r *reduction) ast.Node {
	r.t.attach(r.n.Span, r.kids)
	return &ast.ArrayInit{Meta: r.meta(), Elems: rest[*ast.ArrayInitElem](r, 0)}
}

func reduceArrayInitElem(r *reduction) ast.Node {
	if r.kid(1) == nil {
		return &ast.ArrayInitElem{Meta: r.meta(), Value: as[ast.Initializer](r, 0)}
	}
	return &ast.ArrayInitElem{Meta: r.meta(), Count: r.expr(0), Value: as[ast.Initializer](r, 1)}
}

func reduceStructInit(r *reduction) ast.Node {
	r.t.attach(r.n.Span, r.kids)
	return &ast.StructInit{Meta: r.meta(), Fields: rest[*ast.FieldInit](r, 0)}
}

func reduceFieldInit(r *reduction) ast.Node {
	return &ast.FieldInit{Meta: r.meta(), Name: r.ident(0), Value: as[ast.Initializer](r, 1)}
}
