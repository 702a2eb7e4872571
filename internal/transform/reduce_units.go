package transform

import (
	"plcst/internal/ast"
)

func reduceSource(r *reduction) ast.Node {
	span := r.t.fileSpan()
	r.t.attach(span, r.kids)
	return &ast.SourceCode{Meta: ast.Meta{Span: span}, Units: rest[ast.Unit](r, 0)}
}

func reduceDeclarations(r *reduction) ast.Node {
	span := r.t.fileSpan()
	r.t.attach(span, r.kids)
	blocks := rest[*ast.VariableBlock](r, 0)
	return &ast.DeclarationList{Meta: ast.Meta{Span: span}, Blocks: blocks, Decls: r.t.scope(blocks)}
}

func reduceStatements(r *reduction) ast.Node {
	span := r.t.fileSpan()
	r.t.attach(span, r.kids)
	return &ast.StatementList{Meta: ast.Meta{Span: span}, Statements: rest[ast.Statement](r, 0)}
}

func (r *reduction) modifiers(i int) ast.Modifiers {
	var mods ast.Modifiers
	for _, tok := range r.tokens(i) {
		mods = append(mods, tok.Kind)
	}
	return mods
}

func (r *reduction) qnames(i int) []*ast.QualifiedName {
	return items[*ast.QualifiedName](r, r.list(i))
}

func reduceFunctionBlock(r *reduction) ast.Node {
	fb := &ast.FunctionBlock{
		Meta:       r.meta(),
		Modifiers:  r.modifiers(0),
		Name:       r.ident(1),
		Implements: r.qnames(3),
	}
	if ext := r.qnames(2); len(ext) > 0 {
		fb.Extends = ext[0]
	}
	fb.Blocks = r.blocks(4)
	fb.Body = r.stmts(5)
	fb.Decls = r.t.scope(fb.Blocks)
	return fb
}

func reduceProgram(r *reduction) ast.Node {
	p := &ast.Program{Meta: r.meta(), Name: r.ident(0), Blocks: r.blocks(1), Body: r.stmts(2)}
	p.Decls = r.t.scope(p.Blocks)
	return p
}

func reduceFunction(r *reduction) ast.Node {
	f := &ast.Function{
		Meta:       r.meta(),
		Modifiers:  r.modifiers(0),
		Name:       r.ident(1),
		ReturnType: r.optTyp(2),
		Blocks:     r.blocks(3),
		Body:       r.stmts(4),
	}
	f.Decls = r.t.scope(f.Blocks)
	return f
}

func reduceMethod(r *reduction) ast.Node {
	m := &ast.Method{
		Meta:       r.meta(),
		Modifiers:  r.modifiers(0),
		Name:       r.ident(1),
		ReturnType: r.optTyp(2),
		Blocks:     r.blocks(3),
		Body:       r.stmts(4),
	}
	m.Decls = r.t.scope(m.Blocks)
	return m
}

func reduceProperty(r *reduction) ast.Node {
	p := &ast.Property{
		Meta:      r.meta(),
		Modifiers: r.modifiers(0),
		Name:      r.ident(1),
		Type:      r.typ(2),
		Blocks:    r.blocks(3),
		Body:      r.stmts(4),
	}
	p.Decls = r.t.scope(p.Blocks)
	return p
}

func reduceAction(r *reduction) ast.Node {
	return &ast.Action{Meta: r.meta(), Name: r.ident(0), Body: r.stmts(1)}
}

func reduceInterface(r *reduction) ast.Node {
	i := &ast.Interface{Meta: r.meta(), Name: r.ident(0), Extends: r.qnames(1), Blocks: r.blocks(2)}
	i.Decls = r.t.scope(i.Blocks)
	return i
}

func reduceGlobalVarList(r *reduction) ast.Node {
	r.t.attach(r.n.Span, r.kids)
	g := &ast.GlobalVariableList{Meta: r.meta(), Blocks: rest[*ast.VariableBlock](r, 0)}
	g.Decls = r.t.scope(g.Blocks)
	return g
}

func reduceDataTypeDecl(r *reduction) ast.Node {
	r.t.attach(r.n.Span, r.kids)
	return &ast.DataTypeDeclaration{Meta: r.meta(), Types: rest[ast.DataType](r, 0)}
}

// members checks STRUCT and UNION member names for duplicates.
func (r *reduction) members(i int, kind string) []*ast.Declaration {
	decls := items[*ast.Declaration](r, r.list(i))
	block := &ast.VariableBlock{Declarations: decls}
	ast.IndexBlocks([]*ast.VariableBlock{block}, func(_ ast.VarKind, first, second *ast.Ident) {
		r.t.duplicate(kind, first, second)
	})
	return decls
}

func reduceStructTypeDecl(r *reduction) ast.Node {
	s := &ast.StructType{Meta: r.meta(), Name: r.ident(0)}
	if ext := r.qnames(1); len(ext) > 0 {
		s.Extends = ext[0]
	}
	s.Members = r.members(2, "STRUCT")
	return s
}

func reduceUnionTypeDecl(r *reduction) ast.Node {
	return &ast.UnionType{Meta: r.meta(), Name: r.ident(0), Members: r.members(1, "UNION")}
}

func reduceEnumTypeDecl(r *reduction) ast.Node {
	return &ast.EnumType{
		Meta:    r.meta(),
		Name:    r.ident(0),
		Values:  items[*ast.EnumValue](r, r.list(1)),
		Base:    r.optTyp(2),
		Default: r.optExpr(3),
	}
}

func reduceAliasTypeDecl(r *reduction) ast.Node {
	return &ast.AliasType{Meta: r.meta(), Name: r.ident(0), Type: r.typ(1), Init: r.optInit(2)}
}

func reduceEnumValue(r *reduction) ast.Node {
	return &ast.EnumValue{Meta: r.meta(), Name: r.ident(0), Value: r.optExpr(1)}
}
