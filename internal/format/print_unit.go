package format

import (
	"plcst/internal/ast"
	"plcst/internal/token"
)

func (p *printer) kw(k token.Kind) {
	p.w.Space()
	p.w.WriteString(token.Spelling(k))
}

func (p *printer) modifiers(mods ast.Modifiers) {
	for _, k := range mods {
		p.kw(k)
	}
}

func (p *printer) name(id *ast.Ident) {
	p.w.Space()
	p.node(id)
}

func (p *printer) qnameList(names []*ast.QualifiedName) {
	for i, q := range names {
		if i > 0 {
			p.w.WriteString(",")
		}
		p.w.Space()
		p.node(q)
	}
}

func (p *printer) blocks(blocks []*ast.VariableBlock) {
	for _, b := range blocks {
		p.node(b)
	}
}

// body renders statements one level deeper when indent is set.
func (p *printer) body(stmts []ast.Statement, indent bool) {
	if indent {
		p.w.IndentPush()
		defer p.w.IndentPop()
	}
	for _, s := range stmts {
		p.node(s)
	}
}

func (p *printer) end(k token.Kind) {
	p.w.Newline()
	p.w.WriteString(token.Spelling(k))
}

func (p *printer) returnType(t ast.TypeSpec) {
	if t == nil {
		return
	}
	p.w.WriteString(" :")
	p.w.Space()
	p.node(t)
}

func (p *printer) sourceCode(n *ast.SourceCode) {
	for i, u := range n.Units {
		if i > 0 {
			p.w.Newline()
			p.w.WriteString("\n")
		}
		p.node(u)
	}
}

func (p *printer) functionBlock(n *ast.FunctionBlock) {
	p.kw(token.KwFunctionBlock)
	p.modifiers(n.Modifiers)
	p.name(n.Name)
	if n.Extends != nil {
		p.kw(token.KwExtends)
		p.w.Space()
		p.node(n.Extends)
	}
	if len(n.Implements) > 0 {
		p.kw(token.KwImplements)
		p.qnameList(n.Implements)
	}
	p.blocks(n.Blocks)
	p.body(n.Body, false)
	p.end(token.KwEndFunctionBlock)
}

func (p *printer) program(n *ast.Program) {
	p.kw(token.KwProgram)
	p.name(n.Name)
	p.blocks(n.Blocks)
	p.body(n.Body, false)
	p.end(token.KwEndProgram)
}

func (p *printer) function(n *ast.Function) {
	p.kw(token.KwFunction)
	p.modifiers(n.Modifiers)
	p.name(n.Name)
	p.returnType(n.ReturnType)
	p.blocks(n.Blocks)
	p.body(n.Body, false)
	p.end(token.KwEndFunction)
}

func (p *printer) method(n *ast.Method) {
	p.kw(token.KwMethod)
	p.modifiers(n.Modifiers)
	p.name(n.Name)
	p.returnType(n.ReturnType)
	p.blocks(n.Blocks)
	p.body(n.Body, false)
	p.end(token.KwEndMethod)
}

func (p *printer) property(n *ast.Property) {
	p.kw(token.KwProperty)
	p.modifiers(n.Modifiers)
	p.name(n.Name)
	p.returnType(n.Type)
	p.blocks(n.Blocks)
	p.body(n.Body, false)
	p.end(token.KwEndProperty)
}

func (p *printer) action(n *ast.Action) {
	p.kw(token.KwAction)
	p.name(n.Name)
	p.w.WriteString(":")
	p.body(n.Body, false)
	p.end(token.KwEndAction)
}

func (p *printer) iface(n *ast.Interface) {
	p.kw(token.KwInterface)
	p.name(n.Name)
	if len(n.Extends) > 0 {
		p.kw(token.KwExtends)
		p.qnameList(n.Extends)
	}
	p.blocks(n.Blocks)
	p.end(token.KwEndInterface)
}

func (p *printer) dataTypes(n *ast.DataTypeDeclaration) {
	p.kw(token.KwType)
	p.w.IndentPush()
	for _, t := range n.Types {
		p.node(t)
	}
	p.w.IndentPop()
	p.end(token.KwEndType)
}

func (p *printer) members(decls []*ast.Declaration, end token.Kind) {
	p.w.IndentPush()
	for _, d := range decls {
		p.node(d)
	}
	p.w.IndentPop()
	p.end(end)
}

func (p *printer) structType(n *ast.StructType) {
	p.node(n.Name)
	if n.Extends != nil {
		p.kw(token.KwExtends)
		p.w.Space()
		p.node(n.Extends)
	}
	p.w.WriteString(" :")
	p.w.Newline()
	p.w.WriteString(token.Spelling(token.KwStruct))
	p.members(n.Members, token.KwEndStruct)
}

func (p *printer) unionType(n *ast.UnionType) {
	p.node(n.Name)
	p.w.WriteString(" :")
	p.w.Newline()
	p.w.WriteString(token.Spelling(token.KwUnion))
	p.members(n.Members, token.KwEndUnion)
}

func (p *printer) enumType(n *ast.EnumType) {
	p.node(n.Name)
	p.w.WriteString(" : ")
	p.enumValues(n.Values)
	if n.Base != nil {
		p.w.Space()
		p.node(n.Base)
	}
	if n.Default != nil {
		p.w.WriteString(" := ")
		p.node(n.Default)
	}
	p.w.WriteString(";")
}

func (p *printer) aliasType(n *ast.AliasType) {
	p.node(n.Name)
	p.w.WriteString(" : ")
	p.node(n.Type)
	if n.Init != nil {
		p.w.WriteString(" := ")
		p.node(n.Init)
	}
	p.w.WriteString(";")
}

func (p *printer) variableBlock(n *ast.VariableBlock) {
	p.kw(n.Kind.Token())
	for _, q := range n.Qualifiers {
		p.kw(q)
	}
	p.w.IndentPush()
	for _, d := range n.Declarations {
		p.node(d)
	}
	p.w.IndentPop()
	p.end(token.KwEndVar)
}

func (p *printer) declaration(n *ast.Declaration) {
	for i, name := range n.Names {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.node(name)
	}
	if n.Location != nil {
		p.kw(token.KwAt)
		p.w.Space()
		p.node(n.Location)
	}
	p.w.WriteString(" : ")
	p.node(n.Type)
	if n.Ctor != nil {
		p.node(n.Ctor)
	}
	if n.Init != nil {
		p.w.WriteString(" := ")
		p.node(n.Init)
	}
	p.w.WriteString(";")
}
