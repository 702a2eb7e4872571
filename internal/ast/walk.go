package ast

import (
	"fmt"
)

// Inspect traverses n depth-first in source order. When f returns false the
// children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Walk calls f for every node in post-order: children before their parent.
func Walk(n Node, f func(Node)) {
	for _, c := range Children(n) {
		Walk(c, f)
	}
	f(n)
}

type collector []Node

func (c *collector) add(n Node) {
	*c = append(*c, n)
}

func (c *collector) expr(e Expr) {
	if e != nil {
		*c = append(*c, e)
	}
}

func (c *collector) ident(id *Ident) {
	if id != nil {
		*c = append(*c, id)
	}
}

func (c *collector) qname(q *QualifiedName) {
	if q != nil {
		*c = append(*c, q)
	}
}

func (c *collector) typ(t TypeSpec) {
	if t != nil {
		*c = append(*c, t)
	}
}

func (c *collector) initializer(i Initializer) {
	if i != nil {
		*c = append(*c, i)
	}
}

func (c *collector) stmts(list []Statement) {
	for _, s := range list {
		*c = append(*c, s)
	}
}

func (c *collector) blocks(list []*VariableBlock) {
	for _, b := range list {
		*c = append(*c, b)
	}
}

func (c *collector) decls(list []*Declaration) {
	for _, d := range list {
		*c = append(*c, d)
	}
}

func (c *collector) elseBranch(e *Else) {
	if e != nil {
		*c = append(*c, e)
	}
}

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	var c collector
	switch n := n.(type) {
	case *Ident, *IntLiteral, *RealLiteral, *BoolLiteral, *StringLiteral, *TimeLiteral,
		*DirectAddress, *Return, *Exit, *Continue, *Empty:

	case *QualifiedName:
		for _, p := range n.Parts {
			c.add(p)
		}
	case *TypedLiteral:
		c.ident(n.Type)
	case *EnumLiteral:
		c.ident(n.Type)
		c.ident(n.Value)
	case *Member:
		c.expr(n.X)
		c.ident(n.Sel)
	case *Index:
		c.expr(n.X)
		for _, i := range n.Indices {
			c.expr(i)
		}
	case *Deref:
		c.expr(n.X)
	case *Call:
		c.expr(n.Func)
		for _, a := range n.Args {
			c.add(a)
		}
	case *Binary:
		c.expr(n.X)
		c.expr(n.Y)
	case *Unary:
		c.expr(n.X)
	case *Paren:
		c.expr(n.X)
	case *Range:
		c.expr(n.Lo)
		c.expr(n.Hi)

	case *PositionalArg:
		c.expr(n.Value)
	case *NamedArg:
		c.ident(n.Name)
		c.expr(n.Value)
	case *OutputArg:
		c.ident(n.Name)
		c.expr(n.Target)
	case *Arguments:
		for _, a := range n.Args {
			c.add(a)
		}

	case *ArrayInit:
		for _, e := range n.Elems {
			c.add(e)
		}
	case *ArrayInitElem:
		c.expr(n.Count)
		c.initializer(n.Value)
	case *StructInit:
		for _, f := range n.Fields {
			c.add(f)
		}
	case *FieldInit:
		c.ident(n.Name)
		c.initializer(n.Value)

	case *Assignment:
		c.expr(n.Target)
		c.expr(n.Value)
	case *CallStatement:
		c.add(n.Call)
	case *If:
		c.expr(n.Cond)
		c.stmts(n.Then)
		for _, e := range n.ElseIfs {
			c.add(e)
		}
		c.elseBranch(n.Else)
	case *ElseIf:
		c.expr(n.Cond)
		c.stmts(n.Body)
	case *Else:
		c.stmts(n.Body)
	case *Case:
		c.expr(n.Selector)
		for _, e := range n.Elements {
			c.add(e)
		}
		c.elseBranch(n.Else)
	case *CaseElement:
		for _, l := range n.Labels {
			c.expr(l)
		}
		c.stmts(n.Body)
	case *For:
		c.ident(n.Control)
		c.expr(n.From)
		c.expr(n.To)
		c.expr(n.By)
		c.stmts(n.Body)
	case *While:
		c.expr(n.Cond)
		c.stmts(n.Body)
	case *Repeat:
		c.stmts(n.Body)
		c.expr(n.Until)
	case *Jmp:
		c.ident(n.Label)
	case *Label:
		c.ident(n.Name)

	case *SimpleType:
		c.qname(n.Name)
	case *StringType:
		c.expr(n.Length)
	case *ArrayType:
		for _, d := range n.Dims {
			c.add(d)
		}
		c.typ(n.Elem)
	case *ArrayDim:
		c.expr(n.Lo)
		c.expr(n.Hi)
	case *PointerType:
		c.typ(n.Elem)
	case *SubrangeType:
		c.qname(n.Base)
		c.expr(n.Lo)
		c.expr(n.Hi)
	case *EnumSpec:
		for _, v := range n.Values {
			c.add(v)
		}
	case *EnumValue:
		c.ident(n.Name)
		c.expr(n.Value)

	case *VariableBlock:
		c.decls(n.Declarations)
	case *Declaration:
		for _, name := range n.Names {
			c.add(name)
		}
		if n.Location != nil {
			c.add(n.Location)
		}
		c.typ(n.Type)
		if n.Ctor != nil {
			c.add(n.Ctor)
		}
		c.initializer(n.Init)

	case *FunctionBlock:
		c.ident(n.Name)
		c.qname(n.Extends)
		for _, q := range n.Implements {
			c.add(q)
		}
		c.blocks(n.Blocks)
		c.stmts(n.Body)
	case *Program:
		c.ident(n.Name)
		c.blocks(n.Blocks)
		c.stmts(n.Body)
	case *Function:
		c.ident(n.Name)
		c.typ(n.ReturnType)
		c.blocks(n.Blocks)
		c.stmts(n.Body)
	case *Method:
		c.ident(n.Name)
		c.typ(n.ReturnType)
		c.blocks(n.Blocks)
		c.stmts(n.Body)
	case *Property:
		c.ident(n.Name)
		c.typ(n.Type)
		c.blocks(n.Blocks)
		c.stmts(n.Body)
	case *Action:
		c.ident(n.Name)
		c.stmts(n.Body)
	case *Interface:
		c.ident(n.Name)
		for _, q := range n.Extends {
			c.add(q)
		}
		c.blocks(n.Blocks)
	case *DataTypeDeclaration:
		for _, t := range n.Types {
			c.add(t)
		}
	case *GlobalVariableList:
		c.blocks(n.Blocks)

	case *StructType:
		c.ident(n.Name)
		c.qname(n.Extends)
		c.decls(n.Members)
	case *UnionType:
		c.ident(n.Name)
		c.decls(n.Members)
	case *EnumType:
		c.ident(n.Name)
		for _, v := range n.Values {
			c.add(v)
		}
		c.typ(n.Base)
		c.expr(n.Default)
	case *AliasType:
		c.ident(n.Name)
		c.typ(n.Type)
		c.initializer(n.Init)

	case *SourceCode:
		for _, u := range n.Units {
			c.add(u)
		}
	case *DeclarationList:
		c.blocks(n.Blocks)
	case *StatementList:
		c.stmts(n.Statements)

	default:
		panic(fmt.Sprintf("ast: unexpected node %T", n))
	}
	return c
}
