package format

import (
	"fmt"

	"plcst/internal/ast"
	"plcst/internal/token"
)

// bare renders n without its own comments.
func (p *printer) bare(n ast.Node) {
	w := p.w
	switch n := n.(type) {
	case *ast.SourceCode:
		p.sourceCode(n)
	case *ast.DeclarationList:
		p.blocks(n.Blocks)
	case *ast.StatementList:
		p.body(n.Statements, false)

	case *ast.FunctionBlock:
		p.functionBlock(n)
	case *ast.Program:
		p.program(n)
	case *ast.Function:
		p.function(n)
	case *ast.Method:
		p.method(n)
	case *ast.Property:
		p.property(n)
	case *ast.Action:
		p.action(n)
	case *ast.Interface:
		p.iface(n)
	case *ast.DataTypeDeclaration:
		p.dataTypes(n)
	case *ast.GlobalVariableList:
		p.blocks(n.Blocks)

	case *ast.StructType:
		p.structType(n)
	case *ast.UnionType:
		p.unionType(n)
	case *ast.EnumType:
		p.enumType(n)
	case *ast.AliasType:
		p.aliasType(n)

	case *ast.VariableBlock:
		p.variableBlock(n)
	case *ast.Declaration:
		p.declaration(n)
	case *ast.Arguments:
		p.args(n.Args)

	case *ast.SimpleType:
		p.node(n.Name)
	case *ast.StringType:
		p.stringType(n)
	case *ast.ArrayType:
		p.arrayType(n)
	case *ast.ArrayDim:
		p.arrayDim(n)
	case *ast.PointerType:
		if n.Reference {
			w.WriteString("REFERENCE TO ")
		} else {
			w.WriteString("POINTER TO ")
		}
		p.node(n.Elem)
	case *ast.SubrangeType:
		p.node(n.Base)
		w.WriteString("(")
		p.node(n.Lo)
		w.WriteString("..")
		p.node(n.Hi)
		w.WriteString(")")
	case *ast.EnumSpec:
		p.enumValues(n.Values)
	case *ast.EnumValue:
		p.node(n.Name)
		if n.Value != nil {
			w.WriteString(" := ")
			p.node(n.Value)
		}

	case *ast.ArrayInit:
		w.WriteString("[")
		for i, e := range n.Elems {
			if i > 0 {
				w.WriteString(", ")
			}
			p.node(e)
		}
		w.WriteString("]")
	case *ast.ArrayInitElem:
		if n.Count != nil {
			p.node(n.Count)
			w.WriteString("(")
			p.node(n.Value)
			w.WriteString(")")
		} else {
			p.node(n.Value)
		}
	case *ast.StructInit:
		w.WriteString("(")
		for i, f := range n.Fields {
			if i > 0 {
				w.WriteString(", ")
			}
			p.node(f)
		}
		w.WriteString(")")
	case *ast.FieldInit:
		p.node(n.Name)
		w.WriteString(" := ")
		p.node(n.Value)

	case *ast.Assignment:
		p.assignment(n)
	case *ast.CallStatement:
		p.node(n.Call)
		w.WriteString(";")
	case *ast.If:
		p.ifStmt(n)
	case *ast.ElseIf:
		p.elseIf(n)
	case *ast.Else:
		p.elseBranch(n)
	case *ast.Case:
		p.caseStmt(n)
	case *ast.CaseElement:
		p.caseElement(n)
	case *ast.For:
		p.forStmt(n)
	case *ast.While:
		p.whileStmt(n)
	case *ast.Repeat:
		p.repeatStmt(n)
	case *ast.Return:
		w.WriteString("RETURN;")
	case *ast.Exit:
		w.WriteString("EXIT;")
	case *ast.Continue:
		w.WriteString("CONTINUE;")
	case *ast.Jmp:
		w.WriteString("JMP ")
		p.node(n.Label)
		w.WriteString(";")
	case *ast.Label:
		p.node(n.Name)
		w.WriteString(":")
	case *ast.Empty:
		w.WriteString(";")

	case *ast.Ident:
		w.WriteString(n.Name)
	case *ast.QualifiedName:
		for i, part := range n.Parts {
			if i > 0 {
				w.WriteString(".")
			}
			p.node(part)
		}
	case *ast.IntLiteral:
		w.WriteString(n.Text)
	case *ast.RealLiteral:
		w.WriteString(n.Text)
	case *ast.BoolLiteral:
		if n.Value {
			w.WriteString(token.Spelling(token.KwTrue))
		} else {
			w.WriteString(token.Spelling(token.KwFalse))
		}
	case *ast.StringLiteral:
		w.WriteString(n.Text)
	case *ast.TimeLiteral:
		w.WriteString(n.Text)
	case *ast.TypedLiteral:
		p.node(n.Type)
		w.WriteString("#" + n.Sign + n.Value)
	case *ast.EnumLiteral:
		p.node(n.Type)
		w.WriteString("#")
		p.node(n.Value)
	case *ast.DirectAddress:
		w.WriteString(n.Text)
	case *ast.Member:
		p.node(n.X)
		w.WriteString(".")
		p.node(n.Sel)
	case *ast.Index:
		p.node(n.X)
		w.WriteString("[")
		p.exprList(n.Indices)
		w.WriteString("]")
	case *ast.Deref:
		p.node(n.X)
		w.WriteString("^")
	case *ast.Call:
		p.node(n.Func)
		p.args(n.Args)
	case *ast.Binary:
		p.binary(n)
	case *ast.Unary:
		p.unary(n)
	case *ast.Paren:
		w.WriteString("(")
		p.node(n.X)
		w.WriteString(")")
	case *ast.Range:
		p.node(n.Lo)
		w.WriteString("..")
		p.node(n.Hi)
	case *ast.PositionalArg:
		p.node(n.Value)
	case *ast.NamedArg:
		p.node(n.Name)
		w.WriteString(" := ")
		p.node(n.Value)
	case *ast.OutputArg:
		p.outputArg(n)

	default:
		panic(fmt.Sprintf("format: unexpected node %T", n))
	}
}
