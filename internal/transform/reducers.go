package transform

import (
	"plcst/internal/ast"
	"plcst/internal/cst"
)

type reduceFunc func(r *reduction) ast.Node

var reducers = map[cst.Rule]reduceFunc{
	cst.RuleSource:       reduceSource,
	cst.RuleDeclarations: reduceDeclarations,
	cst.RuleStatements:   reduceStatements,

	cst.RuleFunctionBlock:  reduceFunctionBlock,
	cst.RuleProgram:        reduceProgram,
	cst.RuleFunction:       reduceFunction,
	cst.RuleMethod:         reduceMethod,
	cst.RuleProperty:       reduceProperty,
	cst.RuleAction:         reduceAction,
	cst.RuleInterface:      reduceInterface,
	cst.RuleDataTypeDecl:   reduceDataTypeDecl,
	cst.RuleGlobalVarList:  reduceGlobalVarList,
	cst.RuleModifiers:      reduceList,
	cst.RuleExtends:        reduceList,
	cst.RuleImplements:     reduceList,
	cst.RuleStructTypeDecl: reduceStructTypeDecl,
	cst.RuleUnionTypeDecl:  reduceUnionTypeDecl,
	cst.RuleEnumTypeDecl:   reduceEnumTypeDecl,
	cst.RuleAliasTypeDecl:  reduceAliasTypeDecl,
	cst.RuleStructBody:     reduceAttachedList,
	cst.RuleEnumValues:     reduceAttachedList,
	cst.RuleEnumValue:      reduceEnumValue,

	cst.RuleVarBlocks:     reduceAttachedList,
	cst.RuleVarBlock:      reduceVarBlock,
	cst.RuleQualifiers:    reduceList,
	cst.RuleVarDecl:       reduceVarDecl,
	cst.RuleNames:         reduceList,
	cst.RuleQualifiedName: reduceQualifiedName,
	cst.RuleSimpleType:    reduceSimpleType,
	cst.RuleStringType:    reduceStringType,
	cst.RuleArrayType:     reduceArrayType,
	cst.RuleArrayDims:     reduceList,
	cst.RuleArrayDim:      reduceArrayDim,
	cst.RulePointerType:   reducePointerType,
	cst.RuleSubrangeType:  reduceSubrangeType,
	cst.RuleEnumSpec:      reduceEnumSpec,
	cst.RuleArrayInit:     reduceArrayInit,
	cst.RuleArrayInitElem: reduceArrayInitElem,
	cst.RuleStructInit:    reduceStructInit,
	cst.RuleFieldInit:     reduceFieldInit,

	cst.RuleStatementList: reduceAttachedList,
	cst.RuleAssignment:    reduceAssignment,
	cst.RuleCallStatement: reduceCallStatement,
	cst.RuleIf:            reduceIf,
	cst.RuleElsifClauses:  reduceAttachedList,
	cst.RuleElsifClause:   reduceElsifClause,
	cst.RuleElseClause:    reduceElseClause,
	cst.RuleCase:          reduceCase,
	cst.RuleCaseElements:  reduceAttachedList,
	cst.RuleCaseElement:   reduceCaseElement,
	cst.RuleCaseLabels:    reduceList,
	cst.RuleCaseRange:     reduceCaseRange,
	cst.RuleFor:           reduceFor,
	cst.RuleWhile:         reduceWhile,
	cst.RuleRepeat:        reduceRepeat,
	cst.RuleReturn:        func(r *reduction) ast.Node { return &ast.Return{Meta: r.meta()} },
	cst.RuleExit:          func(r *reduction) ast.Node { return &ast.Exit{Meta: r.meta()} },
	cst.RuleContinue:      func(r *reduction) ast.Node { return &ast.Continue{Meta: r.meta()} },
	cst.RuleJmp:           func(r *reduction) ast.Node { return &ast.Jmp{Meta: r.meta(), Label: r.ident(0)} },
	cst.RuleLabel:         func(r *reduction) ast.Node { return &ast.Label{Meta: r.meta(), Name: r.ident(0)} },
	cst.RuleEmpty:         func(r *reduction) ast.Node { return &ast.Empty{Meta: r.meta()} },

	cst.RuleBinary:        reduceBinary,
	cst.RuleUnary:         reduceUnary,
	cst.RuleParen:         func(r *reduction) ast.Node { return &ast.Paren{Meta: r.meta(), X: r.expr(0)} },
	cst.RuleIntLiteral:    func(r *reduction) ast.Node { return &ast.IntLiteral{Meta: r.meta(), Text: r.tok(0).Text} },
	cst.RuleRealLiteral:   func(r *reduction) ast.Node { return &ast.RealLiteral{Meta: r.meta(), Text: r.tok(0).Text} },
	cst.RuleBoolLiteral:   reduceBoolLiteral,
	cst.RuleStringLiteral: func(r *reduction) ast.Node { return &ast.StringLiteral{Meta: r.meta(), Text: r.tok(0).Text} },
	cst.RuleTimeLiteral:   func(r *reduction) ast.Node { return &ast.TimeLiteral{Meta: r.meta(), Text: r.tok(0).Text} },
	cst.RuleTypedLiteral:  reduceTypedLiteral,
	cst.RuleEnumLiteral:   reduceEnumLiteral,
	cst.RuleDirectAddress: func(r *reduction) ast.Node { return &ast.DirectAddress{Meta: r.meta(), Text: r.tok(0).Text} },
	cst.RuleIdentifier:    func(r *reduction) ast.Node { return r.ident(0) },
	cst.RuleMember:        reduceMember,
	cst.RuleIndex:         reduceIndex,
	cst.RuleDeref:         func(r *reduction) ast.Node { return &ast.Deref{Meta: r.meta(), X: r.expr(0)} },
	cst.RuleCall:          reduceCall,
	cst.RuleCallArgs:      reduceCallArgs,
	cst.RuleNamedArg:      reduceNamedArg,
	cst.RuleOutputArg:     reduceOutputArg,
}

// reduceList passes the children up unchanged.
func reduceList(r *reduction) ast.Node {
	return &listNode{Meta: r.meta(), items: r.kids}
}

// reduceAttachedList is reduceList for lists whose items take leading and
// trailing comments. The parent attaches them, bounded by its own span.
func reduceAttachedList(r *reduction) ast.Node {
	return &listNode{Meta: r.meta(), items: r.kids, attach: true}
}
