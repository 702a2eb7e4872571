package cst

import (
	"plcst/internal/token"
)

var modifierKinds = []token.Kind{
	token.KwAbstract, token.KwFinal,
	token.KwPublic, token.KwPrivate, token.KwProtected, token.KwInternal,
}

func (p *parser) unit() Child {
	switch p.tok().Kind {
	case token.KwFunctionBlock:
		return p.functionBlock()
	case token.KwProgram:
		return p.program()
	case token.KwFunction:
		return p.function()
	case token.KwMethod:
		return p.method()
	case token.KwProperty:
		return p.property()
	case token.KwAction:
		return p.action()
	case token.KwInterface:
		return p.iface()
	case token.KwType:
		return p.dataTypeDecl()
	case token.KwVarGlobal, token.KwVarConfig:
		return p.globalVarList()
	}
	p.fail("FUNCTION_BLOCK", "PROGRAM", "FUNCTION", "METHOD", "PROPERTY",
		"ACTION", "INTERFACE", "TYPE", "VAR_GLOBAL", "VAR_CONFIG", "end of input")
	return nil
}

// endUnit consumes the closing keyword and an optional ';'.
func (p *parser) endUnit(k token.Kind) {
	p.expect(k)
	p.accept(token.Semicolon)
}

func (p *parser) modifiers() Child {
	start := p.pos
	var mods []Child
	for p.atAny(modifierKinds...) {
		mods = append(mods, p.advance())
	}
	return p.list(RuleModifiers, start, mods)
}

func (p *parser) functionBlock() Child {
	start := p.pos
	p.expect(token.KwFunctionBlock)
	mods := p.modifiers()
	name := p.expect(token.Ident)
	var extends, implements Child
	if p.at(token.KwExtends) {
		s := p.pos
		p.advance()
		extends = p.finish(RuleExtends, s, p.qualifiedName())
	}
	if p.at(token.KwImplements) {
		s := p.pos
		p.advance()
		implements = p.finish(RuleImplements, s, p.qualifiedNameList()...)
	}
	blocks := p.varBlocks()
	body := p.statementList()
	p.endUnit(token.KwEndFunctionBlock)
	return p.finish(RuleFunctionBlock, start, mods, name, extends, implements, blocks, body)
}

func (p *parser) program() Child {
	start := p.pos
	p.expect(token.KwProgram)
	name := p.expect(token.Ident)
	blocks := p.varBlocks()
	body := p.statementList()
	p.endUnit(token.KwEndProgram)
	return p.finish(RuleProgram, start, name, blocks, body)
}

// returnType parses an optional ": type".
func (p *parser) returnType() Child {
	if _, ok := p.accept(token.Colon); ok {
		return p.typeSpec()
	}
	return nil
}

func (p *parser) function() Child {
	start := p.pos
	p.expect(token.KwFunction)
	mods := p.modifiers()
	name := p.expect(token.Ident)
	ret := p.returnType()
	blocks := p.varBlocks()
	body := p.statementList()
	p.endUnit(token.KwEndFunction)
	return p.finish(RuleFunction, start, mods, name, ret, blocks, body)
}

func (p *parser) method() Child {
	start := p.pos
	p.expect(token.KwMethod)
	mods := p.modifiers()
	name := p.expect(token.Ident)
	ret := p.returnType()
	blocks := p.varBlocks()
	body := p.statementList()
	p.endUnit(token.KwEndMethod)
	return p.finish(RuleMethod, start, mods, name, ret, blocks, body)
}

func (p *parser) property() Child {
	start := p.pos
	p.expect(token.KwProperty)
	mods := p.modifiers()
	name := p.expect(token.Ident)
	p.expect(token.Colon)
	typ := p.typeSpec()
	blocks := p.varBlocks()
	body := p.statementList()
	p.endUnit(token.KwEndProperty)
	return p.finish(RuleProperty, start, mods, name, typ, blocks, body)
}

func (p *parser) action() Child {
	start := p.pos
	p.expect(token.KwAction)
	name := p.expect(token.Ident)
	p.accept(token.Colon)
	body := p.statementList()
	p.endUnit(token.KwEndAction)
	return p.finish(RuleAction, start, name, body)
}

func (p *parser) iface() Child {
	start := p.pos
	p.expect(token.KwInterface)
	name := p.expect(token.Ident)
	var extends Child
	if p.at(token.KwExtends) {
		s := p.pos
		p.advance()
		extends = p.finish(RuleExtends, s, p.qualifiedNameList()...)
	}
	blocks := p.varBlocks()
	p.endUnit(token.KwEndInterface)
	return p.finish(RuleInterface, start, name, extends, blocks)
}

func (p *parser) globalVarList() Child {
	start := p.pos
	var blocks []Child
	for p.atVarBlock() {
		blocks = append(blocks, p.varBlock())
	}
	return p.finish(RuleGlobalVarList, start, blocks...)
}

func (p *parser) dataTypeDecl() Child {
	start := p.pos
	p.expect(token.KwType)
	decls := []Child{p.typeDecl()}
	for p.at(token.Ident) {
		decls = append(decls, p.typeDecl())
	}
	p.endUnit(token.KwEndType)
	return p.finish(RuleDataTypeDecl, start, decls...)
}

func (p *parser) typeDecl() Child {
	start := p.pos
	name := p.expect(token.Ident)
	var extends Child
	if p.at(token.KwExtends) {
		s := p.pos
		p.advance()
		extends = p.finish(RuleExtends, s, p.qualifiedName())
	}
	p.expect(token.Colon)

	switch {
	case p.at(token.KwStruct):
		p.advance()
		body := p.structBody(token.KwEndStruct)
		p.endUnit(token.KwEndStruct)
		return p.finish(RuleStructTypeDecl, start, name, extends, body)
	case p.at(token.KwUnion) && extends == nil:
		p.advance()
		body := p.structBody(token.KwEndUnion)
		p.endUnit(token.KwEndUnion)
		return p.finish(RuleUnionTypeDecl, start, name, body)
	case p.at(token.LParen) && extends == nil:
		values := p.enumValues()
		var base, def Child
		if p.at(token.Ident) || p.at(token.KwString) || p.at(token.KwWString) {
			base = p.typeSpec()
		}
		if _, ok := p.accept(token.Assign); ok {
			def = p.expression()
		}
		p.accept(token.Semicolon)
		return p.finish(RuleEnumTypeDecl, start, name, values, base, def)
	}
	if extends != nil {
		p.fail("STRUCT")
	}
	typ := p.typeSpec()
	var init Child
	if _, ok := p.accept(token.Assign); ok {
		init = p.initializer()
	}
	p.accept(token.Semicolon)
	return p.finish(RuleAliasTypeDecl, start, name, typ, init)
}

func (p *parser) structBody(end token.Kind) Child {
	start := p.pos
	var decls []Child
	for !p.at(end) {
		if !p.at(token.Ident) {
			p.fail("identifier", end.String())
		}
		decls = append(decls, p.varDecl())
	}
	return p.list(RuleStructBody, start, decls)
}

func (p *parser) enumValues() *Node {
	start := p.pos
	p.expect(token.LParen)
	values := []Child{p.enumValue()}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		values = append(values, p.enumValue())
	}
	p.expect(token.RParen)
	return p.finish(RuleEnumValues, start, values...)
}

func (p *parser) enumValue() Child {
	start := p.pos
	name := p.expect(token.Ident)
	var value Child
	if _, ok := p.accept(token.Assign); ok {
		value = p.expression()
	}
	return p.finish(RuleEnumValue, start, name, value)
}

func (p *parser) qualifiedName() Child {
	start := p.pos
	parts := []Child{p.expect(token.Ident)}
	for p.at(token.Dot) && p.peekKind(1) == token.Ident {
		p.advance()
		parts = append(parts, p.advance())
	}
	return p.finish(RuleQualifiedName, start, parts...)
}

func (p *parser) qualifiedNameList() []Child {
	names := []Child{p.qualifiedName()}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			return names
		}
		names = append(names, p.qualifiedName())
	}
}
