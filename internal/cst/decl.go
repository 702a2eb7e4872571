package cst

import (
	"plcst/internal/token"
)

var varBlockKinds = []token.Kind{
	token.KwVar, token.KwVarInput, token.KwVarOutput, token.KwVarInOut, token.KwVarInst,
	token.KwVarTemp, token.KwVarStat, token.KwVarExternal, token.KwVarGlobal, token.KwVarConfig,
}

var qualifierKinds = []token.Kind{
	token.KwConstant, token.KwRetain, token.KwNonRetain, token.KwPersistent,
}

func (p *parser) atVarBlock() bool {
	return p.atAny(varBlockKinds...)
}

func (p *parser) varBlocks() Child {
	start := p.pos
	var blocks []Child
	for p.atVarBlock() {
		blocks = append(blocks, p.varBlock())
	}
	if len(blocks) == 0 {
		p.note("VAR")
	}
	return p.list(RuleVarBlocks, start, blocks)
}

func (p *parser) varBlock() Child {
	start := p.pos
	if !p.atVarBlock() {
		p.fail("VAR")
	}
	kind := p.advance()

	qs := p.pos
	var quals []Child
	for p.atAny(qualifierKinds...) {
		quals = append(quals, p.advance())
	}
	children := []Child{kind, p.list(RuleQualifiers, qs, quals)}

	for !p.at(token.KwEndVar) {
		if !p.at(token.Ident) {
			p.fail("identifier", "END_VAR")
		}
		children = append(children, p.varDecl())
	}
	p.endUnit(token.KwEndVar)
	return p.finish(RuleVarBlock, start, children...)
}

func (p *parser) varDecl() Child {
	start := p.pos
	ns := p.pos
	names := []Child{p.expect(token.Ident)}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		names = append(names, p.expect(token.Ident))
	}
	nameList := p.finish(RuleNames, ns, names...)

	var location Child
	if _, ok := p.accept(token.KwAt); ok {
		location = p.expect(token.DirectAddress)
	}
	p.expect(token.Colon)
	typ := p.typeSpec()

	var ctor, init Child
	if typ.Rule == RuleSimpleType && p.at(token.LParen) {
		ctor = p.callArgs()
	}
	if _, ok := p.accept(token.Assign); ok {
		init = p.initializer()
	}
	p.expect(token.Semicolon)
	return p.finish(RuleVarDecl, start, nameList, location, typ, ctor, init)
}

func (p *parser) typeSpec() *Node {
	start := p.pos
	switch p.tok().Kind {
	case token.KwArray:
		p.advance()
		ds := p.pos
		p.expect(token.LBracket)
		dims := []Child{p.arrayDim()}
		for {
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
			dims = append(dims, p.arrayDim())
		}
		p.expect(token.RBracket)
		dimList := p.finish(RuleArrayDims, ds, dims...)
		p.expect(token.KwOf)
		elem := p.typeSpec()
		return p.finish(RuleArrayType, start, dimList, elem)

	case token.KwPointer, token.KwReference:
		kw := p.advance()
		p.expect(token.KwTo)
		return p.finish(RulePointerType, start, kw, p.typeSpec())

	case token.KwString, token.KwWString:
		kw := p.advance()
		var length Child
		switch {
		case p.at(token.LParen):
			p.advance()
			length = p.expression()
			p.expect(token.RParen)
		case p.at(token.LBracket):
			p.advance()
			length = p.expression()
			p.expect(token.RBracket)
		}
		return p.finish(RuleStringType, start, kw, length)

	case token.LParen:
		values := p.enumValues()
		return p.finish(RuleEnumSpec, start, values.Children...)

	case token.Ident:
		name := p.qualifiedName()
		if p.at(token.LParen) {
			if sub, ok := p.try(func() *Node { return p.subrange(start, name) }); ok {
				return sub
			}
		}
		return p.finish(RuleSimpleType, start, name)
	}
	p.fail("type", "ARRAY", "POINTER", "REFERENCE", "STRING")
	return nil
}

func (p *parser) subrange(start int, name Child) *Node {
	p.expect(token.LParen)
	lo := p.expression()
	p.expect(token.DotDot)
	hi := p.expression()
	p.expect(token.RParen)
	return p.finish(RuleSubrangeType, start, name, lo, hi)
}

func (p *parser) arrayDim() Child {
	start := p.pos
	if p.at(token.Star) {
		return p.finish(RuleArrayDim, start, p.advance())
	}
	lo := p.expression()
	p.expect(token.DotDot)
	hi := p.expression()
	return p.finish(RuleArrayDim, start, lo, hi)
}

func (p *parser) initializer() Child {
	switch {
	case p.at(token.LBracket):
		return p.arrayInit()
	case p.at(token.LParen) && p.peekKind(1) == token.Ident && p.peekKind(2) == token.Assign:
		return p.structInit()
	}
	return p.expression()
}

func (p *parser) arrayInit() Child {
	start := p.pos
	p.expect(token.LBracket)
	var elems []Child
	if !p.at(token.RBracket) {
		elems = append(elems, p.arrayInitElem())
		for {
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
			elems = append(elems, p.arrayInitElem())
		}
	}
	p.expect(token.RBracket)
	return p.finish(RuleArrayInit, start, elems...)
}

func (p *parser) arrayInitElem() Child {
	start := p.pos
	value := p.initializer()
	var repeated Child
	if _, ok := p.accept(token.LParen); ok {
		repeated = p.initializer()
		p.expect(token.RParen)
	}
	return p.finish(RuleArrayInitElem, start, value, repeated)
}

func (p *parser) structInit() Child {
	start := p.pos
	p.expect(token.LParen)
	fields := []Child{p.fieldInit()}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		fields = append(fields, p.fieldInit())
	}
	p.expect(token.RParen)
	return p.finish(RuleStructInit, start, fields...)
}

func (p *parser) fieldInit() Child {
	start := p.pos
	name := p.expect(token.Ident)
	p.expect(token.Assign)
	return p.finish(RuleFieldInit, start, name, p.initializer())
}
