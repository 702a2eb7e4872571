package cst

import (
	"plcst/internal/token"
)

func (p *parser) expression() *Node {
	return p.binary(0)
}

func (p *parser) binary(level int) *Node {
	if level == len(p.eng.levels) {
		return p.unary()
	}
	start := p.pos
	left := p.binary(level + 1)
	for p.atAny(p.eng.levels[level]...) {
		op := p.advance()
		right := p.binary(level + 1)
		left = p.finish(RuleBinary, start, left, op, right)
	}
	return left
}

func (p *parser) unary() *Node {
	start := p.pos
	if p.atAny(token.Minus, token.Plus, token.KwNot) {
		op := p.advance()
		return p.finish(RuleUnary, start, op, p.unary())
	}
	return p.power()
}

func (p *parser) power() *Node {
	start := p.pos
	left := p.postfix()
	for p.at(token.Power) {
		op := p.advance()
		right := p.unary()
		left = p.finish(RuleBinary, start, left, op, right)
	}
	return left
}

func callable(n *Node) bool {
	switch n.Rule {
	case RuleIdentifier, RuleMember, RuleIndex, RuleDeref, RuleCall:
		return true
	}
	return false
}

func (p *parser) postfix() *Node {
	start := p.pos
	base := p.primary()
	for {
		switch {
		case p.at(token.Dot):
			p.advance()
			// после точки ключевые слова - обычные имена: fb.Method, st.Type
			if !p.atAny(token.Ident, token.IntLit) && !p.tok().Kind.IsKeyword() {
				p.fail("identifier", "bit number")
			}
			base = p.finish(RuleMember, start, base, p.advance())
		case p.at(token.LBracket):
			p.advance()
			children := []Child{base, p.expression()}
			for {
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
				children = append(children, p.expression())
			}
			p.expect(token.RBracket)
			base = p.finish(RuleIndex, start, children...)
		case p.at(token.Caret):
			p.advance()
			base = p.finish(RuleDeref, start, base)
		case p.at(token.LParen) && callable(base):
			base = p.finish(RuleCall, start, base, p.callArgs())
		default:
			return base
		}
	}
}

func (p *parser) primary() *Node {
	start := p.pos
	switch p.tok().Kind {
	case token.IntLit:
		return p.finish(RuleIntLiteral, start, p.advance())
	case token.RealLit:
		return p.finish(RuleRealLiteral, start, p.advance())
	case token.StringLit, token.WStringLit:
		return p.finish(RuleStringLiteral, start, p.advance())
	case token.TimeLit:
		return p.finish(RuleTimeLiteral, start, p.advance())
	case token.KwTrue, token.KwFalse:
		return p.finish(RuleBoolLiteral, start, p.advance())
	case token.DirectAddress:
		return p.finish(RuleDirectAddress, start, p.advance())
	case token.LParen:
		p.advance()
		inner := p.expression()
		p.expect(token.RParen)
		return p.finish(RuleParen, start, inner)
	case token.Ident:
		if p.peekKind(1) == token.Hash {
			return p.typedLiteral()
		}
		return p.finish(RuleIdentifier, start, p.advance())
	case token.KwString, token.KwWString:
		if p.peekKind(1) == token.Hash {
			return p.typedLiteral()
		}
	}
	p.fail("expression")
	return nil
}

// typedLiteral: INT#5, REAL#-1.5, STRING#'x', BOOL#TRUE, E_State#Idle.
func (p *parser) typedLiteral() *Node {
	start := p.pos
	typ := p.advance()
	p.expect(token.Hash)
	if p.at(token.Ident) {
		return p.finish(RuleEnumLiteral, start, typ, p.advance())
	}
	var sign Child
	if p.atAny(token.Minus, token.Plus) {
		sign = p.advance()
		if !p.atAny(token.IntLit, token.RealLit) {
			p.fail("number")
		}
	}
	if !p.atAny(token.IntLit, token.RealLit, token.StringLit, token.WStringLit, token.KwTrue, token.KwFalse) {
		p.fail("literal value", "identifier")
	}
	return p.finish(RuleTypedLiteral, start, typ, sign, p.advance())
}

func (p *parser) callArgs() Child {
	start := p.pos
	p.expect(token.LParen)
	var args []Child
	if !p.at(token.RParen) {
		args = append(args, p.callArg())
		for {
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
			args = append(args, p.callArg())
		}
	}
	p.expect(token.RParen)
	return p.finish(RuleCallArgs, start, args...)
}

func (p *parser) callArg() Child {
	start := p.pos
	switch {
	case p.at(token.KwNot) && p.peekKind(1) == token.Ident && p.peekKind(2) == token.OutAssign:
		not := p.advance()
		name := p.advance()
		p.advance()
		return p.finish(RuleOutputArg, start, not, name, p.outputTarget())
	case p.at(token.Ident) && p.peekKind(1) == token.OutAssign:
		name := p.advance()
		p.advance()
		return p.finish(RuleOutputArg, start, nil, name, p.outputTarget())
	case p.at(token.Ident) && p.peekKind(1) == token.Assign:
		name := p.advance()
		p.advance()
		return p.finish(RuleNamedArg, start, name, p.expression())
	}
	return p.expression()
}

// outputTarget allows "Q => )" with no target, as TwinCAT does.
func (p *parser) outputTarget() Child {
	if p.atAny(token.Comma, token.RParen) {
		return nil
	}
	return p.expression()
}
