package cst

import (
	"plcst/internal/source"
	"plcst/internal/token"
)

var statementStarts = []token.Kind{
	token.Ident, token.Semicolon, token.KwIf, token.KwCase, token.KwFor, token.KwWhile,
	token.KwRepeat, token.KwReturn, token.KwExit, token.KwContinue, token.KwJmp,
}

func (p *parser) atStatement() bool {
	if !p.atAny(statementStarts...) {
		return false
	}
	return p.inCase == 0 || !p.atCaseLabel()
}

// atCaseLabel looks ahead for "Name:", "Name,", "Name..", "Enum.Value:" or "E#Value:".
func (p *parser) atCaseLabel() bool {
	i := p.pos
	if p.toks[i].Kind != token.Ident {
		return false
	}
	i++
	for i+1 < len(p.toks) && (p.toks[i].Kind == token.Dot || p.toks[i].Kind == token.Hash) && p.toks[i+1].Kind == token.Ident {
		i += 2
	}
	switch p.toks[i].Kind {
	case token.Colon, token.Comma, token.DotDot:
		return true
	}
	return false
}

// statementList returns nil when no statement follows.
func (p *parser) statementList() Child {
	start := p.pos
	var stmts []Child
	for p.atStatement() {
		stmts = append(stmts, p.statement())
	}
	if len(stmts) == 0 {
		p.note("statement")
	}
	return p.list(RuleStatementList, start, stmts)
}

// bodyList parses a nested statement list outside of CASE label context.
func (p *parser) bodyList() Child {
	saved := p.inCase
	p.inCase = 0
	defer func() { p.inCase = saved }()
	return p.statementList()
}

func (p *parser) statement() Child {
	start := p.pos
	switch p.tok().Kind {
	case token.Semicolon:
		p.advance()
		return p.finish(RuleEmpty, start)
	case token.KwIf:
		return p.ifStatement()
	case token.KwCase:
		return p.caseStatement()
	case token.KwFor:
		return p.forStatement()
	case token.KwWhile:
		return p.whileStatement()
	case token.KwRepeat:
		return p.repeatStatement()
	case token.KwReturn:
		p.advance()
		p.expect(token.Semicolon)
		return p.finish(RuleReturn, start)
	case token.KwExit:
		p.advance()
		p.expect(token.Semicolon)
		return p.finish(RuleExit, start)
	case token.KwContinue:
		p.advance()
		p.expect(token.Semicolon)
		return p.finish(RuleContinue, start)
	case token.KwJmp:
		p.advance()
		label := p.expect(token.Ident)
		p.expect(token.Semicolon)
		return p.finish(RuleJmp, start, label)
	case token.Ident:
		if p.peekKind(1) == token.Colon {
			label := p.advance()
			p.advance()
			return p.finish(RuleLabel, start, label)
		}
		return p.simpleStatement()
	}
	p.fail("statement")
	return nil
}

func (p *parser) simpleStatement() Child {
	start := p.pos
	target := p.postfix()

	if p.at(token.Assign) {
		op := p.advance()
		value := p.expression()
		p.expect(token.Semicolon)
		return p.finish(RuleAssignment, start, target, op, value)
	}
	if op := p.setResetOperator(); op != nil {
		value := p.expression()
		p.expect(token.Semicolon)
		return p.finish(RuleAssignment, start, target, op, value)
	}
	if target.Rule == RuleCall {
		p.expect(token.Semicolon)
		return p.finish(RuleCallStatement, start, target)
	}
	p.fail("':='", "'('")
	return nil
}

// setResetOperator merges adjacent "S" "=", "R" "=" and "REF" "=" tokens.
func (p *parser) setResetOperator() *Leaf {
	if !p.eng.grammar.SetResetAssign || !p.at(token.Ident) || p.peekKind(1) != token.Eq {
		return nil
	}
	word, eq := p.toks[p.pos], p.toks[p.pos+1]
	if word.Span.End != eq.Span.Start {
		return nil
	}
	var kind token.Kind
	switch {
	case word.Is("S"):
		kind = token.SetAssign
	case word.Is("R"):
		kind = token.ResetAssign
	case word.Is("REF"):
		kind = token.RefAssign
	default:
		return nil
	}
	p.pos += 2
	return &Leaf{Token: token.Token{
		Kind: kind,
		Span: source.Span{File: word.Span.File, Start: word.Span.Start, End: eq.Span.End},
		Text: word.Text + eq.Text,
	}}
}

func (p *parser) ifStatement() Child {
	start := p.pos
	p.expect(token.KwIf)
	cond := p.expression()
	p.expect(token.KwThen)
	then := p.bodyList()

	es := p.pos
	var elsifs []Child
	for p.at(token.KwElsif) {
		s := p.pos
		p.advance()
		c := p.expression()
		p.expect(token.KwThen)
		elsifs = append(elsifs, p.finish(RuleElsifClause, s, c, p.bodyList()))
	}
	elsifList := p.list(RuleElsifClauses, es, elsifs)

	elseClause := p.elseClause()
	p.endUnit(token.KwEndIf)
	return p.finish(RuleIf, start, cond, then, elsifList, elseClause)
}

func (p *parser) elseClause() Child {
	if !p.at(token.KwElse) {
		p.note("ELSE")
		return nil
	}
	start := p.pos
	p.advance()
	return p.finish(RuleElseClause, start, p.bodyList())
}

func (p *parser) caseStatement() Child {
	start := p.pos
	p.expect(token.KwCase)
	selector := p.expression()
	p.expect(token.KwOf)

	es := p.pos
	var elems []Child
	for !p.at(token.KwElse) && !p.at(token.KwEndCase) {
		elems = append(elems, p.caseElement())
	}
	elemList := p.list(RuleCaseElements, es, elems)

	elseClause := p.elseClause()
	p.endUnit(token.KwEndCase)
	return p.finish(RuleCase, start, selector, elemList, elseClause)
}

func (p *parser) caseElement() Child {
	start := p.pos
	ls := p.pos
	labels := []Child{p.caseLabel()}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		labels = append(labels, p.caseLabel())
	}
	labelList := p.finish(RuleCaseLabels, ls, labels...)
	p.expect(token.Colon)

	p.inCase++
	body := p.statementList()
	p.inCase--
	return p.finish(RuleCaseElement, start, labelList, body)
}

func (p *parser) caseLabel() Child {
	start := p.pos
	lo := p.expression()
	if _, ok := p.accept(token.DotDot); ok {
		return p.finish(RuleCaseRange, start, lo, p.expression())
	}
	return lo
}

func (p *parser) forStatement() Child {
	start := p.pos
	p.expect(token.KwFor)
	control := p.expect(token.Ident)
	p.expect(token.Assign)
	from := p.expression()
	p.expect(token.KwTo)
	to := p.expression()
	var by Child
	if _, ok := p.accept(token.KwBy); ok {
		by = p.expression()
	}
	p.expect(token.KwDo)
	body := p.bodyList()
	p.endUnit(token.KwEndFor)
	return p.finish(RuleFor, start, control, from, to, by, body)
}

func (p *parser) whileStatement() Child {
	start := p.pos
	p.expect(token.KwWhile)
	cond := p.expression()
	p.expect(token.KwDo)
	body := p.bodyList()
	p.endUnit(token.KwEndWhile)
	return p.finish(RuleWhile, start, cond, body)
}

func (p *parser) repeatStatement() Child {
	start := p.pos
	p.expect(token.KwRepeat)
	body := p.bodyList()
	p.expect(token.KwUntil)
	cond := p.expression()
	p.endUnit(token.KwEndRepeat)
	return p.finish(RuleRepeat, start, body, cond)
}
