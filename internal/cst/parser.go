package cst

import (
	"slices"

	"plcst/internal/source"
	"plcst/internal/token"
)

type bailout struct{}

type parser struct {
	eng  *Engine
	file *source.File
	toks []token.Token
	pos  int

	// самая дальняя позиция ошибки и ожидания в ней
	furthest int
	expected []string

	inCase int
}

func (p *parser) tok() token.Token { return p.toks[p.pos] }

func (p *parser) at(k token.Kind) bool { return p.toks[p.pos].Kind == k }

func (p *parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.toks[p.pos].Kind)
}

func (p *parser) peekKind(n int) token.Kind {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i].Kind
	}
	return token.EOF
}

func (p *parser) advance() *Leaf {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return &Leaf{Token: tok}
}

// note records what would have been accepted at the current position.
func (p *parser) note(expected ...string) {
	switch {
	case p.pos > p.furthest:
		p.furthest = p.pos
		p.expected = append(p.expected[:0], expected...)
	case p.pos == p.furthest:
		p.expected = append(p.expected, expected...)
	}
}

func (p *parser) fail(expected ...string) {
	p.note(expected...)
	panic(bailout{})
}

func (p *parser) expect(k token.Kind) *Leaf {
	if p.at(k) {
		return p.advance()
	}
	p.fail(k.String())
	return nil
}

func (p *parser) accept(k token.Kind) (*Leaf, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.note(k.String())
	return nil, false
}

// try runs fn and rewinds on failure.
func (p *parser) try(fn func() *Node) (n *Node, ok bool) {
	save := p.pos
	defer func() {
		if r := recover(); r != nil {
			if _, isBailout := r.(bailout); !isBailout {
				panic(r)
			}
			p.pos = save
			n, ok = nil, false
		}
	}()
	return fn(), true
}

func (p *parser) spanFrom(start int) source.Span {
	if p.pos == start {
		at := p.toks[start].Span.Start
		return source.Span{File: p.file.ID, Start: at, End: at}
	}
	return source.Span{File: p.file.ID, Start: p.toks[start].Span.Start, End: p.toks[p.pos-1].Span.End}
}

func (p *parser) finish(rule Rule, start int, children ...Child) *Node {
	return &Node{Rule: rule, Children: children, Span: p.spanFrom(start)}
}

// list builds a list node, or nil when items is empty.
func (p *parser) list(rule Rule, start int, items []Child) Child {
	if len(items) == 0 {
		return nil
	}
	return p.finish(rule, start, items...)
}

func opt(n *Node) Child {
	if n == nil {
		return nil
	}
	return n
}

func optLeaf(l *Leaf) Child {
	if l == nil {
		return nil
	}
	return l
}

func (p *parser) grammarError() *GrammarError {
	tok := p.toks[p.furthest]
	expected := slices.Clone(p.expected)
	slices.Sort(expected)
	expected = slices.Compact(expected)
	return &GrammarError{
		Span:     tok.Span,
		Pos:      p.file.Position(tok.Span.Start),
		Found:    tok.Text,
		Expected: expected,
	}
}

func (p *parser) sourceRoot() *Node {
	start := p.pos
	var units []Child
	for !p.at(token.EOF) {
		units = append(units, p.unit())
	}
	return p.finish(RuleSource, start, units...)
}

func (p *parser) declarationsRoot() *Node {
	start := p.pos
	var blocks []Child
	for p.atVarBlock() {
		blocks = append(blocks, p.varBlock())
	}
	p.expect(token.EOF)
	return p.finish(RuleDeclarations, start, blocks...)
}

func (p *parser) statementsRoot() *Node {
	start := p.pos
	var stmts []Child
	for p.atStatement() {
		stmts = append(stmts, p.statement())
	}
	p.expect(token.EOF)
	return p.finish(RuleStatements, start, stmts...)
}
