package cst

import (
	"errors"
	"fmt"
	"slices"

	"plcst/internal/diag"
	"plcst/internal/lexer"
	"plcst/internal/source"
	"plcst/internal/token"
)

var binaryOperators = []token.Kind{
	token.KwOrElse, token.KwOr, token.KwXor, token.KwAndThen, token.KwAnd, token.Amp,
	token.Eq, token.NotEq, token.Lt, token.Gt, token.LtEq, token.GtEq,
	token.Plus, token.Minus, token.Star, token.Slash, token.KwMod,
}

// Engine is a compiled grammar. It is immutable after NewEngine and safe for concurrent use.
type Engine struct {
	grammar Grammar
	levels  [][]token.Kind
	levelOf map[token.Kind]int
	starts  map[Start]struct{}
}

// NewEngine validates and compiles g.
func NewEngine(g Grammar) (*Engine, error) {
	if len(g.Starts) == 0 {
		return nil, errors.New("grammar has no start symbols")
	}
	eng := &Engine{
		grammar: g,
		levelOf: make(map[token.Kind]int),
		starts:  make(map[Start]struct{}, len(g.Starts)),
	}
	for _, s := range g.Starts {
		switch s {
		case StartSource, StartDeclarations, StartStatements:
			eng.starts[s] = struct{}{}
		default:
			return nil, fmt.Errorf("grammar %s: unknown start symbol %q", g.Name, s)
		}
	}
	for i, level := range g.Precedence {
		if len(level) == 0 {
			return nil, fmt.Errorf("grammar %s: empty precedence level %d", g.Name, i)
		}
		for _, op := range level {
			if !slices.Contains(binaryOperators, op) {
				return nil, fmt.Errorf("grammar %s: %v is not a binary operator", g.Name, op)
			}
			if prev, dup := eng.levelOf[op]; dup {
				return nil, fmt.Errorf("grammar %s: operator %v listed at levels %d and %d", g.Name, op, prev, i)
			}
			eng.levelOf[op] = i
		}
		eng.levels = append(eng.levels, slices.Clone(level))
	}
	return eng, nil
}

// Grammar returns the description the engine was compiled from.
func (e *Engine) Grammar() Grammar { return e.grammar }

// Parse produces the concrete tree of file (clean text, comments removed) for start.
func (e *Engine) Parse(file *source.File, start Start) (root *Node, err error) {
	if _, ok := e.starts[start]; !ok {
		return nil, &GrammarError{Code: diag.SynUnknownStart, Msg: fmt.Sprintf("unknown start symbol %q", start)}
	}

	var lexErr diag.FirstErrorReporter
	toks := lexer.Tokenize(file, lexer.Options{Reporter: &lexErr})
	if lexErr.First != nil {
		return nil, &GrammarError{
			Span:  lexErr.First.Primary,
			Pos:   file.Position(lexErr.First.Primary.Start),
			Found: file.Text(lexErr.First.Primary),
			Code:  lexErr.First.Code,
			Msg:   lexErr.First.Message,
		}
	}

	p := &parser{eng: e, file: file, toks: toks}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			root, err = nil, p.grammarError()
		}
	}()

	switch start {
	case StartDeclarations:
		root = p.declarationsRoot()
	case StartStatements:
		root = p.statementsRoot()
	default:
		root = p.sourceRoot()
	}
	return root, nil
}

// ParseString is Parse over an in-memory text registered in a throwaway FileSet.
func (e *Engine) ParseString(text string, start Start) (*Node, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<text>", []byte(text))
	return e.Parse(fs.Get(id), start)
}
