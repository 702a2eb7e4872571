package transform

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"plcst/internal/ast"
	"plcst/internal/comments"
	"plcst/internal/cst"
	"plcst/internal/source"
	"plcst/internal/token"
)

// Transform reduces an iec_source tree. file must be the clean text the tree
// was parsed from; records is the comment table extracted from the same text.
func Transform(root *cst.Node, file *source.File, records []comments.Record) (*ast.SourceCode, error) {
	out, err := run[*ast.SourceCode](root, cst.RuleSource, file, records)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TransformDeclarations reduces a var_declarations fragment.
func TransformDeclarations(root *cst.Node, file *source.File, records []comments.Record) (*ast.DeclarationList, error) {
	return run[*ast.DeclarationList](root, cst.RuleDeclarations, file, records)
}

// TransformStatements reduces a statement_list fragment.
func TransformStatements(root *cst.Node, file *source.File, records []comments.Record) (*ast.StatementList, error) {
	return run[*ast.StatementList](root, cst.RuleStatements, file, records)
}

func run[T ast.Node](root *cst.Node, want cst.Rule, file *source.File, records []comments.Record) (out T, err error) {
	var zero T
	if root == nil || root.Rule != want {
		got := "nil"
		if root != nil {
			got = root.Rule.String()
		}
		return zero, &TransformError{Rule: want, Msg: "root is " + got}
	}

	t := &transformer{file: file, comments: newCommentIndex(records, file.Content)}
	defer func() {
		if r := recover(); r != nil {
			te, ok := r.(*TransformError)
			if !ok {
				panic(r)
			}
			out, err = zero, te
		}
	}()

	node := t.reduce(root)
	res, ok := node.(T)
	if !ok {
		return zero, &TransformError{Rule: want, Span: root.Span, Msg: fmt.Sprintf("root reduced to %T", node)}
	}
	ast.Walk(res, t.claimInside)
	if n := t.comments.unclaimed(); n != 0 {
		return zero, &TransformError{Rule: want, Span: root.Span, Msg: fmt.Sprintf("%d comments outside the tree", n)}
	}
	if t.dup != nil {
		return zero, t.dup
	}
	return res, nil
}

type transformer struct {
	file     *source.File
	comments *commentIndex
	dup      *DuplicateDeclarationError
}

// leafNode carries a token between a reduction and its parent.
type leafNode struct {
	ast.Meta
	tok token.Token
}

// listNode carries the items of a list rule to the parent reduction.
type listNode struct {
	ast.Meta
	items  []ast.Node
	attach bool
}

func (t *transformer) reduce(n *cst.Node) ast.Node {
	fn, ok := reducers[n.Rule]
	if !ok {
		panic(&TransformError{Rule: n.Rule, Span: n.Span, Msg: "no reduction for rule"})
	}
	kids := make([]ast.Node, len(n.Children))
	for i, c := range n.Children {
		switch c := c.(type) {
		case nil:
		case *cst.Leaf:
			kids[i] = &leafNode{Meta: ast.Meta{Span: c.Span}, tok: c.Token}
		case *cst.Node:
			kids[i] = t.reduce(c)
		}
	}
	out := fn(&reduction{t: t, n: n, kids: kids})
	if out == nil {
		panic(&TransformError{Rule: n.Rule, Span: n.Span, Msg: "reduction produced nothing"})
	}
	return out
}

func (t *transformer) fileSpan() source.Span {
	end, err := safecast.Conv[uint32](len(t.file.Content))
	if err != nil {
		panic(&TransformError{Rule: cst.RuleSource, Msg: "file too large: " + err.Error()})
	}
	return source.Span{File: t.file.ID, Start: 0, End: end}
}

// attach gives each item its leading gap comments and same-line trailing
// comments, staying inside parent.
func (t *transformer) attach(parent source.Span, items []ast.Node) {
	for _, item := range items {
		m := ast.MetaOf(item)
		lo := max(t.comments.gapStart(m.Span.Start), parent.Start)
		lead := t.comments.leading(lo, m.Span.Start)
		trail, end := t.comments.trailing(m.Span.End, parent.End)
		if len(lead) == 0 && len(trail) == 0 {
			continue
		}
		m.Attached = append(append(lead, m.Attached...), trail...)
		m.Leading += len(lead)
		m.Span = cover(m.Span, lead)
		m.Span.End = max(m.Span.End, end)
	}
}

func (t *transformer) claimInside(n ast.Node) {
	m := ast.MetaOf(n)
	inside := t.comments.claim(m.Span.Start, m.Span.End)
	if len(inside) == 0 {
		return
	}
	m.Attached = append(m.Attached, inside...)
	slices.SortStableFunc(m.Attached, func(a, b comments.Record) int {
		return int(a.Span.Start) - int(b.Span.Start)
	})
}

// scope indexes the variable sections of one unit and records the first duplicate.
func (t *transformer) scope(blocks []*ast.VariableBlock) *ast.DeclarationIndex {
	return ast.IndexBlocks(blocks, func(kind ast.VarKind, first, second *ast.Ident) {
		t.duplicate(kind.String(), first, second)
	})
}

func (t *transformer) duplicate(kind string, first, second *ast.Ident) {
	if t.dup != nil {
		return
	}
	t.dup = &DuplicateDeclarationError{Name: second.Name, Kind: kind, First: first.Span, Second: second.Span}
}

// reduction is the input of one reduce step: the concrete node and its reduced children.
type reduction struct {
	t    *transformer
	n    *cst.Node
	kids []ast.Node
}

func (r *reduction) fail(format string, args ...any) {
	panic(&TransformError{Rule: r.n.Rule, Span: r.n.Span, Msg: fmt.Sprintf(format, args...)})
}

func (r *reduction) meta() ast.Meta { return ast.Meta{Span: r.n.Span} }

func (r *reduction) kid(i int) ast.Node {
	if i >= len(r.kids) {
		r.fail("missing child %d of %d", i, len(r.kids))
	}
	return r.kids[i]
}

func (r *reduction) tok(i int) token.Token {
	l, ok := r.kid(i).(*leafNode)
	if !ok {
		r.fail("child %d: want token, got %T", i, r.kids[i])
	}
	return l.tok
}

func (r *reduction) optTok(i int) (token.Token, bool) {
	if r.kid(i) == nil {
		return token.Token{}, false
	}
	return r.tok(i), true
}

func (r *reduction) ident(i int) *ast.Ident {
	tok := r.tok(i)
	return &ast.Ident{Meta: ast.Meta{Span: tok.Span}, Name: tok.Text}
}

func (r *reduction) tokens(i int) []token.Token {
	var out []token.Token
	for _, item := range r.list(i) {
		l, ok := item.(*leafNode)
		if !ok {
			r.fail("child %d: want token list, got %T", i, item)
		}
		out = append(out, l.tok)
	}
	return out
}

func (r *reduction) list(i int) []ast.Node {
	switch k := r.kid(i).(type) {
	case nil:
		return nil
	case *listNode:
		if k.attach {
			k.attach = false
			r.t.attach(r.n.Span, k.items)
		}
		return k.items
	default:
		r.fail("child %d: want list, got %T", i, k)
	}
	return nil
}

func (r *reduction) expr(i int) ast.Expr           { return as[ast.Expr](r, i) }
func (r *reduction) optExpr(i int) ast.Expr        { return optAs[ast.Expr](r, i) }
func (r *reduction) typ(i int) ast.TypeSpec        { return as[ast.TypeSpec](r, i) }
func (r *reduction) optTyp(i int) ast.TypeSpec     { return optAs[ast.TypeSpec](r, i) }
func (r *reduction) optInit(i int) ast.Initializer { return optAs[ast.Initializer](r, i) }

func (r *reduction) stmts(i int) []ast.Statement { return items[ast.Statement](r, r.list(i)) }

func (r *reduction) blocks(i int) []*ast.VariableBlock {
	return items[*ast.VariableBlock](r, r.list(i))
}

// as type-checks a required child.
func as[T ast.Node](r *reduction, i int) T {
	v, ok := r.kid(i).(T)
	if !ok {
		var want T
		r.fail("child %d: want %T, got %T", i, any(&want), r.kids[i])
	}
	return v
}

// optAs type-checks an optional child; a placeholder gives the zero value.
func optAs[T ast.Node](r *reduction, i int) T {
	if r.kid(i) == nil {
		var zero T
		return zero
	}
	return as[T](r, i)
}

// items type-checks every element of a list.
func items[T ast.Node](r *reduction, nodes []ast.Node) []T {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]T, len(nodes))
	for i, n := range nodes {
		v, ok := n.(T)
		if !ok {
			var want T
			r.fail("item %d: want %T, got %T", i, any(&want), n)
		}
		out[i] = v
	}
	return out
}

// rest type-checks the children from index i on.
func rest[T ast.Node](r *reduction, from int) []T {
	if from >= len(r.kids) {
		return nil
	}
	return items[T](r, r.kids[from:])
}
