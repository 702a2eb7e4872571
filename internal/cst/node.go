package cst

import (
	"fmt"
	"strings"

	"plcst/internal/source"
	"plcst/internal/token"
)

// Child is either *Node, *Leaf or nil (a placeholder for an absent optional element).
type Child interface {
	childSpan() source.Span
}

// Node is one rule match.
type Node struct {
	Rule     Rule
	Children []Child
	Span     source.Span
}

// Leaf wraps a token kept in the tree.
type Leaf struct {
	token.Token
}

func (n *Node) childSpan() source.Span { return n.Span }
func (l *Leaf) childSpan() source.Span { return l.Span }

// ChildNode returns child i as *Node, nil when it is a placeholder or a leaf.
func (n *Node) ChildNode(i int) *Node {
	if i >= len(n.Children) {
		return nil
	}
	c, _ := n.Children[i].(*Node)
	return c
}

// ChildLeaf returns child i as *Leaf, nil when it is a placeholder or a node.
func (n *Node) ChildLeaf(i int) *Leaf {
	if i >= len(n.Children) {
		return nil
	}
	c, _ := n.Children[i].(*Leaf)
	return c
}

// Dump renders the tree in an indented s-expression form.
func (n *Node) Dump() string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, c Child, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	switch c := c.(type) {
	case nil:
		b.WriteString("<none>\n")
	case *Leaf:
		fmt.Fprintf(b, "%s %q\n", c.Kind, c.Text)
	case *Node:
		fmt.Fprintf(b, "%s [%d,%d)\n", c.Rule, c.Span.Start, c.Span.End)
		for _, ch := range c.Children {
			dump(b, ch, depth+1)
		}
	}
}
