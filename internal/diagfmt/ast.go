package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"plcst/internal/ast"
	"plcst/internal/source"
	"plcst/internal/token"
)

type ASTNodeOutput struct {
	Type     string          `json:"type" yaml:"type"`
	Label    string          `json:"label,omitempty" yaml:"label,omitempty"`
	Span     source.Span     `json:"span" yaml:"span"`
	Comments []string        `json:"comments,omitempty" yaml:"comments,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty" yaml:"children,omitempty"`
}

// FormatASTPretty prints the tree of u with box drawing, one node per line.
func FormatASTPretty(w io.Writer, u *ast.SourceUnit, fs *source.FileSet) error {
	if u == nil || u.Root == nil {
		return fmt.Errorf("no tree")
	}
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", u.Identifier, formatSpan(u.Root.Span, fs)); err != nil {
		return err
	}
	kids := ast.Children(u.Root)
	for i, c := range kids {
		if err := prettyNode(w, c, fs, "", i == len(kids)-1); err != nil {
			return err
		}
	}
	return nil
}

func prettyNode(w io.Writer, n ast.Node, fs *source.FileSet, prefix string, last bool) error {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	line := prefix + branch + nodeType(n)
	if l := nodeLabel(n); l != "" {
		line += " " + l
	}
	line += fmt.Sprintf(" (span: %s)", formatSpan(ast.SpanOf(n), fs))
	for _, r := range ast.MetaOf(n).Attached {
		line += " " + r.Kind.String() + "=" + fmt.Sprintf("%q", r.Text)
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	kids := ast.Children(n)
	for i, c := range kids {
		if err := prettyNode(w, c, fs, prefix+next, i == len(kids)-1); err != nil {
			return err
		}
	}
	return nil
}

// BuildASTOutput converts a tree into the serialisable form used by JSON and YAML.
func BuildASTOutput(n ast.Node) ASTNodeOutput {
	out := ASTNodeOutput{Type: nodeType(n), Label: nodeLabel(n), Span: ast.SpanOf(n)}
	for _, r := range ast.MetaOf(n).Attached {
		out.Comments = append(out.Comments, r.Text)
	}
	for _, c := range ast.Children(n) {
		out.Children = append(out.Children, BuildASTOutput(c))
	}
	return out
}

func FormatASTJSON(w io.Writer, u *ast.SourceUnit) error {
	return encodeJSON(w, BuildASTOutput(u.Root))
}

func FormatASTYAML(w io.Writer, u *ast.SourceUnit) error {
	return encodeYAML(w, BuildASTOutput(u.Root))
}

func nodeType(n ast.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}

// nodeLabel is the short detail shown next to the type: a name, a literal or an operator.
func nodeLabel(n ast.Node) string {
	switch n := n.(type) {
	case ast.Unit:
		return n.UnitName()
	case ast.DataType:
		return n.TypeName().Name
	case *ast.Ident:
		return n.Name
	case *ast.QualifiedName:
		return n.String()
	case *ast.IntLiteral:
		return n.Text
	case *ast.RealLiteral:
		return n.Text
	case *ast.StringLiteral:
		return n.Text
	case *ast.TimeLiteral:
		return n.Text
	case *ast.DirectAddress:
		return n.Text
	case *ast.BoolLiteral:
		if n.Value {
			return token.Spelling(token.KwTrue)
		}
		return token.Spelling(token.KwFalse)
	case *ast.TypedLiteral:
		return n.Type.Name + "#" + n.Sign + n.Value
	case *ast.Binary:
		return token.Spelling(n.Op)
	case *ast.Unary:
		return token.Spelling(n.Op)
	case *ast.Assignment:
		return token.Spelling(n.Op)
	case *ast.VariableBlock:
		return n.Kind.String()
	case *ast.Declaration:
		names := make([]string, len(n.Names))
		for i, id := range n.Names {
			names[i] = id.Name
		}
		return strings.Join(names, ", ")
	}
	return ""
}
