package ast

import (
	"strconv"
	"strings"

	"plcst/internal/token"
)

// Initializer is a declaration default value: an expression, an array or a structure initializer.
type Initializer interface {
	Node
	initNode()
}

// Expr is any expression. Every expression is also a valid initializer.
type Expr interface {
	Initializer
	exprNode()
}

// Arg is one call argument.
type Arg interface {
	Node
	argNode()
}

type (
	// IntLiteral keeps the written form: 16#FF, 1_000, 42.
	IntLiteral struct {
		Meta
		Text string
	}

	RealLiteral struct {
		Meta
		Text string
	}

	BoolLiteral struct {
		Meta
		Value bool
	}

	// StringLiteral keeps the quoted text with $ escapes.
	StringLiteral struct {
		Meta
		Text string
	}

	// TimeLiteral covers T#, LTIME#, D#, TOD#, DT# and their long spellings.
	TimeLiteral struct {
		Meta
		Text string
	}

	// TypedLiteral is INT#5, REAL#-1.5 or STRING#'x'.
	TypedLiteral struct {
		Meta
		Type  *Ident
		Sign  string
		Value string
	}

	// EnumLiteral is E_State#Idle.
	EnumLiteral struct {
		Meta
		Type  *Ident
		Value *Ident
	}

	DirectAddress struct {
		Meta
		Text string
	}

	// Member is X.Name or a bit access X.3.
	Member struct {
		Meta
		X   Expr
		Sel *Ident
	}

	Index struct {
		Meta
		X       Expr
		Indices []Expr
	}

	Deref struct {
		Meta
		X Expr
	}

	Call struct {
		Meta
		Func Expr
		Args []Arg
	}

	Binary struct {
		Meta
		X  Expr
		Op token.Kind
		Y  Expr
	}

	Unary struct {
		Meta
		Op token.Kind
		X  Expr
	}

	Paren struct {
		Meta
		X Expr
	}

	// Range only appears as a CASE label.
	Range struct {
		Meta
		Lo, Hi Expr
	}
)

type (
	PositionalArg struct {
		Meta
		Value Expr
	}

	// NamedArg is Name := Value.
	NamedArg struct {
		Meta
		Name  *Ident
		Value Expr
	}

	// OutputArg is Name => Target or NOT Name => Target; Target may be nil.
	OutputArg struct {
		Meta
		Not    bool
		Name   *Ident
		Target Expr
	}
)

type (
	ArrayInit struct {
		Meta
		Elems []*ArrayInitElem
	}

	// ArrayInitElem is Value or Count(Value).
	ArrayInitElem struct {
		Meta
		Count Expr
		Value Initializer
	}

	StructInit struct {
		Meta
		Fields []*FieldInit
	}

	FieldInit struct {
		Meta
		Name  *Ident
		Value Initializer
	}
)

// Value decodes the integer, accepting 2#, 8#, 16# prefixes and '_' separators.
func (l *IntLiteral) Value() (int64, error) {
	text := strings.ReplaceAll(l.Text, "_", "")
	base := 10
	if b, digits, ok := strings.Cut(text, "#"); ok {
		n, err := strconv.Atoi(b)
		if err != nil {
			return 0, err
		}
		base, text = n, digits
	}
	return strconv.ParseInt(text, base, 64)
}

// Wide reports a "..." WSTRING literal.
func (l *StringLiteral) Wide() bool { return strings.HasPrefix(l.Text, `"`) }

// Value returns the literal contents with $ escapes resolved.
func (l *StringLiteral) Value() string {
	if len(l.Text) < 2 {
		return ""
	}
	body := l.Text[1 : len(l.Text)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] != '$' || i+1 >= len(body) {
			b.WriteByte(body[i])
			continue
		}
		i++
		switch c := body[i]; c {
		case 'L', 'l', 'N', 'n':
			b.WriteByte('\n')
		case 'R', 'r':
			b.WriteByte('\r')
		case 'T', 't':
			b.WriteByte('\t')
		case 'P', 'p':
			b.WriteByte('\f')
		default:
			if i+1 < len(body) && isHexDigit(c) && isHexDigit(body[i+1]) {
				v, _ := strconv.ParseUint(body[i:i+2], 16, 8)
				b.WriteByte(byte(v))
				i++
				continue
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// Name returns the called name when Func is a plain identifier or a member chain.
func (c *Call) Name() string {
	return ExprName(c.Func)
}

// ExprName renders identifiers and member chains (a.b.c); other expressions give "".
func ExprName(e Expr) string {
	switch e := e.(type) {
	case *Ident:
		return e.Name
	case *Member:
		if base := ExprName(e.X); base != "" {
			return base + "." + e.Sel.Name
		}
	}
	return ""
}
