package token

import (
	"plcst/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, string or time literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, RealLit, StringLit, WStringLit, TimeLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Assign && t.Kind <= RefAssign
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Is reports whether the token is an identifier spelled word (case-insensitive).
func (t Token) Is(word string) bool {
	return t.Kind == Ident && equalFold(t.Text, word)
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'a' <= ca && ca <= 'z' {
			ca -= 'a' - 'A'
		}
		if 'a' <= cb && cb <= 'z' {
			cb -= 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
