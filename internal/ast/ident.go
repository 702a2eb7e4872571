package ast

import (
	"strings"
)

// Ident is a name as written in the source.
type Ident struct {
	Meta
	Name string
}

// Canonical returns the upper-case form used for lookups.
func (id *Ident) Canonical() string { return strings.ToUpper(id.Name) }

// QualifiedName is a dotted name (Namespace.Type).
type QualifiedName struct {
	Meta
	Parts []*Ident
}

func (q *QualifiedName) String() string {
	parts := make([]string, len(q.Parts))
	for i, p := range q.Parts {
		parts[i] = p.Name
	}
	return strings.Join(parts, ".")
}

// Canonical returns the upper-case dotted form.
func (q *QualifiedName) Canonical() string { return strings.ToUpper(q.String()) }

// Last returns the final component.
func (q *QualifiedName) Last() *Ident { return q.Parts[len(q.Parts)-1] }

// Equal compares names case-insensitively.
func Equal(a, b string) bool { return strings.EqualFold(a, b) }
