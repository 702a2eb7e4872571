// Package summary flattens parsed source units into name-addressable
// records: function blocks with their declarations, methods, actions and
// properties, plus data types and global variable lists. A CodeSummary is
// plain data and never changes after Summarize returns.
package summary

import (
	"strings"

	"plcst/internal/ast"
	"plcst/internal/source"
)

// Location ties a record to its text.
type Location struct {
	Filename string
	Span     source.Span
	// Source is the exact text of the record, comments included.
	Source string
}

// DeclarationSummary is one declared name; "a, b : INT" yields two.
type DeclarationSummary struct {
	Location   `yaml:",inline"`
	Name       string
	Parent     string // владелец: FB, GVL или тип
	Block      string // VAR_INPUT, VAR, ... or STRUCT/UNION for members
	Qualifiers []string
	Type       string
	Value      string
	Address    string
	Comments   []string
	Attributes []ast.Attribute
}

// QualifiedName is "Parent.Name".
func (d *DeclarationSummary) QualifiedName() string {
	if d.Parent == "" {
		return d.Name
	}
	return d.Parent + "." + d.Name
}

// BlockSummary is one VAR ... END_VAR section in source order.
type BlockSummary struct {
	Kind         string
	Qualifiers   []string
	Declarations []*DeclarationSummary
}

// DeclarationGroup is every declaration of one section kind in a scope,
// merged across sections in source order.
type DeclarationGroup struct {
	Kind         string
	Declarations []*DeclarationSummary
}

// DeclarationGroups maps section kinds to their declarations, ordered by the
// first appearance of each kind.
type DeclarationGroups []*DeclarationGroup

// Of returns the declarations of kind ("VAR_INPUT", "var"...).
func (g DeclarationGroups) Of(kind string) []*DeclarationSummary {
	for _, grp := range g {
		if strings.EqualFold(grp.Kind, kind) {
			return grp.Declarations
		}
	}
	return nil
}

// Lookup finds name in the group of kind, ignoring case.
func (g DeclarationGroups) Lookup(kind, name string) (*DeclarationSummary, bool) {
	for _, d := range g.Of(kind) {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return nil, false
}

// MemberSummary is a METHOD, ACTION or PROPERTY of a function block,
// program or interface.
type MemberSummary struct {
	Location   `yaml:",inline"`
	Kind       string
	Name       string
	Owner      string
	Type       string // return type of a method, type of a property
	Modifiers  []string
	Comments   []string
	Attributes []ast.Attribute
	// Blocks keeps the VAR sections as written; DeclarationsByBlock merges
	// them per kind.
	Blocks              []*BlockSummary
	DeclarationsByBlock DeclarationGroups
}

func (m *MemberSummary) QualifiedName() string {
	if m.Owner == "" {
		return m.Name
	}
	return m.Owner + "." + m.Name
}

// FunctionBlockSummary covers FUNCTION_BLOCK, PROGRAM, FUNCTION and INTERFACE.
type FunctionBlockSummary struct {
	Location   `yaml:",inline"`
	Name       string
	Kind       string
	Modifiers  []string
	Extends    []string
	Implements []string
	ReturnType string
	Comments   []string
	Attributes []ast.Attribute
	// Blocks keeps the VAR sections as written; DeclarationsByBlock merges
	// them per kind.
	Blocks              []*BlockSummary
	DeclarationsByBlock DeclarationGroups
	Methods             []*MemberSummary
	Actions             []*MemberSummary
	Properties          []*MemberSummary
}

// EnumValueSummary is one value of an enumeration.
type EnumValueSummary struct {
	Name  string
	Value string
}

// DataTypeSummary is one entry of a TYPE section.
type DataTypeSummary struct {
	Location   `yaml:",inline"`
	Name       string
	Kind       string // STRUCT, UNION, ENUM, ALIAS
	Extends    string
	Base       string // enum base type or alias target
	Default    string
	Comments   []string
	Attributes []ast.Attribute
	Members    []*DeclarationSummary
	Values     []EnumValueSummary
}

// GlobalVariableSummary is one global variable list, named after its unit.
type GlobalVariableSummary struct {
	Location            `yaml:",inline"`
	Name                string
	Comments            []string
	Attributes          []ast.Attribute
	Blocks              []*BlockSummary
	DeclarationsByBlock DeclarationGroups
}

// CodeSummary is the index over one or more units, in input order.
type CodeSummary struct {
	FunctionBlocks []*FunctionBlockSummary
	DataTypes      []*DataTypeSummary
	Globals        []*GlobalVariableSummary
	// Detached holds methods, actions and properties that no earlier unit of
	// the same text could own.
	Detached []*MemberSummary
}

// Merge concatenates parts in order into a new summary.
func Merge(parts ...*CodeSummary) *CodeSummary {
	out := &CodeSummary{}
	for _, p := range parts {
		if p == nil {
			continue
		}
		out.FunctionBlocks = append(out.FunctionBlocks, p.FunctionBlocks...)
		out.DataTypes = append(out.DataTypes, p.DataTypes...)
		out.Globals = append(out.Globals, p.Globals...)
		out.Detached = append(out.Detached, p.Detached...)
	}
	return out
}

// Len is the number of top-level records.
func (s *CodeSummary) Len() int {
	if s == nil {
		return 0
	}
	return len(s.FunctionBlocks) + len(s.DataTypes) + len(s.Globals) + len(s.Detached)
}
