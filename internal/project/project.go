// Package project is the container boundary: a project is a set of targets,
// a target is an ordered set of source units. Readers for concrete container
// formats (TwinCAT XML, plcst.toml manifests) produce these values.
package project

import (
	"cmp"
	"slices"
)

// UnitKind classifies a unit inside its target.
type UnitKind uint8

const (
	KindPlain UnitKind = iota // a bare .st file
	KindDataType
	KindGlobalVars
	KindPOU
	KindInterface
)

func (k UnitKind) String() string {
	switch k {
	case KindDataType:
		return "data type"
	case KindGlobalVars:
		return "global variables"
	case KindPOU:
		return "POU"
	case KindInterface:
		return "interface"
	default:
		return "source"
	}
}

// group is the walk order: data types, then global variable lists, then POUs.
func (k UnitKind) group() int {
	switch k {
	case KindDataType:
		return 0
	case KindGlobalVars:
		return 1
	default:
		return 2
	}
}

// Unit is one retrievable source text of a target.
type Unit struct {
	Kind     UnitKind
	Name     string
	Filename string
	// Source returns the assembled Structured Text. Nil means the unit has no
	// retrievable source and is skipped.
	Source func() (string, error)
}

type Target struct {
	Name  string
	Units []Unit
}

// Ordered returns the units in walk order; container order is kept within a group.
func (t Target) Ordered() []Unit {
	out := slices.Clone(t.Units)
	slices.SortStableFunc(out, func(a, b Unit) int {
		return cmp.Compare(a.Kind.group(), b.Kind.group())
	})
	return out
}

type Project struct {
	Path    string
	Name    string
	Targets []Target
}

// Reader opens projects of one container format.
type Reader interface {
	// ReadProject loads the project file at path.
	ReadProject(path string) (*Project, error)
	// SolutionProjects lists the project files a solution refers to.
	SolutionProjects(path string) ([]string, error)
}
