package summary

import (
	"fmt"
	"strings"

	"plcst/internal/diag"
	"plcst/internal/source"
)

// NotFoundError reports a lookup miss.
type NotFoundError struct {
	Kind string // "function block", "method", ...
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.SumNotFound, source.Span{}, e.Error())
}

// Find returns the first function block, program, function or interface
// called name, in input order. Names compare case-insensitively.
func (s *CodeSummary) Find(name string) (*FunctionBlockSummary, error) {
	for _, fb := range s.FunctionBlocks {
		if strings.EqualFold(fb.Name, name) {
			return fb, nil
		}
	}
	return nil, &NotFoundError{Kind: "function block", Name: name}
}

// FindAll returns every record called name; more than one means the name is ambiguous.
func (s *CodeSummary) FindAll(name string) []*FunctionBlockSummary {
	var out []*FunctionBlockSummary
	for _, fb := range s.FunctionBlocks {
		if strings.EqualFold(fb.Name, name) {
			out = append(out, fb)
		}
	}
	return out
}

// FindDataType returns the first data type called name.
func (s *CodeSummary) FindDataType(name string) (*DataTypeSummary, error) {
	for _, dt := range s.DataTypes {
		if strings.EqualFold(dt.Name, name) {
			return dt, nil
		}
	}
	return nil, &NotFoundError{Kind: "data type", Name: name}
}

// FindGlobals returns the global variable list called name.
func (s *CodeSummary) FindGlobals(name string) (*GlobalVariableSummary, error) {
	for _, g := range s.Globals {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
	}
	return nil, &NotFoundError{Kind: "global variable list", Name: name}
}

// FindMethod resolves "FB.Method", searching the EXTENDS chain of FB.
func (s *CodeSummary) FindMethod(qualified string) (*MemberSummary, error) {
	return s.findMember(qualified, "method", func(fb *FunctionBlockSummary) []*MemberSummary { return fb.Methods })
}

// FindAction resolves "FB.Action", searching the EXTENDS chain of FB.
func (s *CodeSummary) FindAction(qualified string) (*MemberSummary, error) {
	return s.findMember(qualified, "action", func(fb *FunctionBlockSummary) []*MemberSummary { return fb.Actions })
}

// FindProperty resolves "FB.Property", searching the EXTENDS chain of FB.
func (s *CodeSummary) FindProperty(qualified string) (*MemberSummary, error) {
	return s.findMember(qualified, "property", func(fb *FunctionBlockSummary) []*MemberSummary { return fb.Properties })
}

func (s *CodeSummary) findMember(qualified, kind string, list func(*FunctionBlockSummary) []*MemberSummary) (*MemberSummary, error) {
	owner, name, ok := splitLast(qualified)
	if !ok {
		return nil, &NotFoundError{Kind: kind, Name: qualified}
	}
	var found *MemberSummary
	s.lineage(owner, func(fb *FunctionBlockSummary) bool {
		for _, m := range list(fb) {
			if strings.EqualFold(m.Name, name) {
				found = m
				return false
			}
		}
		return true
	})
	if found == nil {
		return nil, &NotFoundError{Kind: kind, Name: qualified}
	}
	return found, nil
}

// FindDeclaration resolves "Owner.name" where Owner is a function block
// (EXTENDS chain included), a global variable list or a STRUCT/UNION type.
func (s *CodeSummary) FindDeclaration(qualified string) (*DeclarationSummary, error) {
	owner, name, ok := splitLast(qualified)
	if !ok {
		return nil, &NotFoundError{Kind: "declaration", Name: qualified}
	}
	var found *DeclarationSummary
	s.lineage(owner, func(fb *FunctionBlockSummary) bool {
		found = lookupBlocks(fb.Blocks, name)
		return found == nil
	})
	if found != nil {
		return found, nil
	}
	if g, err := s.FindGlobals(owner); err == nil {
		if d := lookupBlocks(g.Blocks, name); d != nil {
			return d, nil
		}
	}
	if dt, err := s.FindDataType(owner); err == nil {
		for _, m := range dt.Members {
			if strings.EqualFold(m.Name, name) {
				return m, nil
			}
		}
	}
	return nil, &NotFoundError{Kind: "declaration", Name: qualified}
}

func lookupBlocks(blocks []*BlockSummary, name string) *DeclarationSummary {
	for _, b := range blocks {
		for _, d := range b.Declarations {
			if strings.EqualFold(d.Name, name) {
				return d
			}
		}
	}
	return nil
}

// lineage visits the FB called name and then its EXTENDS ancestors until
// visit returns false. Cycles stop the walk.
func (s *CodeSummary) lineage(name string, visit func(*FunctionBlockSummary) bool) {
	seen := make(map[string]bool)
	for name != "" && !seen[strings.ToUpper(name)] {
		seen[strings.ToUpper(name)] = true
		fb, err := s.Find(name)
		if err != nil || !visit(fb) {
			return
		}
		if fb.Kind != "FUNCTION_BLOCK" || len(fb.Extends) == 0 {
			return
		}
		name = fb.Extends[0]
	}
}

// splitLast splits "A.B.c" into "A.B" and "c".
func splitLast(qualified string) (owner, name string, ok bool) {
	i := strings.LastIndexByte(qualified, '.')
	if i <= 0 || i == len(qualified)-1 {
		return "", "", false
	}
	return qualified[:i], qualified[i+1:], true
}
