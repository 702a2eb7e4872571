package ast

import (
	"slices"

	"plcst/internal/token"
)

// TypeSpec is the type part of a declaration.
type TypeSpec interface {
	Node
	typeNode()
}

type (
	SimpleType struct {
		Meta
		Name *QualifiedName
	}

	// StringType is STRING, STRING(80) or WSTRING[20].
	StringType struct {
		Meta
		Wide   bool
		Length Expr
		// Bracket remembers STRING[n] against STRING(n).
		Bracket bool
	}

	ArrayType struct {
		Meta
		Dims []*ArrayDim
		Elem TypeSpec
	}

	// ArrayDim is Lo..Hi or '*' (Star) for a variable-length dimension.
	ArrayDim struct {
		Meta
		Lo, Hi Expr
		Star   bool
	}

	// PointerType is POINTER TO or REFERENCE TO.
	PointerType struct {
		Meta
		Reference bool
		Elem      TypeSpec
	}

	SubrangeType struct {
		Meta
		Base   *QualifiedName
		Lo, Hi Expr
	}

	EnumSpec struct {
		Meta
		Values []*EnumValue
	}

	EnumValue struct {
		Meta
		Name  *Ident
		Value Expr
	}
)

// VarKind identifies a VAR section.
type VarKind uint8

const (
	VarLocal VarKind = iota
	VarInput
	VarOutput
	VarInOut
	VarInst
	VarTemp
	VarStat
	VarExternal
	VarGlobal
	VarConfig
)

var varKindNames = [...]string{
	VarLocal:    "VAR",
	VarInput:    "VAR_INPUT",
	VarOutput:   "VAR_OUTPUT",
	VarInOut:    "VAR_IN_OUT",
	VarInst:     "VAR_INST",
	VarTemp:     "VAR_TEMP",
	VarStat:     "VAR_STAT",
	VarExternal: "VAR_EXTERNAL",
	VarGlobal:   "VAR_GLOBAL",
	VarConfig:   "VAR_CONFIG",
}

func (k VarKind) String() string {
	if int(k) < len(varKindNames) {
		return varKindNames[k]
	}
	return "VAR?"
}

// VarKindFromToken maps a section keyword to its VarKind.
func VarKindFromToken(k token.Kind) (VarKind, bool) {
	switch k {
	case token.KwVar:
		return VarLocal, true
	case token.KwVarInput:
		return VarInput, true
	case token.KwVarOutput:
		return VarOutput, true
	case token.KwVarInOut:
		return VarInOut, true
	case token.KwVarInst:
		return VarInst, true
	case token.KwVarTemp:
		return VarTemp, true
	case token.KwVarStat:
		return VarStat, true
	case token.KwVarExternal:
		return VarExternal, true
	case token.KwVarGlobal:
		return VarGlobal, true
	case token.KwVarConfig:
		return VarConfig, true
	}
	return 0, false
}

// Token returns the section keyword.
func (k VarKind) Token() token.Kind {
	return [...]token.Kind{
		token.KwVar, token.KwVarInput, token.KwVarOutput, token.KwVarInOut, token.KwVarInst,
		token.KwVarTemp, token.KwVarStat, token.KwVarExternal, token.KwVarGlobal, token.KwVarConfig,
	}[k]
}

// VariableBlock is one VAR ... END_VAR section.
type VariableBlock struct {
	Meta
	Kind         VarKind
	Qualifiers   []token.Kind
	Declarations []*Declaration
}

// HasQualifier reports CONSTANT, RETAIN, NON_RETAIN or PERSISTENT on the block.
func (b *VariableBlock) HasQualifier(q token.Kind) bool {
	return slices.Contains(b.Qualifiers, q)
}

// Declaration is "a, b AT %I* : TYPE(ctor) := init;".
type Declaration struct {
	Meta
	Names    []*Ident
	Location *DirectAddress
	Type     TypeSpec
	Ctor     *Arguments
	Init     Initializer
}

// Arguments is a parenthesised argument list used for FB constructor arguments.
type Arguments struct {
	Meta
	Args []Arg
}
