package ast

import (
	"slices"

	"plcst/internal/token"
)

// Unit is a top-level program organisation unit, data type section or global variable list.
type Unit interface {
	Node
	unitNode()
	// UnitName is empty for TYPE sections and global variable lists.
	UnitName() string
}

// Scoped is implemented by units that own variable sections.
type Scoped interface {
	Unit
	VariableBlocks() []*VariableBlock
	Declarations() *DeclarationIndex
}

// Modifiers is the list of ABSTRACT, FINAL and access specifiers in source order.
type Modifiers []token.Kind

// Has reports whether m contains k.
func (m Modifiers) Has(k token.Kind) bool { return slices.Contains(m, k) }

// Access returns the access specifier keyword, or Invalid when none was written.
func (m Modifiers) Access() token.Kind {
	for _, k := range m {
		switch k {
		case token.KwPublic, token.KwPrivate, token.KwProtected, token.KwInternal:
			return k
		}
	}
	return token.Invalid
}

type (
	FunctionBlock struct {
		Meta
		Modifiers  Modifiers
		Name       *Ident
		Extends    *QualifiedName
		Implements []*QualifiedName
		Blocks     []*VariableBlock
		Body       []Statement
		Decls      *DeclarationIndex
	}

	Program struct {
		Meta
		Name   *Ident
		Blocks []*VariableBlock
		Body   []Statement
		Decls  *DeclarationIndex
	}

	Function struct {
		Meta
		Modifiers  Modifiers
		Name       *Ident
		ReturnType TypeSpec
		Blocks     []*VariableBlock
		Body       []Statement
		Decls      *DeclarationIndex
	}

	Method struct {
		Meta
		Modifiers  Modifiers
		Name       *Ident
		ReturnType TypeSpec
		Blocks     []*VariableBlock
		Body       []Statement
		Decls      *DeclarationIndex
	}

	// Property is one accessor body; TwinCAT stores GET and SET as separate PROPERTY blocks.
	Property struct {
		Meta
		Modifiers Modifiers
		Name      *Ident
		Type      TypeSpec
		Blocks    []*VariableBlock
		Body      []Statement
		Decls     *DeclarationIndex
	}

	Action struct {
		Meta
		Name *Ident
		Body []Statement
	}

	Interface struct {
		Meta
		Name    *Ident
		Extends []*QualifiedName
		Blocks  []*VariableBlock
		Decls   *DeclarationIndex
	}

	// DataTypeDeclaration is a TYPE ... END_TYPE section with one or more types.
	DataTypeDeclaration struct {
		Meta
		Types []DataType
	}

	GlobalVariableList struct {
		Meta
		Blocks []*VariableBlock
		Decls  *DeclarationIndex
	}
)

func (u *FunctionBlock) UnitName() string       { return u.Name.Name }
func (u *Program) UnitName() string             { return u.Name.Name }
func (u *Function) UnitName() string            { return u.Name.Name }
func (u *Method) UnitName() string              { return u.Name.Name }
func (u *Property) UnitName() string            { return u.Name.Name }
func (u *Action) UnitName() string              { return u.Name.Name }
func (u *Interface) UnitName() string           { return u.Name.Name }
func (u *DataTypeDeclaration) UnitName() string { return "" }
func (u *GlobalVariableList) UnitName() string  { return "" }

func (u *FunctionBlock) VariableBlocks() []*VariableBlock      { return u.Blocks }
func (u *Program) VariableBlocks() []*VariableBlock            { return u.Blocks }
func (u *Function) VariableBlocks() []*VariableBlock           { return u.Blocks }
func (u *Method) VariableBlocks() []*VariableBlock             { return u.Blocks }
func (u *Property) VariableBlocks() []*VariableBlock           { return u.Blocks }
func (u *Interface) VariableBlocks() []*VariableBlock          { return u.Blocks }
func (u *GlobalVariableList) VariableBlocks() []*VariableBlock { return u.Blocks }

func (u *FunctionBlock) Declarations() *DeclarationIndex      { return u.Decls }
func (u *Program) Declarations() *DeclarationIndex            { return u.Decls }
func (u *Function) Declarations() *DeclarationIndex           { return u.Decls }
func (u *Method) Declarations() *DeclarationIndex             { return u.Decls }
func (u *Property) Declarations() *DeclarationIndex           { return u.Decls }
func (u *Interface) Declarations() *DeclarationIndex          { return u.Decls }
func (u *GlobalVariableList) Declarations() *DeclarationIndex { return u.Decls }

// DataType is one entry of a TYPE section.
type DataType interface {
	Node
	dataTypeNode()
	TypeName() *Ident
}

type (
	StructType struct {
		Meta
		Name    *Ident
		Extends *QualifiedName
		Members []*Declaration
	}

	UnionType struct {
		Meta
		Name    *Ident
		Members []*Declaration
	}

	// EnumType is "E : (A, B := 2) INT := A;". Base and Default are optional.
	EnumType struct {
		Meta
		Name    *Ident
		Values  []*EnumValue
		Base    TypeSpec
		Default Expr
	}

	// AliasType covers every other form: T : INT(0..10) := 5; T : ARRAY[..] OF X;
	AliasType struct {
		Meta
		Name *Ident
		Type TypeSpec
		Init Initializer
	}
)

func (t *StructType) TypeName() *Ident { return t.Name }
func (t *UnionType) TypeName() *Ident  { return t.Name }
func (t *EnumType) TypeName() *Ident   { return t.Name }
func (t *AliasType) TypeName() *Ident  { return t.Name }

// SourceCode is the root of a parsed text.
type SourceCode struct {
	Meta
	Units []Unit
}

// DeclarationList is the root of a var_declarations fragment.
type DeclarationList struct {
	Meta
	Blocks []*VariableBlock
	Decls  *DeclarationIndex
}

// StatementList is the root of a statement_list fragment.
type StatementList struct {
	Meta
	Statements []Statement
}
