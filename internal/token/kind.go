package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit is a decimal or based (16#FF) integer.
	IntLit
	// RealLit is a real literal (1.5, 1E-3).
	RealLit
	// StringLit is a single-quoted STRING literal.
	StringLit
	// WStringLit is a double-quoted WSTRING literal.
	WStringLit
	// TimeLit covers duration, date and time-of-day literals (T#1s, DT#...).
	TimeLit
	// DirectAddress is a located variable address such as %IX0.1.
	DirectAddress

	// Operators and punctuation.
	Assign      // :=
	OutAssign   // =>
	Eq          // =
	NotEq       // <>
	Lt          // <
	LtEq        // <=
	Gt          // >
	GtEq        // >=
	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Power       // **
	Amp         // &
	LParen      // (
	RParen      // )
	LBracket    // [
	RBracket    // ]
	Comma       // ,
	Semicolon   // ;
	Colon       // :
	Dot         // .
	DotDot      // ..
	Caret       // ^
	Hash        // #
	SetAssign   // S=
	ResetAssign // R=
	RefAssign   // REF=

	keywordBegin
	KwProgram
	KwEndProgram
	KwFunctionBlock
	KwEndFunctionBlock
	KwFunction
	KwEndFunction
	KwMethod
	KwEndMethod
	KwProperty
	KwEndProperty
	KwAction
	KwEndAction
	KwInterface
	KwEndInterface
	KwType
	KwEndType
	KwStruct
	KwEndStruct
	KwUnion
	KwEndUnion
	KwVar
	KwVarInput
	KwVarOutput
	KwVarInOut
	KwVarInst
	KwVarTemp
	KwVarStat
	KwVarExternal
	KwVarGlobal
	KwVarConfig
	KwEndVar
	KwConstant
	KwRetain
	KwNonRetain
	KwPersistent
	KwAt
	KwExtends
	KwImplements
	KwAbstract
	KwFinal
	KwPublic
	KwPrivate
	KwProtected
	KwInternal
	KwArray
	KwOf
	KwPointer
	KwReference
	KwTo
	KwString
	KwWString
	KwIf
	KwThen
	KwElsif
	KwElse
	KwEndIf
	KwCase
	KwEndCase
	KwFor
	KwBy
	KwDo
	KwEndFor
	KwWhile
	KwEndWhile
	KwRepeat
	KwUntil
	KwEndRepeat
	KwReturn
	KwExit
	KwContinue
	KwJmp
	KwTrue
	KwFalse
	KwAnd
	KwAndThen
	KwOr
	KwOrElse
	KwXor
	KwNot
	KwMod
	keywordEnd
)

var kindNames = [...]string{
	Invalid:       "invalid",
	EOF:           "end of input",
	Ident:         "identifier",
	IntLit:        "integer literal",
	RealLit:       "real literal",
	StringLit:     "string literal",
	WStringLit:    "wide string literal",
	TimeLit:       "time literal",
	DirectAddress: "direct address",
	Assign:        "':='",
	OutAssign:     "'=>'",
	Eq:            "'='",
	NotEq:         "'<>'",
	Lt:            "'<'",
	LtEq:          "'<='",
	Gt:            "'>'",
	GtEq:          "'>='",
	Plus:          "'+'",
	Minus:         "'-'",
	Star:          "'*'",
	Slash:         "'/'",
	Power:         "'**'",
	Amp:           "'&'",
	LParen:        "'('",
	RParen:        "')'",
	LBracket:      "'['",
	RBracket:      "']'",
	Comma:         "','",
	Semicolon:     "';'",
	Colon:         "':'",
	Dot:           "'.'",
	DotDot:        "'..'",
	Caret:         "'^'",
	Hash:          "'#'",
	SetAssign:     "'S='",
	ResetAssign:   "'R='",
	RefAssign:     "'REF='",
}

// String returns a human-readable name used in "expected ..." messages.
func (k Kind) String() string {
	if k.IsKeyword() {
		return keywordSpelling[k]
	}
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k > keywordBegin && k < keywordEnd
}
