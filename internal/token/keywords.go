package token

import "strings"

var keywords = map[string]Kind{
	"PROGRAM":            KwProgram,
	"END_PROGRAM":        KwEndProgram,
	"FUNCTION_BLOCK":     KwFunctionBlock,
	"END_FUNCTION_BLOCK": KwEndFunctionBlock,
	"FUNCTION":           KwFunction,
	"END_FUNCTION":       KwEndFunction,
	"METHOD":             KwMethod,
	"END_METHOD":         KwEndMethod,
	"PROPERTY":           KwProperty,
	"END_PROPERTY":       KwEndProperty,
	"ACTION":             KwAction,
	"END_ACTION":         KwEndAction,
	"INTERFACE":          KwInterface,
	"END_INTERFACE":      KwEndInterface,
	"TYPE":               KwType,
	"END_TYPE":           KwEndType,
	"STRUCT":             KwStruct,
	"END_STRUCT":         KwEndStruct,
	"UNION":              KwUnion,
	"END_UNION":          KwEndUnion,
	"VAR":                KwVar,
	"VAR_INPUT":          KwVarInput,
	"VAR_OUTPUT":         KwVarOutput,
	"VAR_IN_OUT":         KwVarInOut,
	"VAR_INST":           KwVarInst,
	"VAR_TEMP":           KwVarTemp,
	"VAR_STAT":           KwVarStat,
	"VAR_EXTERNAL":       KwVarExternal,
	"VAR_GLOBAL":         KwVarGlobal,
	"VAR_CONFIG":         KwVarConfig,
	"END_VAR":            KwEndVar,
	"CONSTANT":           KwConstant,
	"RETAIN":             KwRetain,
	"NON_RETAIN":         KwNonRetain,
	"PERSISTENT":         KwPersistent,
	"AT":                 KwAt,
	"EXTENDS":            KwExtends,
	"IMPLEMENTS":         KwImplements,
	"ABSTRACT":           KwAbstract,
	"FINAL":              KwFinal,
	"PUBLIC":             KwPublic,
	"PRIVATE":            KwPrivate,
	"PROTECTED":          KwProtected,
	"INTERNAL":           KwInternal,
	"ARRAY":              KwArray,
	"OF":                 KwOf,
	"POINTER":            KwPointer,
	"REFERENCE":          KwReference,
	"TO":                 KwTo,
	"STRING":             KwString,
	"WSTRING":            KwWString,
	"IF":                 KwIf,
	"THEN":               KwThen,
	"ELSIF":              KwElsif,
	"ELSE":               KwElse,
	"END_IF":             KwEndIf,
	"CASE":               KwCase,
	"END_CASE":           KwEndCase,
	"FOR":                KwFor,
	"BY":                 KwBy,
	"DO":                 KwDo,
	"END_FOR":            KwEndFor,
	"WHILE":              KwWhile,
	"END_WHILE":          KwEndWhile,
	"REPEAT":             KwRepeat,
	"UNTIL":              KwUntil,
	"END_REPEAT":         KwEndRepeat,
	"RETURN":             KwReturn,
	"EXIT":               KwExit,
	"CONTINUE":           KwContinue,
	"JMP":                KwJmp,
	"TRUE":               KwTrue,
	"FALSE":              KwFalse,
	"AND":                KwAnd,
	"AND_THEN":           KwAndThen,
	"OR":                 KwOr,
	"OR_ELSE":            KwOrElse,
	"XOR":                KwXor,
	"NOT":                KwNot,
	"MOD":                KwMod,
}

var keywordSpelling = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords))
	for word, kind := range keywords {
		out[kind] = word
	}
	return out
}()

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Регистр не важен: "end_if", "End_If" и "END_IF" дают KwEndIf.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[strings.ToUpper(ident)]
	return k, ok
}

// Spelling returns the canonical source spelling of a keyword or operator kind.
func Spelling(k Kind) string {
	if k.IsKeyword() {
		return keywordSpelling[k]
	}
	if k >= Assign && k <= RefAssign {
		return strings.Trim(kindNames[k], "'")
	}
	return ""
}

// timePrefixes are literal prefixes whose '#' payload is a duration or date.
var timePrefixes = map[string]struct{}{
	"T": {}, "TIME": {}, "LT": {}, "LTIME": {},
	"D": {}, "DATE": {}, "LDATE": {},
	"TOD": {}, "TIME_OF_DAY": {}, "LTOD": {},
	"DT": {}, "DATE_AND_TIME": {}, "LDT": {},
}

// IsTimePrefix reports whether ident introduces a time/date literal when followed by '#'.
func IsTimePrefix(ident string) bool {
	_, ok := timePrefixes[strings.ToUpper(ident)]
	return ok
}

// IsDatePrefix reports whether the literal payload may contain '-' and ':' separators.
func IsDatePrefix(ident string) bool {
	switch strings.ToUpper(ident) {
	case "T", "TIME", "LT", "LTIME":
		return false
	}
	return IsTimePrefix(ident)
}
