package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические: комментарии, прагмы, литералы
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexUnterminatedPragma  Code = 1004
	LexBadNumber           Code = 1005
	LexBadTimeLiteral      Code = 1006

	// Грамматика
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynUnexpectedTopLevel Code = 2003
	SynUnknownStart       Code = 2004

	// Построение AST
	AstInfo                 Code = 3000
	AstDuplicateDeclaration Code = 3001
	AstInternal             Code = 3002

	// Ввод-вывод
	IOInfo              Code = 4000
	IOReadFailure       Code = 4001
	IOUnitSourceFailure Code = 4002

	// Проектные контейнеры и манифест
	PrjInfo             Code = 5000
	PrjManifestInvalid  Code = 5001
	PrjUnknownContainer Code = 5002
	PrjContainerInvalid Code = 5003

	// Сводка
	SumInfo     Code = 6000
	SumNotFound Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexUnknownChar:          "Unknown character",
	LexUnterminatedString:   "Unterminated string literal",
	LexUnterminatedComment:  "Unterminated comment",
	LexUnterminatedPragma:   "Unterminated pragma",
	LexBadNumber:            "Malformed numeric literal",
	LexBadTimeLiteral:       "Malformed time literal",
	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynExpectSemicolon:      "Expected ';'",
	SynUnexpectedTopLevel:   "Unexpected top-level construct",
	SynUnknownStart:         "Unknown start symbol",
	AstInfo:                 "AST information",
	AstDuplicateDeclaration: "Duplicate declaration",
	AstInternal:             "Internal transformer error",
	IOInfo:                  "I/O information",
	IOReadFailure:           "Cannot read file",
	IOUnitSourceFailure:     "Cannot retrieve unit source",
	PrjInfo:                 "Project information",
	PrjManifestInvalid:      "Invalid plcst.toml",
	PrjUnknownContainer:     "Unknown container format",
	PrjContainerInvalid:     "Malformed project container",
	SumInfo:                 "Summary information",
	SumNotFound:             "Name not found",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("AST%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("SUM%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
