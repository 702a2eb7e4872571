package driver

import (
	"errors"

	"plcst/internal/comments"
	"plcst/internal/diag"
	"plcst/internal/lexer"
	"plcst/internal/source"
	"plcst/internal/token"
)

// TokenizeResult is the token stream of one file plus its comment table.
type TokenizeResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Tokens   []token.Token
	Comments []comments.Record
	Bag      *diag.Bag
}

// Tokenize loads path, extracts comments and lexes the clean text. Lexical
// problems go to Bag; only I/O failures are returned as errors.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	text, err := readUnitText(path)
	if err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(path, []byte(text)))

	// Создаём диагностический пакет
	bag := diag.NewBag(maxDiagnostics)
	res := &TokenizeResult{FileSet: fs, File: file, Bag: bag}

	records, clean, err := comments.Extract(file)
	if err != nil {
		var d diag.Diagnoser
		if errors.As(err, &d) {
			bag.Add(d.Diagnostic())
		}
		return res, nil
	}
	res.Comments = records
	res.Tokens = lexer.Tokenize(file.WithContent(clean), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return res, nil
}
