package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"plcst/internal/ast"
	"plcst/internal/comments"
	"plcst/internal/cst"
	"plcst/internal/diag"
	"plcst/internal/observ"
	"plcst/internal/source"
	"plcst/internal/trace"
	"plcst/internal/transform"
	"plcst/internal/twincat"
)

// Stage names the pipeline step a unit failed in.
type Stage string

const (
	StageLoad      Stage = "load"
	StageRead      Stage = "read"
	StageExtract   Stage = "extract"
	StageParse     Stage = "parse"
	StageTransform Stage = "transform"
	StageSummarize Stage = "summarize"
	// StagePanic marks an internal defect recovered by the walker.
	StagePanic Stage = "panic"
)

// UnitError annotates a stage error with the unit it happened in.
type UnitError struct {
	Identifier string
	Stage      Stage
	Err        error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Identifier, e.Stage, e.Err)
}

func (e *UnitError) Unwrap() error { return e.Err }

// Diagnostic returns the stage error's diagnostic, or a generic one for
// errors that carry no position (I/O, container, panics).
func (e *UnitError) Diagnostic() diag.Diagnostic {
	var d diag.Diagnoser
	if errors.As(e.Err, &d) {
		return d.Diagnostic()
	}
	code := diag.UnknownCode
	switch e.Stage {
	case StageLoad:
		code = diag.PrjContainerInvalid
	case StageRead:
		code = diag.IOUnitSourceFailure
		if errors.Is(e.Err, fs.ErrNotExist) || errors.Is(e.Err, fs.ErrPermission) {
			code = diag.IOReadFailure
		}
	case StagePanic:
		code = diag.AstInternal
	}
	nd := diag.NewError(code, source.Span{}, fmt.Sprintf("%s: %v", e.Stage, e.Err))
	nd.Path = e.Identifier
	return nd
}

// Preprocessor rewrites unit text before extraction.
type Preprocessor func(string) string

// Options controls a single unit parse.
type Options struct {
	// Preprocessors run in order; none by default.
	Preprocessors []Preprocessor
	// FileSet receives the unit text; a private set is used when nil.
	FileSet *source.FileSet
	// Timer, if set, accumulates per-stage durations.
	Timer *observ.Timer
}

// ParseText runs preprocessors, the comment extractor, the grammar engine and
// the transformer over text. identifier names the unit in errors and spans.
func ParseText(eng *cst.Engine, text, identifier string, opts Options) (*ast.SourceUnit, error) {
	return parseText(context.Background(), eng, text, identifier, opts)
}

// ParseFragment parses text from another start symbol: cst.StartDeclarations
// yields *ast.DeclarationList, cst.StartStatements *ast.StatementList and
// cst.StartSource *ast.SourceCode. Errors are the same as ParseText's.
func ParseFragment(eng *cst.Engine, text, identifier string, start cst.Start, opts Options) (ast.Node, error) {
	p, err := pipeline(context.Background(), eng, text, identifier, start, opts)
	if err != nil {
		return nil, err
	}
	return p.root, nil
}

func parseText(ctx context.Context, eng *cst.Engine, text, identifier string, opts Options) (*ast.SourceUnit, error) {
	p, err := pipeline(ctx, eng, text, identifier, cst.StartSource, opts)
	if err != nil {
		return nil, err
	}
	return &ast.SourceUnit{
		Identifier: identifier,
		Text:       p.text,
		File:       p.file,
		Root:       p.root.(*ast.SourceCode),
		Comments:   p.records,
	}, nil
}

type parsed struct {
	text    string
	file    source.FileID
	records []comments.Record
	root    ast.Node
}

func pipeline(ctx context.Context, eng *cst.Engine, text, identifier string, start cst.Start, opts Options) (*parsed, error) {
	for _, pp := range opts.Preprocessors {
		text = pp(text)
	}
	fs := opts.FileSet
	if fs == nil {
		fs = source.NewFileSet()
	}
	id := fs.AddVirtual(identifier, []byte(text))
	file := fs.Get(id)

	fail := func(stage Stage, err error) (*parsed, error) {
		trace.Point(ctx, trace.ScopeStage, "fail", string(stage))
		return nil, &UnitError{Identifier: identifier, Stage: stage, Err: err}
	}

	var (
		records []comments.Record
		clean   []byte
		tree    *cst.Node
		root    ast.Node
	)
	err := stage(ctx, opts.Timer, "extract", func() (err error) {
		records, clean, err = comments.Extract(file)
		return err
	})
	if err != nil {
		return fail(StageExtract, err)
	}
	cleanFile := file.WithContent(clean)

	if err := stage(ctx, opts.Timer, "parse", func() (err error) {
		tree, err = eng.Parse(cleanFile, start)
		return err
	}); err != nil {
		return fail(StageParse, err)
	}
	if err := stage(ctx, opts.Timer, "transform", func() (err error) {
		root, err = reduce(start, tree, cleanFile, records)
		return err
	}); err != nil {
		return fail(StageTransform, err)
	}
	return &parsed{text: text, file: id, records: records, root: root}, nil
}

func reduce(start cst.Start, tree *cst.Node, file *source.File, records []comments.Record) (ast.Node, error) {
	switch start {
	case cst.StartDeclarations:
		return transform.TransformDeclarations(tree, file, records)
	case cst.StartStatements:
		return transform.TransformStatements(tree, file, records)
	default:
		return transform.Transform(tree, file, records)
	}
}

// stage wraps one pipeline step in a trace span and a timer entry.
func stage(ctx context.Context, timer *observ.Timer, name string, fn func() error) error {
	_, sp := trace.Start(ctx, trace.ScopeStage, name)
	err := fn()
	detail := "ok"
	if err != nil {
		detail = err.Error()
	}
	timer.Add(name, sp.End(detail))
	return err
}

// ParseFile parses a plain .st file or a single TwinCAT unit file.
func ParseFile(eng *cst.Engine, path string, opts Options) (*ast.SourceUnit, error) {
	text, err := readUnitText(path)
	if err != nil {
		return nil, err
	}
	return ParseText(eng, text, filepath.ToSlash(path), opts)
}

func readUnitText(path string) (string, error) {
	if twincat.IsUnitFile(path) {
		_, _, text, err := twincat.ReadUnitFile(path)
		if err != nil {
			return "", &UnitError{Identifier: path, Stage: StageRead, Err: err}
		}
		return text, nil
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return "", &UnitError{Identifier: path, Stage: StageRead, Err: err}
	}
	return string(fs.Get(id).Content), nil
}

// IsSingleFile reports whether path is parsed as one unit rather than a project.
func IsSingleFile(path string) bool {
	return twincat.IsUnitFile(path) || strings.EqualFold(filepath.Ext(path), ".st")
}
