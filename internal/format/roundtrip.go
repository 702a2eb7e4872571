package format

import (
	"fmt"
	"slices"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"plcst/internal/ast"
	"plcst/internal/comments"
	"plcst/internal/cst"
	"plcst/internal/source"
	"plcst/internal/transform"
)

// RoundTripError reports a rendering that does not parse back into the same tree.
type RoundTripError struct {
	Identifier string
	Rendered   string
	// Diff is a cmp.Diff of the trees or of the comment texts; empty when reparse failed.
	Diff string
	Err  error
}

func (e *RoundTripError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("round trip %s: rendered text does not parse: %v", e.Identifier, e.Err)
	}
	return fmt.Sprintf("round trip %s: tree changed (-original +reparsed):\n%s", e.Identifier, e.Diff)
}

func (e *RoundTripError) Unwrap() error { return e.Err }

// Equal reports whether a and b are the same tree, ignoring spans and attached comments.
func Equal(a, b ast.Node) bool {
	return cmp.Equal(a, b, treeOptions...)
}

// Diff is Equal with a human readable report; "" means equal.
func Diff(a, b ast.Node) string {
	return cmp.Diff(a, b, treeOptions...)
}

var treeOptions = []cmp.Option{
	cmpopts.IgnoreTypes(ast.Meta{}),
	cmpopts.IgnoreUnexported(ast.DeclarationBlock{}),
	cmpopts.EquateEmpty(),
}

// RoundTrip renders u, parses the result with eng and checks that the tree and
// the set of comment texts survived. It returns the rendered text.
func RoundTrip(eng *cst.Engine, u *ast.SourceUnit, opt Options) (string, error) {
	out := Unit(u, opt)
	fail := func(diff string, err error) (string, error) {
		return out, &RoundTripError{Identifier: u.Identifier, Rendered: out, Diff: diff, Err: err}
	}

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(u.Identifier, []byte(out)))
	records, clean, err := comments.Extract(file)
	if err != nil {
		return fail("", err)
	}
	cleanFile := file.WithContent(clean)
	root, err := eng.Parse(cleanFile, cst.StartSource)
	if err != nil {
		return fail("", err)
	}
	again, err := transform.Transform(root, cleanFile, records)
	if err != nil {
		return fail("", err)
	}

	if d := Diff(u.Root, again); d != "" {
		return fail(d, nil)
	}
	if opt.DropComments {
		return out, nil
	}
	if d := cmp.Diff(commentTexts(u.Comments), commentTexts(records)); d != "" {
		return fail(d, nil)
	}
	return out, nil
}

func commentTexts(recs []comments.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Text
	}
	slices.Sort(out)
	return out
}
