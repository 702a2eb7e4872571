package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"plcst/internal/diag"
	"plcst/internal/diagfmt"
	"plcst/internal/driver"
	"plcst/internal/source"
)

// unitDiagnostic turns a unit failure into a diagnostic; errors without a
// position still name their unit.
func unitDiagnostic(r driver.UnitResult) diag.Diagnostic {
	var d diag.Diagnoser
	if errors.As(r.Err, &d) {
		out := d.Diagnostic()
		if out.Path == "" {
			out.Path = r.Identifier
		}
		return out
	}
	out := diag.NewError(diag.UnknownCode, source.Span{}, r.Err.Error())
	out.Path = r.Identifier
	return out
}

// reportFailures prints every failure after the run. It returns an error, and
// so a non-zero exit, unless --debug is set.
func reportFailures(cmd *cobra.Command, s *settings, fs *source.FileSet, total int, failures []driver.UnitResult, format string) error {
	if len(failures) == 0 {
		return nil
	}
	bag := diag.NewBag(s.maxDiagnostics)
	for _, r := range failures {
		bag.Add(unitDiagnostic(r))
	}
	hidden := len(failures) - bag.Len()
	bag.Dedup()

	switch {
	case format == "json" || format == "yaml":
		opts := diagfmt.JSONOpts{IncludePositions: true, PathMode: diagfmt.PathModeAuto, IncludeNotes: true}
		var err error
		if format == "json" {
			err = diagfmt.JSON(os.Stderr, bag, fs, opts)
		} else {
			err = diagfmt.YAML(os.Stderr, bag, fs, opts)
		}
		if err != nil {
			return err
		}
	case s.quiet:
		fmt.Fprintln(os.Stderr, diag.FormatGoldenDiagnostics(bag.Items(), fs, false))
	default:
		fmt.Fprintf(os.Stderr, "Failed to parse %d of %d units:\n\n", len(failures), total)
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:     s.colorStderr,
			Context:   2,
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
		})
	}
	if hidden > 0 && !s.quiet && format == "pretty" {
		fmt.Fprintf(os.Stderr, "\n... and %d more (raise --max-diagnostics)\n", hidden)
	}
	dumpTraceRing(cmd)

	if s.debug {
		return nil
	}
	return fmt.Errorf("%d unit(s) failed", len(failures))
}

// reportError renders a single error as a diagnostic when it carries one.
func reportError(s *settings, fs *source.FileSet, err error) {
	var d diag.Diagnoser
	if !errors.As(err, &d) {
		return
	}
	bag := diag.NewBag(1)
	bag.Add(d.Diagnostic())
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{Color: s.colorStderr, Context: 2, ShowNotes: true})
}
