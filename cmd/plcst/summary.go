package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"plcst/internal/diag"
	"plcst/internal/diagfmt"
	"plcst/internal/driver"
	"plcst/internal/source"
	"plcst/internal/summary"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [flags] <path> [name]",
	Short: "Print the code summary of a file or project",
	Long: `Summary parses path and prints the merged code summary. When name is given
only the matching declaration is printed; qualified names such as FB_Motor.Start
select methods, actions, properties or variables.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	summaryCmd.Flags().String("kind", "auto", "lookup kind (auto|fb|type|gvl|method|action|property|decl)")
	summaryCmd.Flags().String("ui", "auto", "show progress UI for projects (auto|on|off)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	kind, err := cmd.Flags().GetString("kind")
	if err != nil {
		return fmt.Errorf("failed to get kind flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	r, err := newRun(cmd)
	if err != nil {
		return err
	}
	r.diagFormat = format
	results, err := r.parseUnits(args[0], true, true, mode)
	if err != nil {
		return err
	}
	merged, _ := driver.Collect(results)
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		if err := printSummary(out, merged, format, r.s.colorStdout); err != nil {
			return err
		}
		return r.finish(results)
	}

	found, err := lookup(merged, strings.ToLower(kind), args[1])
	if err != nil {
		// сначала отчёт о сбоях: имя могло быть в непрочитанном модуле
		failErr := r.finish(results)
		var nf *summary.NotFoundError
		if errors.As(err, &nf) {
			bag := diag.NewBag(1)
			bag.Add(nf.Diagnostic())
			diagfmt.Pretty(cmd.ErrOrStderr(), bag, source.NewFileSet(), diagfmt.PrettyOpts{Color: r.s.colorStderr})
			cmd.SilenceErrors = true
		}
		if failErr != nil {
			return failErr
		}
		return err
	}
	if format == "pretty" {
		if s, ok := found.(*summary.CodeSummary); ok {
			if err := diagfmt.SummaryPretty(out, s, r.s.colorStdout); err != nil {
				return err
			}
			return r.finish(results)
		}
		format = "yaml"
	}
	if err := diagfmt.Encode(out, found, format); err != nil {
		return err
	}
	return r.finish(results)
}

// lookup resolves name according to --kind. Whole declarations come back as a
// one-entry CodeSummary so the outline printer can render them.
func lookup(s *summary.CodeSummary, kind, name string) (any, error) {
	switch kind {
	case "auto", "fb":
		fb, err := s.Find(name)
		if err == nil || kind == "fb" || !strings.Contains(name, ".") {
			if err != nil {
				return nil, err
			}
			return &summary.CodeSummary{FunctionBlocks: []*summary.FunctionBlockSummary{fb}}, nil
		}
		return lookupMember(s, name)
	case "type":
		dt, err := s.FindDataType(name)
		if err != nil {
			return nil, err
		}
		return &summary.CodeSummary{DataTypes: []*summary.DataTypeSummary{dt}}, nil
	case "gvl":
		gvl, err := s.FindGlobals(name)
		if err != nil {
			return nil, err
		}
		return &summary.CodeSummary{Globals: []*summary.GlobalVariableSummary{gvl}}, nil
	case "method":
		return s.FindMethod(name)
	case "action":
		return s.FindAction(name)
	case "property":
		return s.FindProperty(name)
	case "decl":
		return s.FindDeclaration(name)
	default:
		return nil, fmt.Errorf("invalid --kind value %q", kind)
	}
}

// lookupMember tries every qualified lookup in turn and keeps the first error.
func lookupMember(s *summary.CodeSummary, name string) (any, error) {
	var first error
	for _, find := range []func(string) (any, error){
		func(n string) (any, error) { return s.FindMethod(n) },
		func(n string) (any, error) { return s.FindAction(n) },
		func(n string) (any, error) { return s.FindProperty(n) },
		func(n string) (any, error) { return s.FindDeclaration(n) },
	} {
		v, err := find(name)
		if err == nil {
			return v, nil
		}
		if first == nil {
			first = err
		}
	}
	return nil, first
}

func printSummary(out io.Writer, s *summary.CodeSummary, format string, useColor bool) error {
	switch format {
	case "json":
		return diagfmt.SummaryJSON(out, s)
	case "yaml":
		return diagfmt.SummaryYAML(out, s)
	default:
		return diagfmt.SummaryPretty(out, s, useColor)
	}
}
