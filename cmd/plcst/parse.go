package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"plcst/internal/diagfmt"
	"plcst/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [path]",
	Short: "Parse Structured Text files or TwinCAT projects",
	Long: `Parse reads a .st file, a TwinCAT unit file, a project, a solution or a
directory and reports every unit that fails to parse. With --ast the typed
syntax trees are printed, with --summary the merged code summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	parseCmd.Flags().Bool("ast", false, "print the syntax tree of every unit")
	parseCmd.Flags().BoolP("summary", "s", false, "print the merged code summary")
	parseCmd.Flags().String("ui", "auto", "show progress UI for projects (auto|on|off)")
}

func runParse(cmd *cobra.Command, args []string) error {
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
	showAST, err := cmd.Flags().GetBool("ast")
	if err != nil {
		return fmt.Errorf("failed to get ast flag: %w", err)
	}
	showSummary, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return fmt.Errorf("failed to get summary flag: %w", err)
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
	path, err := r.targetPath(args)
	if err != nil {
		return err
	}

	// дерево нужно целиком, поэтому кэш только для чистого --summary
	results, err := r.parseUnits(path, showSummary, showSummary && !showAST, mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showAST || r.s.verbose > 2 {
		if err := printTrees(out, r, results, format); err != nil {
			return err
		}
	}
	if showSummary {
		merged, _ := driver.Collect(results)
		if err := printSummary(out, merged, format, r.s.colorStdout); err != nil {
			return err
		}
	}
	if !r.s.quiet && !showAST && !showSummary {
		printParseTotals(os.Stderr, results)
	}
	return r.finish(results)
}

func printTrees(out io.Writer, r *run, results []driver.UnitResult, format string) error {
	for _, res := range results {
		if res.Source == nil {
			continue
		}
		var err error
		switch format {
		case "json":
			err = diagfmt.FormatASTJSON(out, res.Source)
		case "yaml":
			err = diagfmt.FormatASTYAML(out, res.Source)
		default:
			err = diagfmt.FormatASTPretty(out, res.Source, r.fs)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func printParseTotals(w io.Writer, results []driver.UnitResult) {
	var ok, cached int
	for _, res := range results {
		switch {
		case res.Err != nil:
		case res.Cached:
			cached++
		default:
			ok++
		}
	}
	fmt.Fprintf(w, "parsed %d of %d units", ok+cached, len(results))
	if cached > 0 {
		fmt.Fprintf(w, " (%d from cache)", cached)
	}
	fmt.Fprintln(w)
}
