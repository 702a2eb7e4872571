package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"plcst/internal/cst"
	"plcst/internal/diag"
	"plcst/internal/diagfmt"
	"plcst/internal/driver"
	"plcst/internal/format"
	"plcst/internal/twincat"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format Structured Text files",
	Long: `Fmt re-renders .st files from their syntax tree. Directories are searched for
.st files. TwinCAT unit files are accepted with --check or --stdout only.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json|yaml)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Int("indent", 4, "spaces per indentation level")
	fmtCmd.Flags().Bool("tabs", false, "indent with tabs")
	fmtCmd.Flags().Bool("drop-comments", false, "omit comments and pragmas from the output")
	fmtCmd.Flags().Bool("verify", false, "reparse the output and fail if the tree changed")
}

type fmtResult struct {
	Path      string `json:"path" yaml:"path"`
	Changed   bool   `json:"changed" yaml:"changed"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
	CheckRun  bool   `json:"check" yaml:"check"`
	formatted string
	err       error
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	verify, err := cmd.Flags().GetBool("verify")
	if err != nil {
		return err
	}
	var opt format.Options
	if opt.IndentWidth, err = cmd.Flags().GetInt("indent"); err != nil {
		return err
	}
	if opt.UseTabs, err = cmd.Flags().GetBool("tabs"); err != nil {
		return err
	}
	if opt.DropComments, err = cmd.Flags().GetBool("drop-comments"); err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if opt.DropComments && !writeToStdout && !check {
		return fmt.Errorf("fmt: --drop-comments would lose comments; use it with --stdout or --check")
	}

	r, err := newRun(cmd)
	if err != nil {
		return err
	}
	eng, err := engine()
	if err != nil {
		return fmt.Errorf("grammar: %w", err)
	}
	paths, err := fmtPaths(args)
	if err != nil {
		return err
	}

	results := make([]fmtResult, 0, len(paths))
	for _, path := range paths {
		res := formatFile(eng, r, path, opt, verify)
		res.CheckRun = check
		if res.err == nil && !check && !writeToStdout && res.Changed {
			if twincat.IsUnitFile(path) {
				res.err = fmt.Errorf("TwinCAT unit files can only be checked or printed")
			} else {
				res.err = writeFormatted(path, res.formatted)
			}
		}
		if res.err != nil {
			res.Error = res.err.Error()
		}
		results = append(results, res)
	}

	var hasErrors, hasChanges bool
	for _, res := range results {
		hasErrors = hasErrors || res.err != nil
		hasChanges = hasChanges || res.Changed
	}

	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(cmd, r, results)
		} else {
			renderFmtText(cmd, r, results, check)
		}
	case "json", "yaml":
		if err := diagfmt.Encode(cmd.OutOrStdout(), results, outputFormat); err != nil {
			return err
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}
	if r.s.timings {
		printTimings(os.Stderr, r.timer)
	}

	if hasErrors {
		if r.s.debug {
			return nil
		}
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

// fmtPaths expands directories into the .st files below them.
func fmtPaths(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && p != arg && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".st") {
				out = append(out, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func formatFile(eng *cst.Engine, r *run, path string, opt format.Options, verify bool) fmtResult {
	res := fmtResult{Path: filepath.ToSlash(path)}
	idx := r.timer.Begin("fmt")
	defer func() { r.timer.End(idx, path) }()

	u, err := driver.ParseFile(eng, path, r.options())
	if err != nil {
		res.err = err
		return res
	}
	if verify {
		res.formatted, res.err = format.RoundTrip(eng, u, opt)
	} else {
		res.formatted = format.Unit(u, opt)
	}
	if res.err != nil {
		return res
	}
	// сравниваем с нормализованным текстом: BOM и CRLF не считаются изменением
	original := string(r.fs.Get(u.File).Content)
	res.Changed = original != res.formatted
	return res
}

func writeFormatted(path, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), info.Mode().Perm())
}

func renderFmtStdout(cmd *cobra.Command, r *run, results []fmtResult) {
	for _, res := range results {
		if res.err != nil {
			reportFmtError(r, res)
			continue
		}
		_, _ = cmd.OutOrStdout().Write([]byte(res.formatted))
	}
}

func renderFmtText(cmd *cobra.Command, r *run, results []fmtResult, check bool) {
	out := cmd.OutOrStdout()
	for _, res := range results {
		if res.err != nil {
			reportFmtError(r, res)
			continue
		}
		if !res.Changed || r.s.quiet {
			continue
		}
		if check {
			fmt.Fprintln(out, res.Path)
		} else {
			fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
	}
}

func reportFmtError(r *run, res fmtResult) {
	var d diag.Diagnoser
	if errors.As(res.err, &d) {
		reportError(r.s, r.fs, res.err)
		return
	}
	fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.err)
}
