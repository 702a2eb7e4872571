package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"plcst/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "plcst",
	Short: "Structured Text parser and indexer",
	Long: `plcst parses IEC 61131-3 Structured Text (TwinCAT flavour) into a lossless
syntax tree and builds a cross-reference summary of the declared units.
Inputs are plain .st files, TwinCAT unit files (.TcPOU, .TcDUT, .TcGVL, .TcIO),
projects (.plcproj, .tsproj), solutions (.sln) and plcst.toml manifests.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupRun,
}

func init() {
	registerPersistentFlags(rootCmd)
}

// registerPersistentFlags adds the global flags shared by every subcommand.
func registerPersistentFlags(cmd *cobra.Command) {
	// Глобальные флаги
	pf := cmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.CountP("verbose", "v", "increase verbosity, up to -vvv")
	pf.Bool("debug", false, "report failures but exit with status 0")
	pf.String("config", "", "path to plcst.toml (default: search upwards from the working directory)")
	pf.StringSlice("preprocess", nil, "text preprocessors to run before parsing")
	pf.Int("jobs", 0, "max parallel workers for project parsing (0=auto, 1=streaming)")
	pf.Bool("cache", false, "read and write the summary cache (default from plcst.toml)")

	pf.String("trace", "", "write trace events to file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")

	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")
}

// main initializes the CLI by registering subcommands,
// then executes the root command. Any error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	err := rootCmd.Execute()
	finishRun()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
