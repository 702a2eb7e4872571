package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"plcst/internal/diagfmt"
	"plcst/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Tokenize a Structured Text file",
	Long:  `Tokenize lists the comment table and the tokens of the comment-free text of a .st or TwinCAT unit file`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, s.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   s.colorStderr,
			Context: 2,
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.Comments, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.Comments)
	case "yaml":
		err = diagfmt.FormatTokensYAML(out, result.Tokens, result.Comments)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() && !s.debug {
		return fmt.Errorf("%s: lexical errors", filePath)
	}
	return nil
}
