package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"plcst/internal/diagfmt"
	"plcst/internal/version"
)

type versionInfo struct {
	Version    string
	GitCommit  string
	GitMessage string
	BuildDate  string
}

type versionOptions struct {
	format      string
	showHash    bool
	showMessage bool
	showDate    bool
}

type versionPayload struct {
	Tool       string `json:"tool" yaml:"tool"`
	Version    string `json:"version" yaml:"version"`
	Grammar    string `json:"grammar" yaml:"grammar"`
	GitCommit  string `json:"git_commit,omitempty" yaml:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty" yaml:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty" yaml:"build_date,omitempty"`
}

var (
	versionFormat      string
	versionShowHash    bool
	versionShowMessage bool
	versionShowDate    bool
	versionShowFull    bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowMessage, "message", false, "include git commit message")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json|yaml)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show plcst build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := versionOptions{
			format:      strings.ToLower(versionFormat),
			showHash:    versionShowHash || versionShowFull,
			showMessage: versionShowMessage || versionShowFull,
			showDate:    versionShowDate || versionShowFull,
		}

		switch opts.format {
		case "pretty", "json", "yaml":
		default:
			return fmt.Errorf("unsupported format %q (must be pretty, json or yaml)", versionFormat)
		}

		info := collectVersionInfo()
		if opts.format != "pretty" {
			return diagfmt.Encode(cmd.OutOrStdout(), buildVersionPayload(info, opts), opts.format)
		}
		renderVersionPretty(cmd.OutOrStdout(), info, opts)
		return nil
	},
}

func collectVersionInfo() versionInfo {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	return versionInfo{
		Version:    v,
		GitCommit:  strings.TrimSpace(version.GitCommit),
		GitMessage: strings.TrimSpace(version.GitMessage),
		BuildDate:  strings.TrimSpace(version.BuildDate),
	}
}

func grammarName() string {
	eng, err := engine()
	if err != nil {
		return "unavailable"
	}
	return eng.Grammar().Name
}

func renderVersionPretty(out io.Writer, info versionInfo, opts versionOptions) {
	fmt.Fprintf(out, "plcst %s (grammar %s)\n", version.Colored(), grammarName())
	if opts.showHash {
		fmt.Fprintf(out, "commit:  %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showMessage {
		fmt.Fprintf(out, "message: %s\n", valueOrUnknown(info.GitMessage))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:   %s\n", valueOrUnknown(info.BuildDate))
	}
}

func buildVersionPayload(info versionInfo, opts versionOptions) versionPayload {
	payload := versionPayload{
		Tool:    "plcst",
		Version: info.Version,
		Grammar: grammarName(),
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showMessage {
		payload.GitMessage = valueOrUnknown(info.GitMessage)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	return payload
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
