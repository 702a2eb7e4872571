package main

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"plcst/internal/diagfmt"
	"plcst/internal/driver"
	"plcst/internal/xref"
)

var indexCmd = &cobra.Command{
	Use:   "index [flags] [path]",
	Short: "Export the code summary to a SQLite index and query it",
	Long: `Index parses path and writes every declaration into a SQLite database.
With a query flag the existing database is queried instead; --rebuild parses
first and then runs the query.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().String("db", "", "database path (default: .plcst/xref.db next to plcst.toml)")
	indexCmd.Flags().String("lookup", "", "print symbols with this qualified name")
	indexCmd.Flags().String("search", "", "print symbols matching a glob (* and ?)")
	indexCmd.Flags().StringSlice("kind", nil, "restrict --search to these kinds")
	indexCmd.Flags().String("members", "", "print the members of a declaration")
	indexCmd.Flags().String("derived", "", "print declarations extending or implementing a name")
	indexCmd.Flags().String("attr", "", "print symbols carrying an attribute pragma (* for all)")
	indexCmd.Flags().Bool("stats", false, "print symbol counts per kind")
	indexCmd.Flags().Bool("rebuild", false, "parse and export before running a query")
	indexCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	indexCmd.Flags().String("ui", "auto", "show progress UI for projects (auto|on|off)")
}

type indexQuery struct {
	lookup, search, members, derived, attr string
	kinds                                  []string
	stats                                  bool
}

func (q indexQuery) any() bool {
	return q.lookup != "" || q.search != "" || q.members != "" || q.derived != "" || q.attr != "" || q.stats
}

func runIndex(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	var q indexQuery
	var err error
	if q.lookup, err = flags.GetString("lookup"); err != nil {
		return err
	}
	if q.search, err = flags.GetString("search"); err != nil {
		return err
	}
	if q.kinds, err = flags.GetStringSlice("kind"); err != nil {
		return err
	}
	if q.members, err = flags.GetString("members"); err != nil {
		return err
	}
	if q.derived, err = flags.GetString("derived"); err != nil {
		return err
	}
	if q.attr, err = flags.GetString("attr"); err != nil {
		return err
	}
	if q.stats, err = flags.GetBool("stats"); err != nil {
		return err
	}
	rebuild, err := flags.GetBool("rebuild")
	if err != nil {
		return err
	}
	format, err := flags.GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return err
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
	dbPath, err := flags.GetString("db")
	if err != nil {
		return err
	}
	if dbPath == "" {
		root := "."
		if r.s.manifest != nil {
			root = r.s.manifest.Root
		}
		dbPath = filepath.Join(root, ".plcst", "xref.db")
	}

	idx, err := xref.Open(dbPath)
	if err != nil {
		return err
	}
	defer idx.Close()

	var failErr error
	if !q.any() || rebuild {
		path, err := r.targetPath(args)
		if err != nil {
			return err
		}
		results, err := r.parseUnits(path, true, true, mode)
		if err != nil {
			return err
		}
		merged, _ := driver.Collect(results)
		n, err := idx.Export(cmd.Context(), merged)
		if err != nil {
			return err
		}
		if !r.s.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "indexed %d symbols from %d units into %s\n", n, len(results), dbPath)
		}
		failErr = r.finish(results)
	}
	if q.any() {
		if err := runIndexQuery(cmd, idx, q, format); err != nil {
			return err
		}
	}
	return failErr
}

func runIndexQuery(cmd *cobra.Command, idx *xref.Index, q indexQuery, format string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	emit := func(v any, pretty func(io.Writer)) error {
		if format == "pretty" {
			pretty(out)
			return nil
		}
		return diagfmt.Encode(out, v, format)
	}

	switch {
	case q.stats:
		stats, err := idx.Stats(ctx)
		if err != nil {
			return err
		}
		return emit(stats, func(w io.Writer) {
			kinds := make([]string, 0, len(stats))
			for k := range stats {
				kinds = append(kinds, k)
			}
			slices.Sort(kinds)
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			for _, k := range kinds {
				fmt.Fprintf(tw, "%s\t%d\n", k, stats[k])
			}
			tw.Flush()
		})
	case q.derived != "":
		rels, err := idx.Derived(ctx, q.derived)
		if err != nil {
			return err
		}
		return emit(rels, func(w io.Writer) {
			for _, rel := range rels {
				fmt.Fprintf(w, "%s %s %s\n", rel.Name, rel.Relation, rel.Base)
			}
		})
	case q.attr != "":
		name := q.attr
		if name == "*" {
			name = ""
		}
		tags, err := idx.Tagged(ctx, name)
		if err != nil {
			return err
		}
		return emit(tags, func(w io.Writer) { printTags(w, tags) })
	}

	var syms []xref.Symbol
	var err error
	switch {
	case q.lookup != "":
		syms, err = idx.Lookup(ctx, q.lookup)
	case q.members != "":
		syms, err = idx.Members(ctx, q.members)
	default:
		syms, err = idx.Search(ctx, q.search, q.kinds...)
	}
	if err != nil {
		return err
	}
	return emit(syms, func(w io.Writer) { printSymbols(w, syms) })
}

func printSymbols(w io.Writer, syms []xref.Symbol) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range syms {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s:%d\n", s.Kind, s.Qualified, s.Type, s.Filename, s.StartByte)
	}
	tw.Flush()
}

func printTags(w io.Writer, tags []xref.Tag) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, t := range tags {
		note := ""
		switch {
		case !t.Known:
			note = "unknown"
		case t.Misplaced:
			note = "not valid on " + strings.ToLower(t.Kind)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s:%d\n", t.Qualified, t.Attribute, t.Value, note, t.Filename, t.StartByte)
	}
	tw.Flush()
}
