package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"plcst/internal/driver"
	"plcst/internal/observ"
	"plcst/internal/project"
	"plcst/internal/source"
	"plcst/internal/summary"
)

// run is the state shared by commands that parse units.
type run struct {
	cmd   *cobra.Command
	s     *settings
	fs    *source.FileSet
	timer *observ.Timer
	// diagFormat is pretty, json or yaml; structured failure reports go to stderr.
	diagFormat string
}

func newRun(cmd *cobra.Command) (*run, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	r := &run{cmd: cmd, s: s, fs: source.NewFileSet(), diagFormat: "pretty"}
	if s.timings {
		r.timer = observ.NewTimer()
	}
	return r, nil
}

func (r *run) options() driver.Options {
	return driver.Options{Preprocessors: r.s.preprocessors, FileSet: r.fs, Timer: r.timer}
}

// parseUnits parses a single file or walks a container. Unit failures are in
// the results; the error is for problems that stop the whole run.
func (r *run) parseUnits(path string, summarize, useCache bool, mode uiMode) ([]driver.UnitResult, error) {
	eng, err := engine()
	if err != nil {
		return nil, fmt.Errorf("grammar: %w", err)
	}
	if driver.IsSingleFile(path) {
		idx := r.timer.Begin("parse-file")
		u, err := driver.ParseFile(eng, path, r.options())
		r.timer.End(idx, path)
		res := driver.UnitResult{Identifier: filepath.ToSlash(path), Source: u, Err: err}
		if err == nil && summarize {
			res.Summary = summary.Summarize(u)
		}
		r.verboseResult(res)
		return []driver.UnitResult{res}, nil
	}

	reader, err := driver.ReaderFor(path)
	if err != nil {
		reportError(r.s, r.fs, err)
		return nil, err
	}
	var cache *driver.DiskCache
	if useCache {
		if cache, err = r.s.openCache(); err != nil {
			return nil, fmt.Errorf("cache: %w", err)
		}
	}
	wopts := driver.WalkOptions{Options: r.options(), Summarize: summarize, Cache: cache}

	walk := func(ctx context.Context, sink driver.EventSink) ([]driver.UnitResult, error) {
		wopts.Sink = sink
		if r.s.jobs == 1 {
			var out []driver.UnitResult
			for res := range driver.Walk(ctx, reader, eng, path, wopts) {
				out = append(out, res)
			}
			return out, ctx.Err()
		}
		return driver.ParseAll(ctx, reader, eng, path, wopts, r.s.jobs)
	}

	idx := r.timer.Begin("walk")
	defer func() { r.timer.End(idx, path) }()
	if shouldUseTUI(mode, r.s.verbose) && !r.s.quiet {
		return runWithUI(r.cmd.Context(), filepath.Base(path), walk)
	}
	results, err := walk(r.cmd.Context(), r.verboseSink())
	return results, err
}

// verboseSink prints "* Loading" lines at -v and failures as they happen at -vv.
func (r *run) verboseSink() driver.EventSink {
	if r.s.verbose == 0 {
		return nil
	}
	return driver.SinkFunc(func(ev driver.Event) {
		switch ev.Status {
		case driver.UnitStarted:
			fmt.Fprintf(os.Stderr, "* Loading %s\n", ev.Identifier)
		case driver.UnitCached:
			fmt.Fprintf(os.Stderr, "* Cached %s\n", ev.Identifier)
		case driver.UnitFailed:
			if r.s.verbose > 1 {
				fmt.Fprintf(os.Stderr, "[Failure] %s: %v\n", ev.Identifier, ev.Err)
			}
		}
	})
}

func (r *run) verboseResult(res driver.UnitResult) {
	if r.s.verbose == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "* Loading %s\n", res.Identifier)
	if res.Err != nil && r.s.verbose > 1 {
		fmt.Fprintf(os.Stderr, "[Failure] %s: %v\n", res.Identifier, res.Err)
	}
}

// finish prints timings and the failure list; its error decides the exit status.
func (r *run) finish(results []driver.UnitResult) error {
	var failures []driver.UnitResult
	for _, res := range results {
		if res.Err != nil {
			failures = append(failures, res)
		}
	}
	if r.s.timings {
		printTimings(os.Stderr, r.timer)
	}
	return reportFailures(r.cmd, r.s, r.fs, len(results), failures, r.diagFormat)
}

// targetPath is the positional path, or the directory of the nearest
// plcst.toml when none is given.
func (r *run) targetPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if r.s.manifest != nil {
		return r.s.manifest.Root, nil
	}
	return "", fmt.Errorf("no path given and no %s found", project.ManifestName)
}
