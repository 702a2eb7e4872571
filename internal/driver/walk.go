package driver

import (
	"context"
	"fmt"
	"iter"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"plcst/internal/ast"
	"plcst/internal/cst"
	"plcst/internal/project"
	"plcst/internal/summary"
	"plcst/internal/trace"
)

// UnitResult is the outcome of one unit. Exactly one of Source/Summary and
// Err is meaningful; a cached result has a Summary but no Source.
type UnitResult struct {
	Project    string
	Target     string
	Unit       project.Unit
	Identifier string
	Source     *ast.SourceUnit
	Summary    *summary.CodeSummary
	Cached     bool
	Err        error
}

// WalkOptions extends Options with project-level settings.
type WalkOptions struct {
	Options
	Sink EventSink
	// Summarize fills UnitResult.Summary.
	Summarize bool
	// Cache is consulted for summaries when Summarize is set.
	Cache *DiskCache
}

// job is one enumerated unit, or a container that failed to load.
type job struct {
	project string
	target  string
	unit    project.Unit
	err     error
}

func (j job) identifier() string {
	if j.err != nil {
		return j.project
	}
	return j.unit.Filename
}

// Walk parses every unit reachable from path, one at a time, as the caller
// pulls. A .sln expands to its projects. Failures are yielded, never
// returned, and the walk carries on with the next unit. Breaking out of the
// loop or cancelling ctx ends the walk.
func Walk(ctx context.Context, reader project.Reader, eng *cst.Engine, path string, opts WalkOptions) iter.Seq[UnitResult] {
	return func(yield func(UnitResult) bool) {
		ctx, sp := trace.Start(ctx, trace.ScopeDriver, "walk")
		n := 0
		defer func() { sp.End(fmt.Sprintf("%d units", n)) }()

		w := walker{eng: eng, opts: opts}
		for j := range jobs(ctx, reader, path) {
			if ctx.Err() != nil {
				return
			}
			n++
			emit(opts.Sink, Event{Identifier: j.identifier(), Status: UnitQueued})
			if !yield(w.run(ctx, j)) {
				return
			}
		}
	}
}

// ParseAll is Walk with up to jobs units parsed in parallel (0 = GOMAXPROCS).
// Results keep enumeration order. The error is non-nil only when ctx was
// cancelled; then the results are the finished prefix. Unit failures are in
// the results.
func ParseAll(ctx context.Context, reader project.Reader, eng *cst.Engine, path string, opts WalkOptions, jobCount int) ([]UnitResult, error) {
	ctx, sp := trace.Start(ctx, trace.ScopeDriver, "parse-all")
	var all []job
	for j := range jobs(ctx, reader, path) {
		all = append(all, j)
		emit(opts.Sink, Event{Identifier: j.identifier(), Status: UnitQueued})
	}
	defer sp.End(fmt.Sprintf("%d units", len(all)))
	if len(all) == 0 {
		return nil, ctx.Err()
	}

	if jobCount <= 0 {
		jobCount = runtime.GOMAXPROCS(0)
	}
	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]UnitResult, len(all))
	done := make([]bool, len(all))
	w := walker{eng: eng, opts: opts}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobCount, len(all)))
	for i, j := range all {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = w.run(gctx, j)
			done[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		n := 0
		for n < len(done) && done[n] {
			n++
		}
		return results[:n], err
	}
	return results, nil
}

// jobs enumerates units in walk order: projects, their targets, then each
// target's units by group. Units without source are skipped.
func jobs(ctx context.Context, reader project.Reader, path string) iter.Seq[job] {
	return func(yield func(job) bool) {
		projects := []string{path}
		if strings.EqualFold(filepath.Ext(path), ".sln") {
			ps, err := reader.SolutionProjects(path)
			if err != nil {
				yield(job{project: path, err: &UnitError{Identifier: path, Stage: StageLoad, Err: err}})
				return
			}
			projects = ps
		}
		for _, p := range projects {
			if ctx.Err() != nil {
				return
			}
			proj, err := reader.ReadProject(p)
			if err != nil {
				if !yield(job{project: p, err: &UnitError{Identifier: p, Stage: StageLoad, Err: err}}) {
					return
				}
				continue
			}
			trace.Point(ctx, trace.ScopeProject, "project", proj.Path)
			for _, t := range proj.Targets {
				for _, u := range t.Ordered() {
					if u.Source == nil {
						trace.Point(ctx, trace.ScopeProject, "skip", u.Filename)
						continue
					}
					if !yield(job{project: proj.Path, target: t.Name, unit: u}) {
						return
					}
				}
			}
		}
	}
}

type walker struct {
	eng  *cst.Engine
	opts WalkOptions
}

// run parses one unit. Panics below this point become StagePanic errors.
func (w walker) run(ctx context.Context, j job) (res UnitResult) {
	id := j.identifier()
	res = UnitResult{Project: j.project, Target: j.target, Unit: j.unit, Identifier: id}
	if j.err != nil {
		res.Err = j.err
		emit(w.opts.Sink, Event{Identifier: id, Status: UnitFailed, Stage: StageLoad, Err: j.err})
		return res
	}

	ctx, sp := trace.Start(ctx, trace.ScopeUnit, "unit:"+id)
	start := time.Now()
	emit(w.opts.Sink, Event{Identifier: id, Status: UnitStarted})
	defer func() {
		if r := recover(); r != nil {
			res.Source, res.Summary, res.Cached = nil, nil, false
			res.Err = &UnitError{Identifier: id, Stage: StagePanic, Err: fmt.Errorf("%v", r)}
		}
		ev := Event{Identifier: id, Status: UnitDone, Elapsed: time.Since(start)}
		detail := "ok"
		switch {
		case res.Err != nil:
			ev.Status, ev.Err, detail = UnitFailed, res.Err, res.Err.Error()
			if ue, ok := res.Err.(*UnitError); ok {
				ev.Stage = ue.Stage
			}
		case res.Cached:
			ev.Status, detail = UnitCached, "cached"
		}
		sp.End(detail)
		emit(w.opts.Sink, ev)
	}()

	text, err := j.unit.Source()
	if err != nil {
		res.Err = &UnitError{Identifier: id, Stage: StageRead, Err: err}
		return res
	}
	for _, pp := range w.opts.Preprocessors {
		text = pp(text)
	}
	opts := w.opts.Options
	opts.Preprocessors = nil

	useCache := w.opts.Summarize && w.opts.Cache != nil
	var key project.Digest
	if useCache {
		key = UnitKey(w.eng.Grammar(), id, text)
		var payload DiskPayload
		hit, err := w.opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(ctx, trace.ScopeUnit, "cache-read", err.Error())
		}
		if hit && payload.Summary != nil {
			res.Summary, res.Cached = payload.Summary, true
			return res
		}
	}

	u, err := parseText(ctx, w.eng, text, id, opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Source = u
	if w.opts.Summarize {
		_ = stage(ctx, w.opts.Timer, "summarize", func() error {
			res.Summary = summary.Summarize(u)
			return nil
		})
		if useCache {
			if err := w.opts.Cache.Put(key, &DiskPayload{Identifier: id, Summary: res.Summary}); err != nil {
				trace.Point(ctx, trace.ScopeUnit, "cache-write", err.Error())
			}
		}
	}
	return res
}

// Collect merges the summaries of results in order and returns the failures.
func Collect(results []UnitResult) (*summary.CodeSummary, []UnitResult) {
	var parts []*summary.CodeSummary
	var failed []UnitResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
			continue
		}
		if r.Summary != nil {
			parts = append(parts, r.Summary)
		} else if r.Source != nil {
			parts = append(parts, summary.Summarize(r.Source))
		}
	}
	return summary.Merge(parts...), failed
}
