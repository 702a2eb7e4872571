package trace

import (
	"errors"
	"io"
	"os"
	"sync"
)

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is the tracer used when tracing is off.
var Nop Tracer = nopTracer{}

// leveled carries the level shared by every real tracer.
type leveled struct{ level Level }

func (l leveled) Level() Level  { return l.level }
func (l leveled) Enabled() bool { return l.level > LevelOff }

// StreamTracer writes every event as soon as it arrives.
type StreamTracer struct {
	leveled
	mu     sync.Mutex
	w      io.Writer
	format Format
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{leveled: leveled{level}, w: w, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	ev.Seq = seqCounter.Add(1)
	// ошибки записи трассы не должны ронять разбор
	_, _ = t.w.Write(FormatEvent(ev, t.format))
}

func (t *StreamTracer) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the writer unless it is stdout or stderr.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if t.w == io.Writer(os.Stderr) || t.w == io.Writer(os.Stdout) {
		return nil
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// RingTracer keeps the last N events for a dump after a failure.
type RingTracer struct {
	leveled
	mu   sync.Mutex
	buf  []Event
	next int
	n    int
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{leveled: leveled{level}, buf: make([]Event, capacity)}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf[t.next] = *ev
	t.buf[t.next].Seq = seqCounter.Add(1)
	t.next = (t.next + 1) % len(t.buf)
	t.n = min(t.n+1, len(t.buf))
}

// Snapshot returns the kept events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, t.n)
	start := (t.next - t.n + len(t.buf)) % len(t.buf)
	for i := range t.n {
		out = append(out, t.buf[(start+i)%len(t.buf)])
	}
	return out
}

// Dump writes the snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }

// MultiTracer fans events out to several tracers.
type MultiTracer struct {
	leveled
	tracers []Tracer
}

func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{leveled: leveled{level}, tracers: tracers}
}

func (t *MultiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		// каждый получает свою копию: получатели перезаписывают Seq
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *MultiTracer) Flush() error { return t.each(Tracer.Flush) }
func (t *MultiTracer) Close() error { return t.each(Tracer.Close) }

func (t *MultiTracer) each(fn func(Tracer) error) error {
	errs := make([]error, 0, len(t.tracers))
	for _, tr := range t.tracers {
		errs = append(errs, fn(tr))
	}
	return errors.Join(errs...)
}
