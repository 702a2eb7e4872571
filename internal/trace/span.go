package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

type (
	tracerKey struct{}
	spanKey   struct{}
)

// FromContext returns the tracer of ctx or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithTracer attaches t to ctx.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// currentSpan is the id new spans and points of ctx nest under.
func currentSpan(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(spanKey{}).(uint64)
	return id
}

// Span is an open interval of work. A nil or disabled span is safe to use.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
}

// Begin starts a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	s := &Span{started: time.Now()}
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return s
	}
	s.tracer, s.id, s.parent, s.scope, s.name = t, spanCounter.Add(1), parent, scope, name
	t.Emit(&Event{Time: s.started, Kind: KindSpanBegin, Scope: scope, SpanID: s.id, ParentID: parent, Name: name})
	return s
}

// Start begins a span nested in the current span of ctx and returns a context
// carrying the new one.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	s := Begin(FromContext(ctx), scope, name, currentSpan(ctx))
	if s.id == 0 {
		return ctx, s
	}
	return context.WithValue(ctx, spanKey{}, s.id), s
}

// End emits the end event and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	dur := time.Since(s.started)
	if s.tracer != nil {
		s.tracer.Emit(&Event{
			Time: time.Now(), Kind: KindSpanEnd, Scope: s.scope,
			SpanID: s.id, ParentID: s.parent, Name: s.name, Detail: detail, Dur: dur,
		})
	}
	return dur
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under the current span of ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: scope, ParentID: currentSpan(ctx), Name: name, Detail: detail})
}
