package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seqCounter atomic.Uint64
	idCounter  atomic.Uint64
)

type tracerKey struct{}
type spanKey struct{}

// WithTracer returns a context carrying t. A nil t installs Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

func parentFrom(ctx context.Context) uint64 {
	if ctx != nil {
		if id, ok := ctx.Value(spanKey{}).(uint64); ok {
			return id
		}
	}
	return 0
}

// Span is an open interval of work. A span that was filtered out by the
// tracer level is inert: every method is a no-op.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	attrs   []Attr
}

// StartSpan opens a span under the one recorded in ctx. The returned context
// makes the new span the parent of nested work.
func StartSpan(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	t := FromContext(ctx)
	if !enabled(t) || !t.Level().Allows(scope) {
		return &Span{}, ctx
	}
	s := &Span{
		tracer:  t,
		id:      idCounter.Add(1),
		parent:  parentFrom(ctx),
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	s.emit(KindBegin, s.started, "", nil)
	return s, context.WithValue(ctx, spanKey{}, s.id)
}

// Attr records a key-value pair reported when the span ends.
func (s *Span) Attr(key, value string) *Span {
	if s != nil && s.tracer != nil {
		s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	}
	return s
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	now := time.Now()
	s.emit(KindEnd, now, detail, s.attrs)
	return now.Sub(s.started)
}

// ID is 0 for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

func (s *Span) emit(kind Kind, at time.Time, detail string, attrs []Attr) {
	s.tracer.Emit(&Event{
		Time:   at,
		Seq:    seqCounter.Add(1),
		Kind:   kind,
		Scope:  s.scope,
		ID:     s.id,
		Parent: s.parent,
		Name:   s.name,
		Detail: detail,
		Attrs:  attrs,
	})
}

// PointFrom records an instant event under the span carried by ctx.
func PointFrom(ctx context.Context, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !enabled(t) || !t.Level().Allows(scope) {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Seq:    seqCounter.Add(1),
		Kind:   KindPoint,
		Scope:  scope,
		ID:     idCounter.Add(1),
		Parent: parentFrom(ctx),
		Name:   name,
		Detail: detail,
	})
}
