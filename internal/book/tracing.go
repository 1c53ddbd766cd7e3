package book

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "bookshelf/internal/book"

// TracedRepository wraps a Repository and records one span per call.
type TracedRepository struct {
	next   Repository
	tracer trace.Tracer
}

// NewTracedRepository wraps next. A nil provider falls back to the global one.
func NewTracedRepository(next Repository, tp trace.TracerProvider) *TracedRepository {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TracedRepository{next: next, tracer: tp.Tracer(tracerName)}
}

func (r *TracedRepository) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, "book."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// finish ends span, recording err. ErrNotFound is an expected outcome and is
// only noted as an event.
func finish(span trace.Span, err error) {
	defer span.End()
	if err == nil {
		return
	}
	if errors.Is(err, ErrNotFound) {
		span.AddEvent("book not found")
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (r *TracedRepository) Insert(ctx context.Context, in Input) (id int64, err error) {
	ctx, span := r.start(ctx, "Insert", attribute.String("book.genre", string(in.Genre)))
	defer func() {
		span.SetAttributes(attribute.Int64("book.id", id))
		finish(span, err)
	}()
	return r.next.Insert(ctx, in)
}

func (r *TracedRepository) List(ctx context.Context) (books []Book, err error) {
	ctx, span := r.start(ctx, "List")
	defer func() {
		span.SetAttributes(attribute.Int("book.count", len(books)))
		finish(span, err)
	}()
	return r.next.List(ctx)
}

func (r *TracedRepository) Get(ctx context.Context, id int64) (b Book, err error) {
	ctx, span := r.start(ctx, "Get", attribute.Int64("book.id", id))
	defer func() { finish(span, err) }()
	return r.next.Get(ctx, id)
}

func (r *TracedRepository) Replace(ctx context.Context, id int64, in Input) (err error) {
	ctx, span := r.start(ctx, "Replace", attribute.Int64("book.id", id))
	defer func() { finish(span, err) }()
	return r.next.Replace(ctx, id, in)
}

func (r *TracedRepository) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := r.start(ctx, "Delete", attribute.Int64("book.id", id))
	defer func() { finish(span, err) }()
	return r.next.Delete(ctx, id)
}

// Ping forwards to the wrapped repository when it supports it.
func (r *TracedRepository) Ping(ctx context.Context) error {
	if p, ok := r.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
