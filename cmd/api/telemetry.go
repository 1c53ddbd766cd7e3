package main

import (
	"context"
	"log/slog"

	"bookshelf/internal/config"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// slogExporter writes finished spans to the structured log.
type slogExporter struct {
	logger *slog.Logger
}

func (e slogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		attrs := []slog.Attr{
			slog.String("trace_id", s.SpanContext().TraceID().String()),
			slog.Duration("duration", s.EndTime().Sub(s.StartTime())),
			slog.String("status", s.Status().Code.String()),
		}
		for _, kv := range s.Attributes() {
			attrs = append(attrs, slog.String(string(kv.Key), kv.Value.Emit()))
		}
		e.logger.LogAttrs(ctx, slog.LevelDebug, s.Name(), attrs...)
	}
	return nil
}

func (e slogExporter) Shutdown(context.Context) error { return nil }

// newTracerProvider returns nil when span logging is off, which makes the
// repository fall back to the global no-op provider.
func newTracerProvider(cfg config.Config, logger *slog.Logger) (trace.TracerProvider, func()) {
	if !cfg.TraceSpans {
		return nil, func() {}
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(slogExporter{logger: logger}))
	return tp, func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error("tracer shutdown", "error", err)
		}
	}
}
