package log

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/product-api/pkg/correlationid"
)

var _ slog.Handler = (*requestHandler)(nil)

// requestHandler adds the request correlation id and the active span to every
// record logged with a request context.
type requestHandler struct {
	next slog.Handler
}

func newRequestHandler(next slog.Handler) *requestHandler {
	return &requestHandler{next: next}
}

func (h *requestHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *requestHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := correlationid.FromContext(ctx); ok {
		r.AddAttrs(slog.String("correlation_id", id))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return h.next.Handle(ctx, r)
}

func (h *requestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newRequestHandler(h.next.WithAttrs(attrs))
}

func (h *requestHandler) WithGroup(name string) slog.Handler {
	return newRequestHandler(h.next.WithGroup(name))
}
