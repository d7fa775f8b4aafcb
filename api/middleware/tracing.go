package middleware

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/angelmondragon/gestion-backend/pkg/logger"
)

const tracerName = "gestion-backend/api"

// SetupPropagation makes Tracing honour W3C traceparent and baggage headers.
// Spans stay non-recording until a TracerProvider is registered.
func SetupPropagation() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}

// Tracing starts a server span per request, continuing any propagated trace.
func Tracing(logg *logger.Logger) func(http.Handler) http.Handler {
	tracer := otel.Tracer(tracerName)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
				),
			)
			defer span.End()

			if reqID := RequestIDFromContext(ctx); reqID != "" {
				span.SetAttributes(attribute.String("http.request_id", reqID))
			}

			if sc := span.SpanContext(); logg != nil && sc.IsValid() {
				ctx = logg.WithFields(ctx, map[string]any{
					"trace_id": sc.TraceID().String(),
					"span_id":  sc.SpanID().String(),
				})
			}

			rec := &statusRecorder{ResponseWriter: w}
			req := r.WithContext(ctx)
			next.ServeHTTP(rec, req)

			status := rec.Status()
			if route := routePattern(req); route != "" {
				span.SetName(r.Method + " " + route)
				span.SetAttributes(attribute.String("http.route", route))
			}
			span.SetAttributes(attribute.Int("http.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, fmt.Sprintf("status %d", status))
			}
		})
	}
}
