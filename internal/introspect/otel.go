package introspect

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "reactor/introspect"

// traced wraps next in a server-kind span named after route,
// recording the response status as the span's outcome. Mirrors a
// request-scoped event span: start before the handler, record
// error/status after, always End via defer.
func traced(tracerName, route string, next http.HandlerFunc) http.HandlerFunc {
	tracer := otel.Tracer(tracerName)

	return func(w http.ResponseWriter, req *http.Request) {
		ctx, span := tracer.Start(
			req.Context(),
			fmt.Sprintf("introspect %s", route),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("introspect.route", route)),
		)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, req.WithContext(ctx))

		if rec.status >= 500 {
			span.SetStatus(codes.Error, http.StatusText(rec.status))
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(attribute.Int("http.status_code", rec.status))
	}
}

// statusRecorder captures the status code a handler wrote, since
// http.ResponseWriter has no getter of its own.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
