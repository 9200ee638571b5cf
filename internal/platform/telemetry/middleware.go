package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/localized-problems/internal/platform/i18n"
)

const (
	instrumentationName = "github.com/jsamuelsen/localized-problems/telemetry"

	// HeaderTraceID exposes the trace ID of the request span.
	HeaderTraceID = "X-Trace-ID"

	contentTypeProblem = "application/problem+json"
)

// Metrics holds HTTP server metrics.
type Metrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
	activeRequests  metric.Int64UpDownCounter
}

// NewMetrics creates HTTP server metrics on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		activeRequests:  activeRequests,
	}, nil
}

// Handler returns middleware recording request metrics. Completed requests
// carry the negotiated culture and whether the response was a problem.
func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		route := attribute.String("http.route", c.FullPath())
		method := attribute.String("http.method", c.Request.Method)

		m.activeRequests.Add(c.Request.Context(), 1, metric.WithAttributes(method, route))
		defer m.activeRequests.Add(c.Request.Context(), -1, metric.WithAttributes(method, route))

		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
			c.Header(HeaderTraceID, span.SpanContext().TraceID().String())
		}

		c.Next()

		attrs := metric.WithAttributes(
			method,
			route,
			attribute.Int("http.status_code", c.Writer.Status()),
			attribute.String("app.culture", i18n.CultureFromContext(c.Request.Context()).String()),
			attribute.Bool("app.problem", c.Writer.Header().Get("Content-Type") == contentTypeProblem),
		)

		m.requestDuration.Record(c.Request.Context(), time.Since(start).Seconds(), attrs)
		m.requestTotal.Add(c.Request.Context(), 1, attrs)
	}
}

// Middleware returns the otelgin tracing middleware followed by the metrics
// middleware on mp. A nil mp uses the global meter provider.
func Middleware(serviceName string, mp metric.MeterProvider, opts ...otelgin.Option) []gin.HandlerFunc {
	handlers := []gin.HandlerFunc{otelgin.Middleware(serviceName, opts...)}

	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	metrics, err := NewMetrics(mp)
	if err != nil {
		otel.Handle(err)
		return handlers
	}

	return append(handlers, metrics.Handler())
}
