package dto

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// GetTraceID returns the OpenTelemetry trace ID of the request, if any.
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}

// WriteProblem writes p as an application/problem+json response.
// The trace ID is added if available.
func WriteProblem(c *gin.Context, p *Problem) {
	if traceID := GetTraceID(c); traceID != "" {
		p.WithTraceID(traceID)
	}

	// Set before rendering so gin keeps it instead of application/json.
	c.Header("Content-Type", ContentTypeProblem)
	c.JSON(p.Status, p)
}

// AbortWithProblem aborts the request chain and writes p.
// Use this in middleware when you want to stop further processing.
func AbortWithProblem(c *gin.Context, p *Problem) {
	c.Abort()
	WriteProblem(c, p)
}
