package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jsamuelsen/localized-problems/internal/platform/i18n"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNew_Disabled(t *testing.T) {
	p, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestMetricsHandler(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	metrics, err := NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	require.NoError(t, err)

	router := gin.New()
	router.Use(metrics.Handler())
	router.POST("/cities", func(c *gin.Context) {
		c.Request = c.Request.WithContext(i18n.ContextWithCulture(c.Request.Context(), i18n.FrenchBE))
		c.Header("Content-Type", contentTypeProblem)
		c.Status(http.StatusBadRequest)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/cities", http.NoBody))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	total := findSum(t, rm, "http.server.request.total")
	require.Len(t, total.DataPoints, 1)

	point := total.DataPoints[0]
	assert.Equal(t, int64(1), point.Value)

	culture, ok := point.Attributes.Value(attribute.Key("app.culture"))
	require.True(t, ok)
	assert.Equal(t, "fr-BE", culture.AsString())

	problem, ok := point.Attributes.Value(attribute.Key("app.problem"))
	require.True(t, ok)
	assert.True(t, problem.AsBool())
}

func TestMiddleware_TraceHeader(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	router := gin.New()
	router.Use(Middleware("localized-problems", nil, otelgin.WithTracerProvider(tp))...)
	router.GET("/cities", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cities", http.NoBody))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, spans[0].SpanContext().TraceID().String(), w.Header().Get(HeaderTraceID))
}

func findSum(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Sum[int64] {
	t.Helper()

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}

			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)

			return sum
		}
	}

	require.Failf(t, "metric not found", "name %s", name)

	return metricdata.Sum[int64]{}
}
