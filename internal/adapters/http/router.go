package http

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen/localized-problems/internal/adapters/http/handlers"
	"github.com/jsamuelsen/localized-problems/internal/adapters/http/middleware"
	"github.com/jsamuelsen/localized-problems/internal/platform/config"
	"github.com/jsamuelsen/localized-problems/internal/platform/i18n"
	"github.com/jsamuelsen/localized-problems/internal/platform/telemetry"
)

// Route paths.
const (
	PathForecast = "/weatherforecast"
	PathCities   = "/api/v1/cities"
	PathError    = "/api/error"
)

// RouterConfig contains everything SetupRouter wires.
type RouterConfig struct {
	// ServiceName names the tracing instrumentation.
	ServiceName string

	// MeterProvider records request metrics. Nil uses the global provider.
	MeterProvider metric.MeterProvider

	// Compression enables gzip responses.
	Compression bool

	// RequestTimeout bounds the forecast and city endpoints. Zero disables it.
	RequestTimeout time.Duration

	CORS config.CORSConfig

	Negotiator             *i18n.Negotiator
	ApplyToResponseHeaders bool

	Translations     middleware.Translations
	BusinessTypeBase string

	HealthHandler   *handlers.HealthHandler
	CityHandler     *handlers.CityHandler
	ForecastHandler *handlers.ForecastHandler
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware runs in this order (first to last):
//  1. Gzip - response compression, when enabled
//  2. FaultBoundary - panics of the middleware below become the generic 500
//  3. Request ID
//  4. Correlation ID
//  5. OpenTelemetry - tracing and metrics
//  6. CORS - when origins are configured
//  7. Localization - culture negotiation, once per request
//  8. Logging - skips /-/ endpoints
//  9. Problems - business errors become localized 400 problems, technical
//     errors and handler panics the generic 500
//
// Problems is the innermost global middleware, so it sees the outcome of the
// route handlers first and logging and metrics record the final status.
// The forecast and city groups add a request deadline (RequestTimeout).
// Validation runs per route, after all of the above.
//
// Routes:
//   - /-/ (internal): health, build info, metrics
//   - /weatherforecast and /api/v1/cities: forecast and city endpoints
//   - /api/error (any method): the generic fault problem
//
// Unknown routes answer 404 and unsupported methods 405, both as localized
// problems.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.HandleMethodNotAllowed = true

	if cfg.Compression {
		engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/-/metrics"})))
	}

	engine.Use(
		middleware.FaultBoundary(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(serviceName(cfg), cfg.MeterProvider)...)

	if len(cfg.CORS.AllowedOrigins) > 0 {
		engine.Use(cors.New(corsConfig(cfg.CORS)))
	}

	engine.Use(
		middleware.Localization(middleware.LocalizationConfig{
			Negotiator:             cfg.Negotiator,
			ApplyToResponseHeaders: cfg.ApplyToResponseHeaders,
		}),
		middleware.Logging(),
		middleware.Problems(middleware.ProblemsConfig{
			Translations:     cfg.Translations,
			BusinessTypeBase: cfg.BusinessTypeBase,
		}),
	)

	engine.NoRoute(middleware.StatusProblem(cfg.Translations, http.StatusNotFound, middleware.TitleNotFound))
	engine.NoMethod(middleware.StatusProblem(cfg.Translations, http.StatusMethodNotAllowed, middleware.TitleMethodNotAllowed))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(engine)
	}

	engine.Any(PathError, handlers.Fault)

	for _, path := range []string{PathForecast, PathCities} {
		setupAPIRoutes(engine.Group(path), cfg)
	}
}

// setupAPIRoutes registers the forecast and city endpoints on rg.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.RequestTimeout > 0 {
		rg.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	if cfg.ForecastHandler != nil {
		rg.GET("", cfg.ForecastHandler.Get)
	}

	if cfg.CityHandler != nil {
		cfg.CityHandler.RegisterRoutes(rg)
	}
}

func serviceName(cfg RouterConfig) string {
	if cfg.ServiceName == "" {
		return "localized-problems"
	}

	return cfg.ServiceName
}

// corsConfig exposes Content-Language so browsers can read the negotiated
// culture. A "*" origin allows every origin.
func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", middleware.HeaderAcceptLanguage,
			middleware.HeaderRequestID, middleware.HeaderCorrelationID},
		ExposeHeaders: []string{middleware.HeaderContentLanguage, middleware.HeaderRequestID,
			middleware.HeaderCorrelationID, telemetry.HeaderTraceID},
		MaxAge: cfg.MaxAge,
	}

	if c.MaxAge == 0 {
		c.MaxAge = 12 * time.Hour
	}

	if slices.Contains(cfg.AllowedOrigins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}

	return c
}
