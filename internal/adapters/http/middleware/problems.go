package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jsamuelsen/localized-problems/internal/adapters/http/dto"
	"github.com/jsamuelsen/localized-problems/internal/domain"
	"github.com/jsamuelsen/localized-problems/internal/platform/logging"
)

// Problem kinds reported by http_problem_responses_total.
const (
	kindBusiness   = "business"
	kindValidation = "validation"
	kindFault      = "fault"
	kindStatus     = "status"
)

var problemResponses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "http",
		Name:      "problem_responses_total",
		Help:      "Problem responses written, by kind and business error code.",
	},
	[]string{"kind", "code"},
)

// ProblemsConfig configures the business problem interceptor.
type ProblemsConfig struct {
	// Translations supplies the business bundle used for titles.
	Translations Translations

	// BusinessTypeBase prefixes the "#<code>" fragment of the type URI.
	// Defaults to dto.DefaultBusinessTypeBase.
	BusinessTypeBase string
}

// Problems returns middleware that turns the outcome of the route handlers
// into problem responses.
//
// Handlers report failures with c.Error. After the handler chain returns,
// the last error carrying a domain.Error is rewritten into a localized 400
// problem whose title is the code's translation in the request culture, and
// every business error is removed from c.Errors. Technical errors stay in
// c.Errors for tracing and produce the generic 500, as do panics raised by the
// route handlers.
//
// Problems must be the innermost global middleware so that it observes the
// outcome of the route handlers before request logging and metrics.
func Problems(cfg ProblemsConfig) gin.HandlerFunc {
	base := cfg.BusinessTypeBase
	if base == "" {
		base = dto.DefaultBusinessTypeBase
	}

	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				recoverFault(c, r)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		if code, found := lastBusinessCode(c); found {
			writeBusinessProblem(c, cfg.Translations, base, code)
		}

		if technical := technicalErrors(c.Errors); len(technical) > 0 {
			failRequest(c, technical)
		}
	}
}

// writeBusinessProblem removes business errors from c.Errors and writes the
// localized problem for code.
func writeBusinessProblem(c *gin.Context, tr Translations, base string, code domain.ErrorCode) {
	c.Errors = technicalErrors(c.Errors)

	logger := logging.FromContext(c.Request.Context())

	if c.Writer.Written() {
		logger.Warn("business rule violated after response was written",
			slog.String("code", code.String()),
		)

		return
	}

	if !code.Valid() {
		logger.Warn("unregistered business error code", slog.String("code", code.String()))
	}

	title := resolveOr(tr.Business, CultureOf(c), code.String(), code.String())

	logger.Info("business rule violated",
		slog.String("code", code.String()),
		slog.String("path", c.Request.URL.Path),
	)

	problemResponses.WithLabelValues(kindBusiness, code.String()).Inc()
	dto.AbortWithProblem(c, dto.BusinessProblem(base, code, title))
}

// technicalErrors returns the errors that are not business rule violations.
func technicalErrors(errs []*gin.Error) []*gin.Error {
	technical := make([]*gin.Error, 0, len(errs))
	for _, e := range errs {
		if !domain.IsBusinessRule(e.Err) {
			technical = append(technical, e)
		}
	}

	return technical
}

// lastBusinessCode returns the code of the most recent business error.
func lastBusinessCode(c *gin.Context) (domain.ErrorCode, bool) {
	for i := len(c.Errors) - 1; i >= 0; i-- {
		if code, ok := domain.CodeOf(c.Errors[i].Err); ok {
			return code, true
		}
	}

	return "", false
}
