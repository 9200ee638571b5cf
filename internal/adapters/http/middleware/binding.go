package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/localized-problems/internal/adapters/http/dto"
	"github.com/jsamuelsen/localized-problems/internal/platform/logging"
)

// ContextKeyPayload is the gin context key of the bound request payload.
const ContextKeyPayload = "payload"

// Bind returns route middleware that binds the JSON body to T and checks it
// against schema before the handler runs.
//
// Every violated rule is reported. On any violation, or when the body is not
// valid JSON, the request is aborted with a 400 problem whose errors map
// holds the localized messages per field. Otherwise the payload is available
// to the handler through Payload.
func Bind[T any](schema *dto.Schema[T], tr Translations) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload T

		err := dto.BindJSON(c, &payload)
		if err != nil {
			logging.FromContext(c.Request.Context()).Debug("request body rejected",
				slog.String("error", err.Error()),
			)

			abortValidation(c, tr, []dto.Violation{{
				Field:   dto.FieldBody,
				RuleKey: dto.RuleKeyInvalidBody,
				Tag:     "json",
			}})

			return
		}

		if violations := schema.Validate(&payload); len(violations) > 0 {
			abortValidation(c, tr, violations)
			return
		}

		c.Set(ContextKeyPayload, &payload)
		c.Next()
	}
}

// Payload returns the payload bound by Bind.
func Payload[T any](c *gin.Context) (*T, bool) {
	v, ok := c.Get(ContextKeyPayload)
	if !ok {
		return nil, false
	}

	payload, ok := v.(*T)

	return payload, ok
}

func abortValidation(c *gin.Context, tr Translations, violations []dto.Violation) {
	culture := CultureOf(c)

	title := resolveOr(tr.Problems, culture, TitleValidation, http.StatusText(http.StatusBadRequest))
	fieldErrors := dto.Localize(violations, tr.Validation, culture)

	logging.FromContext(c.Request.Context()).Info("request validation failed",
		slog.Int("violations", len(violations)),
	)

	problemResponses.WithLabelValues(kindValidation, "").Inc()
	dto.AbortWithProblem(c, dto.ValidationProblem(title, fieldErrors))
}
