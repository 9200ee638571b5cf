package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/localized-problems/internal/adapters/http/dto"
	"github.com/jsamuelsen/localized-problems/internal/platform/i18n"
	"github.com/jsamuelsen/localized-problems/internal/platform/logging"
)

const (
	// QueryUICulture and QueryCulture select the culture explicitly. They take
	// precedence over Accept-Language.
	QueryUICulture = "ui-culture"
	QueryCulture   = "culture"

	// HeaderAcceptLanguage is the request header carrying language preferences.
	HeaderAcceptLanguage = "Accept-Language"

	// HeaderContentLanguage echoes the negotiated culture.
	HeaderContentLanguage = "Content-Language"

	// ContextKeyCulture is the gin context key of the negotiated culture.
	ContextKeyCulture = "culture"
)

// Translations groups the resolvers of the catalog bundles used while
// writing problem responses.
type Translations struct {
	// Business resolves error codes to titles.
	Business dto.MessageResolver

	// Validation resolves rule keys to field messages.
	Validation dto.MessageResolver

	// Problems resolves the titles of generic problem responses.
	Problems dto.MessageResolver
}

// NewTranslations returns resolvers over the business, validation and
// problems bundles of catalog.
func NewTranslations(catalog *i18n.Catalog, opts ...i18n.LocalizerOption) Translations {
	return Translations{
		Business:   catalog.Localizer(i18n.BundleBusiness, opts...),
		Validation: catalog.Localizer(i18n.BundleValidation, opts...),
		Problems:   catalog.Localizer(i18n.BundleProblems, opts...),
	}
}

// Title keys of the problems bundle.
const (
	TitleValidation       = "Validation"
	TitleNotFound         = "NotFound"
	TitleMethodNotAllowed = "MethodNotAllowed"
)

// LocalizationConfig configures culture negotiation.
type LocalizationConfig struct {
	// Negotiator picks the culture among the supported ones. Defaults to a
	// negotiator supporting only i18n.DefaultCulture.
	Negotiator *i18n.Negotiator

	// ApplyToResponseHeaders adds a Content-Language header to every response.
	ApplyToResponseHeaders bool
}

// Localization returns middleware that negotiates the culture of the request
// once and stores it in the gin context, the request context and the context
// logger. Negotiation never fails: unusable preferences fall back to the
// default culture.
func Localization(cfg LocalizationConfig) gin.HandlerFunc {
	negotiator := cfg.Negotiator
	if negotiator == nil {
		negotiator = i18n.MustNewNegotiator(i18n.DefaultCulture)
	}

	return func(c *gin.Context) {
		culture := negotiator.Negotiate(
			c.Query(QueryUICulture),
			c.Query(QueryCulture),
			c.GetHeader(HeaderAcceptLanguage),
		)

		c.Set(ContextKeyCulture, culture)

		ctx := i18n.ContextWithCulture(c.Request.Context(), culture)
		ctx = logging.WithCulture(ctx, culture.String())
		c.Request = c.Request.WithContext(ctx)

		trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.culture", culture.String()))

		if cfg.ApplyToResponseHeaders {
			c.Header(HeaderContentLanguage, culture.String())
		}

		c.Next()
	}
}

// CultureOf returns the culture negotiated for the request, or
// i18n.DefaultCulture when Localization did not run.
func CultureOf(c *gin.Context) i18n.Culture {
	if v, ok := c.Get(ContextKeyCulture); ok {
		if culture, ok := v.(i18n.Culture); ok {
			return culture
		}
	}

	if c.Request != nil {
		if culture := i18n.CultureFromContext(c.Request.Context()); culture != "" {
			return culture
		}
	}

	return i18n.DefaultCulture
}

// resolveOr resolves key with resolver, returning fallback when the resolver
// is nil or has no text.
func resolveOr(resolver dto.MessageResolver, culture i18n.Culture, key, fallback string) string {
	if resolver == nil {
		return fallback
	}

	if text, ok := resolver.Resolve(culture, key); ok {
		return text
	}

	return fallback
}

// StatusProblem returns a handler that writes a localized problem for status.
// titleKey selects the title in the problems bundle; the HTTP status text is
// used when it has no translation.
func StatusProblem(tr Translations, status int, titleKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		title := resolveOr(tr.Problems, CultureOf(c), titleKey, "")
		problemResponses.WithLabelValues(kindStatus, "").Inc()
		dto.AbortWithProblem(c, dto.StatusProblem(status, title))
	}
}
