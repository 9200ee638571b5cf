package i18n

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// missingTranslations counts lookups that found no text.
var missingTranslations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "i18n",
		Name:      "missing_translations_total",
		Help:      "Number of lookups that found no translation, by culture and bundle.",
	},
	[]string{"culture", "bundle"},
)

// Localizer resolves the keys of one bundle against a Catalog.
// It is safe for concurrent use.
type Localizer struct {
	catalog  *Catalog
	bundle   string
	fallback Culture
	logger   *slog.Logger
}

// LocalizerOption configures a Localizer.
type LocalizerOption func(*Localizer)

// WithLogger sets the logger used to report missing translations.
func WithLogger(logger *slog.Logger) LocalizerOption {
	return func(l *Localizer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithFallbackCulture sets the culture used when Resolve is called with an
// empty or unknown culture. Defaults to DefaultCulture.
func WithFallbackCulture(culture Culture) LocalizerOption {
	return func(l *Localizer) {
		if culture != "" {
			l.fallback = culture
		}
	}
}

// NewLocalizer creates a localizer for bundle.
func NewLocalizer(catalog *Catalog, bundle string, opts ...LocalizerOption) *Localizer {
	l := &Localizer{
		catalog:  catalog,
		bundle:   bundle,
		fallback: DefaultCulture,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Resolve returns the localized text for key. An empty culture, or one the
// catalog does not know, is replaced by the fallback culture.
//
// When no text exists, Resolve returns the key itself with found=false and
// logs a warning for operators. A missing translation never fails a request.
func (l *Localizer) Resolve(culture Culture, key string) (string, bool) {
	if culture == "" || (l.catalog != nil && !l.catalog.has(culture)) {
		culture = l.fallback
	}

	if l.catalog != nil {
		if text, ok := l.catalog.Lookup(culture, l.bundle+"."+key); ok && text != "" {
			return text, true
		}
	}

	missingTranslations.WithLabelValues(string(culture), l.bundle).Inc()
	l.logger.Warn("translation not found",
		slog.String("bundle", l.bundle),
		slog.String("culture", string(culture)),
		slog.String("key", key),
	)

	return key, false
}
