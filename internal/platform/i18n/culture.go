// Package i18n resolves localized texts for the cultures the service supports.
//
// A Catalog is loaded once at startup and never mutated afterwards, so it can
// be shared by every request without locking. A Negotiator turns the language
// preferences of a request into exactly one supported Culture, and a Localizer
// resolves keys of one bundle for that culture.
package i18n

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Culture is a BCP 47 language tag drawn from the supported set, e.g. "en-US".
type Culture string

// Built-in cultures.
const (
	// EnglishUS is American English.
	EnglishUS Culture = "en-US"

	// FrenchBE is Belgian French.
	FrenchBE Culture = "fr-BE"

	// DefaultCulture is used when no requested culture is supported.
	DefaultCulture = EnglishUS
)

// String implements fmt.Stringer.
func (c Culture) String() string {
	return string(c)
}

// ErrInvalidCulture is returned when a culture is not a valid language tag.
var ErrInvalidCulture = errors.New("invalid culture")

// ParseCulture canonicalizes a language tag such as "fr-be" into "fr-BE".
func ParseCulture(s string) (Culture, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidCulture, s, err)
	}

	return Culture(tag.String()), nil
}

// Negotiator maps requested language preferences onto the supported cultures.
// It is immutable and safe for concurrent use.
type Negotiator struct {
	cultures []Culture
}

// NewNegotiator creates a negotiator for the supported cultures.
// The default culture is always supported, even when it is missing from
// supported. Duplicates are ignored.
func NewNegotiator(defaultCulture Culture, supported ...Culture) (*Negotiator, error) {
	def, err := ParseCulture(string(defaultCulture))
	if err != nil {
		return nil, err
	}

	cultures := []Culture{def}

	for _, s := range supported {
		culture, err := ParseCulture(string(s))
		if err != nil {
			return nil, err
		}

		if slices.Contains(cultures, culture) {
			continue
		}

		cultures = append(cultures, culture)
	}

	return &Negotiator{cultures: cultures}, nil
}

// MustNewNegotiator is like NewNegotiator but panics on error.
// Intended for tests and package-level defaults.
func MustNewNegotiator(defaultCulture Culture, supported ...Culture) *Negotiator {
	n, err := NewNegotiator(defaultCulture, supported...)
	if err != nil {
		panic(err)
	}

	return n
}

// Default returns the default culture.
func (n *Negotiator) Default() Culture {
	return n.cultures[0]
}

// Cultures returns the supported cultures, default first.
func (n *Negotiator) Cultures() []Culture {
	return slices.Clone(n.cultures)
}

// Supports reports whether culture is one of the supported cultures.
func (n *Negotiator) Supports(culture Culture) bool {
	return slices.Contains(n.cultures, culture)
}

// Negotiate returns the culture for a request.
//
// Each preference is either a single tag ("fr-BE") or a full Accept-Language
// value ("fr-BE;q=0.9, en;q=0.5"). Preferences are tried in order, and the
// tags of one preference by decreasing quality. A tag selects a culture when
// the tag itself or one of its parents ("fr-BE-x-brussels" → "fr-BE") is
// supported. Same-language cultures do not match: "fr-FR" and "fr" do not
// select "fr-BE". Empty, malformed and unsupported preferences are skipped.
// The default culture is returned when nothing matches, so the result is
// always supported.
func (n *Negotiator) Negotiate(preferences ...string) Culture {
	for _, pref := range preferences {
		if pref == "" {
			continue
		}

		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil {
			continue
		}

		for _, tag := range tags {
			if culture, ok := n.lookup(tag); ok {
				return culture
			}
		}
	}

	return n.Default()
}

// lookup returns the supported culture equal to tag or to its closest parent.
// Parents drop the last subtag: "fr-BE-x-brussels", "fr-BE-x", "fr-BE", "fr".
func (n *Negotiator) lookup(tag language.Tag) (Culture, bool) {
	candidate := tag.String()

	for {
		if n.Supports(Culture(candidate)) {
			return Culture(candidate), true
		}

		i := strings.LastIndexByte(candidate, '-')
		if i <= 0 {
			return "", false
		}

		candidate = candidate[:i]
	}
}

type cultureCtxKey struct{}

// ContextWithCulture stores the active culture in the context.
func ContextWithCulture(ctx context.Context, culture Culture) context.Context {
	return context.WithValue(ctx, cultureCtxKey{}, culture)
}

// CultureFromContext returns the active culture stored in ctx.
// Returns an empty culture if none is set or ctx is nil.
func CultureFromContext(ctx context.Context) Culture {
	if ctx == nil {
		return ""
	}

	if culture, ok := ctx.Value(cultureCtxKey{}).(Culture); ok {
		return culture
	}

	return ""
}
