package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	// dsnCredentialsPattern matches connection URLs carrying a password,
	// e.g. postgres://app:s3cret@db:5432/weather.
	dsnCredentialsPattern = regexp.MustCompile(`^[a-z][a-z0-9+.-]*://[^:/@\s]+:[^@\s]+@`)

	// bearerPattern matches Authorization header values.
	bearerPattern = regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`)
)

// DefaultRedactOptions returns the masq options used by every handler.
//
// Extend it for additional secrets:
//
//	opts := append(logging.DefaultRedactOptions(), masq.WithFieldName("pin"))
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("dsn"),
		masq.WithFieldName("token"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("cookie"),
		masq.WithFieldName("api_key"),
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
		masq.WithRegex(dsnCredentialsPattern),
		masq.WithRegex(bearerPattern),
	}
}

// NewReplaceAttr creates a slog ReplaceAttr function that redacts
// sensitive values. opts extend DefaultRedactOptions.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
