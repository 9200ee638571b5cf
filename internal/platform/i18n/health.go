package i18n

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrIncompleteCatalog is returned by CompletenessCheck when keys are missing.
var ErrIncompleteCatalog = errors.New("incomplete catalog")

// CompletenessCheck is a health check verifying that every required key of a
// bundle has a translation in every supported culture.
type CompletenessCheck struct {
	catalog  *Catalog
	bundle   string
	keys     []string
	cultures []Culture
}

// NewCompletenessCheck creates a completeness check.
func NewCompletenessCheck(catalog *Catalog, bundle string, cultures []Culture, keys ...string) *CompletenessCheck {
	return &CompletenessCheck{
		catalog:  catalog,
		bundle:   bundle,
		keys:     keys,
		cultures: cultures,
	}
}

// Name implements ports.HealthChecker.
func (c *CompletenessCheck) Name() string {
	return "i18n-catalog-" + c.bundle
}

// Check implements ports.HealthChecker.
func (c *CompletenessCheck) Check(_ context.Context) error {
	var problems []string

	for _, culture := range c.cultures {
		if missing := c.catalog.Missing(culture, c.bundle, c.keys...); len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("%s: %s", culture, strings.Join(missing, ", ")))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrIncompleteCatalog, strings.Join(problems, "; "))
	}

	return nil
}
