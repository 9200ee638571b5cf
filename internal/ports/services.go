// Package ports defines the interfaces the application layer depends on.
// Adapters implement them; context is always the first parameter and
// methods return domain types.
package ports

import (
	"context"

	"github.com/jsamuelsen/localized-problems/internal/domain"
)

// ForecastStore reads weather forecasts.
type ForecastStore interface {
	// Upcoming returns the forecasts of the next days, starting tomorrow.
	// Connection and query failures are returned as technical errors.
	Upcoming(ctx context.Context, days int) ([]domain.Forecast, error)
}

// CityDirectory knows the cities the service already manages.
type CityDirectory interface {
	// Exists reports whether a city with the same name is registered.
	Exists(ctx context.Context, name string) (bool, error)

	// Protected reports whether the city must never be deleted.
	Protected(ctx context.Context, name string) (bool, error)
}
