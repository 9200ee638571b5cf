package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/localized-problems/internal/domain"
	"github.com/jsamuelsen/localized-problems/internal/ports"
)

// DefaultForecastDays is the number of days returned by Upcoming.
const DefaultForecastDays = 5

// ForecastService serves weather forecasts.
type ForecastService struct {
	store  ports.ForecastStore
	days   int
	logger *slog.Logger
}

// ForecastServiceConfig contains configuration for the forecast service.
type ForecastServiceConfig struct {
	Store ports.ForecastStore

	// Days defaults to DefaultForecastDays.
	Days   int
	Logger *slog.Logger
}

// NewForecastService creates a forecast service. It panics without a store.
func NewForecastService(cfg ForecastServiceConfig) *ForecastService {
	if cfg.Store == nil {
		panic("app: forecast store is required")
	}

	days := cfg.Days
	if days <= 0 {
		days = DefaultForecastDays
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ForecastService{
		store:  cfg.Store,
		days:   days,
		logger: logger,
	}
}

// Upcoming returns the forecasts of the next days. Store failures are
// technical errors and are never turned into business errors.
func (s *ForecastService) Upcoming(ctx context.Context) ([]domain.Forecast, error) {
	forecasts, err := s.store.Upcoming(ctx, s.days)
	if err != nil {
		return nil, fmt.Errorf("reading forecasts: %w", err)
	}

	s.logger.DebugContext(ctx, "forecasts loaded", slog.Int("count", len(forecasts)))

	return forecasts, nil
}
