// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/localized-problems/internal/domain"
	"github.com/jsamuelsen/localized-problems/internal/ports"
)

// CityService enforces the business rules on managed cities.
type CityService struct {
	directory ports.CityDirectory
	logger    *slog.Logger
}

// CityServiceConfig contains configuration for the city service.
type CityServiceConfig struct {
	Directory ports.CityDirectory
	Logger    *slog.Logger
}

// NewCityService creates a city service. It panics without a directory.
func NewCityService(cfg CityServiceConfig) *CityService {
	if cfg.Directory == nil {
		panic("app: city directory is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CityService{
		directory: cfg.Directory,
		logger:    logger,
	}
}

// Create accepts a new city. A city whose name is already registered is
// rejected with domain.CodeDuplicateCity.
func (s *CityService) Create(ctx context.Context, city domain.City) (domain.City, error) {
	exists, err := s.directory.Exists(ctx, city.Name)
	if err != nil {
		return domain.City{}, fmt.Errorf("looking up city: %w", err)
	}

	if exists {
		s.logger.InfoContext(ctx, "city already registered", slog.String("city", city.Name))
		return domain.City{}, domain.NewError(domain.CodeDuplicateCity)
	}

	s.logger.InfoContext(ctx, "city accepted",
		slog.String("city", city.Name),
		slog.String("country_code", city.CountryCode),
	)

	return city, nil
}

// Delete schedules the removal of a city. Protected cities are rejected
// with domain.CodePersistentCity.
func (s *CityService) Delete(ctx context.Context, city domain.City) error {
	protected, err := s.directory.Protected(ctx, city.Name)
	if err != nil {
		return fmt.Errorf("checking city protection: %w", err)
	}

	if protected {
		s.logger.InfoContext(ctx, "refusing to delete protected city", slog.String("city", city.Name))
		return domain.NewError(domain.CodePersistentCity)
	}

	s.logger.InfoContext(ctx, "city deletion accepted", slog.String("city", city.Name))

	return nil
}
