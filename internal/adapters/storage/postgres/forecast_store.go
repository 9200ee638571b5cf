// Package postgres reads forecasts from PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jsamuelsen/localized-problems/internal/domain"
)

// ErrInvalidDSN is returned when the connection string cannot be parsed.
var ErrInvalidDSN = errors.New("invalid forecast DSN")

const upcomingSQL = `
SELECT date, temperature_c, summary
FROM forecasts
WHERE date > CURRENT_DATE
ORDER BY date
LIMIT $1`

// forecastRow mirrors one row of the forecasts table.
type forecastRow struct {
	Date         time.Time `db:"date"`
	TemperatureC int       `db:"temperature_c"`
	Summary      string    `db:"summary"`
}

// ForecastStore implements ports.ForecastStore. Every read opens its own
// connection and closes it before returning.
type ForecastStore struct {
	connConfig *pgx.ConnConfig
}

// NewForecastStore parses dsn and applies connectTimeout to every connection
// attempt. No connection is opened.
func NewForecastStore(dsn string, connectTimeout time.Duration) (*ForecastStore, error) {
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDSN, err)
	}

	connConfig.ConnectTimeout = connectTimeout

	return &ForecastStore{connConfig: connConfig}, nil
}

// Upcoming implements ports.ForecastStore.
func (s *ForecastStore) Upcoming(ctx context.Context, days int) ([]domain.Forecast, error) {
	conn, err := pgx.ConnectConfig(ctx, s.connConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to forecast database: %w", err)
	}
	defer conn.Close(context.WithoutCancel(ctx))

	rows, err := conn.Query(ctx, upcomingSQL, days)
	if err != nil {
		return nil, fmt.Errorf("query upcoming forecasts: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[forecastRow])
	if err != nil {
		return nil, fmt.Errorf("scan upcoming forecasts: %w", err)
	}

	forecasts := make([]domain.Forecast, 0, len(records))
	for _, r := range records {
		forecasts = append(forecasts, domain.Forecast{
			Date:         r.Date,
			TemperatureC: r.TemperatureC,
			Summary:      r.Summary,
		})
	}

	return forecasts, nil
}
