package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/localized-problems/internal/domain"
	"github.com/jsamuelsen/localized-problems/internal/mocks"
)

func TestNewForecastService_PanicsWithoutStore(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewForecastService(ForecastServiceConfig{})
	})
}

func TestForecastService_Upcoming(t *testing.T) {
	t.Parallel()

	tomorrow := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	forecasts := []domain.Forecast{{Date: tomorrow, TemperatureC: 12, Summary: "Cool"}}

	t.Run("returns the store forecasts", func(t *testing.T) {
		t.Parallel()

		store := mocks.NewMockForecastStore(t)
		store.EXPECT().Upcoming(mock.Anything, DefaultForecastDays).Return(forecasts, nil)

		svc := NewForecastService(ForecastServiceConfig{Store: store, Logger: discardLogger()})

		got, err := svc.Upcoming(context.Background())

		require.NoError(t, err)
		assert.Equal(t, forecasts, got)
	})

	t.Run("honours configured days", func(t *testing.T) {
		t.Parallel()

		store := mocks.NewMockForecastStore(t)
		store.EXPECT().Upcoming(mock.Anything, 3).Return(nil, nil)

		svc := NewForecastService(ForecastServiceConfig{Store: store, Days: 3})

		_, err := svc.Upcoming(context.Background())

		require.NoError(t, err)
	})

	t.Run("store failure is wrapped and technical", func(t *testing.T) {
		t.Parallel()

		storeErr := errors.New("dial tcp 127.0.0.1:1: connect: connection refused")

		store := mocks.NewMockForecastStore(t)
		store.EXPECT().Upcoming(mock.Anything, DefaultForecastDays).Return(nil, storeErr)

		svc := NewForecastService(ForecastServiceConfig{Store: store, Logger: discardLogger()})

		got, err := svc.Upcoming(context.Background())

		require.ErrorIs(t, err, storeErr)
		assert.Contains(t, err.Error(), "reading forecasts")
		assert.False(t, domain.IsBusinessRule(err))
		assert.Nil(t, got)
	})
}
