package domain

import "time"

// fahrenheitScale and fahrenheitOffset convert Celsius to Fahrenheit.
const (
	fahrenheitScale  = 1.8
	fahrenheitOffset = 32
)

// Forecast is the weather forecast for a single day.
type Forecast struct {
	Date         time.Time
	TemperatureC int
	Summary      string
}

// TemperatureF returns the temperature in degrees Fahrenheit, truncated toward zero.
func (f Forecast) TemperatureF() int {
	return fahrenheitOffset + int(float64(f.TemperatureC)*fahrenheitScale)
}
