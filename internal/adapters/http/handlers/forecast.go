package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/localized-problems/internal/app"
	"github.com/jsamuelsen/localized-problems/internal/domain"
)

// dateLayout is the wire format of forecast dates.
const dateLayout = "2006-01-02"

// ForecastHandler handles the forecast endpoint.
type ForecastHandler struct {
	service *app.ForecastService
}

// NewForecastHandler creates a forecast handler.
func NewForecastHandler(service *app.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

// ForecastResponse is the HTTP response structure for one day.
type ForecastResponse struct {
	Date         string `json:"date"`
	TemperatureC int    `json:"temperatureC"`
	TemperatureF int    `json:"temperatureF"`
	Summary      string `json:"summary,omitempty"`
}

func toForecastResponses(forecasts []domain.Forecast) []ForecastResponse {
	resp := make([]ForecastResponse, 0, len(forecasts))
	for _, f := range forecasts {
		resp = append(resp, ForecastResponse{
			Date:         f.Date.Format(dateLayout),
			TemperatureC: f.TemperatureC,
			TemperatureF: f.TemperatureF(),
			Summary:      f.Summary,
		})
	}

	return resp
}

// Get handles GET. Store failures are left to the fault boundary.
func (h *ForecastHandler) Get(c *gin.Context) {
	forecasts, err := h.service.Upcoming(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, toForecastResponses(forecasts))
}
