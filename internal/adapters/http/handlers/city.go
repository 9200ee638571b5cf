package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/localized-problems/internal/adapters/http/dto"
	"github.com/jsamuelsen/localized-problems/internal/adapters/http/middleware"
	"github.com/jsamuelsen/localized-problems/internal/app"
	"github.com/jsamuelsen/localized-problems/internal/domain"
)

// Rule keys of the validation bundle used by the city schema.
const (
	RuleMandatoryField     = "MandatoryField"
	RuleFieldNotLongEnough = "FieldNotLongEnough"
	RuleFieldTooLong       = "FieldTooLong"
)

// Length limits of city fields.
const (
	CityNameMinLength    = 2
	CityNameMaxLength    = 255
	CountryCodeMinLength = 2
	CountryCodeMaxLength = 3
)

// errPayloadMissing is reported when a route runs without its Bind middleware.
var errPayloadMissing = errors.New("city payload not bound")

// CityRequest is the HTTP request body of the city endpoints.
type CityRequest struct {
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

// CitySchema declares the constraints on CityRequest. Errors are reported
// under the Name and CountryCode keys.
var CitySchema = dto.NewSchema(
	dto.NewField("Name", func(r *CityRequest) any { return r.Name },
		dto.Required(RuleMandatoryField),
		dto.MinLength(CityNameMinLength, RuleFieldNotLongEnough),
		dto.MaxLength(CityNameMaxLength, RuleFieldTooLong),
	),
	dto.NewField("CountryCode", func(r *CityRequest) any { return r.CountryCode },
		dto.Required(RuleMandatoryField),
		dto.MinLength(CountryCodeMinLength, RuleFieldNotLongEnough),
		dto.MaxLength(CountryCodeMaxLength, RuleFieldTooLong),
	),
)

// CityResponse is the HTTP response structure for a city.
type CityResponse struct {
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

func (r *CityRequest) toDomain() domain.City {
	return domain.City{Name: r.Name, CountryCode: r.CountryCode}
}

func toCityResponse(c domain.City) CityResponse {
	return CityResponse{Name: c.Name, CountryCode: c.CountryCode}
}

// CityHandler handles the city endpoints.
type CityHandler struct {
	service  *app.CityService
	bind     gin.HandlerFunc
	notFound gin.HandlerFunc
}

// NewCityHandler creates a city handler. tr localizes validation and
// not-found problems.
func NewCityHandler(service *app.CityService, tr middleware.Translations) *CityHandler {
	return &CityHandler{
		service:  service,
		bind:     middleware.Bind(CitySchema, tr),
		notFound: middleware.StatusProblem(tr, http.StatusNotFound, middleware.TitleNotFound),
	}
}

// Create handles POST. It answers 201 with the city, or reports
// domain.CodeDuplicateCity through the context errors.
func (h *CityHandler) Create(c *gin.Context) {
	req, ok := middleware.Payload[CityRequest](c)
	if !ok {
		_ = c.Error(errPayloadMissing)
		return
	}

	city, err := h.service.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, toCityResponse(city))
}

// Update handles PUT. Cities are immutable, so it always answers 404.
func (h *CityHandler) Update(c *gin.Context) {
	h.notFound(c)
}

// Delete handles DELETE. It answers 202, or reports domain.CodePersistentCity
// through the context errors.
func (h *CityHandler) Delete(c *gin.Context) {
	req, ok := middleware.Payload[CityRequest](c)
	if !ok {
		_ = c.Error(errPayloadMissing)
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.toDomain()); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusAccepted)
}

// RegisterRoutes registers the city endpoints on rg:
//   - POST   - validate then create
//   - PUT    - always 404
//   - DELETE - validate then delete
func (h *CityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.bind, h.Create)
	rg.PUT("", h.Update)
	rg.DELETE("", h.bind, h.Delete)
}
