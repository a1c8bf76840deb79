package handler

import (
	"net/http"
	"strconv"

	"statutory-engine/internal/middleware"
	"statutory-engine/internal/service"
	"statutory-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

type CountryHandler struct {
	countryService service.CountryService
	auth           *middleware.Authenticator
}

func NewCountryHandler(countryService service.CountryService, auth *middleware.Authenticator) *CountryHandler {
	return &CountryHandler{countryService: countryService, auth: auth}
}

func (h *CountryHandler) RegisterRoutes(router *gin.RouterGroup) {
	countries := router.Group("/api/countries")
	countries.Use(h.auth.RequireRole(middleware.ReadRoles...))
	{
		countries.GET("", h.ListCountries)
		countries.GET("/:countryId", h.GetCountry)
		countries.GET("/:countryId/region-configurations", h.ListRegionConfigurations)
	}
}

// ListCountries returns the country directory
// @Summary      List countries
// @Tags         countries
// @Security     BearerAuth
// @Produce      json
// @Param        active_only  query  bool  false  "Only active countries (default: true)"
// @Success      200  {object}  response.Response{data=[]service.CountryResponse}
// @Router       /api/countries [get]
func (h *CountryHandler) ListCountries(c *gin.Context) {
	activeOnly, err := strconv.ParseBool(c.DefaultQuery("active_only", "true"))
	if err != nil {
		badRequest(c, CodeInvalidRequest, "active_only must be true or false")
		return
	}

	countries, err := h.countryService.ListCountries(c.Request.Context(), activeOnly)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, countries))
}

// GetCountry returns one country
// @Summary      Get country
// @Tags         countries
// @Security     BearerAuth
// @Produce      json
// @Param        countryId  path  string  true  "Country ID"
// @Success      200  {object}  response.Response{data=service.CountryResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/countries/{countryId} [get]
func (h *CountryHandler) GetCountry(c *gin.Context) {
	countryID, ok := parseUUIDParam(c, "countryId")
	if !ok {
		return
	}

	country, err := h.countryService.GetCountry(c.Request.Context(), countryID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, country))
}

// ListRegionConfigurations returns the country's region configuration entries
// @Summary      List region configurations
// @Tags         countries
// @Security     BearerAuth
// @Produce      json
// @Param        countryId  path  string  true  "Country ID"
// @Success      200  {object}  response.Response{data=[]service.RegionConfigurationResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/countries/{countryId}/region-configurations [get]
func (h *CountryHandler) ListRegionConfigurations(c *gin.Context) {
	countryID, ok := parseUUIDParam(c, "countryId")
	if !ok {
		return
	}

	configs, err := h.countryService.ListRegionConfigurations(c.Request.Context(), countryID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, configs))
}
