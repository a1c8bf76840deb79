package handler

import (
	"net/http"
	"time"

	"statutory-engine/internal/middleware"
	"statutory-engine/internal/model"
	"statutory-engine/internal/service"
	"statutory-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
	auth              *middleware.Authenticator
}

func NewStatisticsHandler(statisticsService service.StatisticsService, auth *middleware.Authenticator) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService, auth: auth}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	statsGroup := router.Group("/api/countries/:countryId/statistics")
	{
		statsGroup.GET("", h.auth.RequireRole(middleware.ReadRoles...), h.GetStatistics)
	}
}

// @Summary      Get component statistics
// @Description  Counts a country's statutory components per type and those in force on a date
// @Tags         statistics
// @Produce      json
// @Param        countryId  path   string  true   "Country ID"
// @Param        date       query  string  false  "Reference date (YYYY-MM-DD, default today)"
// @Success      200 {object} response.Response{data=model.ComponentStatistics}
// @Failure      400 {object} response.Response "Invalid date format"
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/countries/{countryId}/statistics [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	countryID, ok := parseUUIDParam(c, "countryId")
	if !ok {
		return
	}

	// Default to today if no date is provided
	asOf := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			badRequest(c, CodeInvalidDate, "invalid date format, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	stats, err := h.statisticsService.GetComponentStatistics(c.Request.Context(), countryID, asOf)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
