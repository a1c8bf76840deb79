package handler

import (
	"net/http"

	"statutory-engine/internal/middleware"
	"statutory-engine/internal/service"
	"statutory-engine/pkg/pagination"
	"statutory-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuditHandler struct {
	auditService service.AuditService
	auth         *middleware.Authenticator
}

func NewAuditHandler(auditService service.AuditService, auth *middleware.Authenticator) *AuditHandler {
	return &AuditHandler{auditService: auditService, auth: auth}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/audit-logs")
	group.Use(h.auth.RequireRole(middleware.RoleAdmin, middleware.RoleAuditor)) // Protect history logs
	{
		group.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs returns the statutory component change history, newest first
// @Summary      Get audit logs
// @Description  Lists recorded component writes, optionally narrowed to a country or a component
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        page_size   query     int     false  "Number of items per page (default 20)"
// @Param        country_id  query     string  false  "Country ID"
// @Param        entity_id   query     string  false  "Component ID"
// @Success      200    {object}  response.Response{data=[]service.AuditLogResponse}
// @Router       /api/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	params := pagination.Parse(c)
	filter := service.AuditLogFilter{
		EntityID: c.Query("entity_id"),
		Page:     params.Page,
		PageSize: params.PageSize,
	}
	if raw := c.Query("country_id"); raw != "" {
		countryID, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, CodeInvalidID, "Invalid country_id: must be a UUID")
			return
		}
		filter.CountryID = &countryID
	}

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, logs, params.Page, params.PageSize, total))
}
