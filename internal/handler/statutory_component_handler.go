package handler

import (
	"net/http"
	"strconv"

	"statutory-engine/internal/middleware"
	"statutory-engine/internal/model"
	"statutory-engine/internal/service"
	"statutory-engine/pkg/pagination"
	"statutory-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatutoryComponentHandler struct {
	componentService service.StatutoryComponentService
	auth             *middleware.Authenticator
}

func NewStatutoryComponentHandler(componentService service.StatutoryComponentService, auth *middleware.Authenticator) *StatutoryComponentHandler {
	SetupValidator()
	return &StatutoryComponentHandler{componentService: componentService, auth: auth}
}

func (h *StatutoryComponentHandler) RegisterRoutes(router *gin.RouterGroup) {
	read := h.auth.RequireRole(middleware.ReadRoles...)
	write := h.auth.RequireRole(middleware.WriteRoles...)

	components := router.Group("/api/countries/:countryId/statutory-components")
	{
		components.GET("", read, h.ListComponents)
		components.POST("", write, h.CreateComponent)
		components.GET("/active", read, h.ListActiveComponents)
		components.GET("/types/:componentType", read, h.ListComponentsByType)
		components.GET("/:id", read, h.GetComponent)
		components.PATCH("/:id", write, h.UpdateComponent)
		components.DELETE("/:id", write, h.DeleteComponent)
		components.POST("/:id/supersede", write, h.SupersedeComponent)
	}
}

// CreateComponent defines a new statutory component for a country
// @Summary      Create statutory component
// @Tags         statutory-components
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        countryId  path  string                                   true  "Country ID"
// @Param        payload    body  service.CreateStatutoryComponentRequest  true  "Component payload"
// @Success      201  {object}  response.Response{data=service.StatutoryComponentResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/countries/{countryId}/statutory-components [post]
func (h *StatutoryComponentHandler) CreateComponent(c *gin.Context) {
	countryID, ok := parseUUIDParam(c, "countryId")
	if !ok {
		return
	}

	var req service.CreateStatutoryComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, CodeInvalidRequest, validationMessage(err))
		return
	}

	component, err := h.componentService.Create(c.Request.Context(), countryID, req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, component))
}

// ListComponents returns a page of a country's components
// @Summary      List statutory components
// @Tags         statutory-components
// @Security     BearerAuth
// @Produce      json
// @Param        countryId       path   string  true   "Country ID"
// @Param        page            query  int     false  "Page number (default: 1)"
// @Param        page_size       query  int     false  "Items per page (default: 20, max: 100)"
// @Param        component_type  query  string  false  "Filter by component type"
// @Param        is_active       query  bool    false  "Filter by active flag"
// @Success      200  {object}  response.Response{data=[]service.StatutoryComponentResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/countries/{countryId}/statutory-components [get]
func (h *StatutoryComponentHandler) ListComponents(c *gin.Context) {
	countryID, ok := parseUUIDParam(c, "countryId")
	if !ok {
		return
	}

	params := pagination.Parse(c)
	filter := service.ListStatutoryComponentsFilter{
		Page:          params.Page,
		PageSize:      params.PageSize,
		ComponentType: c.Query("component_type"),
	}
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, CodeInvalidRequest, "is_active must be true or false")
			return
		}
		filter.IsActive = &active
	}

	page, err := h.componentService.List(c.Request.Context(), countryID, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, page.Items, page.Page, page.PageSize, page.Total))
}

// ListActiveComponents resolves the components in force on a date
// @Summary      Resolve components effective on a date
// @Tags         statutory-components
// @Security     BearerAuth
// @Produce      json
// @Param        countryId  path   string  true  "Country ID"
// @Param        date       query  string  true  "Resolution date (YYYY-MM-DD)"
// @Success      200  {object}  response.Response{data=[]service.StatutoryComponentResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/countries/{countryId}/statutory-components/active [get]
func (h *StatutoryComponentHandler) ListActiveComponents(c *gin.Context) {
	countryID, ok := parseUUIDParam(c, "countryId")
	if !ok {
		return
	}

	date, err := model.ParseDate(c.Query("date"))
	if err != nil {
		badRequest(c, CodeInvalidDate, "date query parameter is required in YYYY-MM-DD format")
		return
	}

	components, err := h.componentService.ListActiveOn(c.Request.Context(), countryID, date)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, components))
}

// ListComponentsByType returns the active components of one type
// @Summary      List statutory components by type
// @Tags         statutory-components
// @Security     BearerAuth
// @Produce      json
// @Param        countryId      path  string  true  "Country ID"
// @Param        componentType  path  string  true  "Component type"
// @Success      200  {object}  response.Response{data=[]service.StatutoryComponentResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/countries/{countryId}/statutory-components/types/{componentType} [get]
func (h *StatutoryComponentHandler) ListComponentsByType(c *gin.Context) {
	countryID, ok := parseUUIDParam(c, "countryId")
	if !ok {
		return
	}

	components, err := h.componentService.ListByType(c.Request.Context(), countryID, c.Param("componentType"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, components))
}

// GetComponent returns one component of the country
// @Summary      Get statutory component
// @Tags         statutory-components
// @Security     BearerAuth
// @Produce      json
// @Param        countryId  path  string  true  "Country ID"
// @Param        id         path  string  true  "Component ID"
// @Success      200  {object}  response.Response{data=service.StatutoryComponentResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/countries/{countryId}/statutory-components/{id} [get]
func (h *StatutoryComponentHandler) GetComponent(c *gin.Context) {
	countryID, ok := parseUUIDParam(c, "countryId")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	component, err := h.componentService.Get(c.Request.Context(), countryID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, component))
}

// UpdateComponent applies a partial update; null clears optional fields
// @Summary      Update statutory component
// @Tags         statutory-components
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        countryId  path  string                                   true  "Country ID"
// @Param        id         path  string                                   true  "Component ID"
// @Param        payload    body  service.UpdateStatutoryComponentRequest  true  "Fields to change"
// @Success      200  {object}  response.Response{data=service.StatutoryComponentResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/countries/{countryId}/statutory-components/{id} [patch]
func (h *StatutoryComponentHandler) UpdateComponent(c *gin.Context) {
	countryID, ok := parseUUIDParam(c, "countryId")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateStatutoryComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, CodeInvalidRequest, validationMessage(err))
		return
	}

	component, err := h.componentService.Update(c.Request.Context(), countryID, id, req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, component))
}

// DeleteComponent removes a non-mandatory component
// @Summary      Delete statutory component
// @Tags         statutory-components
// @Security     BearerAuth
// @Produce      json
// @Param        countryId  path  string  true  "Country ID"
// @Param        id         path  string  true  "Component ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/countries/{countryId}/statutory-components/{id} [delete]
func (h *StatutoryComponentHandler) DeleteComponent(c *gin.Context) {
	countryID, ok := parseUUIDParam(c, "countryId")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.componentService.Delete(c.Request.Context(), countryID, id, middleware.Actor(c)); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Statutory component deleted successfully"}))
}

// SupersedeComponent closes a component and creates its successor version
// @Summary      Supersede statutory component
// @Tags         statutory-components
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        countryId  path  string                                   true  "Country ID"
// @Param        id         path  string                                   true  "Component ID being replaced"
// @Param        payload    body  service.CreateStatutoryComponentRequest  true  "Successor component"
// @Success      201  {object}  response.Response{data=service.SupersedeResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/countries/{countryId}/statutory-components/{id}/supersede [post]
func (h *StatutoryComponentHandler) SupersedeComponent(c *gin.Context) {
	countryID, ok := parseUUIDParam(c, "countryId")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req service.CreateStatutoryComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, CodeInvalidRequest, validationMessage(err))
		return
	}

	res, err := h.componentService.Supersede(c.Request.Context(), countryID, id, req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}
