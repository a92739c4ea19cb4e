package handler

import (
	"fmt"
	"net/http"

	"github.com/fra890/equity-compass/internal/middleware"
	"github.com/fra890/equity-compass/internal/model"
	"github.com/fra890/equity-compass/internal/service"
	"github.com/fra890/equity-compass/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProjectionHandler struct {
	projectionService service.ProjectionService
	exportService     service.ExportService
}

func NewProjectionHandler(projectionService service.ProjectionService, exportService service.ExportService) *ProjectionHandler {
	return &ProjectionHandler{projectionService: projectionService, exportService: exportService}
}

func (h *ProjectionHandler) RegisterRoutes(router *gin.RouterGroup) {
	clients := router.Group("/api/clients/:id", middleware.RequireRole(model.RoleAdmin, model.RoleAdvisor))
	{
		clients.GET("/grants/:grantID/schedule", h.GetVestingSchedule)
		clients.GET("/grants/:grantID/schedule/export", h.ExportVestingSchedule)
		clients.GET("/grants/:grantID/status", h.GetGrantStatus)
		clients.GET("/projections/amt-room", h.GetAMTRoom)
		clients.GET("/projections/rates", h.GetEffectiveRates)
		clients.POST("/iso-scenarios", h.CompareISOScenarios)
	}
}

// GetVestingSchedule generates the full tranche-by-tranche vesting projection
// @Summary      Get vesting schedule
// @Tags         projections
// @Security     BearerAuth
// @Produce      json
// @Param        id        path   string  true   "Client ID"
// @Param        grantID   path   string  true   "Grant ID"
// @Param        sell_all  query  bool    false  "Model selling every vested share instead of sell-to-cover"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/clients/{id}/grants/{grantID}/schedule [get]
func (h *ProjectionHandler) GetVestingSchedule(c *gin.Context) {
	sellAll := c.Query("sell_all") == "true"

	events, err := h.projectionService.GetVestingSchedule(c.Request.Context(), c.Param("id"), c.Param("grantID"), sellAll)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, events))
}

// ExportVestingSchedule downloads the vesting projection as CSV
// @Summary      Export vesting schedule as CSV
// @Tags         projections
// @Security     BearerAuth
// @Produce      text/csv
// @Param        id        path   string  true   "Client ID"
// @Param        grantID   path   string  true   "Grant ID"
// @Param        sell_all  query  bool    false  "Model selling every vested share instead of sell-to-cover"
// @Success      200  {string}  string  "CSV file"
// @Failure      400  {object}  response.Response
// @Router       /api/clients/{id}/grants/{grantID}/schedule/export [get]
func (h *ProjectionHandler) ExportVestingSchedule(c *gin.Context) {
	sellAll := c.Query("sell_all") == "true"
	grantID := c.Param("grantID")

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=vesting-schedule-%s.csv", grantID))

	if err := h.exportService.WriteVestingScheduleCSV(c.Request.Context(), c.Writer, c.Param("id"), grantID, sellAll); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
}

// GetGrantStatus summarizes vested/unvested/exercised/available share counts
// @Summary      Get grant status
// @Tags         projections
// @Security     BearerAuth
// @Produce      json
// @Param        id       path  string  true  "Client ID"
// @Param        grantID  path  string  true  "Grant ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/clients/{id}/grants/{grantID}/status [get]
func (h *ProjectionHandler) GetGrantStatus(c *gin.Context) {
	status, err := h.projectionService.GetGrantStatus(c.Request.Context(), c.Param("id"), c.Param("grantID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, status))
}

// GetAMTRoom estimates remaining AMT-free ISO exercise spread for this year
// @Summary      Get AMT room report
// @Tags         projections
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Client ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/clients/{id}/projections/amt-room [get]
func (h *ProjectionHandler) GetAMTRoom(c *gin.Context) {
	report, err := h.projectionService.GetAMTRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// GetEffectiveRates resolves the client's state and federal LTCG rates
// @Summary      Get effective rates
// @Tags         projections
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Client ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/clients/{id}/projections/rates [get]
func (h *ProjectionHandler) GetEffectiveRates(c *gin.Context) {
	rates, err := h.projectionService.GetEffectiveRates(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rates))
}

// CompareISOScenarios computes the qualified vs disqualified disposition pair
// @Summary      Compare ISO disposition scenarios
// @Tags         projections
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                      true  "Client ID"
// @Param        payload  body  service.ISOScenarioRequest  true  "Scenario inputs"
// @Success      200  {object}  response.Response{data=service.ISOScenarioComparison}
// @Failure      400  {object}  response.Response
// @Router       /api/clients/{id}/iso-scenarios [post]
func (h *ProjectionHandler) CompareISOScenarios(c *gin.Context) {
	var req service.ISOScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	comparison, err := h.projectionService.CompareISOScenarios(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, comparison))
}
