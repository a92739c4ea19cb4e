package handler

import (
	"net/http"

	"github.com/fra890/equity-compass/internal/middleware"
	"github.com/fra890/equity-compass/internal/model"
	"github.com/fra890/equity-compass/internal/service"
	"github.com/fra890/equity-compass/pkg/response"

	"github.com/gin-gonic/gin"
)

type GrantHandler struct {
	grantService service.GrantService
}

func NewGrantHandler(grantService service.GrantService) *GrantHandler {
	return &GrantHandler{grantService: grantService}
}

func (h *GrantHandler) RegisterRoutes(router *gin.RouterGroup) {
	grants := router.Group("/api/clients/:id/grants", middleware.RequireRole(model.RoleAdmin, model.RoleAdvisor))
	{
		grants.GET("", h.ListGrants)
		grants.POST("", h.CreateGrant)
		grants.PUT("/:grantID", h.UpdateGrant)
		grants.DELETE("/:grantID", h.DeleteGrant)
		grants.POST("/:grantID/refresh-price", h.RefreshPrice)
	}
}

// ListGrants returns all grants under a client
// @Summary      List grants
// @Tags         grants
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Client ID"
// @Success      200  {object}  response.Response
// @Router       /api/clients/{id}/grants [get]
func (h *GrantHandler) ListGrants(c *gin.Context) {
	grants, err := h.grantService.ListGrants(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, grants))
}

// CreateGrant adds a grant under a client
// @Summary      Create grant
// @Tags         grants
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                      true  "Client ID"
// @Param        payload  body  service.CreateGrantRequest  true  "Grant payload"
// @Success      201  {object}  response.Response{data=service.GrantResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/clients/{id}/grants [post]
func (h *GrantHandler) CreateGrant(c *gin.Context) {
	var req service.CreateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	// The path is authoritative for which client owns the grant.
	req.ClientID = c.Param("id")

	grant, err := h.grantService.CreateGrant(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, grant))
}

// UpdateGrant updates an existing grant
// @Summary      Update grant
// @Tags         grants
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                      true  "Client ID"
// @Param        grantID  path  string                      true  "Grant ID"
// @Param        payload  body  service.UpdateGrantRequest  true  "Update payload"
// @Success      200  {object}  response.Response{data=service.GrantResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/clients/{id}/grants/{grantID} [put]
func (h *GrantHandler) UpdateGrant(c *gin.Context) {
	var req service.UpdateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	grant, err := h.grantService.UpdateGrant(c.Request.Context(), c.Param("grantID"), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, grant))
}

// DeleteGrant deletes a grant (soft delete)
// @Summary      Delete grant
// @Tags         grants
// @Security     BearerAuth
// @Produce      json
// @Param        id       path  string  true  "Client ID"
// @Param        grantID  path  string  true  "Grant ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/clients/{id}/grants/{grantID} [delete]
func (h *GrantHandler) DeleteGrant(c *gin.Context) {
	if err := h.grantService.DeleteGrant(c.Request.Context(), c.Param("grantID"), c.GetString("userID")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Grant deleted successfully"}))
}

// RefreshPrice replaces the grant's share price with the current market quote
// @Summary      Refresh grant price
// @Tags         grants
// @Security     BearerAuth
// @Produce      json
// @Param        id       path  string  true  "Client ID"
// @Param        grantID  path  string  true  "Grant ID"
// @Success      200  {object}  response.Response{data=service.GrantResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/clients/{id}/grants/{grantID}/refresh-price [post]
func (h *GrantHandler) RefreshPrice(c *gin.Context) {
	grant, err := h.grantService.RefreshPrice(c.Request.Context(), c.Param("grantID"), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadGateway, response.Error(http.StatusBadGateway, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, grant))
}
