package handler

import (
	"net/http"

	"github.com/fra890/equity-compass/internal/middleware"
	"github.com/fra890/equity-compass/internal/model"
	"github.com/fra890/equity-compass/internal/service"
	"github.com/fra890/equity-compass/pkg/response"

	"github.com/gin-gonic/gin"
)

type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

func (h *ExerciseHandler) RegisterRoutes(router *gin.RouterGroup) {
	exercises := router.Group("/api/clients/:id/exercises", middleware.RequireRole(model.RoleAdmin, model.RoleAdvisor))
	{
		exercises.GET("", h.ListExercises)
		exercises.POST("", h.CreateExercise)
		exercises.DELETE("/:exerciseID", h.DeleteExercise)
	}
}

// ListExercises returns all planned exercises under a client
// @Summary      List planned exercises
// @Tags         exercises
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Client ID"
// @Success      200  {object}  response.Response
// @Router       /api/clients/{id}/exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, exercises))
}

// CreateExercise records a planned ISO exercise
// @Summary      Create planned exercise
// @Tags         exercises
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Client ID"
// @Param        payload  body  service.CreateExerciseRequest  true  "Exercise payload"
// @Success      201  {object}  response.Response{data=service.ExerciseResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/clients/{id}/exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req service.CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	// The path is authoritative for which client owns the exercise.
	req.ClientID = c.Param("id")

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, exercise))
}

// DeleteExercise removes a planned exercise
// @Summary      Delete planned exercise
// @Tags         exercises
// @Security     BearerAuth
// @Produce      json
// @Param        id          path  string  true  "Client ID"
// @Param        exerciseID  path  string  true  "Exercise ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/clients/{id}/exercises/{exerciseID} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	if err := h.exerciseService.DeleteExercise(c.Request.Context(), c.Param("exerciseID"), c.GetString("userID")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Exercise deleted successfully"}))
}
