package handler

import (
	"net/http"

	"github.com/fra890/equity-compass/internal/middleware"
	"github.com/fra890/equity-compass/internal/model"
	"github.com/fra890/equity-compass/pkg/response"
	"github.com/fra890/equity-compass/pkg/stockapi"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	quotes *stockapi.Client
}

func NewQuoteHandler(quotes *stockapi.Client) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

func (h *QuoteHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/quotes/:ticker", middleware.RequireRole(model.RoleAdmin, model.RoleAdvisor), h.GetQuote)
}

// GetQuote looks up the current market price for a ticker
// @Summary      Get stock quote
// @Tags         quotes
// @Security     BearerAuth
// @Produce      json
// @Param        ticker  path  string  true  "Ticker symbol"
// @Success      200  {object}  response.Response{data=stockapi.Quote}
// @Failure      502  {object}  response.Response
// @Router       /api/quotes/{ticker} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.quotes.GetQuote(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		c.JSON(http.StatusBadGateway, response.Error(http.StatusBadGateway, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, quote))
}
