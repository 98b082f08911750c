package handler

import (
	"net/http"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/api/middleware"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type RateHandler struct {
	catalogService *service.CatalogService
}

func NewRateHandler(cs *service.CatalogService) *RateHandler {
	return &RateHandler{catalogService: cs}
}

// POST /rates
func (h *RateHandler) CreateRate(c *gin.Context) {
	var dto domain.RateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rate, err := h.catalogService.CreateRate(c.Request.Context(), dto, middleware.ActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rate)
}

// GET /rates
func (h *RateHandler) ListRates(c *gin.Context) {
	rates, err := h.catalogService.ListRates(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rates)
}

// GET /rates/:id
func (h *RateHandler) GetRate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rate, err := h.catalogService.GetRate(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

// PUT /rates/:id
func (h *RateHandler) UpdateRate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var dto domain.RateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rate, err := h.catalogService.UpdateRate(c.Request.Context(), id, dto, middleware.ActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

// DELETE /rates/:id
func (h *RateHandler) DeleteRate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteRate(c.Request.Context(), id, middleware.ActorID(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// POST /rates/:id/restore
func (h *RateHandler) RestoreRate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rate, err := h.catalogService.RestoreRate(c.Request.Context(), id, middleware.ActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}
