package handler

import (
	"net/http"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/api/middleware"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type ShiftHandler struct {
	catalogService *service.CatalogService
}

func NewShiftHandler(cs *service.CatalogService) *ShiftHandler {
	return &ShiftHandler{catalogService: cs}
}

// POST /shifts
func (h *ShiftHandler) CreateShift(c *gin.Context) {
	var dto domain.ShiftDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shift, err := h.catalogService.CreateShift(c.Request.Context(), dto, middleware.ActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// GET /shifts
func (h *ShiftHandler) ListShifts(c *gin.Context) {
	shifts, err := h.catalogService.ListShifts(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// GET /shifts/:id
func (h *ShiftHandler) GetShift(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	shift, err := h.catalogService.GetShift(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}

// PUT /shifts/:id
func (h *ShiftHandler) UpdateShift(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var dto domain.ShiftDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shift, err := h.catalogService.UpdateShift(c.Request.Context(), id, dto, middleware.ActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}

// DELETE /shifts/:id
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteShift(c.Request.Context(), id, middleware.ActorID(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// POST /shifts/:id/restore
func (h *ShiftHandler) RestoreShift(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	shift, err := h.catalogService.RestoreShift(c.Request.Context(), id, middleware.ActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}
