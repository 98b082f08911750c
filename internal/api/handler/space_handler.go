package handler

import (
	"net/http"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/api/middleware"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type SpaceHandler struct {
	facilityService *service.FacilityService
}

func NewSpaceHandler(fs *service.FacilityService) *SpaceHandler {
	return &SpaceHandler{facilityService: fs}
}

// GET /spaces/:id
func (h *SpaceHandler) GetSpace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	space, err := h.facilityService.GetSpace(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, space)
}

// PUT /spaces/:id
func (h *SpaceHandler) UpdateSpace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var dto domain.SpaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	space, err := h.facilityService.UpdateSpace(c.Request.Context(), id, dto, middleware.ActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, space)
}

// DELETE /spaces/:id
func (h *SpaceHandler) DeleteSpace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facilityService.DeleteSpace(c.Request.Context(), id, middleware.ActorID(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// PATCH /spaces/:id/status
func (h *SpaceHandler) UpdateSpaceStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var dto domain.SpaceStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	space, err := h.facilityService.UpdateSpaceStatus(c.Request.Context(), id, dto.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, space)
}
