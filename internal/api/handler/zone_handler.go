package handler

import (
	"net/http"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/api/middleware"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type ZoneHandler struct {
	facilityService  *service.FacilityService
	occupancyService *service.OccupancyService
}

func NewZoneHandler(fs *service.FacilityService, os *service.OccupancyService) *ZoneHandler {
	return &ZoneHandler{facilityService: fs, occupancyService: os}
}

// GET /zones/:id
func (h *ZoneHandler) GetZone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	zone, err := h.facilityService.GetZone(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, zone)
}

// PUT /zones/:id
func (h *ZoneHandler) UpdateZone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var dto domain.ZoneDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zone, err := h.facilityService.UpdateZone(c.Request.Context(), id, dto, middleware.ActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, zone)
}

// DELETE /zones/:id
func (h *ZoneHandler) DeleteZone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facilityService.DeleteZone(c.Request.Context(), id, middleware.ActorID(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// GET /zones/:id/occupancy
func (h *ZoneHandler) GetZoneOccupancy(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	occ, err := h.occupancyService.ComputeZoneOccupancy(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, occ)
}

// POST /zones/:id/spaces
func (h *ZoneHandler) CreateSpace(c *gin.Context) {
	zoneID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var dto domain.SpaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	space, err := h.facilityService.CreateSpace(c.Request.Context(), zoneID, dto, middleware.ActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, space)
}

// GET /zones/:id/spaces
func (h *ZoneHandler) ListSpaces(c *gin.Context) {
	zoneID, ok := pathID(c, "id")
	if !ok {
		return
	}
	spaces, err := h.facilityService.ListSpacesByZone(c.Request.Context(), zoneID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, spaces)
}
