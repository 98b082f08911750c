package handler

import (
	"net/http"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/api/middleware"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type ParkingHandler struct {
	facilityService  *service.FacilityService
	occupancyService *service.OccupancyService
}

func NewParkingHandler(fs *service.FacilityService, os *service.OccupancyService) *ParkingHandler {
	return &ParkingHandler{facilityService: fs, occupancyService: os}
}

// POST /parkings
func (h *ParkingHandler) CreateParking(c *gin.Context) {
	var dto domain.ParkingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parking, err := h.facilityService.CreateParking(c.Request.Context(), dto, middleware.ActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, parking)
}

// GET /parkings
func (h *ParkingHandler) ListParkings(c *gin.Context) {
	parkings, err := h.facilityService.ListParkings(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, parkings)
}

// GET /parkings/:id
func (h *ParkingHandler) GetParking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	parking, err := h.facilityService.GetParking(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, parking)
}

// PUT /parkings/:id
func (h *ParkingHandler) UpdateParking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var dto domain.ParkingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parking, err := h.facilityService.UpdateParking(c.Request.Context(), id, dto, middleware.ActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, parking)
}

// DELETE /parkings/:id
func (h *ParkingHandler) DeleteParking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facilityService.DeleteParking(c.Request.Context(), id, middleware.ActorID(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// GET /parkings/:id/occupancy
func (h *ParkingHandler) GetParkingOccupancy(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	occ, err := h.occupancyService.ComputeParkingOccupancy(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, occ)
}

// POST /parkings/:id/zones
func (h *ParkingHandler) CreateZone(c *gin.Context) {
	parkingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var dto domain.ZoneDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zone, err := h.facilityService.CreateZone(c.Request.Context(), parkingID, dto, middleware.ActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, zone)
}

// GET /parkings/:id/zones
func (h *ParkingHandler) ListZones(c *gin.Context) {
	parkingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	zones, err := h.facilityService.ListZonesByParking(c.Request.Context(), parkingID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, zones)
}
