package handler

import (
	"errors"
	"net/http"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/api/middleware"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/domain"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/metrics"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	pricingService *service.PricingService
}

func NewPricingHandler(ps *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: ps}
}

// POST /parkings/:id/shift-rates
func (h *PricingHandler) ConfigureShiftRates(c *gin.Context) {
	parkingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var dto domain.ConfigureShiftRatesDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	views, err := h.pricingService.ConfigureShiftRates(c.Request.Context(), parkingID, dto.Configurations, middleware.ActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GET /parkings/:id/shift-rates
func (h *PricingHandler) GetParkingShiftRates(c *gin.Context) {
	parkingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	views, err := h.pricingService.GetParkingShiftRates(c.Request.Context(), parkingID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GET /parkings/:id/rate?shift_id=N[&zone_id=N][&space_id=N]
func (h *PricingHandler) ResolveRate(c *gin.Context) {
	parkingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	shiftID, err := parsePositiveInt(c.Query("shift_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift_id query parameter is required"})
		return
	}

	var zoneID, spaceID *int
	if raw := c.Query("zone_id"); raw != "" {
		id, err := parsePositiveInt(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid zone_id"})
			return
		}
		zoneID = &id
	}
	if raw := c.Query("space_id"); raw != "" {
		id, err := parsePositiveInt(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid space_id"})
			return
		}
		spaceID = &id
	}

	resolved, err := h.pricingService.ResolveRate(c.Request.Context(), parkingID, shiftID, zoneID, spaceID)
	if err != nil {
		if errors.Is(err, service.ErrNotConfigured) {
			metrics.RateResolutionsTotal.WithLabelValues("not_configured").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_configured"})
			return
		}
		metrics.RateResolutionsTotal.WithLabelValues("error").Inc()
		writeServiceError(c, err)
		return
	}
	metrics.RateResolutionsTotal.WithLabelValues("resolved").Inc()
	c.JSON(http.StatusOK, resolved)
}

// DELETE /shift-rates/:id
func (h *PricingHandler) DeleteShiftRateConfig(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.pricingService.DeleteShiftRateConfig(c.Request.Context(), id, middleware.ActorID(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// PATCH /shift-rates/:id/toggle
func (h *PricingHandler) ToggleShiftRateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cfg, err := h.pricingService.ToggleShiftRateStatus(c.Request.Context(), id, middleware.ActorID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
