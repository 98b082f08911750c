package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/repository"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps service/repository errors onto HTTP responses:
// validation -> 400, not found -> 404, duplicate/conflict -> 409,
// anything else -> 500.
func writeServiceError(c *gin.Context, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	if errors.Is(err, repository.ErrDuplicateEntry) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, repository.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "concurrent modification, please retry", "code": "conflict"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "details": err.Error()})
}

// pathID parses a :param path segment as a positive integer id. Writes the
// 400 response itself and returns false on failure.
func pathID(c *gin.Context, param string) (int, bool) {
	id, err := parsePositiveInt(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return id, true
}

func parsePositiveInt(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("not a positive integer: %q", s)
	}
	return id, nil
}
