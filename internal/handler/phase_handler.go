package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fasting/backend/internal/service"
)

// PhaseHandler serves the static fasting timeline. It needs no user.
type PhaseHandler struct{}

func NewPhaseHandler() *PhaseHandler {
	return &PhaseHandler{}
}

func (h *PhaseHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"phases": service.PhaseTimeline()})
}

func (h *PhaseHandler) Resolve(c *gin.Context) {
	hours, err := strconv.ParseFloat(c.Query("hours"), 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_hours", "message": "hours must be a number"},
		})
		return
	}
	c.JSON(http.StatusOK, service.ResolvePhase(hours))
}
