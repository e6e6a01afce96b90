package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fasting/backend/internal/middleware"
	"fasting/backend/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

type phaseRequest struct {
	Phase string `json:"phase"`
}

type remindersRequest struct {
	Enabled *bool `json:"enabled"`
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) GetCycle(c *gin.Context) {
	view, apiErr := h.settingsService.GetCycle(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cycle": view})
}

func (h *SettingsHandler) SetPhase(c *gin.Context) {
	var req phaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	view, apiErr := h.settingsService.SetPhase(c.Request.Context(), middleware.UserID(c), req.Phase)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cycle": view})
}

func (h *SettingsHandler) SetCustomHours(c *gin.Context) {
	var req service.CustomHoursInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	view, apiErr := h.settingsService.SetCustomHours(c.Request.Context(), middleware.UserID(c), req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cycle": view})
}

func (h *SettingsHandler) SetReminders(c *gin.Context) {
	var req remindersRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		writeInvalidJSON(c)
		return
	}

	view, apiErr := h.settingsService.SetReminders(c.Request.Context(), middleware.UserID(c), *req.Enabled)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cycle": view})
}
