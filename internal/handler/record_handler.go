package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fasting/backend/internal/middleware"
	"fasting/backend/internal/service"
)

type RecordHandler struct {
	recordService *service.RecordService
}

func NewRecordHandler(recordService *service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

func (h *RecordHandler) List(c *gin.Context) {
	filter, apiErr := monthFilter(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	records, apiErr := h.recordService.List(c.Request.Context(), middleware.UserID(c), filter)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *RecordHandler) Get(c *gin.Context) {
	rec, apiErr := h.recordService.Get(c.Request.Context(), middleware.UserID(c), c.Param("date"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

func (h *RecordHandler) Put(c *gin.Context) {
	var req service.RecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	rec, apiErr := h.recordService.Upsert(c.Request.Context(), middleware.UserID(c), c.Param("date"), req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

func (h *RecordHandler) Patch(c *gin.Context) {
	var req service.PatchRecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	rec, apiErr := h.recordService.Patch(c.Request.Context(), middleware.UserID(c), c.Param("date"), req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

func (h *RecordHandler) Delete(c *gin.Context) {
	if apiErr := h.recordService.Delete(c.Request.Context(), middleware.UserID(c), c.Param("date")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecordHandler) Summary(c *gin.Context) {
	filter, apiErr := monthFilter(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	summary, apiErr := h.recordService.Summary(c.Request.Context(), middleware.UserID(c), filter)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (h *RecordHandler) Week(c *gin.Context) {
	days, apiErr := h.recordService.Week(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}
