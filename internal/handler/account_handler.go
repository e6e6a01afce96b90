package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fasting/backend/internal/middleware"
	"fasting/backend/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) Export(c *gin.Context) {
	export, apiErr := h.accountService.Export(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="fasting-export.json"`)
	c.JSON(http.StatusOK, export)
}

func (h *AccountHandler) ResetData(c *gin.Context) {
	if apiErr := h.accountService.ResetData(c.Request.Context(), middleware.UserID(c)); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
