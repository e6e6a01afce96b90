package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "fasting/backend/internal/errors"
	"fasting/backend/internal/service"
)

func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	if apiErr == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "internal_error",
				"message": "internal server error",
			},
		})
		return
	}

	errorBody := gin.H{
		"code":    apiErr.Code,
		"message": apiErr.Message,
	}
	if apiErr.Details != nil {
		errorBody["details"] = apiErr.Details
	}

	c.JSON(apiErr.Status, gin.H{
		"error": errorBody,
	})
}

func writeInvalidJSON(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
	})
}

// monthFilter reads the optional year/month query pair. Both or neither must
// be present.
func monthFilter(c *gin.Context) (*service.MonthFilter, *apperrors.APIError) {
	rawYear, rawMonth := c.Query("year"), c.Query("month")
	if rawYear == "" && rawMonth == "" {
		return nil, nil
	}

	year, yearErr := strconv.Atoi(rawYear)
	month, monthErr := strconv.Atoi(rawMonth)
	if yearErr != nil || monthErr != nil {
		return nil, apperrors.BadRequest("invalid_month", "year and month must both be numbers")
	}
	return &service.MonthFilter{Year: year, Month: month}, nil
}
