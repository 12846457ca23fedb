package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rqos/agency-ops-backend/internal/apperrors"
	"github.com/rqos/agency-ops-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto its HTTP status and writes the JSON
// body. Internal errors are logged with detail but reported generically.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// periodFromQuery reads the month/year query pair, both required.
func periodFromQuery(c *gin.Context) (int, int, error) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return 0, 0, apperrors.NewValidationFailedError("month query parameter must be an integer")
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return 0, 0, apperrors.NewValidationFailedError("year query parameter must be an integer")
	}
	return month, year, nil
}

// optionalQuery returns a pointer to the query value, nil when absent.
func optionalQuery(c *gin.Context, key string) *string {
	if value := c.Query(key); value != "" {
		return &value
	}
	return nil
}
