package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/naimekattor/user-management-app/internal/apperr"
)

// logServerError records the underlying cause of an unexpected failure.
// Client-caused statuses stay out of the error log; the response body only
// ever carries the generic message.
func logServerError(l *zap.Logger, c *gin.Context, err error) {
	if apperr.Status(err) != http.StatusInternalServerError {
		return
	}
	l.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(apperr.Cause(err)),
	)
}
