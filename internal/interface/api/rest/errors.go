package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-drive-api/internal/domain"
)

// writeServiceError maps domain errors onto status codes. Anything unknown is
// logged and reported as a 500 with the fallback message.
func writeServiceError(c *gin.Context, logger *zap.Logger, op string, err error, fallback string) {
	var derr *domain.Error
	msg := fallback
	if errors.As(err, &derr) {
		msg = derr.Error()
	}

	switch {
	case errors.Is(err, domain.ErrAuthenticationRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	case errors.Is(err, domain.ErrAuthorizationDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": msg})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msg})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
		logger.Error(op+" error", zap.Error(err))
	}
}
