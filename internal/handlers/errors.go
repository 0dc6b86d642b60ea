package handlers

import (
	"errors"
	"net/http"

	"pallet-service/internal/services"
	"pallet-service/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor traduce un error de servicio a código HTTP
func statusFor(err error) int {
	switch {
	case services.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrInvalidToken),
		errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError escribe la respuesta de error estándar.
// Para errores de validación el mensaje es el del propio error.
func respondError(c *gin.Context, logger *zap.Logger, message string, err error) {
	status := statusFor(err)

	var ve *services.ValidationError
	if errors.As(err, &ve) {
		message = ve.Message
	}

	if status >= http.StatusInternalServerError {
		logger.Error("❌ "+message, zap.Error(err), zap.String("path", c.Request.URL.Path))
	} else {
		logger.Warn("⚠️ "+message, zap.Error(err), zap.Int("status", status))
	}

	c.JSON(status, gin.H{
		"success": false,
		"message": "❌ " + message,
		"error":   err.Error(),
	})
}
