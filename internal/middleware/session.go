package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pallet-service/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextUsername clave del usuario autenticado en el contexto de gin
const ContextUsername = "username"

// Authenticator valida un token de sesión y devuelve el usuario
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (string, error)
}

// SessionToken lee el token de Authorization: Bearer o de la cookie de sesión
func SessionToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

// RequireSession corta con 401 si no hay una sesión válida
func RequireSession(auth Authenticator, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := SessionToken(c, cookieName)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "❌ Authentification requise",
				"error":   "missing session token",
			})
			return
		}

		username, err := auth.Authenticate(c.Request.Context(), raw)
		if err != nil && !errors.Is(err, session.ErrInvalidToken) && !errors.Is(err, session.ErrSessionNotFound) {
			logger.Error("❌ Error validando sesión", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "❌ Erreur lors de la vérification de la session",
				"error":   err.Error(),
			})
			return
		}
		if err != nil {
			logger.Debug("🔒 Sesión rechazada", zap.Error(err), zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "❌ Session invalide ou expirée",
				"error":   err.Error(),
			})
			return
		}

		c.Set(ContextUsername, username)
		c.Next()
	}
}
