package handlers

import (
	"net/http"
	"time"

	"pallet-service/internal/middleware"
	"pallet-service/internal/models"
	"pallet-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AuthHandler login y logout
type AuthHandler struct {
	authService  services.AuthService
	cookieName   string
	cookieSecure bool
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewAuthHandler crea una nueva instancia del handler de autenticación
func NewAuthHandler(authService services.AuthService, cookieName string, cookieSecure bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
		validator:    newValidator(),
		logger:       logger,
	}
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Format de données invalide",
			"error":   err.Error(),
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, h.logger, services.MsgInvalidInput, toValidationError(err))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, "Identifiants invalides", err)
		return
	}

	maxAge := int(time.Until(token.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token.Value, maxAge, "/", "", h.cookieSecure, true)

	c.JSON(http.StatusOK, models.LoginResponse{
		Success:   true,
		Message:   "Connexion réussie ✅",
		Username:  token.Username,
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Logout POST|GET /api/logout. Siempre borra la cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if raw := middleware.SessionToken(c, h.cookieName); raw != "" {
		if err := h.authService.Logout(c.Request.Context(), raw); err != nil {
			h.logger.Debug("Logout con sesión ya inválida", zap.Error(err))
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Déconnexion réussie",
	})
}
