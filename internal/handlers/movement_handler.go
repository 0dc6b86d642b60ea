package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"pallet-service/internal/models"
	"pallet-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// MovementHandler maneja el registro y los listados de movimientos
type MovementHandler struct {
	movementService services.MovementService
	validator       *validator.Validate
	logger          *zap.Logger
}

// NewMovementHandler crea una nueva instancia del handler
func NewMovementHandler(movementService services.MovementService, logger *zap.Logger) *MovementHandler {
	return &MovementHandler{
		movementService: movementService,
		validator:       newValidator(),
		logger:          logger,
	}
}

// newValidator reporta los campos con su nombre JSON
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// logDebug logs solo en modo debug
func (h *MovementHandler) logDebug(msg string, fields ...zap.Field) {
	h.logger.Debug("🔍 [DEBUG] "+msg, fields...)
}

// logSuccess logs de éxito en todos los modos
func (h *MovementHandler) logSuccess(msg string, fields ...zap.Field) {
	h.logger.Info("✅ "+msg, fields...)
}

// Record registra un movimiento. Acepta JSON o formulario.
func (h *MovementHandler) Record(c *gin.Context) {
	start := time.Now()

	var req models.RecordMovementRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("⚠️ Error binding request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Format de données invalide",
			"error":   err.Error(),
		})
		return
	}

	h.logDebug("Movimiento recibido",
		zap.String("date", req.Date),
		zap.String("type_mvt", req.Kind),
		zap.String("transporteur", req.Carrier))

	if err := h.validator.Struct(req); err != nil {
		respondError(c, h.logger, services.MsgInvalidInput, toValidationError(err))
		return
	}

	response, err := h.movementService.Record(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, "Erreur lors de l'enregistrement", err)
		return
	}

	h.logSuccess("Movimiento registrado",
		zap.String("ledger", response.Data.Ledger),
		zap.Int("total", response.Data.Total),
		zap.Duration("latency", time.Since(start)))

	c.JSON(http.StatusOK, response)
}

// toValidationError convierte el primer error del validator
func toValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return &services.ValidationError{Field: "request", Message: services.MsgInvalidInput}
	}

	fe := fieldErrors[0]
	message := services.MsgInvalidInput
	if fe.Tag() == "gte" {
		message = services.MsgNegativeCount
	}
	return &services.ValidationError{Field: fe.Field(), Message: message}
}

// ListPlanning GET /api/planning
func (h *MovementHandler) ListPlanning(c *gin.Context) {
	filter, err := parsePlanningFilter(c)
	if err != nil {
		respondError(c, h.logger, "Filtre invalide", err)
		return
	}

	rows, err := h.movementService.ListPlanning(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "Erreur lors de la lecture du planning", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rows,
		"count":   len(rows),
	})
}

// ListIncoming GET /api/entree
func (h *MovementHandler) ListIncoming(c *gin.Context) {
	filter, err := parseLedgerFilter(c)
	if err != nil {
		respondError(c, h.logger, "Filtre invalide", err)
		return
	}

	entries, err := h.movementService.ListIncoming(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "Erreur lors de la lecture des entrées", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"count":   len(entries),
	})
}

// ListOutgoing GET /api/sortie
func (h *MovementHandler) ListOutgoing(c *gin.Context) {
	filter, err := parseLedgerFilter(c)
	if err != nil {
		respondError(c, h.logger, "Filtre invalide", err)
		return
	}

	entries, err := h.movementService.ListOutgoing(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "Erreur lors de la lecture des sorties", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"count":   len(entries),
	})
}

// ListCarriers GET /api/transporteurs
func (h *MovementHandler) ListCarriers(c *gin.Context) {
	names, err := h.movementService.ListCarriers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Erreur lors de la lecture des transporteurs", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    names,
	})
}
