package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"pallet-service/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SQLHealth lo que el health check necesita de la base de datos
type SQLHealth interface {
	Ping(ctx context.Context) error
	GetStats() sql.DBStats
}

// RedisHealth lo que el health check necesita de Redis
type RedisHealth interface {
	Ping(ctx context.Context) error
	CountKeys(ctx context.Context, pattern string) (int, error)
}

type HealthChecker struct {
	db      SQLHealth
	driver  string
	redisDB RedisHealth
	logger  *zap.Logger
}

func NewHealthChecker(db SQLHealth, driver string, redisDB RedisHealth, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		db:      db,
		driver:  driver,
		redisDB: redisDB,
		logger:  logger,
	}
}

func (h *HealthChecker) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  make(map[string]interface{}),
	}
	services := status["services"].(map[string]interface{})

	// Verificar base de datos
	dbStatus := "healthy"
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = "unhealthy"
		status["status"] = "unhealthy"
		h.logger.Error("Database health check failed", zap.String("driver", h.driver), zap.Error(err))
	}

	dbStats := h.db.GetStats()
	services["database"] = gin.H{
		"driver": h.driver,
		"status": dbStatus,
		"stats": gin.H{
			"max_open_connections": dbStats.MaxOpenConnections,
			"open_connections":     dbStats.OpenConnections,
			"in_use":               dbStats.InUse,
			"idle":                 dbStats.Idle,
		},
	}

	// Verificar Redis
	redisStatus := "healthy"
	var activeSessions interface{} = "unavailable"
	if err := h.redisDB.Ping(ctx); err != nil {
		redisStatus = "unhealthy"
		status["status"] = "unhealthy"
		h.logger.Error("Redis health check failed", zap.Error(err))
	} else if n, err := h.redisDB.CountKeys(ctx, session.KeyPrefix+"*"); err == nil {
		activeSessions = n
	}

	services["redis"] = gin.H{
		"status":          redisStatus,
		"active_sessions": activeSessions,
	}

	httpStatus := http.StatusOK
	if status["status"] == "unhealthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, status)
}
