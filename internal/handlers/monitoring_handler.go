package handlers

import (
	"context"
	"net/http"
	"time"

	"pallet-service/internal/models"
	"pallet-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second

	// noVersion fuerza el primer envío al conectar
	noVersion int64 = -1
)

type MonitoringHandler struct {
	monitoringService services.MonitoringService
	statsService      services.StatsService
	versions          services.StatsVersionTracker
	pushInterval      time.Duration
	logger            *zap.Logger
}

func NewMonitoringHandler(
	monitoringService services.MonitoringService,
	statsService services.StatsService,
	versions services.StatsVersionTracker,
	pushInterval time.Duration,
	logger *zap.Logger,
) *MonitoringHandler {
	return &MonitoringHandler{
		monitoringService: monitoringService,
		statsService:      statsService,
		versions:          versions,
		pushInterval:      pushInterval,
		logger:            logger,
	}
}

// GetMetrics maneja la petición HTTP para obtener métricas
func (h *MonitoringHandler) GetMetrics(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_metrics"))

	metrics := h.monitoringService.GetMetrics(c.Request.Context())

	logger.Debug("Métricas obtenidas",
		zap.Int64("total_requests", metrics.Requests.TotalRequests),
		zap.String("avg_response_time", metrics.Performance.AvgResponseTimeMs))

	c.JSON(http.StatusOK, metrics)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// statsMessage mensaje enviado por el WebSocket del tablero
type statsMessage struct {
	Type      string             `json:"type"`
	Data      *models.Statistics `json:"data,omitempty"`
	Error     string             `json:"error,omitempty"`
	Timestamp string             `json:"timestamp"`
}

// WebSocketStats envía las estadísticas al conectar y luego, cada pushInterval,
// sólo si la versión de los datos cambió desde el último envío
func (h *MonitoringHandler) WebSocketStats(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "websocket_stats"))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Error actualizando a WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	logger.Info("Conexión WebSocket establecida", zap.String("client_ip", c.ClientIP()))

	// Lectura en segundo plano: detecta cierre del cliente y procesa pongs
	done := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := c.Request.Context()
	seen, ok := h.pushStats(ctx, conn, noVersion, logger)
	if !ok {
		return
	}

	ticker := time.NewTicker(h.pushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if seen, ok = h.pushStats(ctx, conn, seen, logger); !ok {
				return
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}

		case <-done:
			logger.Info("Conexión WebSocket cerrada por el cliente")
			return

		case <-ctx.Done():
			logger.Info("Conexión WebSocket cerrada por contexto")
			return
		}
	}
}

// pushStats recalcula y envía si la versión cambió. La versión se lee antes de
// calcular, así una escritura concurrente vuelve a disparar el envío.
// Devuelve la versión enviada y false si la conexión ya no sirve.
func (h *MonitoringHandler) pushStats(ctx context.Context, conn *websocket.Conn, seen int64, logger *zap.Logger) (int64, bool) {
	current, changed := h.versions.Changed(ctx, seen)
	if !changed {
		return seen, true
	}

	msg := statsMessage{Type: "stats", Timestamp: time.Now().UTC().Format(time.RFC3339)}

	stats, err := h.statsService.Compute(ctx)
	if err != nil {
		logger.Error("Error calculando estadísticas para WebSocket", zap.Error(err))
		msg.Type, msg.Error = "error", err.Error()
		current = seen
	} else {
		msg.Data = stats
	}

	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(msg); err != nil {
		logger.Debug("Error enviando estadísticas por WebSocket", zap.Error(err))
		return seen, false
	}
	return current, true
}

// RecordRequestMiddleware middleware para registrar requests
func (h *MonitoringHandler) RecordRequestMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if h.shouldSkipMonitoring(path) {
			return
		}

		h.monitoringService.RecordRequest(models.RequestData{
			Endpoint:   path,
			Method:     c.Request.Method,
			Duration:   time.Since(start),
			StatusCode: c.Writer.Status(),
			Timestamp:  time.Now(),
		})
	}
}

// shouldSkipMonitoring determina si un endpoint debe ser excluido del monitoring
func (h *MonitoringHandler) shouldSkipMonitoring(path string) bool {
	excludedPaths := []string{
		"/api/monitoring/metrics",
		"/api/ws/stats",
		"/health",
		"/",
	}

	for _, excludedPath := range excludedPaths {
		if path == excludedPath {
			return true
		}
	}
	return false
}
