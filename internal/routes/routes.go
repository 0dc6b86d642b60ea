package routes

import (
	"net/http"

	"pallet-service/internal/handlers"
	"pallet-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers agrupa lo que necesitan las rutas
type Handlers struct {
	Auth        *handlers.AuthHandler
	Movement    *handlers.MovementHandler
	Report      *handlers.ReportHandler
	Monitoring  *handlers.MonitoringHandler
	Health      *middleware.HealthChecker
	RequireAuth gin.HandlerFunc
}

// SetupRoutes configura todas las rutas de la aplicación
func SetupRoutes(router *gin.Engine, h Handlers) {
	api := router.Group("/api")
	{
		// Públicas
		api.POST("/login", h.Auth.Login)
		api.POST("/logout", h.Auth.Logout)
		api.GET("/logout", h.Auth.Logout)

		// Protegidas por sesión
		private := api.Group("", h.RequireAuth)
		{
			// Movimientos
			private.POST("/enregistrer", h.Movement.Record)
			private.GET("/planning", h.Movement.ListPlanning)
			private.GET("/entree", h.Movement.ListIncoming)
			private.GET("/sortie", h.Movement.ListOutgoing)
			private.GET("/transporteurs", h.Movement.ListCarriers)

			// Reportes
			private.GET("/total_palettes", h.Report.DailyReport)
			private.GET("/stats", h.Report.Statistics)
			private.GET("/export", h.Report.Export)

			// Monitoring
			private.GET("/monitoring/metrics", h.Monitoring.GetMetrics)
			private.GET("/ws/stats", h.Monitoring.WebSocketStats)
		}
	}

	router.GET("/health", h.Health.HealthCheck)

	// API info en raíz
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Pallet Service API",
			"version": "1.0.0",
			"status":  "running",
			"endpoints": gin.H{
				"health": "/health",
				"auth": gin.H{
					"login":  "POST /api/login",
					"logout": "POST /api/logout",
				},
				"mouvements": gin.H{
					"enregistrer":   "POST /api/enregistrer",
					"planning":      "GET /api/planning",
					"entree":        "GET /api/entree",
					"sortie":        "GET /api/sortie",
					"transporteurs": "GET /api/transporteurs",
				},
				"rapports": gin.H{
					"total_palettes": "GET /api/total_palettes",
					"stats":          "GET /api/stats",
					"export":         "GET /api/export",
				},
				"monitoring": gin.H{
					"metrics":  "GET /api/monitoring/metrics",
					"ws_stats": "GET /api/ws/stats",
				},
			},
		})
	})
}
