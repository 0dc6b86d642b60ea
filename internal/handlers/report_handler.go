package handlers

import (
	"net/http"
	"time"

	"pallet-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportHandler reporte diario, estadísticas y export
type ReportHandler struct {
	reportService services.ReportService
	statsService  services.StatsService
	exportService services.ExportService
	logger        *zap.Logger
}

// NewReportHandler crea una nueva instancia del handler de reportes
func NewReportHandler(reportService services.ReportService, statsService services.StatsService, exportService services.ExportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		statsService:  statsService,
		exportService: exportService,
		logger:        logger,
	}
}

// DailyReport GET /api/total_palettes
func (h *ReportHandler) DailyReport(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		respondError(c, h.logger, "Filtre invalide", err)
		return
	}

	rows, err := h.reportService.DailyReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "Erreur lors du calcul du total palettes", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rows,
		"count":   len(rows),
	})
}

// Statistics GET /api/stats
func (h *ReportHandler) Statistics(c *gin.Context) {
	stats, err := h.statsService.Compute(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Erreur lors du calcul des statistiques", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// Export GET /api/export
func (h *ReportHandler) Export(c *gin.Context) {
	start := time.Now()
	logger := h.logger.With(zap.String("handler", "export"))

	buf, err := h.exportService.Workbook(c.Request.Context())
	if err != nil {
		respondError(c, logger, "Erreur lors de l'export", err)
		return
	}

	filename := services.ExportFilename(time.Now())
	logger.Info("📤 Export enviado",
		zap.String("filename", filename),
		zap.Int("bytes", buf.Len()),
		zap.Duration("latency", time.Since(start)))

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, services.XLSXContentType, buf.Bytes())
}
