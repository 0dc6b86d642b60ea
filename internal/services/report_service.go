package services

import (
	"context"
	"fmt"
	"sort"

	"pallet-service/internal/models"
	"pallet-service/internal/repository"

	"go.uber.org/zap"
)

// ReportService reporte diario de stock en muelle
type ReportService interface {
	DailyReport(ctx context.Context, filter models.ReportFilter) ([]models.DailyReportRow, error)
}

type reportService struct {
	reports repository.ReportRepository
	logger  *zap.Logger
}

// NewReportService crea una nueva instancia del servicio de reportes
func NewReportService(reports repository.ReportRepository, logger *zap.Logger) ReportService {
	return &reportService{
		reports: reports,
		logger:  logger,
	}
}

// DailyReport combina ambos libros y aplica los filtros sobre el resultado acumulado
func (s *reportService) DailyReport(ctx context.Context, filter models.ReportFilter) ([]models.DailyReportRow, error) {
	incoming, err := s.reports.DailyIncomingTotals(ctx)
	if err != nil {
		s.logger.Error("❌ Error obteniendo totales de entradas", zap.Error(err))
		return nil, fmt.Errorf("error obteniendo totales de entradas: %w", err)
	}

	outgoing, err := s.reports.DailyOutgoingTotals(ctx)
	if err != nil {
		s.logger.Error("❌ Error obteniendo totales de salidas", zap.Error(err))
		return nil, fmt.Errorf("error obteniendo totales de salidas: %w", err)
	}

	rows := BuildDailyReport(incoming, outgoing, filter)
	s.logger.Debug("📊 Reporte diario generado",
		zap.Int("days_in", len(incoming)),
		zap.Int("days_out", len(outgoing)),
		zap.Int("rows", len(rows)))
	return rows, nil
}

// BuildDailyReport une los totales diarios de entradas y salidas, una fila por
// fecha en orden ascendente. Stock y no devueltos se acumulan sobre toda la
// secuencia; el filtro solo decide qué filas se devuelven.
func BuildDailyReport(incoming, outgoing []models.DailyLedgerTotals, filter models.ReportFilter) []models.DailyReportRow {
	byDate := make(map[string]*models.DailyReportRow)
	row := func(d models.Date) *models.DailyReportRow {
		key := d.String()
		r, ok := byDate[key]
		if !ok {
			r = &models.DailyReportRow{Date: d}
			byDate[key] = r
		}
		return r
	}

	for _, in := range incoming {
		r := row(in.Date)
		r.IncomingGood += in.Good
		r.IncomingLost += in.Lost
	}
	for _, out := range outgoing {
		r := row(out.Date)
		r.OutgoingReturned += out.Good
		r.OutgoingLost += out.Lost
	}

	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]models.DailyReportRow, 0, len(keys))
	stock, unreturned := 0, 0
	for _, k := range keys {
		r := byDate[k]
		r.IncomingTotal = r.IncomingGood + r.IncomingLost
		r.OutgoingTotal = r.OutgoingReturned + r.OutgoingLost

		stock += r.IncomingTotal - r.OutgoingTotal
		unreturned += r.OutgoingLost
		r.StockOnDock = stock
		r.Unreturned = unreturned
		r.ReturnPercentage = returnPercentage(r.OutgoingReturned, r.OutgoingTotal)
		_, r.Week = r.Date.ISOWeek()

		if filter.Matches(r.Date) {
			rows = append(rows, *r)
		}
	}
	return rows
}

func returnPercentage(returned, total int) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(returned)/float64(total)*100)
}
