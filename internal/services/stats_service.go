package services

import (
	"context"
	"fmt"

	"pallet-service/internal/models"
	"pallet-service/internal/repository"
	"pallet-service/internal/timecodec"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Recomendaciones del tablero
const (
	RecommendationOptimize = "Optimiser le transport"
	RecommendationOK       = "Tout va bien"
)

// lostThreshold fracción de palés perdidos a partir de la cual se recomienda optimizar
var lostThreshold = decimal.RequireFromString("0.10")

// Tipos que cuentan para el saldo de cada transportista
var (
	balanceIncomingKinds = []string{models.KindReception, models.KindReturn}
	balanceOutgoingKinds = []string{models.KindShipment, models.KindRestitution}
)

// StatsService estadísticas globales del tablero
type StatsService interface {
	Compute(ctx context.Context) (*models.Statistics, error)
}

type statsService struct {
	reports  repository.ReportRepository
	carriers repository.CarrierRepository
	logger   *zap.Logger
}

// NewStatsService crea una nueva instancia del servicio de estadísticas
func NewStatsService(reports repository.ReportRepository, carriers repository.CarrierRepository, logger *zap.Logger) StatsService {
	return &statsService{
		reports:  reports,
		carriers: carriers,
		logger:   logger,
	}
}

// Compute calcula las estadísticas sobre todos los datos, sin filtros
func (s *statsService) Compute(ctx context.Context) (*models.Statistics, error) {
	planning, err := s.reports.PlanningTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo totales del planning: %w", err)
	}

	incoming, err := s.reports.IncomingTypeTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo totales de entradas: %w", err)
	}

	outgoing, err := s.reports.OutgoingTypeTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo totales de salidas: %w", err)
	}

	stats := &models.Statistics{
		TotalPallets:  planning.TotalPallets,
		PlanningCount: planning.Count,
		TotalDelay:    planning.TotalDelay,
		Incoming:      incoming,
		Outgoing:      outgoing,
	}
	if planning.Count > 0 {
		stats.AverageDelay = planning.TotalDelay / float64(planning.Count)
	}
	stats.AverageDelayStr = timecodec.FractionToTime(stats.AverageDelay)

	lost := incoming.Lost + outgoing.Lost
	stats.OptimizeTransport = shouldOptimize(lost, planning.TotalPallets)
	stats.Recommendation = RecommendationOK
	if stats.OptimizeTransport {
		stats.Recommendation = RecommendationOptimize
	}
	stats.LostRate = lostRate(lost, planning.TotalPallets)

	if err := s.fillBalances(ctx, stats); err != nil {
		return nil, err
	}

	s.logger.Debug("📊 Estadísticas calculadas",
		zap.Int("total_pallets", stats.TotalPallets),
		zap.Int("lost", lost),
		zap.Bool("optimize", stats.OptimizeTransport))
	return stats, nil
}

// fillBalances saldo por transportista: entradas buenas menos salidas buenas
func (s *statsService) fillBalances(ctx context.Context, stats *models.Statistics) error {
	carriers, err := s.carriers.ListCarriers(ctx)
	if err != nil {
		return fmt.Errorf("error obteniendo transportistas: %w", err)
	}

	in, err := s.reports.IncomingGoodByCarrier(ctx, balanceIncomingKinds)
	if err != nil {
		return fmt.Errorf("error obteniendo entradas por transportista: %w", err)
	}

	out, err := s.reports.OutgoingGoodByCarrier(ctx, balanceOutgoingKinds)
	if err != nil {
		return fmt.Errorf("error obteniendo salidas por transportista: %w", err)
	}

	stats.OwedTo = make(map[string]int)
	stats.OwedFrom = make(map[string]int)
	stats.Balances = make([]models.CarrierBalance, 0, len(carriers))

	for _, c := range carriers {
		b := models.CarrierBalance{
			Carrier:      c.Name,
			IncomingGood: in[c.Name],
			OutgoingGood: out[c.Name],
		}
		b.Balance = b.IncomingGood - b.OutgoingGood

		switch {
		case b.Balance > 0:
			stats.OwedTo[c.Name] = b.Balance
		case b.Balance < 0:
			stats.OwedFrom[c.Name] = -b.Balance
		}
		stats.Balances = append(stats.Balances, b)
	}
	return nil
}

// shouldOptimize perdidos > 10% del total de palés
func shouldOptimize(lost, totalPallets int) bool {
	return decimal.NewFromInt(int64(lost)).GreaterThan(
		decimal.NewFromInt(int64(totalPallets)).Mul(lostThreshold))
}

func lostRate(lost, totalPallets int) string {
	if totalPallets == 0 {
		return "0.00%"
	}
	rate := decimal.NewFromInt(int64(lost)).
		Div(decimal.NewFromInt(int64(totalPallets))).
		Mul(decimal.NewFromInt(100))
	return rate.StringFixed(2) + "%"
}

// StatsVersionTracker indica si los datos cambiaron desde la versión vista
type StatsVersionTracker interface {
	Changed(ctx context.Context, seen int64) (current int64, changed bool)
}
