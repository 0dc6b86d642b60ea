package services

import (
	"context"
	"fmt"
	"strings"

	"pallet-service/internal/models"
	"pallet-service/internal/repository"
	"pallet-service/internal/timecodec"

	"go.uber.org/zap"
)

// Libro en el que cae un movimiento
const (
	LedgerIncoming = "entree"
	LedgerOutgoing = "sortie"
)

// MovementService define la interfaz para registrar y consultar movimientos
type MovementService interface {
	// Registro de un movimiento (planning + entrada o salida)
	Record(ctx context.Context, req *models.RecordMovementRequest) (*models.RecordMovementResponse, error)

	// Consultas
	ListPlanning(ctx context.Context, filter models.PlanningFilter) ([]models.PlanningView, error)
	ListIncoming(ctx context.Context, filter models.LedgerFilter) ([]models.IncomingEntry, error)
	ListOutgoing(ctx context.Context, filter models.LedgerFilter) ([]models.OutgoingEntry, error)
	ListCarriers(ctx context.Context) ([]string, error)
}

// StatsInvalidator se avisa tras cada escritura confirmada
type StatsInvalidator interface {
	Invalidate(ctx context.Context) error
}

// movementService implementa MovementService
type movementService struct {
	movements    repository.MovementRepository
	carriers     repository.CarrierRepository
	invalidators []StatsInvalidator
	logger       *zap.Logger
}

// NewMovementService crea una nueva instancia del servicio
func NewMovementService(
	movements repository.MovementRepository,
	carriers repository.CarrierRepository,
	logger *zap.Logger,
	invalidators ...StatsInvalidator,
) MovementService {
	return &movementService{
		movements:    movements,
		carriers:     carriers,
		invalidators: invalidators,
		logger:       logger,
	}
}

// Record valida y guarda un movimiento.
// El transportista se crea (y confirma) antes de la transacción del movimiento,
// así que queda creado aunque la escritura posterior falle.
func (s *movementService) Record(ctx context.Context, req *models.RecordMovementRequest) (*models.RecordMovementResponse, error) {
	logger := s.logger.With(
		zap.String("operation", "record_movement"),
		zap.String("date", req.Date),
		zap.String("type_mvt", req.Kind),
	)

	if err := validateRecordRequest(req); err != nil {
		logger.Warn("❌ Movimiento rechazado", zap.Error(err))
		return nil, err
	}

	day, _ := timecodec.ParseDate(req.Date)
	weekday, week := timecodec.WeekdayAndWeek(day)
	carrier := strings.TrimSpace(req.Carrier)
	kind := strings.TrimSpace(req.Kind)
	logger = logger.With(zap.String("transporteur", carrier))

	created, err := s.carriers.EnsureCarrier(ctx, carrier)
	if err != nil {
		logger.Error("❌ Error creando transportista", zap.Error(err))
		return nil, fmt.Errorf("error creando transportista: %w", err)
	}
	if created {
		logger.Info("✅ Nuevo transportista creado")
	}

	counts := models.PalletCounts{
		EUR:      req.EUR,
		EURSize:  valueOrDefault(req.EURSize, models.DefaultEURSize),
		SHEP:     req.SHEP,
		SHEPSize: valueOrDefault(req.SHEPSize, models.DefaultSHEPSize),
		LPR:      req.LPR,
		LPRSize:  valueOrDefault(req.LPRSize, models.DefaultLPRSize),
	}
	total := counts.Good() + req.Lost
	delay := timecodec.ComputeDelay(req.PlannedTime, req.ArrivalTime)
	date := models.NewDate(day)

	planning := &models.PlannedMovement{
		Weekday:       weekday,
		Week:          week,
		Date:          date,
		PlannedTime:   timecodec.TimeToFraction(req.PlannedTime),
		Kind:          kind,
		Reference:     req.Reference,
		Carrier:       carrier,
		Comment:       req.Comment,
		Dock:          req.Dock,
		PalletCount:   total,
		ArrivalTime:   req.ArrivalTime,
		DepartureTime: req.DepartureTime,
		Delay:         delay,
	}

	data := models.RecordedMovement{
		Weekday:        weekday,
		Week:           week,
		Total:          total,
		Delay:          delay,
		DelayStr:       timecodec.FractionToTime(delay),
		CarrierCreated: created,
	}

	if models.IsIncomingKind(kind) {
		entry := &models.IncomingEntry{
			Kind:         kind,
			Week:         week,
			Date:         date,
			Carrier:      carrier,
			DocumentRef:  req.Reference,
			PalletCounts: counts,
			Lost:         req.Lost,
			Total:        total,
			Comment:      req.Comment,
		}
		err = s.movements.CreateIncomingMovement(ctx, planning, entry)
		data.Ledger, data.LedgerID = LedgerIncoming, entry.ID
	} else {
		entry := &models.OutgoingEntry{
			Kind:        kind,
			Week:        week,
			Date:        date,
			Carrier:     carrier,
			DocumentRef: req.Reference,
			Returned:    counts,
			Lost:        req.Lost,
			Total:       total,
			Comment:     req.Comment,
		}
		err = s.movements.CreateOutgoingMovement(ctx, planning, entry)
		data.Ledger, data.LedgerID = LedgerOutgoing, entry.ID
	}

	if err != nil {
		logger.Error("❌ Error registrando movimiento", zap.Error(err))
		return nil, fmt.Errorf("error registrando movimiento: %w", err)
	}
	data.PlanningID = planning.ID

	for _, inv := range s.invalidators {
		if err := inv.Invalidate(ctx); err != nil {
			logger.Warn("⚠️ Error invalidando versión de estadísticas", zap.Error(err))
		}
	}

	logger.Info("✅ Movimiento registrado",
		zap.String("ledger", data.Ledger),
		zap.Int64("planning_id", data.PlanningID),
		zap.Int("total", total),
		zap.Float64("retard", delay))

	return &models.RecordMovementResponse{
		Success: true,
		Message: "Enregistrement effectué ✅",
		Data:    data,
	}, nil
}

// validateRecordRequest valida sin tocar la base de datos
func validateRecordRequest(req *models.RecordMovementRequest) error {
	if _, ok := timecodec.ParseDate(req.Date); !ok {
		return newValidationError("date", MsgInvalidDate)
	}
	if strings.TrimSpace(req.Carrier) == "" {
		return newValidationError("transporteur", MsgMissingCarrier)
	}

	counts := []struct {
		field string
		value int
	}{
		{"palettes_eur", req.EUR},
		{"palettes_shep", req.SHEP},
		{"palettes_lpr", req.LPR},
		{"palettes_perdues", req.Lost},
	}
	for _, c := range counts {
		if c.value < 0 {
			return newValidationError(c.field, MsgNegativeCount)
		}
	}
	return nil
}

func valueOrDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// ListPlanning devuelve el planning con horas en HH:MM
func (s *movementService) ListPlanning(ctx context.Context, filter models.PlanningFilter) ([]models.PlanningView, error) {
	rows, err := s.movements.ListPlanning(ctx, filter)
	if err != nil {
		s.logger.Error("❌ Error obteniendo planning", zap.Error(err))
		return nil, fmt.Errorf("error obteniendo planning: %w", err)
	}

	views := make([]models.PlanningView, 0, len(rows))
	for _, p := range rows {
		views = append(views, models.PlanningView{
			ID:            p.ID,
			Weekday:       p.Weekday,
			Week:          p.Week,
			Date:          p.Date,
			PlannedTime:   timecodec.FractionToTime(p.PlannedTime),
			Kind:          p.Kind,
			Reference:     p.Reference,
			Carrier:       p.Carrier,
			Comment:       p.Comment,
			Dock:          p.Dock,
			PalletCount:   p.PalletCount,
			ArrivalTime:   p.ArrivalTime,
			DepartureTime: p.DepartureTime,
			Delay:         timecodec.FractionToTime(p.Delay),
		})
	}
	return views, nil
}

func (s *movementService) ListIncoming(ctx context.Context, filter models.LedgerFilter) ([]models.IncomingEntry, error) {
	entries, err := s.movements.ListIncoming(ctx, filter)
	if err != nil {
		s.logger.Error("❌ Error obteniendo entradas", zap.Error(err))
		return nil, fmt.Errorf("error obteniendo entradas: %w", err)
	}
	return entries, nil
}

func (s *movementService) ListOutgoing(ctx context.Context, filter models.LedgerFilter) ([]models.OutgoingEntry, error) {
	entries, err := s.movements.ListOutgoing(ctx, filter)
	if err != nil {
		s.logger.Error("❌ Error obteniendo salidas", zap.Error(err))
		return nil, fmt.Errorf("error obteniendo salidas: %w", err)
	}
	return entries, nil
}

// ListCarriers nombres de transportistas ordenados
func (s *movementService) ListCarriers(ctx context.Context) ([]string, error) {
	carriers, err := s.carriers.ListCarriers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo transportistas: %w", err)
	}

	names := make([]string, 0, len(carriers))
	for _, c := range carriers {
		names = append(names, c.Name)
	}
	return names, nil
}
