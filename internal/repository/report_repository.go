package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pallet-service/internal/models"
)

// ReportRepository agregaciones SQL sobre el planning y los libros
type ReportRepository interface {
	DailyIncomingTotals(ctx context.Context) ([]models.DailyLedgerTotals, error)
	DailyOutgoingTotals(ctx context.Context) ([]models.DailyLedgerTotals, error)

	PlanningTotals(ctx context.Context) (models.PlanningTotals, error)
	IncomingTypeTotals(ctx context.Context) (models.LedgerTypeTotals, error)
	OutgoingTypeTotals(ctx context.Context) (models.LedgerTypeTotals, error)

	// Palés en buen estado por transportista, solo para los tipos de movimiento dados
	IncomingGoodByCarrier(ctx context.Context, kinds []string) (map[string]int, error)
	OutgoingGoodByCarrier(ctx context.Context, kinds []string) (map[string]int, error)
}

const (
	queryDailyIncoming = `
		SELECT date, COALESCE(SUM(eur + shep + lpr), 0), COALESCE(SUM(lost), 0)
		FROM incoming_entries
		GROUP BY date
		ORDER BY date
	`
	queryDailyOutgoing = `
		SELECT date, COALESCE(SUM(eur_returned + shep_returned + lpr_returned), 0), COALESCE(SUM(lost), 0)
		FROM outgoing_entries
		GROUP BY date
		ORDER BY date
	`
	queryPlanningTotals = `
		SELECT COUNT(*), COALESCE(SUM(pallet_count), 0), COALESCE(SUM(delay), 0)
		FROM planning
	`
	queryIncomingTypeTotals = `
		SELECT COALESCE(SUM(eur), 0), COALESCE(SUM(shep), 0), COALESCE(SUM(lpr), 0), COALESCE(SUM(lost), 0)
		FROM incoming_entries
	`
	queryOutgoingTypeTotals = `
		SELECT COALESCE(SUM(eur_returned), 0), COALESCE(SUM(shep_returned), 0),
			   COALESCE(SUM(lpr_returned), 0), COALESCE(SUM(lost), 0)
		FROM outgoing_entries
	`
	queryIncomingByCarrier = `
		SELECT carrier, COALESCE(SUM(eur + shep + lpr), 0)
		FROM incoming_entries
		WHERE kind IN `
	queryOutgoingByCarrier = `
		SELECT carrier, COALESCE(SUM(eur_returned + shep_returned + lpr_returned), 0)
		FROM outgoing_entries
		WHERE kind IN `
	groupByCarrier = ` GROUP BY carrier`
)

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) DailyIncomingTotals(ctx context.Context) ([]models.DailyLedgerTotals, error) {
	return r.dailyTotals(ctx, queryDailyIncoming, "incoming")
}

func (r *reportRepository) DailyOutgoingTotals(ctx context.Context) ([]models.DailyLedgerTotals, error) {
	return r.dailyTotals(ctx, queryDailyOutgoing, "outgoing")
}

func (r *reportRepository) dailyTotals(ctx context.Context, query, ledger string) ([]models.DailyLedgerTotals, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily %s totals: %w", ledger, err)
	}
	defer rows.Close()

	totals := []models.DailyLedgerTotals{}
	for rows.Next() {
		var t models.DailyLedgerTotals
		if err := rows.Scan(&t.Date, &t.Good, &t.Lost); err != nil {
			return nil, fmt.Errorf("failed to scan daily %s totals: %w", ledger, err)
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily %s totals: %w", ledger, err)
	}
	return totals, nil
}

func (r *reportRepository) PlanningTotals(ctx context.Context) (models.PlanningTotals, error) {
	var t models.PlanningTotals
	err := r.db.QueryRowContext(ctx, queryPlanningTotals).Scan(&t.Count, &t.TotalPallets, &t.TotalDelay)
	if err != nil {
		return t, fmt.Errorf("failed to get planning totals: %w", err)
	}
	return t, nil
}

func (r *reportRepository) IncomingTypeTotals(ctx context.Context) (models.LedgerTypeTotals, error) {
	return r.typeTotals(ctx, queryIncomingTypeTotals, "incoming")
}

func (r *reportRepository) OutgoingTypeTotals(ctx context.Context) (models.LedgerTypeTotals, error) {
	return r.typeTotals(ctx, queryOutgoingTypeTotals, "outgoing")
}

func (r *reportRepository) typeTotals(ctx context.Context, query, ledger string) (models.LedgerTypeTotals, error) {
	var t models.LedgerTypeTotals
	if err := r.db.QueryRowContext(ctx, query).Scan(&t.EUR, &t.SHEP, &t.LPR, &t.Lost); err != nil {
		return t, fmt.Errorf("failed to get %s type totals: %w", ledger, err)
	}
	return t, nil
}

func (r *reportRepository) IncomingGoodByCarrier(ctx context.Context, kinds []string) (map[string]int, error) {
	return r.goodByCarrier(ctx, queryIncomingByCarrier, "incoming", kinds)
}

func (r *reportRepository) OutgoingGoodByCarrier(ctx context.Context, kinds []string) (map[string]int, error) {
	return r.goodByCarrier(ctx, queryOutgoingByCarrier, "outgoing", kinds)
}

func (r *reportRepository) goodByCarrier(ctx context.Context, query, ledger string, kinds []string) (map[string]int, error) {
	result := make(map[string]int)
	if len(kinds) == 0 {
		return result, nil
	}

	args := make([]interface{}, len(kinds))
	for i, kind := range kinds {
		args[i] = kind
	}

	rows, err := r.db.QueryContext(ctx, query+inPlaceholders(1, len(kinds))+groupByCarrier, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s totals by carrier: %w", ledger, err)
	}
	defer rows.Close()

	for rows.Next() {
		var carrier string
		var good int
		if err := rows.Scan(&carrier, &good); err != nil {
			return nil, fmt.Errorf("failed to scan %s carrier totals: %w", ledger, err)
		}
		result[carrier] = good
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s carrier totals: %w", ledger, err)
	}
	return result, nil
}
