package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pallet-service/internal/models"
)

// MovementRepository define la interfaz para el planning y los libros de entradas/salidas
type MovementRepository interface {
	// Escritura atómica: planning + registro del libro correspondiente
	CreateIncomingMovement(ctx context.Context, planning *models.PlannedMovement, entry *models.IncomingEntry) error
	CreateOutgoingMovement(ctx context.Context, planning *models.PlannedMovement, entry *models.OutgoingEntry) error

	// Consultas con filtros
	ListPlanning(ctx context.Context, filter models.PlanningFilter) ([]models.PlannedMovement, error)
	ListIncoming(ctx context.Context, filter models.LedgerFilter) ([]models.IncomingEntry, error)
	ListOutgoing(ctx context.Context, filter models.LedgerFilter) ([]models.OutgoingEntry, error)
}

const (
	queryInsertPlanning = `
		INSERT INTO planning
		(weekday, week, date, planned_time, kind, reference, carrier, comment,
		 dock, pallet_count, arrival_time, departure_time, delay)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	queryInsertIncoming = `
		INSERT INTO incoming_entries
		(kind, week, date, carrier, document_ref, eur, eur_size, shep, shep_size,
		 lpr, lpr_size, lost, total, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	queryInsertOutgoing = `
		INSERT INTO outgoing_entries
		(kind, week, date, carrier, document_ref, eur_returned, eur_size, shep_returned, shep_size,
		 lpr_returned, lpr_size, lost, total, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	querySelectPlanning = `
		SELECT id, weekday, week, date, planned_time, kind, reference, carrier, comment,
			   dock, pallet_count, arrival_time, departure_time, delay
		FROM planning`
	querySelectIncoming = `
		SELECT id, kind, week, date, carrier, document_ref, eur, eur_size, shep, shep_size,
			   lpr, lpr_size, lost, total, comment
		FROM incoming_entries`
	querySelectOutgoing = `
		SELECT id, kind, week, date, carrier, document_ref, eur_returned, eur_size,
			   shep_returned, shep_size, lpr_returned, lpr_size, lost, total, comment
		FROM outgoing_entries`
	orderByDate = ` ORDER BY date, id`
)

// movementRepository implementa MovementRepository
type movementRepository struct {
	db *sql.DB
}

// NewMovementRepository crea una nueva instancia del repository
func NewMovementRepository(db *sql.DB) MovementRepository {
	return &movementRepository{db: db}
}

// CreateIncomingMovement guarda planning y entrada en una transacción
func (r *movementRepository) CreateIncomingMovement(ctx context.Context, planning *models.PlannedMovement, entry *models.IncomingEntry) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if err := insertPlanning(ctx, tx, planning); err != nil {
			return err
		}

		err := tx.QueryRowContext(ctx, queryInsertIncoming,
			entry.Kind, entry.Week, entry.Date, entry.Carrier, entry.DocumentRef,
			entry.EUR, entry.EURSize, entry.SHEP, entry.SHEPSize, entry.LPR, entry.LPRSize,
			entry.Lost, entry.Total, entry.Comment,
		).Scan(&entry.ID)
		if err != nil {
			return fmt.Errorf("failed to create incoming entry: %w", err)
		}
		return nil
	})
}

// CreateOutgoingMovement guarda planning y salida en una transacción
func (r *movementRepository) CreateOutgoingMovement(ctx context.Context, planning *models.PlannedMovement, entry *models.OutgoingEntry) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if err := insertPlanning(ctx, tx, planning); err != nil {
			return err
		}

		returned := entry.Returned
		err := tx.QueryRowContext(ctx, queryInsertOutgoing,
			entry.Kind, entry.Week, entry.Date, entry.Carrier, entry.DocumentRef,
			returned.EUR, returned.EURSize, returned.SHEP, returned.SHEPSize, returned.LPR, returned.LPRSize,
			entry.Lost, entry.Total, entry.Comment,
		).Scan(&entry.ID)
		if err != nil {
			return fmt.Errorf("failed to create outgoing entry: %w", err)
		}
		return nil
	})
}

// inTx ejecuta fn en una transacción; cualquier error hace rollback completo
func (r *movementRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit movement: %w", err)
	}
	return nil
}

func insertPlanning(ctx context.Context, tx *sql.Tx, p *models.PlannedMovement) error {
	err := tx.QueryRowContext(ctx, queryInsertPlanning,
		p.Weekday, p.Week, p.Date, p.PlannedTime, p.Kind, p.Reference, p.Carrier, p.Comment,
		p.Dock, p.PalletCount, p.ArrivalTime, p.DepartureTime, p.Delay,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create planning: %w", err)
	}
	return nil
}

// ListPlanning obtiene el planning con filtros
func (r *movementRepository) ListPlanning(ctx context.Context, filter models.PlanningFilter) ([]models.PlannedMovement, error) {
	var where whereBuilder
	if filter.Kind != "" {
		where.add("kind = $%d", filter.Kind)
	}
	if filter.Carrier != "" {
		where.add("carrier = $%d", filter.Carrier)
	}
	where.addDateRange(filter.DateFrom, filter.DateTo)
	if filter.Dock != "" {
		where.add("dock = $%d", filter.Dock)
	}
	if filter.Week != nil {
		where.add("week = $%d", *filter.Week)
	}

	rows, err := r.db.QueryContext(ctx, querySelectPlanning+where.String()+orderByDate, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list planning: %w", err)
	}
	defer rows.Close()

	result := []models.PlannedMovement{}
	for rows.Next() {
		var p models.PlannedMovement
		err := rows.Scan(
			&p.ID, &p.Weekday, &p.Week, &p.Date, &p.PlannedTime, &p.Kind, &p.Reference,
			&p.Carrier, &p.Comment, &p.Dock, &p.PalletCount, &p.ArrivalTime, &p.DepartureTime, &p.Delay,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planning: %w", err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate planning: %w", err)
	}
	return result, nil
}

// ListIncoming obtiene las entradas con filtros
func (r *movementRepository) ListIncoming(ctx context.Context, filter models.LedgerFilter) ([]models.IncomingEntry, error) {
	where := ledgerWhere(filter)

	rows, err := r.db.QueryContext(ctx, querySelectIncoming+where.String()+orderByDate, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incoming entries: %w", err)
	}
	defer rows.Close()

	result := []models.IncomingEntry{}
	for rows.Next() {
		var e models.IncomingEntry
		err := rows.Scan(
			&e.ID, &e.Kind, &e.Week, &e.Date, &e.Carrier, &e.DocumentRef,
			&e.EUR, &e.EURSize, &e.SHEP, &e.SHEPSize, &e.LPR, &e.LPRSize,
			&e.Lost, &e.Total, &e.Comment,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incoming entry: %w", err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incoming entries: %w", err)
	}
	return result, nil
}

// ListOutgoing obtiene las salidas con filtros
func (r *movementRepository) ListOutgoing(ctx context.Context, filter models.LedgerFilter) ([]models.OutgoingEntry, error) {
	where := ledgerWhere(filter)

	rows, err := r.db.QueryContext(ctx, querySelectOutgoing+where.String()+orderByDate, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list outgoing entries: %w", err)
	}
	defer rows.Close()

	result := []models.OutgoingEntry{}
	for rows.Next() {
		var e models.OutgoingEntry
		err := rows.Scan(
			&e.ID, &e.Kind, &e.Week, &e.Date, &e.Carrier, &e.DocumentRef,
			&e.Returned.EUR, &e.Returned.EURSize, &e.Returned.SHEP, &e.Returned.SHEPSize,
			&e.Returned.LPR, &e.Returned.LPRSize, &e.Lost, &e.Total, &e.Comment,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outgoing entry: %w", err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outgoing entries: %w", err)
	}
	return result, nil
}

func ledgerWhere(filter models.LedgerFilter) *whereBuilder {
	where := &whereBuilder{}
	if filter.Carrier != "" {
		where.add("carrier = $%d", filter.Carrier)
	}
	where.addDateRange(filter.DateFrom, filter.DateTo)
	if filter.Week != nil {
		where.add("week = $%d", *filter.Week)
	}
	return where
}
