package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pallet-service/internal/models"
)

// CarrierRepository define la interfaz para los transportistas
type CarrierRepository interface {
	// EnsureCarrier crea el transportista si no existe. Se confirma por sí
	// solo, fuera de cualquier transacción de movimiento.
	EnsureCarrier(ctx context.Context, name string) (created bool, err error)
	ListCarriers(ctx context.Context) ([]models.Carrier, error)
	CountCarriers(ctx context.Context) (int, error)
}

const (
	queryEnsureCarrier = `
		INSERT INTO carriers (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`
	queryListCarriers = `
		SELECT id, name FROM carriers ORDER BY name
	`
	queryCountCarriers = `
		SELECT COUNT(*) FROM carriers
	`
)

// carrierRepository implementa CarrierRepository
type carrierRepository struct {
	db *sql.DB
}

// NewCarrierRepository crea una nueva instancia del repository
func NewCarrierRepository(db *sql.DB) CarrierRepository {
	return &carrierRepository{db: db}
}

func (r *carrierRepository) EnsureCarrier(ctx context.Context, name string) (bool, error) {
	result, err := r.db.ExecContext(ctx, queryEnsureCarrier, name)
	if err != nil {
		return false, fmt.Errorf("failed to ensure carrier %s: %w", name, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *carrierRepository) ListCarriers(ctx context.Context) ([]models.Carrier, error) {
	rows, err := r.db.QueryContext(ctx, queryListCarriers)
	if err != nil {
		return nil, fmt.Errorf("failed to list carriers: %w", err)
	}
	defer rows.Close()

	carriers := []models.Carrier{}
	for rows.Next() {
		var c models.Carrier
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan carrier: %w", err)
		}
		carriers = append(carriers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate carriers: %w", err)
	}
	return carriers, nil
}

func (r *carrierRepository) CountCarriers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, queryCountCarriers).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count carriers: %w", err)
	}
	return count, nil
}
