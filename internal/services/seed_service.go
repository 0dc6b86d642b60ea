package services

import (
	"context"
	"fmt"
	"strings"

	"pallet-service/internal/repository"

	"go.uber.org/zap"
)

// SeedCarriers inserta los transportistas iniciales solo si la tabla está vacía
func SeedCarriers(ctx context.Context, carriers repository.CarrierRepository, names []string, logger *zap.Logger) (int, error) {
	count, err := carriers.CountCarriers(ctx)
	if err != nil {
		return 0, fmt.Errorf("error contando transportistas: %w", err)
	}
	if count > 0 {
		logger.Debug("Transportistas ya presentes, sin seed", zap.Int("count", count))
		return 0, nil
	}

	created := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ok, err := carriers.EnsureCarrier(ctx, name)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	logger.Info("🚚 Transportistas iniciales creados", zap.Int("count", created))
	return created, nil
}
