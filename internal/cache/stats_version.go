package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// StatsVersionKey clave Redis con la versión de los datos del tablero
const StatsVersionKey = "stats:version"

// VersionStats contadores de comprobaciones de versión
type VersionStats struct {
	Checks    int64
	Unchanged int64
	Changed   int64
}

// StatsVersion contador compartido en Redis que sube con cada escritura.
// No guarda estadísticas: sólo indica si hay que recalcularlas.
type StatsVersion struct {
	redisClient *redis.Client
	logger      *zap.Logger

	statsMutex sync.RWMutex
	unchanged  int64
	changed    int64
}

// NewStatsVersion crea el contador de versión
func NewStatsVersion(redisClient *redis.Client, logger *zap.Logger) *StatsVersion {
	return &StatsVersion{
		redisClient: redisClient,
		logger:      logger,
	}
}

// GetStats retorna los contadores de comprobaciones
func (sv *StatsVersion) GetStats() VersionStats {
	sv.statsMutex.RLock()
	defer sv.statsMutex.RUnlock()

	return VersionStats{
		Checks:    sv.unchanged + sv.changed,
		Unchanged: sv.unchanged,
		Changed:   sv.changed,
	}
}

// Current versión actual; 0 si nunca se escribió nada
func (sv *StatsVersion) Current(ctx context.Context) (int64, error) {
	version, err := sv.redisClient.Get(ctx, StatsVersionKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read stats version: %w", err)
	}
	return version, nil
}

// Invalidate incrementa la versión tras una escritura confirmada
func (sv *StatsVersion) Invalidate(ctx context.Context) error {
	if err := sv.redisClient.Incr(ctx, StatsVersionKey).Err(); err != nil {
		return fmt.Errorf("failed to bump stats version: %w", err)
	}
	return nil
}

// Changed compara la versión vista con la actual.
// Si Redis falla se considera cambiada para no dejar de recalcular.
func (sv *StatsVersion) Changed(ctx context.Context, seen int64) (int64, bool) {
	current, err := sv.Current(ctx)
	if err != nil {
		sv.logger.Warn("⚠️ Error leyendo versión de estadísticas", zap.Error(err))
		sv.record(true)
		return seen, true
	}

	changed := current != seen
	sv.record(changed)
	return current, changed
}

func (sv *StatsVersion) record(changed bool) {
	sv.statsMutex.Lock()
	defer sv.statsMutex.Unlock()

	if changed {
		sv.changed++
	} else {
		sv.unchanged++
	}
}
