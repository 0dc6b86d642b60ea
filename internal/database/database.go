package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pallet-service/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// sqlitePragmas se añaden al DSN de SQLite si no trae parámetros propios
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// DB envuelve el pool de conexiones junto con el driver en uso
type DB struct {
	DB     *sql.DB
	Driver string
}

// NewDatabase abre la base de datos configurada (PostgreSQL o SQLite) y verifica la conexión
func NewDatabase(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	driverName, dsn := cfg.Driver, cfg.URL
	if cfg.Driver == config.DriverSQLite && !strings.Contains(dsn, "?") {
		dsn += "?" + sqlitePragmas
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configurar connection pooling
	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
	if cfg.Driver == config.DriverSQLite {
		// SQLite admite un único escritor; la conexión se mantiene abierta
		// para que una base en memoria no se pierda
		maxOpen, maxIdle = 1, 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("driver", cfg.Driver),
		zap.Int("max_open_conns", maxOpen),
		zap.Int("max_idle_conns", maxIdle),
		zap.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
	)

	return &DB{DB: db, Driver: cfg.Driver}, nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}

func (d *DB) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

// GetStats retorna estadísticas del pool de conexiones
func (d *DB) GetStats() sql.DBStats {
	return d.DB.Stats()
}
