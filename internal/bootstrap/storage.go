package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BlueprintCost_Go/internal/config"
	"github.com/osse101/BlueprintCost_Go/internal/database"
	"github.com/osse101/BlueprintCost_Go/internal/efficiency"
)

// Storage bundles the efficiency repository with the connections behind it.
// Pool and DB are nil for in-memory storage.
type Storage struct {
	Repo efficiency.Repository
	Pool *pgxpool.Pool
	DB   *sql.DB
}

// InitializeStorage opens the configured override store and applies migrations
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if !cfg.UsePostgres() {
		slog.Info(LogMsgStorageMemory)
		return &Storage{Repo: efficiency.NewMemoryRepository()}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, StoragePingTimeout)
	defer cancel()

	pool, err := database.NewPool(connectCtx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
	}

	db := database.OpenDB(pool)
	if err := database.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}

	slog.Info(LogMsgStoragePostgres, "host", cfg.DBHost, "database", cfg.DBName)
	return &Storage{
		Repo: efficiency.NewPostgresRepository(db),
		Pool: pool,
		DB:   db,
	}, nil
}

// Pinger returns the database pool for readiness checks, or nil for memory storage
func (s *Storage) Pinger() database.Pool {
	if s.Pool == nil {
		return nil
	}
	return s.Pool
}

// Close releases database connections. Safe on memory storage.
func (s *Storage) Close() error {
	var err error
	if s.DB != nil {
		err = s.DB.Close()
	}
	if s.Pool != nil {
		s.Pool.Close()
	}
	return err
}
