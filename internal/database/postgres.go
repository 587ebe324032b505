package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stemsi/voice-attendance/internal/config"
	"github.com/stemsi/voice-attendance/internal/logger"
)

// ErrNoDatabaseURL is returned when the postgres driver is selected without DATABASE_URL.
var ErrNoDatabaseURL = errors.New("STORE_DRIVER=postgres requires DATABASE_URL")

// NewPostgresPool opens the pool backing the attendance snapshot table.
// The whole program saves one row at a time, so the pool stays small.
func NewPostgresPool(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, ErrNoDatabaseURL
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolCfg.MaxConns = max(cfg.MaxDBConns, 1)
	poolCfg.ConnConfig.RuntimeParams["application_name"] = logger.AppName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping attendance database %s: %w", poolCfg.ConnConfig.Database, err)
	}

	log.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Str("database", poolCfg.ConnConfig.Database).
		Str("namespace", cfg.StoreNamespace).
		Int32("max_conns", poolCfg.MaxConns).
		Msg("Attendance store connected (postgres)")

	return pool, nil
}
