package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/voice-attendance/internal/config"
	"github.com/stemsi/voice-attendance/internal/database"
	"github.com/stemsi/voice-attendance/internal/model"
)

// Store persists the whole attendance state. Load is permissive: a missing
// or unreadable document yields an empty state. Save rewrites the document.
type Store interface {
	Load(ctx context.Context) (*model.State, error)
	Save(ctx context.Context, state *model.State) error
}

// NewStore opens the store selected by cfg.StoreDriver. The returned func
// releases any connection held by the store.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverFile, "":
		return NewFileStore(cfg.DataFile, log), func() {}, nil

	case config.StoreDriverRedis:
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(rdb, config.StoreKey.StateKey(cfg.StoreNamespace), log), func() { _ = rdb.Close() }, nil

	case config.StoreDriverPostgres:
		if cfg.AutoMigrate {
			if err := database.MigrateUp(cfg.DatabaseURL, log); err != nil {
				return nil, nil, err
			}
		}
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgresStore(pool, cfg.StoreNamespace, log), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// encodeState renders the state the way the file driver writes it.
func encodeState(state *model.State) ([]byte, error) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// decodeState parses a persisted document. Callers treat any error as a
// corrupt document and start empty.
func decodeState(data []byte) (*model.State, error) {
	state := model.NewState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	state.Normalize()
	return state, nil
}
