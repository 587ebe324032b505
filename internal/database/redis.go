package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/voice-attendance/internal/config"
	"github.com/stemsi/voice-attendance/internal/logger"
)

// ErrNoRedisURL is returned when the redis driver is selected without REDIS_URL.
var ErrNoRedisURL = errors.New("STORE_DRIVER=redis requires REDIS_URL")

// NewRedisClient connects to the Redis instance holding the attendance state key.
func NewRedisClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, ErrNoRedisURL
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opt.ClientName = logger.AppName

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opt.Addr, err)
	}

	log.Info().
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Str("key", config.StoreKey.StateKey(cfg.StoreNamespace)).
		Msg("Attendance store connected (redis)")

	return rdb, nil
}
