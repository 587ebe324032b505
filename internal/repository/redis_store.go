package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/voice-attendance/internal/model"
)

// RedisStore keeps the state as one JSON string value under a single key.
type RedisStore struct {
	rdb *redis.Client
	key string
	log zerolog.Logger
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(rdb *redis.Client, key string, log zerolog.Logger) *RedisStore {
	return &RedisStore{
		rdb: rdb,
		key: key,
		log: log.With().Str("component", "redis_store").Str("key", key).Logger(),
	}
}

// Load fetches the state. A missing key or an undecodable value yields an
// empty state; connection errors are returned.
func (s *RedisStore) Load(ctx context.Context) (*model.State, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.NewState(), nil
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	state, err := decodeState(data)
	if err != nil {
		s.log.Warn().Err(err).Msg("Stored state corrupt, starting empty")
		return model.NewState(), nil
	}
	return state, nil
}

// Save overwrites the key with the encoded state, without expiry.
func (s *RedisStore) Save(ctx context.Context, state *model.State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
