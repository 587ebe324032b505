package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stemsi/voice-attendance/internal/model"
)

// PostgresStore keeps the state as a single JSON row per namespace in the
// attendance_state table.
type PostgresStore struct {
	pool      *pgxpool.Pool
	namespace string
	log       zerolog.Logger
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool, namespace string, log zerolog.Logger) *PostgresStore {
	return &PostgresStore{
		pool:      pool,
		namespace: namespace,
		log:       log.With().Str("component", "postgres_store").Str("namespace", namespace).Logger(),
	}
}

// Load reads the snapshot row. A missing row or undecodable payload yields an
// empty state; query errors are returned.
func (s *PostgresStore) Load(ctx context.Context) (*model.State, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload::text FROM attendance_state WHERE namespace = $1`, s.namespace,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewState(), nil
		}
		return nil, fmt.Errorf("select attendance_state: %w", err)
	}

	state, err := decodeState(payload)
	if err != nil {
		s.log.Warn().Err(err).Msg("Stored state corrupt, starting empty")
		return model.NewState(), nil
	}
	return state, nil
}

// Save upserts the snapshot row.
func (s *PostgresStore) Save(ctx context.Context, state *model.State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO attendance_state (namespace, payload, updated_at) VALUES ($1, $2::json, NOW())
		 ON CONFLICT (namespace) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`,
		s.namespace, string(data),
	)
	if err != nil {
		return fmt.Errorf("upsert attendance_state: %w", err)
	}
	return nil
}
