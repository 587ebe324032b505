package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/stemsi/voice-attendance/internal/model"
)

// FileStore keeps the state in a single JSON file.
type FileStore struct {
	path string
	log  zerolog.Logger
}

// NewFileStore creates a new FileStore.
func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{
		path: path,
		log:  log.With().Str("component", "file_store").Str("path", path).Logger(),
	}
}

// Load reads the state file. A missing or corrupt file yields an empty state.
func (s *FileStore) Load(_ context.Context) (*model.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Info().Msg("No data file, starting empty")
			return model.NewState(), nil
		}
		s.log.Warn().Err(err).Msg("Data file unreadable, starting empty")
		return model.NewState(), nil
	}

	state, err := decodeState(data)
	if err != nil {
		s.log.Warn().Err(err).Msg("Data file corrupt, starting empty")
		return model.NewState(), nil
	}

	s.log.Info().
		Int("students", state.Students.Len()).
		Int("days", len(state.AttendanceRecords)).
		Msg("State loaded")
	return state, nil
}

// Save rewrites the whole file through a temp file and rename, so a crash
// mid-write leaves the previous file intact.
func (s *FileStore) Save(_ context.Context, state *model.State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace data file: %w", err)
	}

	s.log.Debug().Int("bytes", len(data)).Msg("State saved")
	return nil
}
