package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileSlot keeps the snapshot in <dir>/<name>.json.
type FileSlot struct {
	logger zerolog.Logger
	name   string
	path   string
}

func NewFileSlot(logger zerolog.Logger, dir, name string) (*FileSlot, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	return &FileSlot{
		logger: logger,
		name:   name,
		path:   filepath.Join(dir, name+".json"),
	}, nil
}

func (s *FileSlot) Name() string {
	return s.name
}

func (s *FileSlot) Path() string {
	return s.path
}

func (s *FileSlot) Load(_ context.Context) ([]byte, bool, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug().
				Str("path", s.path).
				Msg("no snapshot file")
			return nil, false, nil
		}

		s.logger.Error().
			Err(err).
			Str("path", s.path).
			Msg("failed to read snapshot file")
		return nil, false, err
	}

	s.logger.Debug().
		Str("path", s.path).
		Int("bytes", len(b)).
		Msg("read snapshot file")
	return b, true, nil
}

// Save writes to a temp file in the same directory and renames it over
// the old snapshot, so a crash never leaves a half-written file behind.
func (s *FileSlot) Save(_ context.Context, payload []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), s.name+".*.tmp")
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create temp snapshot file")
		return err
	}
	tmpPath := tmp.Name()

	_, err = tmp.Write(payload)
	if err == nil {
		err = tmp.Close()
	} else {
		_ = tmp.Close()
	}
	if err == nil {
		err = os.Rename(tmpPath, s.path)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		s.logger.Error().
			Err(err).
			Str("path", s.path).
			Msg("failed to write snapshot file")
		return err
	}

	s.logger.Debug().
		Str("path", s.path).
		Int("bytes", len(payload)).
		Msg("wrote snapshot file")
	return nil
}

func (s *FileSlot) Close() error {
	return nil
}
