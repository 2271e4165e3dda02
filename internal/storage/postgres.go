package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// pgExecutor is the part of *pgxpool.Pool the slot needs.
type pgExecutor interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresSlot keeps the snapshot as one row of the snapshots table,
// keyed by slot name. The payload is stored as TEXT so it round-trips
// byte for byte.
type PostgresSlot struct {
	logger zerolog.Logger
	db     pgExecutor
	close  func()
	name   string
}

func NewPostgresSlot(logger zerolog.Logger, pool *pgxpool.Pool, name string) *PostgresSlot {
	return newPostgresSlot(logger, pool, pool.Close, name)
}

func newPostgresSlot(logger zerolog.Logger, db pgExecutor, closeFn func(), name string) *PostgresSlot {
	return &PostgresSlot{
		logger: logger,
		db:     db,
		close:  closeFn,
		name:   name,
	}
}

func (s *PostgresSlot) Name() string {
	return s.name
}

func (s *PostgresSlot) Load(ctx context.Context) ([]byte, bool, error) {
	const selectSnapshotQuery = `
SELECT payload
FROM snapshots
WHERE name = $1
`
	var payload string
	err := s.db.QueryRow(ctx, selectSnapshotQuery, s.name).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			s.logger.Debug().
				Str("slot", s.name).
				Msg("no snapshot row")
			return nil, false, nil
		}

		s.logger.Error().
			Err(err).
			Str("slot", s.name).
			Msg("failed to select snapshot")
		return nil, false, err
	}

	s.logger.Debug().
		Str("slot", s.name).
		Int("bytes", len(payload)).
		Msg("selected snapshot")
	return []byte(payload), true, nil
}

func (s *PostgresSlot) Save(ctx context.Context, payload []byte) error {
	err := s.upsert(ctx, payload)
	if err != nil && isUndefinedTable(err) {
		s.logger.Warn().
			Str("slot", s.name).
			Msg("snapshots table missing, creating it")

		err = s.createTable(ctx)
		if err == nil {
			err = s.upsert(ctx, payload)
		}
	}
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("slot", s.name).
			Msg("failed to save snapshot")
		return err
	}

	s.logger.Debug().
		Str("slot", s.name).
		Int("bytes", len(payload)).
		Msg("saved snapshot")
	return nil
}

func (s *PostgresSlot) upsert(ctx context.Context, payload []byte) error {
	const upsertSnapshotQuery = `
INSERT INTO snapshots (name,
                       payload,
                       updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE
SET payload = EXCLUDED.payload,
    updated_at = EXCLUDED.updated_at
`
	_, err := s.db.Exec(ctx, upsertSnapshotQuery, s.name, string(payload), time.Now().UTC())
	return err
}

func (s *PostgresSlot) createTable(ctx context.Context) error {
	const createSnapshotsTableQuery = `
CREATE TABLE IF NOT EXISTS snapshots
(
    name       TEXT PRIMARY KEY,
    payload    TEXT        NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)
`
	_, err := s.db.Exec(ctx, createSnapshotsTableQuery)
	return err
}

func (s *PostgresSlot) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable
}
