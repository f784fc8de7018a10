package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists sessions as JSONB rows, with the fields the stats
// queries need lifted into columns.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const sessionsSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id            TEXT PRIMARY KEY,
	data          JSONB NOT NULL,
	scam_detected BOOLEAN NOT NULL DEFAULT FALSE,
	status        TEXT NOT NULL DEFAULT 'active',
	intel_items   INTEGER NOT NULL DEFAULT 0,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// NewPostgresStore connects to the given DSN and ensures the schema exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if _, err := pool.Exec(ctx, sessionsSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (p *PostgresStore) Get(ctx context.Context, id string) (*Session, error) {
	var s *Session
	err := withRetry(ctx, "postgres get", func() error {
		var raw []byte
		err := p.pool.QueryRow(ctx, `SELECT data FROM sessions WHERE id = $1`, id).Scan(&raw)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var decoded Session
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return fmt.Errorf("decode session %s: %w", id, err)
		}
		s = &decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (p *PostgresStore) Save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}

	return withRetry(ctx, "postgres save", func() error {
		_, err := p.pool.Exec(ctx, `
			INSERT INTO sessions (id, data, scam_detected, status, intel_items, updated_at)
			VALUES ($1, $2, $3, $4, $5, now())
			ON CONFLICT (id) DO UPDATE SET
				data = EXCLUDED.data,
				scam_detected = EXCLUDED.scam_detected,
				status = EXCLUDED.status,
				intel_items = EXCLUDED.intel_items,
				updated_at = now()`,
			s.ID, raw, s.ScamDetected, string(s.Status), s.Intelligence.TotalItems())
		return err
	})
}

func (p *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := p.pool.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE status = 'active'),
		       count(*) FILTER (WHERE scam_detected),
		       COALESCE(sum(intel_items), 0)
		FROM sessions`).
		Scan(&st.TotalSessions, &st.ActiveSessions, &st.ScamsDetected, &st.IntelItems)
	if err != nil {
		return Stats{}, fmt.Errorf("postgres stats: %w", err)
	}
	return st, nil
}

func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}
