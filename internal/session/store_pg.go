package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/samber/oops"

	"resume-site/internal/shared/util"
)

// PGStore persists sessions in the sessions table. Rows are keyed by the
// SHA-256 of the token, never the token itself.
type PGStore struct {
	DB *sql.DB
}

func (s *PGStore) Load(ctx context.Context, id string) (map[string]any, error) {
	const query = `SELECT data FROM sessions WHERE id = $1 AND expires_at > now()`
	var raw []byte
	err := s.DB.QueryRowContext(ctx, query, util.HashToken(id)).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, oops.Code("SESSION_STORE_FAILED").With("operation", "load").Wrap(err)
	}
	values := make(map[string]any)
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, oops.Code("SESSION_STORE_FAILED").With("operation", "decode").Wrap(err)
	}
	return values, nil
}

func (s *PGStore) Save(ctx context.Context, id string, values map[string]any, expiresAt time.Time) error {
	data, err := json.Marshal(values)
	if err != nil {
		return oops.Code("SESSION_STORE_FAILED").With("operation", "encode").Wrap(err)
	}
	const query = `
INSERT INTO sessions (id, data, expires_at, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (id) DO UPDATE SET
  data = EXCLUDED.data,
  expires_at = EXCLUDED.expires_at,
  updated_at = now()`
	if _, err := s.DB.ExecContext(ctx, query, util.HashToken(id), data, expiresAt); err != nil {
		return oops.Code("SESSION_STORE_FAILED").With("operation", "save").Wrap(err)
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, util.HashToken(id)); err != nil {
		return oops.Code("SESSION_STORE_FAILED").With("operation", "delete").Wrap(err)
	}
	return nil
}

// DeleteExpired removes expired rows and returns how many were dropped.
func (s *PGStore) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at <= now()`
	res, err := s.DB.ExecContext(ctx, query)
	if err != nil {
		return 0, oops.Code("SESSION_STORE_FAILED").With("operation", "prune").Wrap(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

var _ Store = (*PGStore)(nil)
