package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Xunop/aldiaa/internal/log"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// GetSessionBlob returns the value stored under key and whether it exists.
func (s *Store) GetSessionBlob(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM session WHERE key = ?`

	var value string
	if err := s.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		log.Error("Failed to get session blob", zap.String("key", key), zap.Error(err))
		return "", false, errors.Wrapf(err, "failed to get session blob %s", key)
	}
	return value, true, nil
}

func (s *Store) SetSessionBlob(ctx context.Context, key, value string) error {
	stmt := `
		INSERT INTO session (key, value, updated_ts)
		VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(key) DO UPDATE
		SET value = EXCLUDED.value, updated_ts = EXCLUDED.updated_ts
	`

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("SetSessionBlob query: %s\nargs:\nKey:%s\n", stmt, key))

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	if _, err := s.db.ExecContext(ctx, stmt, key, value); err != nil {
		log.Error("Failed to set session blob", zap.String("key", key), zap.Error(err))
		return errors.Wrapf(err, "failed to set session blob %s", key)
	}
	return nil
}

func (s *Store) DeleteSessionBlob(ctx context.Context, key string) error {
	stmt := `DELETE FROM session WHERE key = ?`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	if _, err := s.db.ExecContext(ctx, stmt, key); err != nil {
		log.Error("Failed to delete session blob", zap.String("key", key), zap.Error(err))
		return errors.Wrapf(err, "failed to delete session blob %s", key)
	}
	return nil
}
