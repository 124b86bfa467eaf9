package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Xunop/aldiaa/internal/log"
	"github.com/Xunop/aldiaa/internal/store"
	"github.com/pkg/errors"
)

// UpsertMigrationHistory records that the schema of a version is in place.
func (d *DB) UpsertMigrationHistory(ctx context.Context, upsert *store.UpsertMigrationHistory) (*store.MigrationHistory, error) {
	stmt := `
		INSERT INTO migration_history (version)
		VALUES (?)
		ON CONFLICT(version) DO UPDATE SET version = EXCLUDED.version
		RETURNING version, created_ts
	`

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %s\n", stmt, upsert.Version))

	history := &store.MigrationHistory{}
	if err := d.DB.QueryRowContext(ctx, stmt, upsert.Version).Scan(&history.Version, &history.CreatedTs); err != nil {
		return nil, errors.Wrapf(err, "failed to record schema version %s", upsert.Version)
	}
	return history, nil
}

// FindMigrationHistoryList returns the recorded schema versions, newest record first.
func (d *DB) FindMigrationHistoryList(ctx context.Context, _ *store.FindMigrationHistory) ([]*store.MigrationHistory, error) {
	query := `SELECT version, created_ts FROM migration_history ORDER BY created_ts DESC`
	rows, err := d.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query migration history")
	}
	defer rows.Close()

	list := []*store.MigrationHistory{}
	for rows.Next() {
		history := &store.MigrationHistory{}
		if err := rows.Scan(&history.Version, &history.CreatedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan migration history")
		}
		list = append(list, history)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read migration history")
	}
	return list, nil
}

// CheckTableExists reports whether the sqlite schema has a table named tableName.
func (d *DB) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	query := `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`

	var name string
	err := d.DB.QueryRowContext(ctx, query, tableName).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "failed to look up table %s", tableName)
	}
	return true, nil
}
