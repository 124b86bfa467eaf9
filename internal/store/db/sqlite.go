package db // import "github.com/Xunop/aldiaa/internal/store/db"

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Xunop/aldiaa/internal/log"
	"github.com/Xunop/aldiaa/internal/store"
	"github.com/Xunop/aldiaa/internal/version"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
	// path is the database file, empty for in-memory databases
	path string
}

// NewDB opens the record store. Nothing touches the file until the first
// query, so opening is cheap and can be repeated.
func NewDB(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("Database URL is required")
	}

	d, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: writes are serialized and a :memory: database stays the same database.
	d.SetMaxOpenConns(1)

	return &DB{DB: d, path: filePath(dsn)}, nil
}

func filePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.Contains(path, ":memory:") {
		return ""
	}
	return path
}

func (d *DB) Close() error {
	return d.DB.Close()
}

//go:embed migration
var migrationFS embed.FS

const latestSchemaFileName = "LATEST_SCHEMA.sql"

// Migrate creates the schema when absent and applies the missing minor
// version migrations otherwise.
func (d *DB) Migrate(ctx context.Context) error {
	currentVersion := version.GetCurrentVersion()

	exist, err := d.CheckTableExists(ctx, "migration_history")
	if err != nil {
		return errors.Wrap(err, "failed to check database table")
	}
	if !exist {
		// Fresh database, create it with the latest schema
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if _, err := d.UpsertMigrationHistory(ctx, &store.UpsertMigrationHistory{
			Version: version.GetSchemaVersion(currentVersion),
		}); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		log.Info("Database created", zap.String("version", currentVersion))
		return nil
	}

	migrationHistoryList, err := d.FindMigrationHistoryList(ctx, &store.FindMigrationHistory{})
	if err != nil {
		return errors.Wrap(err, "failed to find migration history list")
	}
	if len(migrationHistoryList) == 0 {
		// The table exists but nothing was recorded, the schema is whatever the
		// first version created.
		migrationHistoryList = append(migrationHistoryList, &store.MigrationHistory{Version: "0.0.0"})
	}

	migrationHistoryVersionList := []string{}
	for _, migrationHistory := range migrationHistoryList {
		migrationHistoryVersionList = append(migrationHistoryVersionList, migrationHistory.Version)
	}
	sort.Sort(version.SortVersion(migrationHistoryVersionList))
	latestMigrationHistoryVersion := migrationHistoryVersionList[len(migrationHistoryVersionList)-1]

	if !version.IsVersionGreaterThan(version.GetSchemaVersion(currentVersion), latestMigrationHistoryVersion) {
		return nil
	}

	backupPath, err := d.backup()
	if err != nil {
		return err
	}

	log.Info("Start migration",
		zap.String("from", latestMigrationHistoryVersion),
		zap.String("to", currentVersion))
	for _, minorVersion := range getMinorVersionList() {
		// Patches never change the schema
		normalizedVersion := minorVersion + ".0"
		if version.IsVersionGreaterThan(normalizedVersion, latestMigrationHistoryVersion) && version.IsVersionGreaterOrEqualThan(currentVersion, normalizedVersion) {
			log.Info("Applying migration", zap.String("version", normalizedVersion))
			if err := d.applyMigrationForMinorVersion(ctx, minorVersion); err != nil {
				return errors.Wrap(err, "failed to apply minor version migration")
			}
		}
	}
	log.Info("End migration")

	// Remove the created backup db file after migrate succeed.
	if backupPath != "" {
		if err := os.Remove(backupPath); err != nil {
			log.Warn("Failed to remove backup database file", zap.String("path", backupPath), zap.Error(err))
		}
	}
	return nil
}

// backup copies the database file next to itself and returns the copy's path.
func (d *DB) backup() (string, error) {
	if d.path == "" {
		return "", nil
	}
	rawBytes, err := os.ReadFile(d.path)
	if err != nil {
		return "", errors.Wrap(err, "failed to read raw database file")
	}
	backupPath := filepath.Join(filepath.Dir(d.path),
		fmt.Sprintf("aldiaa_%s_%d_backup.db", version.GetCurrentVersion(), time.Now().Unix()))
	if err := os.WriteFile(backupPath, rawBytes, 0644); err != nil {
		return "", errors.Wrap(err, "failed to write backup database file")
	}
	log.Info("Backup database file", zap.String("path", backupPath))
	return backupPath, nil
}

func (d *DB) applyLatestSchema(ctx context.Context) error {
	latestSchemaPath := fmt.Sprintf("migration/%s", latestSchemaFileName)
	buf, err := migrationFS.ReadFile(latestSchemaPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file: %q", latestSchemaPath)
	}

	stmt := string(buf)
	if err := d.execute(ctx, stmt); err != nil {
		return errors.Wrapf(err, "failed to apply latest schema: %s", stmt)
	}
	return nil
}

func (d *DB) applyMigrationForMinorVersion(ctx context.Context, minorVersion string) error {
	filenames, err := fs.Glob(migrationFS, fmt.Sprintf("migration/%s/*.sql", minorVersion))
	if err != nil {
		return errors.Wrapf(err, "Failed to find migration files for version %s", minorVersion)
	}

	// The filename files are sorted by name, so that they are applied in order.
	// 00001__example.sql, 00002__example.sql, ...
	sort.Strings(filenames)
	for _, filename := range filenames {
		buf, err := migrationFS.ReadFile(filename)
		if err != nil {
			return errors.Wrapf(err, "Failed to read migration file: %q", filename)
		}
		stmt := string(buf)
		if err := d.execute(ctx, stmt); err != nil {
			return errors.Wrapf(err, "Failed to apply migration: %s", stmt)
		}
	}

	// Upsert the newest version to migration_history.
	version := minorVersion + ".0"
	if _, err := d.UpsertMigrationHistory(ctx, &store.UpsertMigrationHistory{
		Version: version,
	}); err != nil {
		return errors.Wrapf(err, "Failed to upsert migration history for version %s", version)
	}

	return nil
}

// execute runs a single SQL statement within a transaction.
func (d *DB) execute(ctx context.Context, stmt string) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}

	return tx.Commit()
}

// minorDirRegexp is a regular expression for minor version directory.
var minorDirRegexp = regexp.MustCompile(`^migration/[0-9]+\.[0-9]+$`)

func getMinorVersionList() []string {
	minorVersionList := []string{}

	if err := fs.WalkDir(migrationFS, "migration", func(path string, file fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if file.IsDir() && minorDirRegexp.MatchString(path) {
			minorVersionList = append(minorVersionList, file.Name())
		}

		return nil
	}); err != nil {
		panic(err)
	}

	sort.Sort(version.SortVersion(minorVersionList))

	return minorVersionList
}
