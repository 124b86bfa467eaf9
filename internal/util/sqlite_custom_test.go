package util

import (
	"database/sql"
	"testing"
)

func TestNormalizeTitleFunction(t *testing.T) {
	withDB := func(test func(db *sql.DB)) {
		db, err := sql.Open("sqlite", ":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		test(db)
	}

	t.Run("Test folding", func(tt *testing.T) {
		withDB(func(db *sql.DB) {
			if _, err := db.Exec("CREATE TABLE test (id INTEGER, value TEXT); INSERT INTO test VALUES (1, '  Ökonomie  '), (2, 'ÖKONOMIE'), (3, 'other'), (4, NULL)"); err != nil {
				tt.Fatalf("failed to create table: %v", err)
			}
			var count int
			if err := db.QueryRow("SELECT COUNT(*) FROM test WHERE normalize_title(value) = ?", "ökonomie").Scan(&count); err != nil {
				tt.Fatalf("failed to query: %v", err)
			}
			if count != 2 {
				tt.Fatalf("expected 2 rows, got %d", count)
			}
		})
	})

	t.Run("Test null", func(tt *testing.T) {
		withDB(func(db *sql.DB) {
			var value string
			if err := db.QueryRow("SELECT normalize_title(NULL)").Scan(&value); err != nil {
				tt.Fatalf("failed to query: %v", err)
			}
			if value != "" {
				tt.Fatalf("expected empty string, got %q", value)
			}
		})
	})
}
