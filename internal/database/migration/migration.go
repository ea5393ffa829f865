package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

// steps create the single table behind kvstore.Postgres. Items are stored as
// DynamoDB-JSON documents keyed by logical table name and partition key.
var steps = []migrationStep{
	{
		Name: "create_table_kv_items",
		SQL: `CREATE TABLE IF NOT EXISTS kv_items (
  tbl        TEXT        NOT NULL,
  pk         TEXT        NOT NULL,
  item       JSONB       NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (tbl, pk)
);`,
	},
	{
		Name: "create_index_kv_items_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_kv_items_updated_at ON kv_items (updated_at);`,
	},
}

const sentinelQuery = "SELECT to_regclass('public.kv_items') IS NOT NULL"

// EnsureMigrated creates the kv_items schema unless it already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *slog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With("component", "database", "db_host", dbHost)
	log.InfoContext(ctx, "db_migration_check", "status", "starting")

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.ErrorContext(ctx, "db_migration_failed",
			"status", "error",
			"error_message", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}
	if exists {
		log.InfoContext(ctx, "db_migration_skip",
			"status", "success",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.ErrorContext(ctx, "db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.InfoContext(ctx, "db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.InfoContext(ctx, "db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
