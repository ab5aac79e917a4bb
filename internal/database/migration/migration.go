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

var steps = []migrationStep{
	{
		Name: "create_table_ask_events",
		SQL: `CREATE TABLE IF NOT EXISTS ask_events (
  id             UUID        PRIMARY KEY,
  doc_id         TEXT        NOT NULL,
  question_chars INTEGER     NOT NULL CHECK (question_chars >= 0),
  answer_chars   INTEGER     NOT NULL CHECK (answer_chars >= 0),
  outcome        TEXT        NOT NULL,
  latency_ms     BIGINT      NOT NULL CHECK (latency_ms >= 0),
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_ask_events_doc_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_ask_events_doc_id ON ask_events (doc_id);`,
	},
	{
		Name: "create_index_ask_events_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_ask_events_created_at ON ask_events (created_at);`,
	},
}

// EnsureMigrated creates the ask_events schema unless the table already exists.
// Every step is idempotent, so a partially applied schema is completed on the next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	start := time.Now()
	log := logger.With("component", "database")

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass('public.ask_events') IS NOT NULL").Scan(&exists); err != nil {
		log.Error("db_migration_failed", "error", err.Error(), "duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}
	if exists {
		log.Info("db_migration_skip", "duration_ms", time.Since(start).Milliseconds())
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"migration_step", step.Name,
				"error", err.Error(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Info("db_migration_step", "migration_step", step.Name, "step_duration_ms", time.Since(stepStart).Milliseconds())
	}

	log.Info("db_migration_success", "steps", len(steps), "duration_ms", time.Since(start).Milliseconds())
	return nil
}
