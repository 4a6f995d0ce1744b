package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"doccenter/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_clients",
		SQL: `CREATE TABLE IF NOT EXISTS clients (
  seq        BIGSERIAL   UNIQUE,
  id         TEXT        PRIMARY KEY,
  name       TEXT        NOT NULL,
  type       TEXT        NOT NULL CHECK (type IN ('Individual', 'Business')),
  email      TEXT        NOT NULL DEFAULT '',
  is_firm    BOOLEAN     NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_client_links",
		SQL: `CREATE TABLE IF NOT EXISTS client_links (
  a TEXT NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  b TEXT NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  PRIMARY KEY (a, b),
  CHECK (a < b)
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  seq              BIGSERIAL   UNIQUE,
  id               TEXT        PRIMARY KEY,
  name             TEXT        NOT NULL,
  client_id        TEXT        NOT NULL REFERENCES clients (id),
  document_type    TEXT        NOT NULL,
  year             TEXT        NOT NULL,
  status           TEXT        NOT NULL CHECK (status IN ('pending', 'approved', 'requested', 'rejected')),
  method           TEXT        NOT NULL DEFAULT '',
  received_date    TIMESTAMPTZ,
  requested_date   TIMESTAMPTZ,
  reviewed_date    TIMESTAMPTZ,
  reviewed_by      TEXT        NOT NULL DEFAULT '',
  rejection_reason TEXT        NOT NULL DEFAULT '',
  note             TEXT        NOT NULL DEFAULT '',
  storage_path     TEXT        NOT NULL DEFAULT '',
  content_type     TEXT        NOT NULL DEFAULT '',
  size             BIGINT      NOT NULL DEFAULT 0 CHECK (size >= 0),
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK ((status = 'requested') = (received_date IS NULL)),
  CHECK (status <> 'rejected' OR rejection_reason <> '')
);`,
	},
	{
		Name: "create_index_documents_client_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_client_id ON documents (client_id);`,
	},
	{
		Name: "create_index_documents_year",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_year ON documents (year);`,
	},
	{
		Name: "create_table_reminder_history",
		SQL: `CREATE TABLE IF NOT EXISTS reminder_history (
  document_id TEXT        NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  idx         INT         NOT NULL,
  sent_date   TIMESTAMPTZ NOT NULL,
  sent_by     TEXT        NOT NULL,
  status      TEXT        NOT NULL DEFAULT 'sent',
  viewed      BOOLEAN     NOT NULL DEFAULT false,
  viewed_date TIMESTAMPTZ,
  PRIMARY KEY (document_id, idx),
  CHECK (viewed_date IS NULL OR viewed)
);`,
	},
	{
		Name: "create_table_activity_log",
		SQL: `CREATE TABLE IF NOT EXISTS activity_log (
  seq           BIGSERIAL   UNIQUE,
  id            TEXT        PRIMARY KEY,
  ts            TIMESTAMPTZ NOT NULL,
  activity_type TEXT        NOT NULL,
  performed_by  TEXT        NOT NULL,
  client_id     TEXT        NOT NULL,
  client_name   TEXT        NOT NULL,
  document_id   TEXT        NOT NULL DEFAULT '',
  document_name TEXT        NOT NULL DEFAULT '',
  document_type TEXT        NOT NULL DEFAULT '',
  details       TEXT        NOT NULL DEFAULT '',
  metadata      JSONB
);`,
	},
	{
		Name: "create_index_activity_log_ts",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_activity_log_ts ON activity_log (ts);`,
	},
	{
		Name: "create_table_preferences",
		SQL: `CREATE TABLE IF NOT EXISTS preferences (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`,
	},
	{
		Name: "create_table_signature_templates",
		SQL: `CREATE TABLE IF NOT EXISTS signature_templates (
  seq           BIGSERIAL   UNIQUE,
  id            TEXT        PRIMARY KEY,
  category      TEXT        NOT NULL CHECK (category IN ('Tax', 'Engagement', 'Custom')),
  name          TEXT        NOT NULL,
  description   TEXT        NOT NULL DEFAULT '',
  year          INT         NOT NULL,
  signing_order TEXT        NOT NULL,
  roles         JSONB       NOT NULL,
  fields        JSONB       NOT NULL,
  file_name     TEXT        NOT NULL,
  storage_path  TEXT        NOT NULL DEFAULT '',
  created_by    TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
}

// EnsureMigrated checks if the last table of the schema exists and runs migrations if it doesn't.
// Every step is idempotent, so a partially applied schema is completed on the next run.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()
	lg := logging.Default(loc)

	lg.Log(map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.signature_templates') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		lg.Log(map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		lg.Log(map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	lg.Log(map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			lg.Log(map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		lg.Log(map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	lg.Log(map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}
