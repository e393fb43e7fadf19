package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  auth_id    TEXT        NOT NULL UNIQUE,
  email      TEXT        NOT NULL,
  name       TEXT        NOT NULL DEFAULT '',
  type       TEXT        NOT NULL CHECK (type IN ('CLIENT','VENDOR','DRIVER','HELPDESK','ADMIN','SUPER_ADMIN')),
  deleted_at TIMESTAMPTZ,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_orders",
		SQL: `CREATE TABLE IF NOT EXISTS orders (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  order_number     TEXT        NOT NULL UNIQUE,
  order_type       TEXT        NOT NULL CHECK (order_type IN ('catering','on_demand')),
  status           TEXT        NOT NULL DEFAULT 'active' CHECK (status IN ('active','assigned','completed','cancelled')),
  brokerage        TEXT        NOT NULL DEFAULT '',
  client_id        UUID        NOT NULL REFERENCES users (id),
  pickup_address   TEXT        NOT NULL,
  delivery_address TEXT        NOT NULL,
  event_date       TIMESTAMPTZ NOT NULL,
  headcount        INT         NOT NULL DEFAULT 0 CHECK (headcount >= 0),
  need_host        BOOLEAN     NOT NULL DEFAULT FALSE,
  hours_needed     NUMERIC(5,2) NOT NULL DEFAULT 0,
  number_of_hosts  INT         NOT NULL DEFAULT 0,
  order_total      NUMERIC(12,2) NOT NULL DEFAULT 0,
  tip              NUMERIC(12,2) NOT NULL DEFAULT 0,
  client_attention TEXT        NOT NULL DEFAULT '',
  pickup_notes     TEXT        NOT NULL DEFAULT '',
  special_notes    TEXT        NOT NULL DEFAULT '',
  deleted_at       TIMESTAMPTZ,
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_application_sessions",
		SQL: `CREATE TABLE IF NOT EXISTS application_sessions (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  token        TEXT        NOT NULL UNIQUE,
  first_name   TEXT        NOT NULL,
  last_name    TEXT        NOT NULL,
  email        TEXT        NOT NULL,
  phone        TEXT        NOT NULL DEFAULT '',
  ip           TEXT        NOT NULL,
  upload_count INT         NOT NULL DEFAULT 0 CHECK (upload_count >= 0),
  max_uploads  INT         NOT NULL DEFAULT 3,
  completed    BOOLEAN     NOT NULL DEFAULT FALSE,
  expires_at   TIMESTAMPTZ NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_job_applications",
		SQL: `CREATE TABLE IF NOT EXISTS job_applications (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  session_token   TEXT,
  first_name      TEXT        NOT NULL,
  last_name       TEXT        NOT NULL,
  email           TEXT        NOT NULL,
  phone           TEXT        NOT NULL DEFAULT '',
  position        TEXT        NOT NULL,
  address         TEXT        NOT NULL DEFAULT '',
  education       TEXT        NOT NULL DEFAULT '',
  work_experience TEXT        NOT NULL DEFAULT '',
  skills          TEXT        NOT NULL DEFAULT '',
  status          TEXT        NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','approved','rejected','interviewing')),
  deleted_at      TIMESTAMPTZ,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_application_files",
		SQL: `CREATE TABLE IF NOT EXISTS application_files (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  application_id UUID        REFERENCES job_applications (id),
  session_token  TEXT        NOT NULL,
  category       TEXT        NOT NULL DEFAULT 'resume' CHECK (category IN ('resume','license','insurance','photo')),
  storage_path   TEXT        NOT NULL UNIQUE,
  filename       TEXT        NOT NULL,
  size           BIGINT      NOT NULL CHECK (size >= 0),
  content_type   TEXT        NOT NULL,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_upload_errors",
		SQL: `CREATE TABLE IF NOT EXISTS upload_errors (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  session_token TEXT,
  file_name     TEXT        NOT NULL DEFAULT '',
  error_type    TEXT        NOT NULL CHECK (error_type IN ('validation','storage','database','network')),
  message       TEXT        NOT NULL,
  retryable     BOOLEAN     NOT NULL DEFAULT FALSE,
  resolved      BOOLEAN     NOT NULL DEFAULT FALSE,
  ip            TEXT        NOT NULL DEFAULT '',
  user_agent    TEXT        NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_webhook_logs",
		SQL: `CREATE TABLE IF NOT EXISTS webhook_logs (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  source       TEXT        NOT NULL,
  event        TEXT        NOT NULL,
  order_number TEXT,
  success      BOOLEAN     NOT NULL,
  status_code  INT         NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_audit_logs",
		SQL: `CREATE TABLE IF NOT EXISTS audit_logs (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  actor_id   TEXT        NOT NULL,
  actor_type TEXT        NOT NULL,
  action     TEXT        NOT NULL,
  detail     JSONB       NOT NULL DEFAULT '{}'::jsonb,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_orders_client_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_orders_client_id ON orders (client_id);`,
	},
	{
		Name: "create_index_orders_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status);`,
	},
	{
		Name: "create_index_application_sessions_ip_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_application_sessions_ip_created_at ON application_sessions (ip, created_at);`,
	},
	{
		Name: "create_index_job_applications_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_job_applications_status ON job_applications (status);`,
	},
	{
		Name: "create_index_job_applications_deleted_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_job_applications_deleted_at ON job_applications (deleted_at);`,
	},
	{
		Name: "create_index_upload_errors_resolved",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_upload_errors_resolved ON upload_errors (resolved);`,
	},
	{
		Name: "create_index_webhook_logs_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_webhook_logs_created_at ON webhook_logs (created_at);`,
	},
	{
		Name: "create_index_audit_logs_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs (created_at);`,
	},
}

// EnsureMigrated checks if the 'orders' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.orders') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
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
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
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

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
