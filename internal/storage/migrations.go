package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the
// application expects.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS recurring_items (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					amount REAL NOT NULL,
					billing_cycle TEXT NOT NULL,
					billing_day INTEGER NOT NULL,
					category_l1 TEXT,
					work_life TEXT NOT NULL DEFAULT 'Life',
					personal_growth_type TEXT,
					next_payment_date DATETIME,
					usage_signal_score REAL NOT NULL DEFAULT 0.5,
					usage_frequency TEXT,
					active INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_recurring_items_category ON recurring_items(category_l1)`,
				`CREATE INDEX idx_recurring_items_next_payment ON recurring_items(next_payment_date)`,

				`CREATE TABLE IF NOT EXISTS commitment_items (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					kind TEXT NOT NULL,
					amount REAL NOT NULL,
					billing_day INTEGER,
					remaining_payments INTEGER NOT NULL DEFAULT 0,
					next_due_date DATETIME,
					active INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_commitment_items_due ON commitment_items(next_due_date)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Goals, growth links, and duplicate group status",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS goals (
					id TEXT PRIMARY KEY,
					title TEXT NOT NULL,
					growth_type TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS growth_links (
					goal_id TEXT NOT NULL,
					item_id TEXT NOT NULL,
					weight TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (goal_id, item_id),
					FOREIGN KEY (goal_id) REFERENCES goals(id) ON DELETE CASCADE,
					FOREIGN KEY (item_id) REFERENCES recurring_items(id) ON DELETE CASCADE
				)`,
				// At most one primary link per item.
				`CREATE UNIQUE INDEX idx_growth_links_primary
					ON growth_links(item_id) WHERE weight = 'primary'`,

				`CREATE TABLE IF NOT EXISTS duplicate_group_status (
					group_id TEXT PRIMARY KEY,
					status TEXT NOT NULL,
					keep_item_id TEXT,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Usage checks and retention intent",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE recurring_items ADD COLUMN retention_intent TEXT`,

				`CREATE TABLE IF NOT EXISTS usage_checks (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					item_id TEXT NOT NULL,
					frequency TEXT NOT NULL,
					has_duplicate_ack INTEGER NOT NULL DEFAULT 0,
					retention_intent TEXT,
					answered_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (item_id) REFERENCES recurring_items(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_usage_checks_item ON usage_checks(item_id)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending migrations inside transactions.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, err := s.currentVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		slog.Info("applying migration", "version", m.Version, "description", m.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}
		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

func (s *SQLiteStorage) currentVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}
