package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/subkitapp/subkit/internal/common"
	"github.com/subkitapp/subkit/internal/model"
	"github.com/subkitapp/subkit/internal/service"
)

// SaveItem inserts or updates a recurring item.
func (s *SQLiteStorage) SaveItem(ctx context.Context, item *model.RecurringItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateItem(item); err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recurring_items (
			id, name, amount, billing_cycle, billing_day, category_l1,
			work_life, personal_growth_type, next_payment_date,
			usage_signal_score, usage_frequency, retention_intent, active,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			amount = excluded.amount,
			billing_cycle = excluded.billing_cycle,
			billing_day = excluded.billing_day,
			category_l1 = excluded.category_l1,
			work_life = excluded.work_life,
			personal_growth_type = excluded.personal_growth_type,
			next_payment_date = excluded.next_payment_date,
			usage_signal_score = excluded.usage_signal_score,
			usage_frequency = excluded.usage_frequency,
			retention_intent = excluded.retention_intent,
			active = excluded.active,
			updated_at = excluded.updated_at`,
		item.ID, item.Name, item.Amount, string(item.BillingCycle), item.BillingDay,
		nullString(item.CategoryL1), string(item.WorkLife), nullString(item.PersonalGrowthType),
		nullTime(item.NextPaymentDate), item.UsageSignalScore,
		nullString(string(item.UsageFrequency)), nullString(string(item.RetentionIntent)),
		item.Active, now, now)
	if err != nil {
		return fmt.Errorf("failed to save item %s: %w", item.ID, err)
	}
	return nil
}

// GetItem fetches a single recurring item by id.
func (s *SQLiteStorage) GetItem(ctx context.Context, id string) (*model.RecurringItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, itemSelect+` WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}
	return item, nil
}

// ListItems returns all recurring items, inactive ones included only on
// request. Ordering is stable (name, then id) so repeated engine runs
// see the same snapshot order.
func (s *SQLiteStorage) ListItems(ctx context.Context, includeInactive bool) ([]model.RecurringItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := itemSelect
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.RecurringItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// DeleteItem removes a recurring item and, via foreign keys, its links
// and usage checks.
func (s *SQLiteStorage) DeleteItem(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM recurring_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	return requireAffected(result, id)
}

// SetWorkLife toggles the work/life classification of an item.
func (s *SQLiteStorage) SetWorkLife(ctx context.Context, id string, wl model.WorkLife) error {
	if wl != model.WorkLifeWork && wl != model.WorkLifeLife {
		return fmt.Errorf("invalid work/life value %q", wl)
	}
	return s.updateItemField(ctx, id, `work_life = ?`, string(wl))
}

// MarkCancelCandidate records the user's intent to review the item for
// cancellation.
func (s *SQLiteStorage) MarkCancelCandidate(ctx context.Context, id string) error {
	return s.updateItemField(ctx, id, `retention_intent = ?`, string(model.RetentionCancelCandidate))
}

// ClearCancelCandidate removes the cancel-candidate intent.
func (s *SQLiteStorage) ClearCancelCandidate(ctx context.Context, id string) error {
	return s.updateItemField(ctx, id, `retention_intent = NULL`)
}

// SubmitUsageCheck records a usage-check answer and folds it back into
// the item: frequency, signal estimate, and retention intent.
func (s *SQLiteStorage) SubmitUsageCheck(ctx context.Context, response service.UsageCheckResponse) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(response.ItemID, "itemID"); err != nil {
		return err
	}
	switch response.Frequency {
	case model.FrequencyRarely, model.FrequencySometimes, model.FrequencyOften:
	default:
		return fmt.Errorf("invalid usage frequency %q", response.Frequency)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin usage check: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Update the item first so a missing id reports not-found instead of
	// a foreign key violation from the audit insert.
	result, err := tx.ExecContext(ctx, `
		UPDATE recurring_items
		SET usage_frequency = ?, usage_signal_score = ?, retention_intent = ?, updated_at = ?
		WHERE id = ?`,
		string(response.Frequency), response.Frequency.SignalEstimate(),
		nullString(string(response.RetentionIntent)), time.Now().UTC(), response.ItemID)
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", response.ItemID, err)
	}
	if err := requireAffected(result, response.ItemID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO usage_checks (item_id, frequency, has_duplicate_ack, retention_intent)
		VALUES (?, ?, ?, ?)`,
		response.ItemID, string(response.Frequency), response.HasDuplicateAck,
		nullString(string(response.RetentionIntent))); err != nil {
		return fmt.Errorf("failed to record usage check: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStorage) updateItemField(ctx context.Context, id, setClause string, args ...any) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	query := `UPDATE recurring_items SET ` + setClause + `, updated_at = ? WHERE id = ?`
	args = append(args, time.Now().UTC(), id)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", id, err)
	}
	return requireAffected(result, id)
}

const itemSelect = `
	SELECT id, name, amount, billing_cycle, billing_day, category_l1,
		work_life, personal_growth_type, next_payment_date,
		usage_signal_score, usage_frequency, retention_intent, active,
		created_at, updated_at
	FROM recurring_items`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.RecurringItem, error) {
	var (
		item            model.RecurringItem
		category        sql.NullString
		growthType      sql.NullString
		nextPayment     sql.NullTime
		frequency       sql.NullString
		retentionIntent sql.NullString
	)

	err := row.Scan(&item.ID, &item.Name, &item.Amount, (*string)(&item.BillingCycle),
		&item.BillingDay, &category, (*string)(&item.WorkLife), &growthType,
		&nextPayment, &item.UsageSignalScore, &frequency, &retentionIntent,
		&item.Active, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	item.CategoryL1 = category.String
	item.PersonalGrowthType = growthType.String
	item.NextPaymentDate = nextPayment.Time
	item.UsageFrequency = model.UsageFrequency(frequency.String)
	item.RetentionIntent = model.RetentionIntent(retentionIntent.String)
	return &item, nil
}

func requireAffected(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
