package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/subkitapp/subkit/internal/common"
	"github.com/subkitapp/subkit/internal/model"
)

// SaveCommitment inserts or updates a commitment item.
func (s *SQLiteStorage) SaveCommitment(ctx context.Context, c *model.CommitmentItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: commitment", ErrNilParameter)
	}
	if err := validateString(c.ID, "commitment id"); err != nil {
		return err
	}
	if c.Amount <= 0 {
		return fmt.Errorf("%w: commitment %s", model.ErrNonPositiveAmount, c.ID)
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO commitment_items (
			id, name, kind, amount, billing_day, remaining_payments,
			next_due_date, active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			amount = excluded.amount,
			billing_day = excluded.billing_day,
			remaining_payments = excluded.remaining_payments,
			next_due_date = excluded.next_due_date,
			active = excluded.active,
			updated_at = excluded.updated_at`,
		c.ID, c.Name, string(c.Kind), c.Amount, c.BillingDay, c.RemainingPayments,
		nullTime(c.NextDueDate), c.Active, now, now)
	if err != nil {
		return fmt.Errorf("failed to save commitment %s: %w", c.ID, err)
	}
	return nil
}

// ListCommitments returns all commitment items in stable order.
func (s *SQLiteStorage) ListCommitments(ctx context.Context, includeInactive bool) ([]model.CommitmentItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, kind, amount, billing_day, remaining_payments,
			next_due_date, active, created_at, updated_at
		FROM commitment_items`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list commitments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var commitments []model.CommitmentItem
	for rows.Next() {
		var (
			c   model.CommitmentItem
			due sql.NullTime
		)
		if err := rows.Scan(&c.ID, &c.Name, (*string)(&c.Kind), &c.Amount,
			&c.BillingDay, &c.RemainingPayments, &due, &c.Active,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan commitment: %w", err)
		}
		c.NextDueDate = due.Time
		commitments = append(commitments, c)
	}
	return commitments, rows.Err()
}

// DeleteCommitment removes a commitment item.
func (s *SQLiteStorage) DeleteCommitment(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM commitment_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete commitment %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("commitment %s: %w", id, common.ErrNotFound)
	}
	return nil
}
