package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/subkitapp/subkit/internal/common"
	"github.com/subkitapp/subkit/internal/model"
)

// CreateGoal stores a new goal.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if err := validateString(goal.ID, "goal id"); err != nil {
		return err
	}
	if err := validateString(goal.Title, "goal title"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (id, title, growth_type, created_at) VALUES (?, ?, ?, ?)`,
		goal.ID, goal.Title, nullString(goal.GrowthType), time.Now().UTC())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("goal %s: %w", goal.ID, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create goal %s: %w", goal.ID, err)
	}
	return nil
}

// ListGoals returns all goals ordered by title.
func (s *SQLiteStorage) ListGoals(ctx context.Context) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, COALESCE(growth_type, ''), created_at FROM goals ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.Title, &g.GrowthType, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// LinkItemToGoal attaches a recurring item to a goal with the given
// weight. Linking an item as primary replaces any existing primary link
// on that item, so the one-primary-per-item invariant holds on write.
func (s *SQLiteStorage) LinkItemToGoal(ctx context.Context, goalID, itemID string, weight model.LinkWeight) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(goalID, "goalID"); err != nil {
		return err
	}
	if err := validateString(itemID, "itemID"); err != nil {
		return err
	}
	if err := validateLinkWeight(weight); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin link: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if weight == model.WeightPrimary {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM growth_links WHERE item_id = ? AND weight = 'primary'`, itemID); err != nil {
			return fmt.Errorf("failed to clear existing primary link: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO growth_links (goal_id, item_id, weight, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(goal_id, item_id) DO UPDATE SET weight = excluded.weight`,
		goalID, itemID, string(weight), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to link item %s to goal %s: %w", itemID, goalID, err)
	}

	return tx.Commit()
}

// UnlinkItemFromGoal removes a growth link.
func (s *SQLiteStorage) UnlinkItemFromGoal(ctx context.Context, goalID, itemID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(goalID, "goalID"); err != nil {
		return err
	}
	if err := validateString(itemID, "itemID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM growth_links WHERE goal_id = ? AND item_id = ?`, goalID, itemID)
	if err != nil {
		return fmt.Errorf("failed to unlink item %s from goal %s: %w", itemID, goalID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("link %s/%s: %w", goalID, itemID, common.ErrNotFound)
	}
	return nil
}

// ListGrowthLinks returns every growth link.
func (s *SQLiteStorage) ListGrowthLinks(ctx context.Context) ([]model.GrowthLink, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT goal_id, item_id, weight, created_at FROM growth_links ORDER BY goal_id, item_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list growth links: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var links []model.GrowthLink
	for rows.Next() {
		var l model.GrowthLink
		if err := rows.Scan(&l.GoalID, &l.ItemID, (*string)(&l.Weight), &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan growth link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
