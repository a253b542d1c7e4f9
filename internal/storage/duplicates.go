package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/subkitapp/subkit/internal/model"
)

// GetGroupStatuses returns the stored status transitions keyed by group
// id. Groups without a row are implicitly still detected; callers
// overlay this map on freshly detected groups.
func (s *SQLiteStorage) GetGroupStatuses(ctx context.Context) (map[string]model.GroupStatus, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT group_id, status FROM duplicate_group_status`)
	if err != nil {
		return nil, fmt.Errorf("failed to load group statuses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	statuses := make(map[string]model.GroupStatus)
	for rows.Next() {
		var id, status string
		if err := rows.Scan(&id, &status); err != nil {
			return nil, fmt.Errorf("failed to scan group status: %w", err)
		}
		statuses[id] = model.GroupStatus(status)
	}
	return statuses, rows.Err()
}

// ResolveDuplicateGroup marks a group resolved with the item the user
// chose to keep. Once a group is terminal the call is a no-op, which
// makes concurrent resolutions last-write-wins safe.
func (s *SQLiteStorage) ResolveDuplicateGroup(ctx context.Context, groupID, keepItemID string) error {
	if err := validateString(keepItemID, "keepItemID"); err != nil {
		return err
	}
	return s.transitionGroup(ctx, groupID, model.StatusResolved, keepItemID)
}

// DismissDuplicateGroup marks a group dismissed: the user decided the
// overlap is intentional.
func (s *SQLiteStorage) DismissDuplicateGroup(ctx context.Context, groupID string) error {
	return s.transitionGroup(ctx, groupID, model.StatusDismissed, "")
}

func (s *SQLiteStorage) transitionGroup(ctx context.Context, groupID string, status model.GroupStatus, keepItemID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(groupID, "groupID"); err != nil {
		return err
	}

	current, err := s.groupStatus(ctx, groupID)
	if err != nil {
		return err
	}
	if current.Terminal() {
		slog.Debug("group already terminal, ignoring transition",
			"group", groupID, "current", string(current), "requested", string(status))
		return nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO duplicate_group_status (group_id, status, keep_item_id, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(group_id) DO UPDATE SET
			status = excluded.status,
			keep_item_id = excluded.keep_item_id,
			updated_at = excluded.updated_at`,
		groupID, string(status), nullString(keepItemID), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to transition group %s: %w", groupID, err)
	}
	return nil
}

func (s *SQLiteStorage) groupStatus(ctx context.Context, groupID string) (model.GroupStatus, error) {
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT status FROM duplicate_group_status WHERE group_id = ?`, groupID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return model.StatusDetected, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read group status %s: %w", groupID, err)
	}
	return model.GroupStatus(status), nil
}
