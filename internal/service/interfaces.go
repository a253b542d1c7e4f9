// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/subkitapp/subkit/internal/model"
)

// UsageCheckResponse is a user's answer to a usage-check prompt.
type UsageCheckResponse struct {
	ItemID          string
	Frequency       model.UsageFrequency
	RetentionIntent model.RetentionIntent
	HasDuplicateAck bool
}

// Storage defines the contract for the persistence layer. The decision
// engine never touches this; commands load a snapshot, run the engine,
// and write mutations back through these methods.
type Storage interface {
	// Recurring item operations
	SaveItem(ctx context.Context, item *model.RecurringItem) error
	GetItem(ctx context.Context, id string) (*model.RecurringItem, error)
	ListItems(ctx context.Context, includeInactive bool) ([]model.RecurringItem, error)
	DeleteItem(ctx context.Context, id string) error
	SetWorkLife(ctx context.Context, id string, wl model.WorkLife) error
	MarkCancelCandidate(ctx context.Context, id string) error
	ClearCancelCandidate(ctx context.Context, id string) error
	SubmitUsageCheck(ctx context.Context, response UsageCheckResponse) error

	// Commitment operations
	SaveCommitment(ctx context.Context, c *model.CommitmentItem) error
	ListCommitments(ctx context.Context, includeInactive bool) ([]model.CommitmentItem, error)
	DeleteCommitment(ctx context.Context, id string) error

	// Duplicate group status transitions
	GetGroupStatuses(ctx context.Context) (map[string]model.GroupStatus, error)
	ResolveDuplicateGroup(ctx context.Context, groupID, keepItemID string) error
	DismissDuplicateGroup(ctx context.Context, groupID string) error

	// Goal and growth link operations
	CreateGoal(ctx context.Context, goal *model.Goal) error
	ListGoals(ctx context.Context) ([]model.Goal, error)
	LinkItemToGoal(ctx context.Context, goalID, itemID string, weight model.LinkWeight) error
	UnlinkItemFromGoal(ctx context.Context, goalID, itemID string) error
	ListGrowthLinks(ctx context.Context) ([]model.GrowthLink, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
