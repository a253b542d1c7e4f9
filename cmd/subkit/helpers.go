package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/subkitapp/subkit/internal/config"
	"github.com/subkitapp/subkit/internal/engine"
	"github.com/subkitapp/subkit/internal/model"
	"github.com/subkitapp/subkit/internal/service"
	"github.com/subkitapp/subkit/internal/storage"
)

// initStorage initializes the storage service with proper path expansion
// and runs pending migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadSnapshot pulls the full record snapshot and runs the decision
// engine over it, with stored duplicate-group statuses overlaid. Every
// command that reads engine output goes through here, so a mutation is
// always followed by a full recompute on the next invocation.
func loadSnapshot(ctx context.Context, store service.Storage, ref time.Time) (engine.Overview, error) {
	cfg := engine.DefaultConfig()

	items, err := store.ListItems(ctx, false)
	if err != nil {
		return engine.Overview{}, fmt.Errorf("failed to load items: %w", err)
	}
	commitments, err := store.ListCommitments(ctx, false)
	if err != nil {
		return engine.Overview{}, fmt.Errorf("failed to load commitments: %w", err)
	}
	links, err := store.ListGrowthLinks(ctx)
	if err != nil {
		return engine.Overview{}, fmt.Errorf("failed to load growth links: %w", err)
	}
	statuses, err := store.GetGroupStatuses(ctx)
	if err != nil {
		return engine.Overview{}, fmt.Errorf("failed to load group statuses: %w", err)
	}

	groups := engine.ApplyGroupStatuses(engine.DetectDuplicates(items, cfg), statuses)

	return engine.BuildOverviewStateSummary(engine.Input{
		ReferenceDate: ref,
		Items:         items,
		Commitments:   commitments,
		Groups:        groups,
		Links:         links,
	}, cfg), nil
}

// itemName resolves an item id to its display name, falling back to the
// id itself when the item is gone.
func itemName(items []model.RecurringItem, id string) string {
	for _, item := range items {
		if item.ID == id {
			return item.Name
		}
	}
	return id
}
