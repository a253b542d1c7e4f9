package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subkitapp/subkit/internal/model"
	"github.com/subkitapp/subkit/internal/service"
	"github.com/subkitapp/subkit/internal/storage"
)

func newTestStore(t *testing.T) service.Storage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func saveStreamingPair(t *testing.T, store service.Storage) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.SaveItem(ctx, &model.RecurringItem{
		ID: "netflix", Name: "Netflix", Amount: 17000,
		BillingCycle: model.CycleMonthly, BillingDay: 25,
		CategoryL1: "entertainment", WorkLife: model.WorkLifeLife,
		UsageSignalScore: 0.8, Active: true,
	}))
	require.NoError(t, store.SaveItem(ctx, &model.RecurringItem{
		ID: "disney", Name: "Disney+", Amount: 9900,
		BillingCycle: model.CycleMonthly, BillingDay: 10,
		CategoryL1: "entertainment", WorkLife: model.WorkLifeLife,
		UsageSignalScore: 0.4, Active: true,
	}))
}

func TestLoadSnapshot_DetectsOverlap(t *testing.T) {
	store := newTestStore(t)
	saveStreamingPair(t, store)

	overview, err := loadSnapshot(context.Background(), store, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, overview.Summary.Overlaps.CountGroups)
	assert.Equal(t, model.StateOverlaps, overview.Recommended)
	assert.InDelta(t, 26900, overview.Metrics.FixedCostThisMonth, 0.001)
}

func TestLoadSnapshot_ResolutionSurvivesRecompute(t *testing.T) {
	store := newTestStore(t)
	saveStreamingPair(t, store)
	ctx := context.Background()

	before, err := loadSnapshot(ctx, store, time.Now())
	require.NoError(t, err)
	require.Len(t, before.Groups, 1)

	// Resolve the group, then recompute from scratch: the deterministic
	// group id makes the stored status stick to the re-detected group.
	require.NoError(t, store.ResolveDuplicateGroup(ctx, before.Groups[0].ID, "netflix"))

	after, err := loadSnapshot(ctx, store, time.Now())
	require.NoError(t, err)
	require.Len(t, after.Groups, 1)
	assert.Equal(t, model.StatusResolved, after.Groups[0].Status)
	assert.Equal(t, 0, after.Summary.Overlaps.CountGroups)
	assert.NotEqual(t, model.StateOverlaps, after.Recommended)
}

func TestLoadSnapshot_UsageCheckFeedsScoring(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveItem(ctx, &model.RecurringItem{
		ID: "coloso", Name: "Coloso", Amount: 30000,
		BillingCycle: model.CycleMonthly, BillingDay: 5,
		WorkLife: model.WorkLifeLife, UsageSignalScore: 0.5, Active: true,
	}))

	before, err := loadSnapshot(ctx, store, time.Now())
	require.NoError(t, err)
	assert.Empty(t, before.Candidates)

	require.NoError(t, store.SubmitUsageCheck(ctx, service.UsageCheckResponse{
		ItemID:    "coloso",
		Frequency: model.FrequencyRarely,
	}))

	after, err := loadSnapshot(ctx, store, time.Now())
	require.NoError(t, err)
	require.Len(t, after.Candidates, 1)
	assert.Equal(t, "coloso", after.Candidates[0].ItemID)
	assert.Equal(t, model.StateCandidates, after.Recommended)
}
