package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subkitapp/subkit/internal/model"
)

// The concrete walk-through scenarios the product pinned down.

func TestOverview_TwoStreamingServices(t *testing.T) {
	cfg := DefaultConfig()
	in := Input{
		ReferenceDate: refDate,
		Items: []model.RecurringItem{
			activeItem("netflix", "Netflix", "entertainment", 17000, model.CycleMonthly, 0.8),
			activeItem("disney", "Disney+", "entertainment", 9900, model.CycleMonthly, 0.4),
		},
	}

	got := BuildOverviewStateSummary(in, cfg)

	require.Len(t, got.Groups, 1)
	assert.Equal(t, "OTT 영상", got.Groups[0].Purpose)
	assert.ElementsMatch(t, []string{"netflix", "disney"}, got.Groups[0].ItemIDs)
	assert.Equal(t, 1, got.Summary.Overlaps.CountGroups)
	assert.Equal(t, model.StateOverlaps, got.Recommended)
	assert.InDelta(t, 26900, got.Metrics.FixedCostThisMonth, 0.001)
}

func TestOverview_RarelyUsedItemBecomesCandidate(t *testing.T) {
	cfg := DefaultConfig()
	item := activeItem("a", "Coloso", "", 30000, model.CycleMonthly, 0.1)
	item.UsageFrequency = model.FrequencyRarely

	got := BuildOverviewStateSummary(Input{ReferenceDate: refDate, Items: []model.RecurringItem{item}}, cfg)

	require.Len(t, got.Candidates, 1)
	assert.Equal(t, "a", got.Candidates[0].ItemID)
	assert.Equal(t, model.StateCandidates, got.Recommended)
}

func TestOverview_UpcomingPayments(t *testing.T) {
	cfg := DefaultConfig()
	in := Input{
		ReferenceDate: refDate,
		Items: []model.RecurringItem{
			dueItem("a", 10000, refDate.AddDate(0, 0, 3)),
			dueItem("b", 5000, refDate.AddDate(0, 0, 5)),
		},
	}

	got := BuildOverviewStateSummary(in, cfg)

	require.Len(t, got.Upcoming, 2)
	assert.Equal(t, 3, got.Upcoming[0].DaysUntil)
	assert.Equal(t, 5, got.Upcoming[1].DaysUntil)
	require.NotNil(t, got.Summary.Upcoming.NearestDDay)
	assert.Equal(t, 3, *got.Summary.Upcoming.NearestDDay)
	assert.Equal(t, model.StateUpcoming, got.Recommended)
	assert.InDelta(t, 15000, got.Metrics.Upcoming7DaysAmount, 0.001)
}

func TestOverview_AllClear(t *testing.T) {
	cfg := DefaultConfig()
	item := activeItem("a", "The Economist", "news", 15000, model.CycleMonthly, 0.9)
	item.UsageFrequency = model.FrequencyOften
	item.NextPaymentDate = refDate.AddDate(0, 0, 30)

	got := BuildOverviewStateSummary(Input{ReferenceDate: refDate, Items: []model.RecurringItem{item}}, cfg)

	assert.Empty(t, got.Groups)
	assert.Empty(t, got.Candidates)
	assert.Empty(t, got.Upcoming)
	assert.Nil(t, got.Summary.Upcoming.NearestDDay)
	assert.Equal(t, model.StateAllClear, got.Recommended)
	assert.Equal(t, model.RiskLow, got.Summary.Risk)
}

func TestOverview_GoalProtectionExcludesLinkedItem(t *testing.T) {
	cfg := DefaultConfig()

	linked := activeItem("a", "Inflearn", "", 50000, model.CycleMonthly, 0.4)
	linked.UsageFrequency = model.FrequencySometimes
	unlinked := activeItem("b", "Watcha", "", 50000, model.CycleMonthly, 0.1)
	unlinked.UsageFrequency = model.FrequencyRarely

	in := Input{
		ReferenceDate: refDate,
		Items:         []model.RecurringItem{linked, unlinked},
		Links:         []model.GrowthLink{{GoalID: "g1", ItemID: "a", Weight: model.WeightPrimary}},
	}

	got := BuildOverviewStateSummary(in, cfg)

	require.Len(t, got.Candidates, 1)
	assert.Equal(t, "b", got.Candidates[0].ItemID)
}

func TestOverview_StatePriorityOrder(t *testing.T) {
	cfg := DefaultConfig()

	overlapping := []model.RecurringItem{
		activeItem("netflix", "Netflix", "entertainment", 17000, model.CycleMonthly, 0.8),
		activeItem("disney", "Disney+", "entertainment", 9900, model.CycleMonthly, 0.4),
	}
	rarely := activeItem("rarely", "Coloso", "", 30000, model.CycleMonthly, 0.1)
	rarely.UsageFrequency = model.FrequencyRarely
	due := dueItem("due", 12000, refDate.AddDate(0, 0, 2))

	t.Run("overlaps beat candidates and upcoming", func(t *testing.T) {
		items := append(append([]model.RecurringItem{}, overlapping...), rarely, due)
		got := BuildOverviewStateSummary(Input{ReferenceDate: refDate, Items: items}, cfg)
		assert.Equal(t, model.StateOverlaps, got.Recommended)
	})

	t.Run("candidates beat upcoming", func(t *testing.T) {
		got := BuildOverviewStateSummary(Input{ReferenceDate: refDate, Items: []model.RecurringItem{rarely, due}}, cfg)
		assert.Equal(t, model.StateCandidates, got.Recommended)
	})

	t.Run("resolved groups fall through to the next state", func(t *testing.T) {
		items := append(append([]model.RecurringItem{}, overlapping...), due)
		groups := DetectDuplicates(items, cfg)
		groups = ApplyGroupStatuses(groups, map[string]model.GroupStatus{"dup-ott": model.StatusResolved})

		got := BuildOverviewStateSummary(Input{ReferenceDate: refDate, Items: items, Groups: groups}, cfg)
		assert.Equal(t, 0, got.Summary.Overlaps.CountGroups)
		assert.Equal(t, model.StateUpcoming, got.Recommended)
	})
}

func TestOverview_Idempotent(t *testing.T) {
	cfg := DefaultConfig()

	rarely := activeItem("rarely", "Watcha", "entertainment", 7900, model.CycleMonthly, 0.1)
	rarely.UsageFrequency = model.FrequencyRarely
	rarely.NextPaymentDate = refDate.AddDate(0, 0, 4)

	in := Input{
		ReferenceDate: refDate,
		Items: []model.RecurringItem{
			rarely,
			activeItem("netflix", "Netflix", "entertainment", 17000, model.CycleMonthly, 0.8),
		},
		Commitments: []model.CommitmentItem{
			{ID: "ins", Name: "실비보험", Kind: model.CommitmentInsurance, Amount: 45000, NextDueDate: refDate.AddDate(0, 0, 6), Active: true},
		},
	}

	first := BuildOverviewStateSummary(in, cfg)
	second := BuildOverviewStateSummary(in, cfg)
	assert.Equal(t, first, second)
}

func TestOverview_YearlyNormalizedExactlyOnce(t *testing.T) {
	cfg := DefaultConfig()
	in := Input{
		ReferenceDate: refDate,
		Items: []model.RecurringItem{
			activeItem("a", "Netflix", "entertainment", 120000, model.CycleYearly, 0.9),
			activeItem("b", "Watcha", "entertainment", 240000, model.CycleYearly, 0.2),
		},
	}

	got := BuildOverviewStateSummary(in, cfg)

	// 120,000 and 240,000 per year are 10,000 and 20,000 per month. If
	// either the detector or the aggregator normalized a second time,
	// one of these figures would come out twelve times too small.
	assert.InDelta(t, 30000, got.Metrics.FixedCostThisMonth, 0.001)
	require.Len(t, got.Groups, 1)
	assert.InDelta(t, 20000, got.Groups[0].PotentialSavings, 0.001)
}

func TestOverview_DefaultsReferenceDateToNow(t *testing.T) {
	cfg := DefaultConfig()
	item := dueItem("a", 9900, time.Now().AddDate(0, 0, 2))

	got := BuildOverviewStateSummary(Input{Items: []model.RecurringItem{item}}, cfg)
	assert.Equal(t, 1, got.Summary.Upcoming.CountPayments)
}
