package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subkitapp/subkit/internal/model"
)

func TestComputeCandidateScore(t *testing.T) {
	cfg := DefaultConfig()

	primaryLink := []model.GrowthLink{{GoalID: "g1", ItemID: "item", Weight: model.WeightPrimary}}
	secondaryLink := []model.GrowthLink{{GoalID: "g1", ItemID: "item", Weight: model.WeightSecondary}}

	tests := []struct {
		name         string
		links        []model.GrowthLink
		item         model.RecurringItem
		want         float64
		hasDuplicate bool
	}{
		{
			name: "rarely used scores above threshold",
			item: model.RecurringItem{ID: "item", UsageFrequency: model.FrequencyRarely},
			want: 0.7,
		},
		{
			name: "sometimes stays below threshold",
			item: model.RecurringItem{ID: "item", UsageFrequency: model.FrequencySometimes},
			want: 0.3,
		},
		{
			name: "often scores zero",
			item: model.RecurringItem{ID: "item", UsageFrequency: model.FrequencyOften},
			want: 0.0,
		},
		{
			name: "unanswered usage check gets the low default",
			item: model.RecurringItem{ID: "item"},
			want: 0.2,
		},
		{
			name:         "duplicate membership raises the score",
			item:         model.RecurringItem{ID: "item", UsageFrequency: model.FrequencyRarely},
			hasDuplicate: true,
			want:         0.9,
		},
		{
			name:         "duplicate bonus alone does not qualify a sometimes item",
			item:         model.RecurringItem{ID: "item", UsageFrequency: model.FrequencySometimes},
			hasDuplicate: true,
			want:         0.5,
		},
		{
			name: "cancel intent adds a small bonus",
			item: model.RecurringItem{ID: "item", UsageFrequency: model.FrequencySometimes, RetentionIntent: model.RetentionCancelCandidate},
			want: 0.4,
		},
		{
			name:         "score is clamped at one",
			item:         model.RecurringItem{ID: "item", UsageFrequency: model.FrequencyRarely, RetentionIntent: model.RetentionCancelCandidate},
			hasDuplicate: true,
			want:         1.0,
		},
		{
			name:  "primary link pulls a rarely used item under the threshold",
			item:  model.RecurringItem{ID: "item", UsageFrequency: model.FrequencyRarely},
			links: primaryLink,
			want:  0.25,
		},
		{
			name:         "primary link protects even against the duplicate bonus",
			item:         model.RecurringItem{ID: "item", UsageFrequency: model.FrequencyRarely},
			hasDuplicate: true,
			links:        primaryLink,
			want:         0.45,
		},
		{
			name:  "secondary link applies a smaller reduction",
			item:  model.RecurringItem{ID: "item", UsageFrequency: model.FrequencyRarely},
			links: secondaryLink,
			want:  0.6,
		},
		{
			name: "two primary links only count once",
			item: model.RecurringItem{ID: "item", UsageFrequency: model.FrequencyRarely},
			links: []model.GrowthLink{
				{GoalID: "g1", ItemID: "item", Weight: model.WeightPrimary},
				{GoalID: "g2", ItemID: "item", Weight: model.WeightPrimary},
			},
			want: 0.25,
		},
		{
			name:  "links for other items are ignored",
			item:  model.RecurringItem{ID: "item", UsageFrequency: model.FrequencyRarely},
			links: []model.GrowthLink{{GoalID: "g1", ItemID: "other", Weight: model.WeightPrimary}},
			want:  0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCandidateScore(tt.item, tt.hasDuplicate, tt.links, cfg)
			assert.InDelta(t, tt.want, got, 0.0001)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestComputeCandidateScore_DuplicateStrictlyIncreases(t *testing.T) {
	cfg := DefaultConfig()

	for _, freq := range []model.UsageFrequency{model.FrequencyRarely, model.FrequencySometimes, model.FrequencyOften, ""} {
		item := model.RecurringItem{ID: "item", UsageFrequency: freq}
		without := ComputeCandidateScore(item, false, nil, cfg)
		with := ComputeCandidateScore(item, true, nil, cfg)
		assert.Greater(t, with, without, "frequency %q", freq)
	}
}

func TestComputeCandidateScore_PrimaryAlwaysUnderThreshold(t *testing.T) {
	cfg := DefaultConfig()
	links := []model.GrowthLink{{GoalID: "g1", ItemID: "item", Weight: model.WeightPrimary}}

	// Even the maximal unprotected combination must land under 0.6
	// once a primary link is attached.
	for _, freq := range []model.UsageFrequency{model.FrequencyRarely, model.FrequencySometimes, model.FrequencyOften, ""} {
		for _, hasDup := range []bool{false, true} {
			for _, intent := range []model.RetentionIntent{"", model.RetentionCancelCandidate} {
				item := model.RecurringItem{ID: "item", UsageFrequency: freq, RetentionIntent: intent}
				got := ComputeCandidateScore(item, hasDup, links, cfg)
				assert.Less(t, got, cfg.Scores.Threshold,
					"freq=%q dup=%v intent=%q", freq, hasDup, intent)
			}
		}
	}
}

func TestDetectCandidates(t *testing.T) {
	cfg := DefaultConfig()

	rarely := activeItem("rarely", "Watcha", "entertainment", 7900, model.CycleMonthly, 0.1)
	rarely.UsageFrequency = model.FrequencyRarely
	often := activeItem("often", "Spotify", "music", 10900, model.CycleMonthly, 0.9)
	often.UsageFrequency = model.FrequencyOften
	protected := activeItem("protected", "Inflearn", "education", 50000, model.CycleMonthly, 0.2)
	protected.UsageFrequency = model.FrequencyRarely

	links := []model.GrowthLink{{GoalID: "g1", ItemID: "protected", Weight: model.WeightPrimary}}

	got := DetectCandidates([]model.RecurringItem{rarely, often, protected}, nil, links, cfg)

	require.Len(t, got, 1)
	assert.Equal(t, "rarely", got[0].ItemID)
	assert.GreaterOrEqual(t, got[0].Score, cfg.Scores.Threshold)
	assert.NotEmpty(t, got[0].Reason)
}

func TestDetectCandidates_GroupStatusGatesTheBonus(t *testing.T) {
	cfg := DefaultConfig()

	item := activeItem("a", "Netflix", "entertainment", 17000, model.CycleMonthly, 0.5)
	item.UsageFrequency = model.FrequencySometimes
	other := activeItem("b", "Disney+", "entertainment", 9900, model.CycleMonthly, 0.4)
	other.UsageFrequency = model.FrequencySometimes
	items := []model.RecurringItem{item, other}

	group := model.DuplicateGroup{
		ID:      "dup-ott",
		ItemIDs: []string{"a", "b"},
		Status:  model.StatusDetected,
	}

	detected := DetectCandidates(items, []model.DuplicateGroup{group}, nil, cfg)
	assert.Empty(t, detected, "sometimes plus duplicate bonus stays under threshold")

	group.Status = model.StatusResolved
	resolved := DetectCandidates(items, []model.DuplicateGroup{group}, nil, cfg)
	assert.Empty(t, resolved)

	// Rarely used members of an active group do qualify,
	items[0].UsageFrequency = model.FrequencyRarely
	group.Status = model.StatusDetected
	active := DetectCandidates(items, []model.DuplicateGroup{group}, nil, cfg)
	require.Len(t, active, 1)
	assert.InDelta(t, 0.9, active[0].Score, 0.0001)

	// and the bonus disappears once the group is resolved.
	group.Status = model.StatusResolved
	after := DetectCandidates(items, []model.DuplicateGroup{group}, nil, cfg)
	require.Len(t, after, 1)
	assert.InDelta(t, 0.7, after[0].Score, 0.0001)
}

func TestDetectCandidates_Ordering(t *testing.T) {
	cfg := DefaultConfig()

	a := activeItem("a", "Watcha", "", 7900, model.CycleMonthly, 0.1)
	a.UsageFrequency = model.FrequencyRarely
	b := activeItem("b", "Coloso", "", 40000, model.CycleMonthly, 0.1)
	b.UsageFrequency = model.FrequencyRarely
	b.RetentionIntent = model.RetentionCancelCandidate

	got := DetectCandidates([]model.RecurringItem{a, b}, nil, nil, cfg)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ItemID, "higher score first")
	assert.Equal(t, "a", got[1].ItemID)
}

func TestDetectCandidates_SkipsInactive(t *testing.T) {
	cfg := DefaultConfig()
	item := model.RecurringItem{ID: "a", Name: "Watcha", UsageFrequency: model.FrequencyRarely, Active: false}

	assert.Empty(t, DetectCandidates([]model.RecurringItem{item}, nil, nil, cfg))
}
