package engine

import (
	"fmt"
	"sort"

	"github.com/subkitapp/subkit/internal/model"
)

// ComputeCandidateScore computes the cancellation-worthiness of a
// single item in [0,1]. The base comes from the self-reported usage
// frequency; membership in an active duplicate group and an explicit
// cancel intent raise it; goal links lower it. A primary link lowers it
// far enough that the item can never reach the candidacy threshold,
// which is the whole point of goal protection.
func ComputeCandidateScore(item model.RecurringItem, hasDuplicate bool, links []model.GrowthLink, cfg Config) float64 {
	score := baseScore(item.UsageFrequency, cfg.Scores)

	if hasDuplicate {
		score += cfg.Scores.DuplicateBonus
	}
	if item.RetentionIntent == model.RetentionCancelCandidate {
		score += cfg.Scores.CancelIntentBonus
	}

	switch strongestLink(item.ID, links) {
	case model.WeightPrimary:
		score -= cfg.Scores.PrimaryPenalty
	case model.WeightSecondary:
		score -= cfg.Scores.SecondaryPenalty
	}

	return clamp01(score)
}

// DetectCandidates scores every item and returns those at or above the
// candidacy threshold, ordered by score descending then item id. Only
// groups still in the detected state count as duplicate membership;
// resolving or dismissing a group removes its bonus on the next call.
func DetectCandidates(items []model.RecurringItem, groups []model.DuplicateGroup, links []model.GrowthLink, cfg Config) []model.CandidateScore {
	inActiveGroup := make(map[string]bool)
	for _, g := range groups {
		if g.Status != model.StatusDetected {
			continue
		}
		for _, id := range g.ItemIDs {
			inActiveGroup[id] = true
		}
	}

	var candidates []model.CandidateScore
	for _, item := range items {
		if !item.Active {
			continue
		}
		score := ComputeCandidateScore(item, inActiveGroup[item.ID], links, cfg)
		if score < cfg.Scores.Threshold {
			continue
		}
		candidates = append(candidates, model.CandidateScore{
			ItemID: item.ID,
			Score:  score,
			Reason: scoreReason(item, inActiveGroup[item.ID]),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ItemID < candidates[j].ItemID
	})

	return candidates
}

func baseScore(f model.UsageFrequency, scores ScoreTable) float64 {
	switch f {
	case model.FrequencyRarely:
		return scores.BaseRarely
	case model.FrequencySometimes:
		return scores.BaseSometimes
	case model.FrequencyOften:
		return scores.BaseOften
	default:
		return scores.BaseUnknown
	}
}

// strongestLink returns the strongest link weight attached to the item.
// Primary beats secondary, and a malformed record with two primary
// links still counts as a single primary.
func strongestLink(itemID string, links []model.GrowthLink) model.LinkWeight {
	var strongest model.LinkWeight
	for _, l := range links {
		if l.ItemID != itemID {
			continue
		}
		if l.Weight == model.WeightPrimary {
			return model.WeightPrimary
		}
		strongest = model.WeightSecondary
	}
	return strongest
}

func scoreReason(item model.RecurringItem, hasDuplicate bool) string {
	switch {
	case item.UsageFrequency == model.FrequencyRarely && hasDuplicate:
		return fmt.Sprintf("%s is rarely used and overlaps another subscription", item.Name)
	case item.UsageFrequency == model.FrequencyRarely:
		return fmt.Sprintf("%s is rarely used", item.Name)
	case hasDuplicate:
		return fmt.Sprintf("%s overlaps another subscription", item.Name)
	case item.RetentionIntent == model.RetentionCancelCandidate:
		return fmt.Sprintf("%s was flagged for cancellation review", item.Name)
	default:
		return fmt.Sprintf("%s shows low usage", item.Name)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
