package engine

import (
	"sort"
	"strings"

	"github.com/subkitapp/subkit/internal/model"
)

// DetectDuplicates groups recurring items that serve the same purpose
// into duplicate groups. Items whose name and category match no cluster
// table entry do not participate. A group is emitted only when a
// cluster has two or more members.
//
// The function is pure and idempotent: group ids derive from the
// cluster key, so an unchanged item set always yields the same groups.
// Status is always detected here; resolved/dismissed transitions belong
// to the caller.
func DetectDuplicates(items []model.RecurringItem, cfg Config) []model.DuplicateGroup {
	clusters := make(map[string][]model.RecurringItem)
	for _, item := range items {
		if !item.Active {
			continue
		}
		key := cfg.Clusters.clusterKeyFor(item.Name, item.CategoryL1)
		if key == "" {
			continue
		}
		clusters[key] = append(clusters[key], item)
	}

	keys := make([]string, 0, len(clusters))
	for key, members := range clusters {
		if len(members) >= 2 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	groups := make([]model.DuplicateGroup, 0, len(keys))
	for _, key := range keys {
		members := clusters[key]
		keep := suggestKeep(members)

		var savings float64
		ids := make([]string, 0, len(members))
		for _, m := range members {
			ids = append(ids, m.ID)
			if m.ID != keep.ID {
				savings += m.MonthlyAmount()
			}
		}

		groups = append(groups, model.DuplicateGroup{
			ID:               "dup-" + strings.ToLower(key),
			ClusterKey:       key,
			Purpose:          cfg.Clusters.PurposeLabel(key),
			ItemIDs:          ids,
			SuggestedKeepID:  keep.ID,
			PotentialSavings: savings,
			Status:           model.StatusDetected,
		})
	}

	return groups
}

// suggestKeep picks the group member the user should keep: highest
// usage signal score, then lower monthly cost, then smallest id. The
// chain is a total order, so the choice is deterministic.
func suggestKeep(members []model.RecurringItem) model.RecurringItem {
	keep := members[0]
	for _, m := range members[1:] {
		switch {
		case m.UsageSignalScore > keep.UsageSignalScore:
			keep = m
		case m.UsageSignalScore == keep.UsageSignalScore && m.MonthlyAmount() < keep.MonthlyAmount():
			keep = m
		case m.UsageSignalScore == keep.UsageSignalScore && m.MonthlyAmount() == keep.MonthlyAmount() && m.ID < keep.ID:
			keep = m
		}
	}
	return keep
}

// ApplyGroupStatuses overlays stored status transitions onto freshly
// detected groups. Detection itself never fabricates a resolved or
// dismissed state; the store owns those transitions and this helper
// reconciles them by group id.
func ApplyGroupStatuses(groups []model.DuplicateGroup, statuses map[string]model.GroupStatus) []model.DuplicateGroup {
	if len(statuses) == 0 {
		return groups
	}
	out := make([]model.DuplicateGroup, len(groups))
	copy(out, groups)
	for i := range out {
		if status, ok := statuses[out[i].ID]; ok {
			out[i].Status = status
		}
	}
	return out
}
