package engine

import "github.com/subkitapp/subkit/internal/model"

// ComputeRiskLevel maps aggregate spend and problem counts onto a
// three-level risk label. Predicates are evaluated most-severe-first so
// a qualifying HIGH condition is never under-reported as MEDIUM:
//
//	HIGH:   both spend thresholds exceeded AND both count thresholds met
//	MEDIUM: overlap or candidate counts at the moderate thresholds
//	LOW:    everything else
//
// All thresholds come from the injected table, never from constants
// inside the function.
func ComputeRiskLevel(metrics model.OverviewMetrics, overlapsCount, candidatesCount int, cfg Config) model.RiskLevel {
	r := cfg.Risk

	highSpend := metrics.FixedCostThisMonth >= r.HighFixedCost &&
		metrics.Upcoming7DaysAmount >= r.HighUpcomingAmount
	highCounts := overlapsCount >= r.HighOverlaps &&
		candidatesCount >= r.HighCandidates
	if highSpend && highCounts {
		return model.RiskHigh
	}

	if overlapsCount >= r.MediumOverlaps || candidatesCount >= r.MediumCandidates {
		return model.RiskMedium
	}

	return model.RiskLow
}
