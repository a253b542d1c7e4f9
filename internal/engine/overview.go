package engine

import (
	"time"

	"github.com/subkitapp/subkit/internal/model"
)

// Input is the record snapshot the aggregator works from. Groups may
// carry precomputed duplicate groups (typically fresh detection with
// stored statuses overlaid); when nil the aggregator runs detection
// itself.
type Input struct {
	ReferenceDate time.Time // zero value means "now"
	Items         []model.RecurringItem
	Commitments   []model.CommitmentItem
	Groups        []model.DuplicateGroup
	Links         []model.GrowthLink
}

// Overview is everything the presentation layer needs: aggregate
// metrics, the per-detector summary, the single recommended state, and
// the detail lists behind each count.
type Overview struct {
	Metrics     model.OverviewMetrics
	Summary     model.OverviewStateSummary
	Recommended model.FinanceState
	Groups      []model.DuplicateGroup
	Candidates  []model.CandidateScore
	Upcoming    []model.UpcomingPayment
}

// stateRule pairs a finance state with its predicate. Resolution walks
// the ordered list and the first satisfied predicate wins; adding a new
// state later is one entry in the right position, never a reshuffle of
// nested conditionals.
type stateRule struct {
	applies func(model.OverviewStateSummary) bool
	state   model.FinanceState
}

var stateRules = []stateRule{
	{state: model.StateOverlaps, applies: func(s model.OverviewStateSummary) bool { return s.Overlaps.CountGroups > 0 }},
	{state: model.StateCandidates, applies: func(s model.OverviewStateSummary) bool { return s.Candidates.CountItems > 0 }},
	{state: model.StateUpcoming, applies: func(s model.OverviewStateSummary) bool { return s.Upcoming.CountPayments > 0 }},
}

// BuildOverviewStateSummary runs the four detectors over the snapshot
// and resolves the recommended state. The function is pure: it holds no
// memory of previous calls and performs no I/O, so it is safe to call
// on every render or poll and two calls with identical input return
// value-equal results.
func BuildOverviewStateSummary(in Input, cfg Config) Overview {
	ref := in.ReferenceDate
	if ref.IsZero() {
		ref = time.Now()
	}

	groups := in.Groups
	if groups == nil {
		groups = DetectDuplicates(in.Items, cfg)
	}
	candidates := DetectCandidates(in.Items, groups, in.Links, cfg)
	upcoming := DetectUpcoming(in.Items, in.Commitments, ref, cfg)

	var fixedCost float64
	for _, item := range in.Items {
		if item.Active {
			// MonthlyAmount owns yearly normalization; summing it here
			// must never be combined with another division by twelve.
			fixedCost += item.MonthlyAmount()
		}
	}
	var upcomingAmount float64
	for _, p := range upcoming {
		upcomingAmount += p.Amount
	}

	metrics := model.OverviewMetrics{
		FixedCostThisMonth:  fixedCost,
		Upcoming7DaysAmount: upcomingAmount,
	}

	activeGroups := 0
	for _, g := range groups {
		if g.Status == model.StatusDetected {
			activeGroups++
		}
	}

	summary := model.OverviewStateSummary{
		Overlaps:   model.OverlapSummary{CountGroups: activeGroups},
		Candidates: model.CandidateSummary{CountItems: len(candidates)},
		Upcoming: model.UpcomingSummary{
			CountPayments: len(upcoming),
			NearestDDay:   nearestDDay(upcoming),
		},
	}
	summary.Risk = ComputeRiskLevel(metrics, summary.Overlaps.CountGroups, summary.Candidates.CountItems, cfg)

	return Overview{
		Metrics:     metrics,
		Summary:     summary,
		Recommended: resolveState(summary),
		Groups:      groups,
		Candidates:  candidates,
		Upcoming:    upcoming,
	}
}

func resolveState(summary model.OverviewStateSummary) model.FinanceState {
	for _, rule := range stateRules {
		if rule.applies(summary) {
			return rule.state
		}
	}
	return model.StateAllClear
}

// nearestDDay is the minimum days-until over the window, nil when the
// window is empty. The upcoming list is already sorted ascending, so
// the head carries the minimum.
func nearestDDay(upcoming []model.UpcomingPayment) *int {
	if len(upcoming) == 0 {
		return nil
	}
	d := upcoming[0].DaysUntil
	return &d
}
