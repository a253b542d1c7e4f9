package model

import "time"

// PaymentKind says which record type an upcoming payment came from.
type PaymentKind string

const (
	// PaymentRecurring comes from a RecurringItem.
	PaymentRecurring PaymentKind = "recurring"
	// PaymentCommitment comes from a CommitmentItem.
	PaymentCommitment PaymentKind = "commitment"
)

// UpcomingPayment is a single payment due inside the lookahead window.
type UpcomingPayment struct {
	DueDate   time.Time
	SourceID  string
	Name      string
	Kind      PaymentKind
	Amount    float64
	DaysUntil int
}

// RiskLevel is the aggregate risk classification of the user's
// recurring spend.
type RiskLevel string

const (
	// RiskLow means nothing needs attention.
	RiskLow RiskLevel = "LOW"
	// RiskMedium means some overlap or candidate buildup exists.
	RiskMedium RiskLevel = "MEDIUM"
	// RiskHigh means spend and problem counts are both elevated.
	RiskHigh RiskLevel = "HIGH"
)

// FinanceState is the single "what to look at next" signal the
// presentation layer surfaces first.
type FinanceState string

const (
	// StateOverlaps surfaces duplicate subscription groups.
	StateOverlaps FinanceState = "overlaps"
	// StateCandidates surfaces cancellation candidates.
	StateCandidates FinanceState = "candidates"
	// StateUpcoming surfaces imminent payments.
	StateUpcoming FinanceState = "upcoming"
	// StateAllClear means nothing needs attention.
	StateAllClear FinanceState = "allclear"
)

// OverviewMetrics are the aggregate spend figures shown on the overview.
type OverviewMetrics struct {
	FixedCostThisMonth  float64 // sum of monthly-equivalent amounts of active items
	Upcoming7DaysAmount float64 // sum of amounts due within the window
}

// OverlapSummary counts active duplicate groups.
type OverlapSummary struct {
	CountGroups int
}

// CandidateSummary counts cancellation candidates.
type CandidateSummary struct {
	CountItems int
}

// UpcomingSummary counts imminent payments. NearestDDay is nil when the
// window is empty.
type UpcomingSummary struct {
	NearestDDay   *int
	CountPayments int
}

// OverviewStateSummary is the assembled per-detector summary plus the
// aggregate risk classification.
type OverviewStateSummary struct {
	Overlaps   OverlapSummary
	Candidates CandidateSummary
	Upcoming   UpcomingSummary
	Risk       RiskLevel
}
