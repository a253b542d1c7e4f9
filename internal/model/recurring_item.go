// Package model defines the core domain types shared across the application.
package model

import (
	"errors"
	"fmt"
	"time"
)

// BillingCycle indicates how often a recurring item bills.
type BillingCycle string

const (
	// CycleMonthly bills once per month.
	CycleMonthly BillingCycle = "monthly"
	// CycleYearly bills once per year.
	CycleYearly BillingCycle = "yearly"
)

// MonthsPerYear normalizes yearly billing to a monthly equivalent.
const MonthsPerYear = 12

// UsageFrequency is the user's self-reported usage of a recurring item.
type UsageFrequency string

const (
	// FrequencyRarely indicates the item is almost never used.
	FrequencyRarely UsageFrequency = "rarely"
	// FrequencySometimes indicates occasional use.
	FrequencySometimes UsageFrequency = "sometimes"
	// FrequencyOften indicates regular use.
	FrequencyOften UsageFrequency = "often"
)

// SignalEstimate maps a self-reported frequency onto the continuous
// usage signal scale. Used when a usage-check answer updates an item.
func (f UsageFrequency) SignalEstimate() float64 {
	switch f {
	case FrequencyRarely:
		return 0.15
	case FrequencySometimes:
		return 0.5
	case FrequencyOften:
		return 0.9
	default:
		return 0.3
	}
}

// WorkLife classifies a recurring item as a work or personal expense.
type WorkLife string

const (
	// WorkLifeWork marks a work expense.
	WorkLifeWork WorkLife = "Work"
	// WorkLifeLife marks a personal expense.
	WorkLifeLife WorkLife = "Life"
)

// RetentionIntent records what the user has said they want to do with an item.
type RetentionIntent string

const (
	// RetentionCancelCandidate means the user flagged the item for cancellation review.
	RetentionCancelCandidate RetentionIntent = "cancel_candidate"
	// RetentionKeep means the user explicitly wants to keep the item.
	RetentionKeep RetentionIntent = "keep"
)

// RecurringItem is a repeating financial obligation tracked by the engine:
// a subscription, membership, or similar fixed cost.
type RecurringItem struct {
	CreatedAt          time.Time
	UpdatedAt          time.Time
	NextPaymentDate    time.Time
	ID                 string
	Name               string
	CategoryL1         string
	PersonalGrowthType string
	DuplicateGroupID   string
	BillingCycle       BillingCycle
	WorkLife           WorkLife
	UsageFrequency     UsageFrequency // empty when the user has not answered a usage check
	RetentionIntent    RetentionIntent
	Amount             float64
	UsageSignalScore   float64 // 0..1 continuous usage estimate
	BillingDay         int
	Active             bool
}

// MonthlyAmount returns the monthly-equivalent cost of the item.
// This is the single place where yearly amounts are normalized;
// callers must never divide by twelve themselves.
func (i *RecurringItem) MonthlyAmount() float64 {
	if i.BillingCycle == CycleYearly {
		return i.Amount / MonthsPerYear
	}
	return i.Amount
}

// Validation errors for recurring items.
var (
	ErrEmptyItemID       = errors.New("item id cannot be empty")
	ErrEmptyItemName     = errors.New("item name cannot be empty")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrInvalidCycle      = errors.New("invalid billing cycle")
	ErrInvalidBillingDay = errors.New("billing day must be between 1 and 31")
)

// Validate checks the structural invariants of a recurring item.
func (i *RecurringItem) Validate() error {
	if i.ID == "" {
		return ErrEmptyItemID
	}
	if i.Name == "" {
		return fmt.Errorf("%w: item %s", ErrEmptyItemName, i.ID)
	}
	if i.Amount <= 0 {
		return fmt.Errorf("%w: item %s has amount %.2f", ErrNonPositiveAmount, i.ID, i.Amount)
	}
	if i.BillingCycle != CycleMonthly && i.BillingCycle != CycleYearly {
		return fmt.Errorf("%w: %q", ErrInvalidCycle, i.BillingCycle)
	}
	if i.BillingDay < 1 || i.BillingDay > 31 {
		return fmt.Errorf("%w: got %d", ErrInvalidBillingDay, i.BillingDay)
	}
	return nil
}
