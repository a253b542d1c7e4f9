package model

import "time"

// CommitmentKind distinguishes the flavors of non-subscription obligations.
type CommitmentKind string

const (
	// CommitmentInstallment is a fixed-term installment payment.
	CommitmentInstallment CommitmentKind = "installment"
	// CommitmentInsurance is an insurance premium.
	CommitmentInsurance CommitmentKind = "insurance"
	// CommitmentSavings is a recurring savings transfer.
	CommitmentSavings CommitmentKind = "savings"
)

// CommitmentItem is an installment/insurance-like obligation with its own
// due-date semantics. It participates in the upcoming-payment window
// alongside recurring items but is never a duplicate or cancellation
// candidate.
type CommitmentItem struct {
	CreatedAt         time.Time
	UpdatedAt         time.Time
	NextDueDate       time.Time
	ID                string
	Name              string
	Kind              CommitmentKind
	Amount            float64
	BillingDay        int
	RemainingPayments int // 0 means open-ended (e.g., insurance)
	Active            bool
}
