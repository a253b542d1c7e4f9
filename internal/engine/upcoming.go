package engine

import (
	"sort"
	"time"

	"github.com/subkitapp/subkit/internal/model"
)

// DetectUpcoming finds every payment due inside the inclusive window
// [referenceDate, referenceDate+WindowDays]. Recurring items and
// commitment items participate alike. Records with a zero or
// already-passed due date are skipped rather than failing the whole
// computation.
//
// Ordering is pinned: days-until ascending, then amount descending (the
// larger payment deserves attention first), then source id ascending.
func DetectUpcoming(items []model.RecurringItem, commitments []model.CommitmentItem, referenceDate time.Time, cfg Config) []model.UpcomingPayment {
	var payments []model.UpcomingPayment

	for _, item := range items {
		if !item.Active {
			continue
		}
		if p, ok := windowPayment(item.ID, item.Name, model.PaymentRecurring, item.Amount, item.NextPaymentDate, referenceDate, cfg.WindowDays); ok {
			payments = append(payments, p)
		}
	}
	for _, c := range commitments {
		if !c.Active {
			continue
		}
		if p, ok := windowPayment(c.ID, c.Name, model.PaymentCommitment, c.Amount, c.NextDueDate, referenceDate, cfg.WindowDays); ok {
			payments = append(payments, p)
		}
	}

	sort.Slice(payments, func(i, j int) bool {
		if payments[i].DaysUntil != payments[j].DaysUntil {
			return payments[i].DaysUntil < payments[j].DaysUntil
		}
		if payments[i].Amount != payments[j].Amount {
			return payments[i].Amount > payments[j].Amount
		}
		return payments[i].SourceID < payments[j].SourceID
	})

	return payments
}

func windowPayment(id, name string, kind model.PaymentKind, amount float64, due, ref time.Time, windowDays int) (model.UpcomingPayment, bool) {
	if due.IsZero() {
		return model.UpcomingPayment{}, false
	}
	days := daysBetween(ref, due)
	if days < 0 || days > windowDays {
		return model.UpcomingPayment{}, false
	}
	return model.UpcomingPayment{
		SourceID:  id,
		Name:      name,
		Kind:      kind,
		Amount:    amount,
		DueDate:   due,
		DaysUntil: days,
	}, true
}

// daysBetween returns the whole-day calendar distance from a to b.
// Both timestamps are truncated to their calendar date first, so a
// payment due late tomorrow evening is one day away regardless of the
// hour the engine runs.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
