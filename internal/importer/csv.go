// Package importer parses bank-exported CSV files into recurring item
// records. Parsing correctness stops at record validity: the decision
// engine only ever sees the records this package emits.
package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subkitapp/subkit/internal/common"
	"github.com/subkitapp/subkit/internal/model"
)

// csvRecord is one row of the import file. Headers are matched by tag.
type csvRecord struct {
	Name            string `csv:"name"`
	Amount          string `csv:"amount"`
	BillingCycle    string `csv:"billing_cycle"`
	BillingDay      int    `csv:"billing_day"`
	Category        string `csv:"category"`
	WorkLife        string `csv:"work_life"`
	NextPaymentDate string `csv:"next_payment_date"`
}

// SkippedRow records why a row was left out of the import.
type SkippedRow struct {
	Reason string
	Line   int
}

// Result is the outcome of parsing one CSV file.
type Result struct {
	Items   []model.RecurringItem
	Skipped []SkippedRow
}

// dateLayout is the unambiguous ISO date format required in import files.
const dateLayout = "2006-01-02"

// ParseRecurringCSV reads a CSV export and converts each row into a
// recurring item. Malformed rows are skipped and reported, never fatal;
// only an unreadable file or empty input fails the whole import.
func ParseRecurringCSV(r io.Reader, now time.Time) (*Result, error) {
	var records []csvRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, common.ErrEmptyFile
	}

	result := &Result{}
	for i, rec := range records {
		line := i + 2 // header occupies line 1
		item, err := recordToItem(rec, now)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}
		result.Items = append(result.Items, item)
	}
	return result, nil
}

func recordToItem(rec csvRecord, now time.Time) (model.RecurringItem, error) {
	amount, err := parseAmount(rec.Amount)
	if err != nil {
		return model.RecurringItem{}, err
	}

	cycle := model.BillingCycle(strings.ToLower(strings.TrimSpace(rec.BillingCycle)))
	if cycle == "" {
		cycle = model.CycleMonthly
	}

	var nextPayment time.Time
	if rec.NextPaymentDate != "" {
		nextPayment, err = time.Parse(dateLayout, rec.NextPaymentDate)
		if err != nil {
			return model.RecurringItem{}, fmt.Errorf("%w: bad date %q", common.ErrMalformedRow, rec.NextPaymentDate)
		}
	}

	workLife := model.WorkLifeLife
	if strings.EqualFold(rec.WorkLife, string(model.WorkLifeWork)) {
		workLife = model.WorkLifeWork
	}

	billingDay := rec.BillingDay
	if billingDay == 0 && !nextPayment.IsZero() {
		billingDay = nextPayment.Day()
	}

	item := model.RecurringItem{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(rec.Name),
		Amount:           amount,
		BillingCycle:     cycle,
		BillingDay:       billingDay,
		CategoryL1:       strings.ToLower(strings.TrimSpace(rec.Category)),
		WorkLife:         workLife,
		NextPaymentDate:  nextPayment,
		UsageSignalScore: 0.5, // unknown until the first usage check
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := item.Validate(); err != nil {
		return model.RecurringItem{}, fmt.Errorf("%w: %v", common.ErrMalformedRow, err)
	}
	return item, nil
}

// parseAmount accepts the formats bank exports actually contain:
// "17000", "17,000", "₩17,000", "17000.00". Decimal parsing avoids
// float rounding surprises before the value lands in the model.
func parseAmount(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "₩")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty amount", common.ErrMalformedRow)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: bad amount %q", common.ErrMalformedRow, raw)
	}
	if d.Sign() <= 0 {
		return 0, fmt.Errorf("%w: amount %q is not positive", common.ErrMalformedRow, raw)
	}
	return d.InexactFloat64(), nil
}
