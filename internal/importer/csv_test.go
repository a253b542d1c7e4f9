package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subkitapp/subkit/internal/common"
	"github.com/subkitapp/subkit/internal/model"
)

var importNow = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestParseRecurringCSV(t *testing.T) {
	input := strings.Join([]string{
		"name,amount,billing_cycle,billing_day,category,work_life,next_payment_date",
		"Netflix,\"17,000\",monthly,25,entertainment,Life,2025-03-25",
		"Slack,₩8800,monthly,1,productivity,Work,2025-04-01",
		"iCloud+,120000,yearly,15,cloud,,2025-06-15",
	}, "\n")

	result, err := ParseRecurringCSV(strings.NewReader(input), importNow)
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Empty(t, result.Skipped)

	netflix := result.Items[0]
	assert.NotEmpty(t, netflix.ID)
	assert.Equal(t, "Netflix", netflix.Name)
	assert.InDelta(t, 17000, netflix.Amount, 0.001)
	assert.Equal(t, model.CycleMonthly, netflix.BillingCycle)
	assert.Equal(t, model.WorkLifeLife, netflix.WorkLife)
	assert.Equal(t, time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC), netflix.NextPaymentDate)
	assert.True(t, netflix.Active)

	slack := result.Items[1]
	assert.InDelta(t, 8800, slack.Amount, 0.001)
	assert.Equal(t, model.WorkLifeWork, slack.WorkLife)

	icloud := result.Items[2]
	assert.Equal(t, model.CycleYearly, icloud.BillingCycle)
	assert.Equal(t, model.WorkLifeLife, icloud.WorkLife, "missing work_life defaults to Life")
}

func TestParseRecurringCSV_SkipsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		"name,amount,billing_cycle,billing_day,category,work_life,next_payment_date",
		"Netflix,17000,monthly,25,entertainment,Life,2025-03-25",
		"Broken,not-a-number,monthly,1,misc,Life,2025-04-01",
		"BadDate,9900,monthly,1,misc,Life,03/25/2025",
		"NoName,9900,monthly,1,misc,Life,2025-04-01",
		"Negative,-5000,monthly,1,misc,Life,2025-04-01",
	}, "\n")

	result, err := ParseRecurringCSV(strings.NewReader(input), importNow)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	require.Len(t, result.Skipped, 4)
	assert.Equal(t, 3, result.Skipped[0].Line)
	assert.Contains(t, result.Skipped[0].Reason, "not-a-number")
}

func TestParseRecurringCSV_DefaultsBillingDayFromDueDate(t *testing.T) {
	input := strings.Join([]string{
		"name,amount,billing_cycle,billing_day,category,work_life,next_payment_date",
		"Netflix,17000,monthly,0,entertainment,Life,2025-03-25",
	}, "\n")

	result, err := ParseRecurringCSV(strings.NewReader(input), importNow)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 25, result.Items[0].BillingDay)
}

func TestParseRecurringCSV_EmptyFile(t *testing.T) {
	input := "name,amount,billing_cycle,billing_day,category,work_life,next_payment_date\n"

	_, err := ParseRecurringCSV(strings.NewReader(input), importNow)
	assert.ErrorIs(t, err, common.ErrEmptyFile)
}
