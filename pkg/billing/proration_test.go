package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func plan(price string, months int) PlanTerms {
	return PlanTerms{Price: decimal.RequireFromString(price), DurationMonths: months}
}

func TestProrateZeroDayPeriod(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	period := Period{StartDate: now, EndDate: now}

	result := Prorate(plan("29.00", 1), plan("59.00", 1), period, now)

	assert.Equal(t, 0, result.RemainingDays)
	assert.True(t, result.AmountDue.IsZero())
	assert.True(t, result.Credit.IsZero())
	assert.True(t, result.UnusedValue.IsZero())
}

func TestProrateUpgradeMidCycle(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	period := Period{StartDate: start, EndDate: start.AddDate(0, 0, 30)}
	now := start.AddDate(0, 0, 15)

	result := Prorate(plan("30.00", 1), plan("60.00", 1), period, now)

	assert.Equal(t, 15, result.RemainingDays)
	assert.True(t, result.Upgrade)
	// 15 days unused of a 30.00 plan leaves 15.00; the 60.00 plan costs
	// 2.00/day so 15 remaining days cost 30.00.
	assert.True(t, result.UnusedValue.Equal(decimal.RequireFromString("15")))
	assert.True(t, result.AmountDue.Equal(decimal.RequireFromString("15")))
	assert.True(t, result.Credit.IsZero())
}

func TestProrateDowngradeMidCycle(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	period := Period{StartDate: start, EndDate: start.AddDate(0, 0, 30)}
	now := start.AddDate(0, 0, 15)

	result := Prorate(plan("60.00", 1), plan("30.00", 1), period, now)

	assert.False(t, result.Upgrade)
	assert.True(t, result.AmountDue.IsZero())
	// 30.00 unused minus 15.00 remaining cost on the cheaper plan.
	assert.True(t, result.Credit.Equal(decimal.RequireFromString("15")))
}

func TestProrateEqualPriceSwitch(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	period := Period{StartDate: start, EndDate: start.AddDate(0, 0, 30)}
	now := start.AddDate(0, 0, 10)

	result := Prorate(plan("29.00", 1), plan("29.00", 1), period, now)

	assert.False(t, result.Upgrade)
	assert.True(t, result.AmountDue.IsZero())
	assert.True(t, result.Credit.IsZero())
}

func TestProrateAmountDueMonotonicInNewPrice(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	period := Period{StartDate: start, EndDate: start.AddDate(0, 0, 30)}
	now := start.AddDate(0, 0, 7)
	current := plan("29.00", 1)

	prev := decimal.Zero
	for _, price := range []string{"29.00", "39.00", "59.00", "99.00", "199.00"} {
		result := Prorate(current, plan(price, 1), period, now)
		assert.True(t, result.AmountDue.GreaterThanOrEqual(prev),
			"amount due must not decrease as the new price rises (price %s)", price)
		prev = result.AmountDue
	}
}

func TestProrateExpiredPeriod(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	period := Period{StartDate: start, EndDate: start.AddDate(0, 0, 30)}
	now := start.AddDate(0, 0, 45)

	result := Prorate(plan("29.00", 1), plan("59.00", 1), period, now)

	assert.Equal(t, 0, result.RemainingDays)
	assert.True(t, result.AmountDue.IsZero())
	assert.True(t, result.Credit.IsZero())
}

func TestProrateNeverReturnsNegativeAmounts(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	period := Period{StartDate: start, EndDate: start.AddDate(0, 0, 30)}

	tests := []struct {
		name    string
		current PlanTerms
		next    PlanTerms
		now     time.Time
	}{
		{"upgrade near period end", plan("29.00", 1), plan("30.00", 1), start.AddDate(0, 0, 29)},
		{"downgrade near period start", plan("59.00", 1), plan("58.00", 1), start},
		{"longer term downgrade", plan("29.00", 1), plan("290.00", 12), start.AddDate(0, 0, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Prorate(tt.current, tt.next, period, tt.now)
			assert.False(t, result.AmountDue.IsNegative())
			assert.False(t, result.Credit.IsNegative())
		})
	}
}

func TestCreditExtensionDays(t *testing.T) {
	tests := []struct {
		name   string
		credit string
		plan   PlanTerms
		want   int
	}{
		{"whole days", "10.00", plan("30.00", 1), 10},
		{"rounds down", "10.50", plan("30.00", 1), 10},
		{"zero credit", "0", plan("30.00", 1), 0},
		{"free plan", "10.00", plan("0", 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreditExtensionDays(decimal.RequireFromString(tt.credit), tt.plan)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextEndDate(t *testing.T) {
	from := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	got := NextEndDate(from, plan("29.00", 1))
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), got)
}
