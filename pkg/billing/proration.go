// Package billing holds the pure plan-change arithmetic shared by the
// user-facing plan switch flow and the admin subscription tooling.
package billing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// daysPerMonth is the fixed month length used for daily-rate math.
// Billing periods themselves are calendar-accurate; only the rate
// approximation uses 30-day months.
const daysPerMonth = 30

type PlanTerms struct {
	Price          decimal.Decimal
	DurationMonths int
}

type Period struct {
	StartDate time.Time
	EndDate   time.Time
}

// Result describes the monetary outcome of a mid-cycle plan change.
// Exactly one of AmountDue and Credit can be positive, never both.
type Result struct {
	RemainingDays int
	UnusedValue   decimal.Decimal
	AmountDue     decimal.Decimal
	Credit        decimal.Decimal
	Upgrade       bool
}

// Prorate computes what a subscriber owes, or is owed, when moving from
// current to next partway through period. It is deterministic given its
// inputs and performs no I/O.
//
// A degenerate period (end not after start) yields an all-zero result
// rather than dividing by zero.
func Prorate(current, next PlanTerms, period Period, now time.Time) Result {
	totalDays := ceilDays(period.StartDate, period.EndDate)
	if totalDays <= 0 {
		return Result{Upgrade: next.Price.GreaterThan(current.Price)}
	}

	remainingDays := ceilDays(now, period.EndDate)
	if remainingDays < 0 {
		remainingDays = 0
	}
	if remainingDays > totalDays {
		remainingDays = totalDays
	}

	ratio := decimal.NewFromInt(int64(remainingDays)).
		Div(decimal.NewFromInt(int64(totalDays)))
	unusedValue := current.Price.Mul(ratio)

	remainingCost := next.DailyRate().Mul(decimal.NewFromInt(int64(remainingDays)))

	result := Result{
		RemainingDays: remainingDays,
		UnusedValue:   unusedValue,
		AmountDue:     decimal.Zero,
		Credit:        decimal.Zero,
		Upgrade:       next.Price.GreaterThan(current.Price),
	}

	if result.Upgrade {
		due := remainingCost.Sub(unusedValue)
		if due.IsPositive() {
			result.AmountDue = due
		}
		return result
	}

	credit := unusedValue.Sub(remainingCost)
	if credit.IsPositive() {
		result.Credit = credit
	}
	return result
}

// DailyRate returns the plan price spread over its term using 30-day
// months. Zero-duration plans have a zero rate.
func (p PlanTerms) DailyRate() decimal.Decimal {
	if p.DurationMonths <= 0 {
		return decimal.Zero
	}
	return p.Price.Div(decimal.NewFromInt(int64(p.DurationMonths) * daysPerMonth))
}

// CreditExtensionDays converts a residual credit into whole extra days
// on plan, rounding down against a 30-day slice of the plan price. Used
// when a downgrade is settled by extending the current period instead
// of issuing a refund.
func CreditExtensionDays(credit decimal.Decimal, plan PlanTerms) int {
	if !credit.IsPositive() || !plan.Price.IsPositive() {
		return 0
	}
	perDay := plan.Price.Div(decimal.NewFromInt(daysPerMonth))
	return int(credit.Div(perDay).IntPart())
}

// NextEndDate returns the calendar end of a fresh term starting at from.
func NextEndDate(from time.Time, plan PlanTerms) time.Time {
	return from.AddDate(0, plan.DurationMonths, 0)
}

func ceilDays(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}
