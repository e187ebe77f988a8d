package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
)

// ScheduleItem is one row of a payment schedule. Amounts are rounded to the
// credit currency's minor unit.
type ScheduleItem struct {
	Period           int
	DueDate          valueobject.Date
	PrincipalDue     decimal.Decimal
	InterestDue      decimal.Decimal
	TotalDue         decimal.Decimal
	RemainingBalance decimal.Decimal
	// AverageRate is the day-weighted annual rate charged during the period.
	AverageRate decimal.Decimal
	Deferment   bool
}

// Totals aggregates a schedule.
type Totals struct {
	TotalPrincipal decimal.Decimal
	TotalInterest  decimal.Decimal
	TotalPayments  decimal.Decimal
	Overpayment    decimal.Decimal
}

// Schedule is a computed schedule with its totals.
type Schedule struct {
	Items  []ScheduleItem
	Totals Totals
}

// ComputeTotals sums the schedule rows. Overpayment is measured against the
// credit principal, not against the sum of principal rows.
func ComputeTotals(items []ScheduleItem, principal decimal.Decimal) Totals {
	t := Totals{
		TotalPrincipal: decimal.Zero,
		TotalInterest:  decimal.Zero,
		TotalPayments:  decimal.Zero,
	}
	for _, it := range items {
		t.TotalPrincipal = t.TotalPrincipal.Add(it.PrincipalDue)
		t.TotalInterest = t.TotalInterest.Add(it.InterestDue)
		t.TotalPayments = t.TotalPayments.Add(it.TotalDue)
	}
	t.Overpayment = t.TotalPayments.Sub(principal)
	return t
}

// FindItem returns the row for a period number.
func FindItem(items []ScheduleItem, period int) (ScheduleItem, bool) {
	for _, it := range items {
		if it.Period == period {
			return it, true
		}
	}
	return ScheduleItem{}, false
}
