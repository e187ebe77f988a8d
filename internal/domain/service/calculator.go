package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
	"github.com/bibbank/credit-schedule-service/pkg/money"
)

// internalPlaces is the number of fractional digits kept for intermediate
// results such as compounding factors and unrounded payments.
const internalPlaces int32 = 20

var (
	monthsPerYear = decimal.NewFromInt(12)
	one           = decimal.NewFromInt(1)
)

// CalculationInput is the shared input of every schedule strategy.
// Principal is the balance outstanding at the start of Periods[0].
type CalculationInput struct {
	Periods   []model.Period
	Principal decimal.Decimal
	Rates     model.RateSource
	Currency  money.Currency
}

func (in CalculationInput) validate() error {
	if len(in.Periods) == 0 {
		return fmt.Errorf("%w: no periods to compute", model.ErrNonPositiveTerm)
	}
	if in.Principal.IsNegative() {
		return fmt.Errorf("%w: got %s", model.ErrNonPositivePrincipal, in.Principal)
	}
	if in.Currency.IsZero() {
		return model.ErrInvalidCurrency
	}
	if in.Rates == nil {
		return model.ErrEmptyRateTimeline
	}
	if in.Periods[len(in.Periods)-1].Deferment {
		return fmt.Errorf("%w: final period cannot be a deferment period", model.ErrInvalidDeferment)
	}
	return nil
}

// amortizing counts the periods that repay principal.
func (in CalculationInput) amortizing() int {
	n := 0
	for _, p := range in.Periods {
		if !p.Deferment {
			n++
		}
	}
	return n
}

// Calculator turns generated periods into schedule rows.
type Calculator interface {
	Compute(in CalculationInput) ([]model.ScheduleItem, error)
}

// CalculatorFor returns the strategy for a calculation method.
func CalculatorFor(method valueobject.CalculationMethod) (Calculator, error) {
	switch {
	case method.Equal(valueobject.MethodClassicAnnuity):
		return AnnuityCalculator{}, nil
	case method.Equal(valueobject.MethodClassicDifferentiated):
		return DifferentiatedCalculator{}, nil
	case method.Equal(valueobject.MethodFloatingAnnuity):
		return AnnuityCalculator{Floating: true}, nil
	case method.Equal(valueobject.MethodFloatingDifferentiated):
		return DifferentiatedCalculator{Floating: true}, nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidCalculationMethod, method.String())
	}
}

// ---------------------------------------------------------------------------
// shared arithmetic
// ---------------------------------------------------------------------------

// monthlyRate converts an annual fraction to a monthly one.
func monthlyRate(annual decimal.Decimal) decimal.Decimal {
	return annual.DivRound(monthsPerYear, internalPlaces)
}

// compound returns base^n, rounding each step to internalPlaces.
func compound(base decimal.Decimal, n int) decimal.Decimal {
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(internalPlaces)
		}
		base = base.Mul(base).Round(internalPlaces)
		n >>= 1
	}
	return result
}

// annuityPayment solves payment = P·r / (1 − (1+r)^−n), written as
// P·r·f / (f − 1) with f = (1+r)^n. The result is unrounded.
func annuityPayment(balance, r decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return balance
	}
	if r.IsZero() {
		return balance.DivRound(decimal.NewFromInt(int64(n)), internalPlaces)
	}
	f := compound(one.Add(r), n)
	return balance.Mul(r).Mul(f).DivRound(f.Sub(one), internalPlaces)
}

// periodRate reads the single rate a classic credit is charged at.
func periodRate(in CalculationInput) (decimal.Decimal, error) {
	rate, err := in.Rates.RateOn(in.Periods[0].DueDate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("period %d: %w", in.Periods[0].Number, err)
	}
	return rate, nil
}

// accrue computes a period's unrounded interest on balance. Days in
// [AccrualStart, DueDate) are split into rate-homogeneous runs and each run is
// charged its monthly rate weighted by its share of the period's days. The
// second result is the day-weighted annual rate.
func accrue(balance decimal.Decimal, p model.Period, rates model.RateSource) (decimal.Decimal, decimal.Decimal, error) {
	totalDays := p.Days()
	if totalDays <= 0 {
		rate, err := rates.RateOn(p.DueDate)
		if err != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("period %d: %w", p.Number, err)
		}
		return balance.Mul(monthlyRate(rate)), rate, nil
	}

	segments, err := rates.Segments(p.AccrualStart, p.DueDate)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("period %d: %w", p.Number, err)
	}
	if len(segments) == 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("period %d: %w: %s", p.Number, model.ErrNoApplicableRate, p.AccrualStart)
	}

	days := decimal.NewFromInt(int64(totalDays))
	weighted := decimal.Zero
	for _, s := range segments {
		weighted = weighted.Add(s.Rate.Mul(decimal.NewFromInt(int64(s.Days()))))
	}
	avgRate := weighted.DivRound(days, internalPlaces)
	return balance.Mul(monthlyRate(avgRate)), avgRate, nil
}
