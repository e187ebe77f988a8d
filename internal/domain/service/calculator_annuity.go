package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-schedule-service/internal/domain/model"
)

// AnnuityCalculator produces equal instalments over the amortizing periods.
//
// Classic mode charges balance·r per period, where r is the single annual rate
// divided by 12, and solves the instalment once:
//
//	payment = P · r · (1+r)^n / ((1+r)^n − 1)
//
// Floating mode accrues interest day by day across rate changes and re-solves
// the instalment on the remaining balance and remaining amortizing periods
// whenever the rate in effect on a due date differs from the rate the current
// instalment was solved at.
//
// Deferment periods pay interest only. The last row absorbs rounding so the
// balance closes at exactly zero.
type AnnuityCalculator struct {
	Floating bool
}

// Compute implements Calculator.
func (c AnnuityCalculator) Compute(in CalculationInput) ([]model.ScheduleItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Principal.IsZero() {
		return []model.ScheduleItem{}, nil
	}

	var fixedRate decimal.Decimal
	if !c.Floating {
		rate, err := periodRate(in)
		if err != nil {
			return nil, err
		}
		fixedRate = rate
	}

	items := make([]model.ScheduleItem, 0, len(in.Periods))
	balance := in.Principal
	remaining := in.amortizing()

	var (
		payment  decimal.Decimal
		solvedAt decimal.Decimal
		solved   bool
	)

	for _, p := range in.Periods {
		var (
			rawInterest decimal.Decimal
			avgRate     decimal.Decimal
			dueRate     decimal.Decimal
		)
		if c.Floating {
			var err error
			rawInterest, avgRate, err = accrue(balance, p, in.Rates)
			if err != nil {
				return nil, err
			}
			dueRate, err = in.Rates.RateOn(p.DueDate)
			if err != nil {
				return nil, fmt.Errorf("period %d: %w", p.Number, err)
			}
		} else {
			rawInterest = balance.Mul(monthlyRate(fixedRate))
			avgRate = fixedRate
			dueRate = fixedRate
		}
		interest := in.Currency.Round(rawInterest)

		if p.Deferment {
			items = append(items, model.ScheduleItem{
				Period:           p.Number,
				DueDate:          p.DueDate,
				PrincipalDue:     decimal.Zero,
				InterestDue:      interest,
				TotalDue:         interest,
				RemainingBalance: balance,
				AverageRate:      avgRate,
				Deferment:        true,
			})
			continue
		}

		if !solved || !dueRate.Equal(solvedAt) {
			payment = in.Currency.Round(annuityPayment(balance, monthlyRate(dueRate), remaining))
			solvedAt = dueRate
			solved = true
		}

		principal := payment.Sub(interest)
		if principal.IsNegative() {
			principal = decimal.Zero
		}
		if remaining == 1 || principal.GreaterThan(balance) {
			principal = balance
		}
		balance = balance.Sub(principal)
		remaining--

		items = append(items, model.ScheduleItem{
			Period:           p.Number,
			DueDate:          p.DueDate,
			PrincipalDue:     principal,
			InterestDue:      interest,
			TotalDue:         principal.Add(interest),
			RemainingBalance: balance,
			AverageRate:      avgRate,
		})
	}
	return items, nil
}
