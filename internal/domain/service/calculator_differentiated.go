package service

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-schedule-service/internal/domain/model"
)

// DifferentiatedCalculator repays an equal share of principal each amortizing
// period, so instalments fall as the balance shrinks. Floating mode accrues
// interest day by day across rate changes; classic mode charges balance·r.
type DifferentiatedCalculator struct {
	Floating bool
}

// Compute implements Calculator.
func (c DifferentiatedCalculator) Compute(in CalculationInput) ([]model.ScheduleItem, error) {
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

	remaining := in.amortizing()
	share := in.Currency.Round(in.Principal.DivRound(decimal.NewFromInt(int64(remaining)), internalPlaces))

	items := make([]model.ScheduleItem, 0, len(in.Periods))
	balance := in.Principal

	for _, p := range in.Periods {
		var rawInterest, avgRate decimal.Decimal
		if c.Floating {
			var err error
			rawInterest, avgRate, err = accrue(balance, p, in.Rates)
			if err != nil {
				return nil, err
			}
		} else {
			rawInterest = balance.Mul(monthlyRate(fixedRate))
			avgRate = fixedRate
		}
		interest := in.Currency.Round(rawInterest)

		principal := decimal.Zero
		if !p.Deferment {
			principal = share
			if remaining == 1 || principal.GreaterThan(balance) {
				principal = balance
			}
			remaining--
		}
		balance = balance.Sub(principal)

		items = append(items, model.ScheduleItem{
			Period:           p.Number,
			DueDate:          p.DueDate,
			PrincipalDue:     principal,
			InterestDue:      interest,
			TotalDue:         principal.Add(interest),
			RemainingBalance: balance,
			AverageRate:      avgRate,
			Deferment:        p.Deferment,
		})
	}
	return items, nil
}
