package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/pkg/money"
)

// verifySchedule checks a computed schedule before it leaves the engine. Any
// failure is a calculator defect and is reported as *model.InvariantError.
//
//	total      == principal + interest          (within one minor unit)
//	amounts    >= 0
//	balance    non-increasing, 0 on the final row
//	Σ principal == credit principal             (within one minor unit per row)
func verifySchedule(items []model.ScheduleItem, principal decimal.Decimal, cur money.Currency) error {
	unit := cur.MinorUnit()
	prevBalance := principal
	sum := decimal.Zero

	for _, it := range items {
		if it.PrincipalDue.IsNegative() || it.InterestDue.IsNegative() || it.RemainingBalance.IsNegative() {
			return &model.InvariantError{
				Period:    it.Period,
				Invariant: model.InvariantNonNegative,
				Detail:    fmt.Sprintf("principal %s interest %s balance %s", it.PrincipalDue, it.InterestDue, it.RemainingBalance),
			}
		}
		if it.TotalDue.Sub(it.PrincipalDue.Add(it.InterestDue)).Abs().GreaterThan(unit) {
			return &model.InvariantError{
				Period:    it.Period,
				Invariant: model.InvariantTotalComposition,
				Detail:    fmt.Sprintf("total %s != %s + %s", it.TotalDue, it.PrincipalDue, it.InterestDue),
			}
		}
		if it.RemainingBalance.GreaterThan(prevBalance) {
			return &model.InvariantError{
				Period:    it.Period,
				Invariant: model.InvariantBalanceMonotonic,
				Detail:    fmt.Sprintf("balance rose from %s to %s", prevBalance, it.RemainingBalance),
			}
		}
		prevBalance = it.RemainingBalance
		sum = sum.Add(it.PrincipalDue)
	}

	if len(items) == 0 {
		return nil
	}
	last := items[len(items)-1]
	if !last.RemainingBalance.IsZero() {
		return &model.InvariantError{
			Period:    last.Period,
			Invariant: model.InvariantFinalBalanceZero,
			Detail:    fmt.Sprintf("final balance %s", last.RemainingBalance),
		}
	}
	tolerance := unit.Mul(decimal.NewFromInt(int64(len(items))))
	if sum.Sub(principal).Abs().GreaterThan(tolerance) {
		return &model.InvariantError{
			Period:    last.Period,
			Invariant: model.InvariantPrincipalSum,
			Detail:    fmt.Sprintf("principal rows sum to %s, credit principal %s", sum, principal),
		}
	}
	return nil
}
