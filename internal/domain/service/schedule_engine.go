package service

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// ScheduleEngine
// ---------------------------------------------------------------------------

// ScheduleEngine is a stateless domain service that turns credit terms and a
// rate timeline into a verified payment schedule.
//
// Pipeline:
//
//	terms + timeline -> GeneratePeriods -> Calculator -> verify -> Totals
//
// The engine performs no I/O. Callers must load the terms, the timeline and the
// payments from one consistent snapshot.
type ScheduleEngine struct{}

// NewScheduleEngine creates a new ScheduleEngine.
func NewScheduleEngine() *ScheduleEngine {
	return &ScheduleEngine{}
}

// Recomputation is the result of recomputing a schedule around settled periods.
type Recomputation struct {
	Schedule model.Schedule
	// SettledPeriods is the number of leading periods kept as recorded.
	SettledPeriods int
	// TermsLocked is true when principal, method and start date can no
	// longer be amended.
	TermsLocked bool
}

// ComputeSchedule produces the full schedule for the credit terms.
func (e *ScheduleEngine) ComputeSchedule(terms model.CreditTerms, timeline model.RateTimeline) (model.Schedule, error) {
	if err := e.validateInputs(terms, timeline); err != nil {
		return model.Schedule{}, err
	}

	periods, err := model.GeneratePeriods(terms.StartDate, terms.PaymentDay, terms.TermMonths, terms.DefermentMonths)
	if err != nil {
		return model.Schedule{}, fmt.Errorf("generate periods: %w", err)
	}

	calc, err := CalculatorFor(terms.Method)
	if err != nil {
		return model.Schedule{}, err
	}
	items, err := calc.Compute(CalculationInput{
		Periods:   periods,
		Principal: terms.Principal,
		Rates:     timeline,
		Currency:  terms.Currency,
	})
	if err != nil {
		return model.Schedule{}, fmt.Errorf("compute %s: %w", terms.Method, err)
	}

	if err := verifySchedule(items, terms.Principal, terms.Currency); err != nil {
		return model.Schedule{}, err
	}
	return model.Schedule{Items: items, Totals: model.ComputeTotals(items, terms.Principal)}, nil
}

// Recompute keeps the rows of settled periods exactly as recorded and
// recalculates the remaining periods from the balance left after the last
// settled one, using the credit's current payment day, term and deferment.
//
// Settling payments must cover periods 1..k without gaps. With no settling
// payment the result equals ComputeSchedule.
func (e *ScheduleEngine) Recompute(
	terms model.CreditTerms,
	timeline model.RateTimeline,
	payments []model.Payment,
) (Recomputation, error) {
	if err := e.validateInputs(terms, timeline); err != nil {
		return Recomputation{}, err
	}

	settled, err := settledPrefix(payments)
	if err != nil {
		return Recomputation{}, err
	}
	k := len(settled)
	if k == 0 {
		sched, err := e.ComputeSchedule(terms, timeline)
		if err != nil {
			return Recomputation{}, err
		}
		return Recomputation{Schedule: sched}, nil
	}
	if k > terms.TermMonths {
		return Recomputation{}, fmt.Errorf("%w: term %d, settled through period %d",
			model.ErrTermBeforeSettled, terms.TermMonths, k)
	}

	items := make([]model.ScheduleItem, 0, terms.TermMonths)
	balance := terms.Principal
	for _, p := range settled {
		balance = balance.Sub(p.PrincipalDue)
		items = append(items, model.ScheduleItem{
			Period:           p.Period,
			DueDate:          p.DueDate,
			PrincipalDue:     p.PrincipalDue,
			InterestDue:      p.InterestDue,
			TotalDue:         p.TotalDue,
			RemainingBalance: balance,
			AverageRate:      recordedRate(timeline, p.DueDate),
			Deferment:        p.Period <= terms.DefermentMonths && p.PrincipalDue.IsZero(),
		})
	}
	if balance.IsNegative() {
		return Recomputation{}, &model.InvariantError{
			Period:    k,
			Invariant: model.InvariantPrincipalSum,
			Detail:    fmt.Sprintf("settled principal exceeds credit principal %s by %s", terms.Principal, balance.Neg()),
		}
	}

	if k == terms.TermMonths {
		if !balance.IsZero() {
			return Recomputation{}, fmt.Errorf("%w: all %d periods settled with %s outstanding",
				model.ErrTermBeforeSettled, k, balance)
		}
	} else {
		periods, err := model.GeneratePeriods(terms.StartDate, terms.PaymentDay, terms.TermMonths, terms.DefermentMonths)
		if err != nil {
			return Recomputation{}, fmt.Errorf("generate periods: %w", err)
		}
		tail := make([]model.Period, len(periods)-k)
		copy(tail, periods[k:])
		tail[0].AccrualStart = settled[k-1].DueDate
		if !tail[0].DueDate.After(tail[0].AccrualStart) {
			return Recomputation{}, fmt.Errorf("%w: period %d due %s is not after settled due date %s",
				model.ErrTermBeforeSettled, tail[0].Number, tail[0].DueDate, tail[0].AccrualStart)
		}

		calc, err := CalculatorFor(terms.Method)
		if err != nil {
			return Recomputation{}, err
		}
		rows, err := calc.Compute(CalculationInput{
			Periods:   tail,
			Principal: balance,
			Rates:     timeline,
			Currency:  terms.Currency,
		})
		if err != nil {
			return Recomputation{}, fmt.Errorf("compute %s tail: %w", terms.Method, err)
		}
		items = append(items, rows...)
	}

	if err := verifySchedule(items, terms.Principal, terms.Currency); err != nil {
		return Recomputation{}, err
	}
	return Recomputation{
		Schedule:       model.Schedule{Items: items, Totals: model.ComputeTotals(items, terms.Principal)},
		SettledPeriods: k,
		TermsLocked:    true,
	}, nil
}

// TermsLocked reports whether any payment settles a period, which freezes the
// credit's principal, method and start date.
func (e *ScheduleEngine) TermsLocked(payments []model.Payment) bool {
	for _, p := range payments {
		if p.Settles() {
			return true
		}
	}
	return false
}

// LastSettledDueDate returns the due date of the latest settled period.
func (e *ScheduleEngine) LastSettledDueDate(payments []model.Payment) (valueobject.Date, bool) {
	var (
		last  valueobject.Date
		found bool
	)
	for _, p := range payments {
		if !p.Settles() {
			continue
		}
		if !found || p.DueDate.After(last) {
			last = p.DueDate
			found = true
		}
	}
	return last, found
}

func (e *ScheduleEngine) validateInputs(terms model.CreditTerms, timeline model.RateTimeline) error {
	if err := terms.Validate(); err != nil {
		return err
	}
	// Re-bind the timeline to the terms' start date so a timeline built for
	// other terms cannot slip through.
	bound := model.RateTimelineFromOrdered(terms.StartDate, timeline.Entries())
	if err := bound.Validate(); err != nil {
		return err
	}
	if !terms.Method.IsFloating() && bound.Len() != 1 {
		return fmt.Errorf("%w: got %d entries", model.ErrFixedRateChange, bound.Len())
	}
	return nil
}

// settledPrefix returns the settling payments ordered by period and checks
// they cover 1..k exactly once each.
func settledPrefix(payments []model.Payment) ([]model.Payment, error) {
	settled := model.SettledPayments(payments)
	sort.SliceStable(settled, func(i, j int) bool { return settled[i].Period < settled[j].Period })
	for i, p := range settled {
		if p.Period != i+1 {
			return nil, fmt.Errorf("%w: expected period %d, found %d", model.ErrNonContiguousSettlement, i+1, p.Period)
		}
	}
	return settled, nil
}

// recordedRate reports the rate in effect on a settled row's due date. Dates
// before the first entry fall back to that entry.
func recordedRate(timeline model.RateTimeline, due valueobject.Date) decimal.Decimal {
	if rate, err := timeline.RateOn(due); err == nil {
		return rate
	}
	if entries := timeline.Entries(); len(entries) > 0 {
		return entries[0].Rate
	}
	return decimal.Zero
}
