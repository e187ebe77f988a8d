package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/service"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
	"github.com/bibbank/credit-schedule-service/pkg/money"
)

func TestScheduleEngine_ClassicAnnuityMDL(t *testing.T) {
	engine := service.NewScheduleEngine()
	start := date(2024, time.January, 20)
	ct := model.CreditTerms{
		Principal:  decimal.NewFromInt(10_000_000),
		Currency:   money.MDL,
		Method:     valueobject.MethodClassicAnnuity,
		StartDate:  start,
		PaymentDay: 20,
		TermMonths: 24,
	}
	tl, err := model.FixedRateTimeline(start, dec("0.099"))
	require.NoError(t, err)

	sched, err := engine.ComputeSchedule(ct, tl)
	require.NoError(t, err)

	require.Len(t, sched.Items, 24)
	assert.True(t, sched.Items[0].DueDate.Equal(date(2024, time.February, 20)))
	assert.True(t, sched.Items[23].DueDate.Equal(date(2026, time.January, 20)))
	assert.True(t, sched.Items[23].RemainingBalance.IsZero())
	assert.True(t, sched.Totals.TotalPayments.GreaterThan(ct.Principal))
	assert.True(t, sched.Totals.Overpayment.Equal(sched.Totals.TotalPayments.Sub(ct.Principal)))
	assert.True(t, sched.Totals.TotalPayments.Equal(sched.Totals.TotalPrincipal.Add(sched.Totals.TotalInterest)))

	// 10,000,000 at 0.825% a month for 24 months.
	assert.Equal(t, "460987.85", sched.Items[0].TotalDue.StringFixed(2))
	assert.Equal(t, "82500.00", sched.Items[0].InterestDue.StringFixed(2))
	requireScheduleInvariants(t, sched.Items, ct.Principal)
}

func TestScheduleEngine_AllMethodsHoldInvariants(t *testing.T) {
	engine := service.NewScheduleEngine()
	methods := []valueobject.CalculationMethod{
		valueobject.MethodClassicAnnuity,
		valueobject.MethodClassicDifferentiated,
		valueobject.MethodFloatingAnnuity,
		valueobject.MethodFloatingDifferentiated,
	}
	for _, m := range methods {
		t.Run(m.String(), func(t *testing.T) {
			ct := terms(m, "250000.55", 36)
			ct.DefermentMonths = 4
			ct.PaymentDay = 31

			entries := []model.RateEntry{entry("0.087", ct.StartDate)}
			if m.IsFloating() {
				entries = append(entries,
					entry("0.095", date(2024, time.June, 10)),
					entry("0.079", date(2025, time.February, 3)),
				)
			}
			sched, err := engine.ComputeSchedule(ct, timeline(t, ct.StartDate, entries...))
			require.NoError(t, err)
			require.Len(t, sched.Items, 36)

			for _, it := range sched.Items[:4] {
				assert.True(t, it.Deferment)
				assert.True(t, it.PrincipalDue.IsZero())
			}
			// Day 31 clamps to the end of February.
			assert.True(t, sched.Items[0].DueDate.Equal(date(2024, time.February, 29)))
			requireScheduleInvariants(t, sched.Items, ct.Principal)
		})
	}
}

func TestScheduleEngine_ClassicRejectsRateChanges(t *testing.T) {
	engine := service.NewScheduleEngine()
	ct := terms(valueobject.MethodClassicAnnuity, "1000", 12)
	tl := timeline(t, ct.StartDate, entry("0.1", ct.StartDate), entry("0.2", date(2024, time.May, 1)))

	_, err := engine.ComputeSchedule(ct, tl)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrFixedRateChange)
	assert.True(t, model.IsValidation(err))
}

func TestScheduleEngine_RebindsTimelineToCreditStart(t *testing.T) {
	engine := service.NewScheduleEngine()
	ct := terms(valueobject.MethodFloatingAnnuity, "1000", 12)

	// Valid for an earlier credit, but not for this one.
	early := date(2023, time.December, 1)
	tl := timeline(t, early, entry("0.1", early))

	_, err := engine.ComputeSchedule(ct, tl)
	assert.ErrorIs(t, err, model.ErrRateBeforeCreditStart)
}

func TestScheduleEngine_RejectsInvalidTerms(t *testing.T) {
	engine := service.NewScheduleEngine()
	tests := []struct {
		name   string
		mutate func(*model.CreditTerms)
		want   error
	}{
		{"zero principal", func(ct *model.CreditTerms) { ct.Principal = decimal.Zero }, model.ErrNonPositivePrincipal},
		{"zero term", func(ct *model.CreditTerms) { ct.TermMonths = 0 }, model.ErrNonPositiveTerm},
		{"payment day 32", func(ct *model.CreditTerms) { ct.PaymentDay = 32 }, model.ErrInvalidPaymentDay},
		{"payment day 0", func(ct *model.CreditTerms) { ct.PaymentDay = 0 }, model.ErrInvalidPaymentDay},
		{"deferment covers term", func(ct *model.CreditTerms) { ct.DefermentMonths = 12 }, model.ErrInvalidDeferment},
		{"no method", func(ct *model.CreditTerms) { ct.Method = valueobject.CalculationMethod{} }, model.ErrInvalidCalculationMethod},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ct := terms(valueobject.MethodClassicAnnuity, "1000", 12)
			tc.mutate(&ct)
			_, err := engine.ComputeSchedule(ct, timeline(t, ct.StartDate, entry("0.1", ct.StartDate)))
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, model.IsValidation(err))
		})
	}
}

// ---------------------------------------------------------------------------
// Recompute
// ---------------------------------------------------------------------------

func floatingBaseline(t *testing.T) (*service.ScheduleEngine, model.CreditTerms, model.Schedule) {
	t.Helper()
	engine := service.NewScheduleEngine()
	ct := terms(valueobject.MethodFloatingAnnuity, "100000", 12)
	sched, err := engine.ComputeSchedule(ct, timeline(t, ct.StartDate, entry("0.12", ct.StartDate)))
	require.NoError(t, err)
	return engine, ct, sched
}

func TestScheduleEngine_RecomputeAfterRateIncrease(t *testing.T) {
	engine, ct, base := floatingBaseline(t)
	payments := paidFrom(base.Items, 6)

	raised := timeline(t, ct.StartDate,
		entry("0.12", ct.StartDate),
		entry("0.15", base.Items[5].DueDate),
	)
	rc, err := engine.Recompute(ct, raised, payments)
	require.NoError(t, err)

	assert.Equal(t, 6, rc.SettledPeriods)
	assert.True(t, rc.TermsLocked)
	require.Len(t, rc.Schedule.Items, 12)

	for i := 0; i < 6; i++ {
		assertSameRow(t, base.Items[i], rc.Schedule.Items[i])
	}
	for i := 6; i < 12; i++ {
		assert.True(t, rc.Schedule.Items[i].TotalDue.GreaterThan(base.Items[i].TotalDue),
			"period %d: %s should exceed baseline %s", i+1, rc.Schedule.Items[i].TotalDue, base.Items[i].TotalDue)
	}
	assert.True(t, rc.Schedule.Items[6].AverageRate.Equal(dec("0.15")))
	requireScheduleInvariants(t, rc.Schedule.Items, ct.Principal)
}

func TestScheduleEngine_RecomputeWithoutPaymentsMatchesCompute(t *testing.T) {
	engine, ct, base := floatingBaseline(t)

	canceled := paidFrom(base.Items, 2)
	for i := range canceled {
		canceled[i].Status = valueobject.PaymentStatusCanceled
	}

	rc, err := engine.Recompute(ct, timeline(t, ct.StartDate, entry("0.12", ct.StartDate)), canceled)
	require.NoError(t, err)

	assert.Equal(t, 0, rc.SettledPeriods)
	assert.False(t, rc.TermsLocked)
	require.Len(t, rc.Schedule.Items, len(base.Items))
	for i := range base.Items {
		assertSameRow(t, base.Items[i], rc.Schedule.Items[i])
	}
}

func TestScheduleEngine_RecomputeExtendsTerm(t *testing.T) {
	engine, ct, base := floatingBaseline(t)
	payments := paidFrom(base.Items, 4)

	ct.TermMonths = 18
	rc, err := engine.Recompute(ct, timeline(t, ct.StartDate, entry("0.12", ct.StartDate)), payments)
	require.NoError(t, err)

	require.Len(t, rc.Schedule.Items, 18)
	for i := 0; i < 4; i++ {
		assertSameRow(t, base.Items[i], rc.Schedule.Items[i])
	}
	assert.True(t, rc.Schedule.Items[4].TotalDue.LessThan(base.Items[4].TotalDue))
	assert.True(t, rc.Schedule.Items[17].DueDate.Equal(date(2025, time.July, 15)))
	requireScheduleInvariants(t, rc.Schedule.Items, ct.Principal)
}

func TestScheduleEngine_RecomputeMovesPaymentDay(t *testing.T) {
	engine, ct, base := floatingBaseline(t)
	payments := paidFrom(base.Items, 3)

	ct.PaymentDay = 5
	rc, err := engine.Recompute(ct, timeline(t, ct.StartDate, entry("0.12", ct.StartDate)), payments)
	require.NoError(t, err)

	require.Len(t, rc.Schedule.Items, 12)
	assert.True(t, rc.Schedule.Items[2].DueDate.Equal(date(2024, time.April, 15)))
	assert.True(t, rc.Schedule.Items[3].DueDate.Equal(date(2024, time.May, 5)))
	requireScheduleInvariants(t, rc.Schedule.Items, ct.Principal)
}

func TestScheduleEngine_RecomputeFullySettled(t *testing.T) {
	engine, ct, base := floatingBaseline(t)

	rc, err := engine.Recompute(ct, timeline(t, ct.StartDate, entry("0.12", ct.StartDate)), paidFrom(base.Items, 12))
	require.NoError(t, err)
	assert.Equal(t, 12, rc.SettledPeriods)
	require.Len(t, rc.Schedule.Items, 12)
	assert.True(t, rc.Schedule.Totals.TotalPayments.Equal(base.Totals.TotalPayments))
}

func TestScheduleEngine_RecomputeErrors(t *testing.T) {
	engine, ct, base := floatingBaseline(t)
	tl := timeline(t, ct.StartDate, entry("0.12", ct.StartDate))

	t.Run("gap in settled periods", func(t *testing.T) {
		payments := paidFrom(base.Items, 3)
		payments = append(payments[:1], payments[2])
		_, err := engine.Recompute(ct, tl, payments)
		assert.ErrorIs(t, err, model.ErrNonContiguousSettlement)
	})

	t.Run("duplicate settled period", func(t *testing.T) {
		payments := paidFrom(base.Items, 2)
		payments = append(payments, payments[1])
		_, err := engine.Recompute(ct, tl, payments)
		assert.ErrorIs(t, err, model.ErrNonContiguousSettlement)
	})

	t.Run("term shorter than settled history", func(t *testing.T) {
		short := ct
		short.TermMonths = 4
		_, err := engine.Recompute(short, tl, paidFrom(base.Items, 6))
		assert.ErrorIs(t, err, model.ErrTermBeforeSettled)
	})

	t.Run("settled principal exceeds credit", func(t *testing.T) {
		payments := paidFrom(base.Items, 1)
		payments[0].PrincipalDue = dec("150000")
		_, err := engine.Recompute(ct, tl, payments)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrScheduleInvariant)

		var inv *model.InvariantError
		require.ErrorAs(t, err, &inv)
		assert.Equal(t, model.InvariantPrincipalSum, inv.Invariant)
		assert.Equal(t, 1, inv.Period)
	})
}

func TestScheduleEngine_TermsLocked(t *testing.T) {
	engine := service.NewScheduleEngine()
	due := date(2024, time.February, 15)

	assert.False(t, engine.TermsLocked(nil))
	assert.False(t, engine.TermsLocked([]model.Payment{{Period: 1, DueDate: due, Status: valueobject.PaymentStatusCanceled}}))
	assert.True(t, engine.TermsLocked([]model.Payment{{Period: 1, DueDate: due, Status: valueobject.PaymentStatusPartial}}))

	last, ok := engine.LastSettledDueDate([]model.Payment{
		{Period: 1, DueDate: due, Status: valueobject.PaymentStatusPaid},
		{Period: 2, DueDate: date(2024, time.March, 15), Status: valueobject.PaymentStatusScheduled},
		{Period: 3, DueDate: date(2024, time.April, 15), Status: valueobject.PaymentStatusCanceled},
	})
	require.True(t, ok)
	assert.True(t, last.Equal(date(2024, time.March, 15)))
}
