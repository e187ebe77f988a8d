package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
	"github.com/bibbank/credit-schedule-service/pkg/money"
)

func date(y int, m time.Month, d int) valueobject.Date {
	return valueobject.MustDate(y, m, d)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func terms(method valueobject.CalculationMethod, principal string, term int) model.CreditTerms {
	return model.CreditTerms{
		Principal:  dec(principal),
		Currency:   money.USD,
		Method:     method,
		StartDate:  date(2024, time.January, 15),
		PaymentDay: 15,
		TermMonths: term,
	}
}

func timeline(t *testing.T, start valueobject.Date, entries ...model.RateEntry) model.RateTimeline {
	t.Helper()
	tl, err := model.NewRateTimeline(start, entries)
	require.NoError(t, err)
	return tl
}

func entry(rate string, effective valueobject.Date) model.RateEntry {
	return model.RateEntry{Rate: dec(rate), EffectiveDate: effective}
}

// paidFrom records the first n rows of a schedule as PAID payments.
func paidFrom(items []model.ScheduleItem, n int) []model.Payment {
	out := make([]model.Payment, 0, n)
	for _, it := range items[:n] {
		out = append(out, model.Payment{
			ID:           "pay-" + it.DueDate.String(),
			CreditID:     "credit-1",
			Period:       it.Period,
			DueDate:      it.DueDate,
			PrincipalDue: it.PrincipalDue,
			InterestDue:  it.InterestDue,
			TotalDue:     it.TotalDue,
			Status:       valueobject.PaymentStatusPaid,
		})
	}
	return out
}

// requireScheduleInvariants checks the properties every schedule must hold.
func requireScheduleInvariants(t *testing.T, items []model.ScheduleItem, principal decimal.Decimal) {
	t.Helper()
	require.NotEmpty(t, items)

	prev := principal
	sum := decimal.Zero
	for _, it := range items {
		require.True(t, it.TotalDue.Equal(it.PrincipalDue.Add(it.InterestDue)),
			"period %d: total %s != %s + %s", it.Period, it.TotalDue, it.PrincipalDue, it.InterestDue)
		require.False(t, it.RemainingBalance.GreaterThan(prev),
			"period %d: balance rose from %s to %s", it.Period, prev, it.RemainingBalance)
		prev = it.RemainingBalance
		sum = sum.Add(it.PrincipalDue)
	}
	require.True(t, items[len(items)-1].RemainingBalance.IsZero(),
		"final balance should be zero, got %s", items[len(items)-1].RemainingBalance)

	tolerance := dec("0.01").Mul(decimal.NewFromInt(int64(len(items))))
	require.True(t, sum.Sub(principal).Abs().LessThanOrEqual(tolerance),
		"principal rows sum to %s, want %s", sum, principal)
}

func assertSameRow(t *testing.T, want, got model.ScheduleItem) {
	t.Helper()
	assert.Equal(t, want.Period, got.Period)
	assert.True(t, want.DueDate.Equal(got.DueDate), "period %d due date", want.Period)
	assert.True(t, want.PrincipalDue.Equal(got.PrincipalDue), "period %d principal %s != %s", want.Period, got.PrincipalDue, want.PrincipalDue)
	assert.True(t, want.InterestDue.Equal(got.InterestDue), "period %d interest %s != %s", want.Period, got.InterestDue, want.InterestDue)
	assert.True(t, want.TotalDue.Equal(got.TotalDue), "period %d total %s != %s", want.Period, got.TotalDue, want.TotalDue)
	assert.True(t, want.RemainingBalance.Equal(got.RemainingBalance), "period %d balance %s != %s", want.Period, got.RemainingBalance, want.RemainingBalance)
}
