package event

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-schedule-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const aggregateCredit = "Credit"

// ---------------------------------------------------------------------------
// Credit events
// ---------------------------------------------------------------------------

// CreditCreated is raised when a credit and its rate timeline are registered.
type CreditCreated struct {
	events.BaseEvent
	Number            string          `json:"number"`
	Principal         decimal.Decimal `json:"principal"`
	Currency          string          `json:"currency"`
	CalculationMethod string          `json:"calculation_method"`
	StartDate         string          `json:"start_date"`
	TermMonths        int             `json:"term_months"`
}

func NewCreditCreated(
	creditID, tenantID, number string,
	principal decimal.Decimal, currency, method, startDate string,
	termMonths int,
) CreditCreated {
	return CreditCreated{
		BaseEvent:         events.NewBaseEvent("credit.schedule.credit_created", creditID, aggregateCredit, tenantID),
		Number:            number,
		Principal:         principal,
		Currency:          currency,
		CalculationMethod: method,
		StartDate:         startDate,
		TermMonths:        termMonths,
	}
}

// CreditTermsAmended is raised when payment day, term, deferment or notes change.
type CreditTermsAmended struct {
	events.BaseEvent
	PaymentDay      int `json:"payment_day"`
	TermMonths      int `json:"term_months"`
	DefermentMonths int `json:"deferment_months"`
}

func NewCreditTermsAmended(creditID, tenantID string, paymentDay, termMonths, defermentMonths int) CreditTermsAmended {
	return CreditTermsAmended{
		BaseEvent:       events.NewBaseEvent("credit.schedule.terms_amended", creditID, aggregateCredit, tenantID),
		PaymentDay:      paymentDay,
		TermMonths:      termMonths,
		DefermentMonths: defermentMonths,
	}
}

// ---------------------------------------------------------------------------
// Schedule events
// ---------------------------------------------------------------------------

// ScheduleRecomputed is raised after the unsettled tail of a schedule changes.
type ScheduleRecomputed struct {
	events.BaseEvent
	SettledPeriods int             `json:"settled_periods"`
	TotalPayments  decimal.Decimal `json:"total_payments"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}

func NewScheduleRecomputed(
	creditID, tenantID string,
	settledPeriods int,
	totalPayments, totalInterest decimal.Decimal,
) ScheduleRecomputed {
	return ScheduleRecomputed{
		BaseEvent:      events.NewBaseEvent("credit.schedule.recomputed", creditID, aggregateCredit, tenantID),
		SettledPeriods: settledPeriods,
		TotalPayments:  totalPayments,
		TotalInterest:  totalInterest,
	}
}

// RateEntryAdded is raised when a floating credit gains a rate entry.
type RateEntryAdded struct {
	events.BaseEvent
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate string          `json:"effective_date"`
	Note          string          `json:"note,omitempty"`
}

func NewRateEntryAdded(creditID, tenantID string, rate decimal.Decimal, effectiveDate, note string) RateEntryAdded {
	return RateEntryAdded{
		BaseEvent:     events.NewBaseEvent("credit.schedule.rate_added", creditID, aggregateCredit, tenantID),
		Rate:          rate,
		EffectiveDate: effectiveDate,
		Note:          note,
	}
}

// ---------------------------------------------------------------------------
// Payment events
// ---------------------------------------------------------------------------

// PaymentsBulkCreated is raised after unprocessed periods are turned into
// payment records.
type PaymentsBulkCreated struct {
	events.BaseEvent
	Requested int   `json:"requested"`
	Created   int   `json:"created"`
	Periods   []int `json:"periods"`
}

func NewPaymentsBulkCreated(creditID, tenantID string, requested, created int, periods []int) PaymentsBulkCreated {
	return PaymentsBulkCreated{
		BaseEvent: events.NewBaseEvent("credit.schedule.payments_bulk_created", creditID, aggregateCredit, tenantID),
		Requested: requested,
		Created:   created,
		Periods:   periods,
	}
}
