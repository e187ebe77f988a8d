package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// RateEntryInput is one rate change. Rate is a fraction (0.125 for 12.5%).
type RateEntryInput struct {
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate string          `json:"effectiveDate"`
	Note          string          `json:"note,omitempty"`
}

// CreditInput is a credit-like record. Classic methods take Rate, or a single
// entry in Rates; floating methods take Rates.
type CreditInput struct {
	Number            string           `json:"number"`
	Principal         decimal.Decimal  `json:"principal"`
	Currency          string           `json:"currency"`
	CalculationMethod string           `json:"calculationMethod"`
	StartDate         string           `json:"startDate"`
	PaymentDay        int              `json:"paymentDay"`
	TermMonths        int              `json:"termMonths"`
	DefermentMonths   int              `json:"defermentMonths"`
	Rate              *decimal.Decimal `json:"rate,omitempty"`
	Rates             []RateEntryInput `json:"rates,omitempty"`
	Notes             string           `json:"notes,omitempty"`
}

// PreviewScheduleRequest computes a schedule without storing anything.
type PreviewScheduleRequest struct {
	Credit CreditInput `json:"credit"`
}

// CreateCreditRequest registers a credit and its rate timeline.
type CreateCreditRequest struct {
	TenantID string      `json:"tenantId"`
	Credit   CreditInput `json:"credit"`
}

// GetScheduleRequest identifies a stored credit.
type GetScheduleRequest struct {
	TenantID string `json:"tenantId"`
	CreditID string `json:"creditId"`
}

// RecomputeScheduleRequest amends credit terms and recomputes the unsettled
// tail. Nil fields are left unchanged.
type RecomputeScheduleRequest struct {
	TenantID          string           `json:"tenantId"`
	CreditID          string           `json:"creditId"`
	Principal         *decimal.Decimal `json:"principal,omitempty"`
	CalculationMethod *string          `json:"calculationMethod,omitempty"`
	StartDate         *string          `json:"startDate,omitempty"`
	PaymentDay        *int             `json:"paymentDay,omitempty"`
	TermMonths        *int             `json:"termMonths,omitempty"`
	DefermentMonths   *int             `json:"defermentMonths,omitempty"`
	Notes             *string          `json:"notes,omitempty"`
}

// AddRateEntryRequest appends a rate change to a floating credit.
type AddRateEntryRequest struct {
	TenantID string         `json:"tenantId"`
	CreditID string         `json:"creditId"`
	Entry    RateEntryInput `json:"entry"`
}

// ListUnprocessedRequest lists schedule periods with no recorded payment.
// Today defaults to the current date in the business time zone.
type ListUnprocessedRequest struct {
	TenantID         string         `json:"tenantId"`
	CreditID         string         `json:"creditId"`
	Today            string         `json:"today,omitempty"`
	UpstreamStatuses map[int]string `json:"upstreamStatuses,omitempty"`
}

// BulkPaymentInput is one payment to create.
type BulkPaymentInput struct {
	PeriodNumber int             `json:"periodNumber"`
	DueDate      string          `json:"dueDate"`
	PrincipalDue decimal.Decimal `json:"principalDue"`
	InterestDue  decimal.Decimal `json:"interestDue"`
	TotalDue     decimal.Decimal `json:"totalDue"`
}

// PaymentRecordInput is a payment already recorded for a period, as read
// from an export file.
type PaymentRecordInput struct {
	PeriodNumber int             `json:"periodNumber"`
	DueDate      string          `json:"dueDate"`
	PrincipalDue decimal.Decimal `json:"principalDue"`
	InterestDue  decimal.Decimal `json:"interestDue"`
	TotalDue     decimal.Decimal `json:"totalDue"`
	Status       string          `json:"status"`
}

// CreatePaymentsBulkRequest creates payments for unprocessed periods.
type CreatePaymentsBulkRequest struct {
	TenantID string             `json:"tenantId"`
	CreditID string             `json:"creditId"`
	Payments []BulkPaymentInput `json:"payments"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// LoanSummary identifies the credit a schedule belongs to.
type LoanSummary struct {
	Number            string          `json:"number"`
	Principal         decimal.Decimal `json:"principal"`
	CalculationMethod string          `json:"calculationMethod"`
}

// ScheduleItemResponse is one schedule row.
type ScheduleItemResponse struct {
	PeriodNumber     int             `json:"periodNumber"`
	DueDate          string          `json:"dueDate"`
	PrincipalDue     decimal.Decimal `json:"principalDue"`
	InterestDue      decimal.Decimal `json:"interestDue"`
	TotalDue         decimal.Decimal `json:"totalDue"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	AverageRate      decimal.Decimal `json:"averageRate"`
}

// TotalsResponse aggregates a schedule.
type TotalsResponse struct {
	TotalPayments decimal.Decimal `json:"totalPayments"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	Overpayment   decimal.Decimal `json:"overpayment"`
}

// ScheduleResponse is the external representation of a computed schedule.
type ScheduleResponse struct {
	Loan           LoanSummary            `json:"loan"`
	Schedule       []ScheduleItemResponse `json:"schedule"`
	Totals         TotalsResponse         `json:"totals"`
	SettledPeriods int                    `json:"settledPeriods"`
	TermsLocked    bool                   `json:"termsLocked"`
}

// CreditResponse is the external representation of a stored credit.
type CreditResponse struct {
	ID                string           `json:"id"`
	TenantID          string           `json:"tenantId"`
	Number            string           `json:"number"`
	Principal         decimal.Decimal  `json:"principal"`
	Currency          string           `json:"currency"`
	CalculationMethod string           `json:"calculationMethod"`
	StartDate         string           `json:"startDate"`
	PaymentDay        int              `json:"paymentDay"`
	TermMonths        int              `json:"termMonths"`
	DefermentMonths   int              `json:"defermentMonths"`
	Status            string           `json:"status"`
	Notes             string           `json:"notes,omitempty"`
	Version           int              `json:"version"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
	Schedule          ScheduleResponse `json:"schedule"`
}

// UnprocessedPeriodResponse is a schedule row still waiting for a payment.
type UnprocessedPeriodResponse struct {
	PeriodNumber     int             `json:"periodNumber"`
	DueDate          string          `json:"dueDate"`
	PrincipalDue     decimal.Decimal `json:"principalDue"`
	InterestDue      decimal.Decimal `json:"interestDue"`
	TotalDue         decimal.Decimal `json:"totalDue"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	Status           string          `json:"status"`
}

// UnprocessedPeriodsResponse lists unprocessed periods as of Today.
type UnprocessedPeriodsResponse struct {
	CreditID string                      `json:"creditId"`
	Today    string                      `json:"today"`
	Periods  []UnprocessedPeriodResponse `json:"periods"`
}

// BulkCreateResponse reports how many payment records were created.
type BulkCreateResponse struct {
	Requested int `json:"requested"`
	Created   int `json:"created"`
}
