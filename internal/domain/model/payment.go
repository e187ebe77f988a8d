package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
)

// Payment is a recorded instalment owned by the surrounding system. The
// schedule engine only reads payments.
type Payment struct {
	ID           string
	CreditID     string
	Period       int
	DueDate      valueobject.Date
	PrincipalDue decimal.Decimal
	InterestDue  decimal.Decimal
	TotalDue     decimal.Decimal
	Status       valueobject.PaymentStatus
	CreatedAt    time.Time
}

// Settles reports whether the payment occupies its period.
func (p Payment) Settles() bool {
	return p.Status.Settles()
}

// SettledPayments filters out canceled payments.
func SettledPayments(payments []Payment) []Payment {
	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if p.Settles() {
			out = append(out, p)
		}
	}
	return out
}

// UnprocessedPeriod is a schedule row without a settling payment.
type UnprocessedPeriod struct {
	ScheduleItem
	Status valueobject.PaymentStatus
}

// BulkPaymentPayload carries the fields the persistence layer needs to record
// a payment for one period.
type BulkPaymentPayload struct {
	Period       int
	DueDate      valueobject.Date
	PrincipalDue decimal.Decimal
	InterestDue  decimal.Decimal
	TotalDue     decimal.Decimal
}
