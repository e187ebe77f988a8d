package model

import (
	"fmt"

	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
)

// Period is one generated instalment slot. Interest for the period accrues
// over the days [AccrualStart, DueDate).
type Period struct {
	Number       int
	DueDate      valueobject.Date
	AccrualStart valueobject.Date
	Deferment    bool
}

// Days returns the accrual length of the period.
func (p Period) Days() int {
	return p.DueDate.DaysSince(p.AccrualStart)
}

// GeneratePeriods lays out termMonths monthly due dates after start. Period k
// falls in the k-th month after start on paymentDay, clamped to the month's
// last day. The first defermentMonths periods are flagged as deferment.
func GeneratePeriods(start valueobject.Date, paymentDay, termMonths, defermentMonths int) ([]Period, error) {
	if start.IsZero() {
		return nil, ErrMissingStartDate
	}
	if termMonths <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNonPositiveTerm, termMonths)
	}
	if paymentDay < 1 || paymentDay > 31 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPaymentDay, paymentDay)
	}
	if defermentMonths < 0 || defermentMonths >= termMonths {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidDeferment, defermentMonths, termMonths)
	}

	periods := make([]Period, 0, termMonths)
	accrualStart := start
	for k := 1; k <= termMonths; k++ {
		due := start.MonthDay(k, paymentDay)
		periods = append(periods, Period{
			Number:       k,
			DueDate:      due,
			AccrualStart: accrualStart,
			Deferment:    k <= defermentMonths,
		})
		accrualStart = due
	}
	return periods, nil
}
