package service

import (
	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
)

// PeriodReconciler matches schedule rows against recorded payments.
type PeriodReconciler struct{}

// NewPeriodReconciler creates a new PeriodReconciler.
func NewPeriodReconciler() *PeriodReconciler {
	return &PeriodReconciler{}
}

// Reconcile lists the rows that no settling payment references, in schedule
// order. A row due strictly before today is OVERDUE, otherwise SCHEDULED. A
// status reported upstream for the same period overrides the derived one
// unless it is SCHEDULED.
func (r *PeriodReconciler) Reconcile(
	items []model.ScheduleItem,
	payments []model.Payment,
	today valueobject.Date,
	upstream map[int]valueobject.PaymentStatus,
) []model.UnprocessedPeriod {
	covered := make(map[int]struct{}, len(payments))
	for _, p := range payments {
		if p.Settles() {
			covered[p.Period] = struct{}{}
		}
	}

	out := make([]model.UnprocessedPeriod, 0, len(items))
	for _, it := range items {
		if _, ok := covered[it.Period]; ok {
			continue
		}
		status := valueobject.PaymentStatusScheduled
		if it.DueDate.Before(today) {
			status = valueobject.PaymentStatusOverdue
		}
		if s, ok := upstream[it.Period]; ok && !s.IsZero() && s != valueobject.PaymentStatusScheduled {
			status = s
		}
		out = append(out, model.UnprocessedPeriod{ScheduleItem: it, Status: status})
	}
	return out
}

// PrepareBulkCreation maps selected periods to payment payloads. It is pure and
// keeps the input order.
func (r *PeriodReconciler) PrepareBulkCreation(selected []model.UnprocessedPeriod) []model.BulkPaymentPayload {
	out := make([]model.BulkPaymentPayload, 0, len(selected))
	for _, u := range selected {
		out = append(out, model.BulkPaymentPayload{
			Period:       u.Period,
			DueDate:      u.DueDate,
			PrincipalDue: u.PrincipalDue,
			InterestDue:  u.InterestDue,
			TotalDue:     u.TotalDue,
		})
	}
	return out
}
