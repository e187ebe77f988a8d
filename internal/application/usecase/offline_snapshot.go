package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/port"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
)

// BuildSnapshot turns a credit-like record and its recorded payments into a
// CreditSnapshot without touching storage.
func BuildSnapshot(tenantID string, in dto.CreditInput, payments []dto.PaymentRecordInput, now time.Time) (port.CreditSnapshot, error) {
	terms, tl, err := parseCreditInput(in)
	if err != nil {
		return port.CreditSnapshot{}, err
	}
	credit, err := model.NewCredit(tenantID, in.Number, terms, in.Notes, now)
	if err != nil {
		return port.CreditSnapshot{}, fmt.Errorf("create credit: %w", err)
	}

	recorded := make([]model.Payment, 0, len(payments))
	for i, p := range payments {
		due, err := parseDate(fmt.Sprintf("payments[%d].dueDate", i), p.DueDate)
		if err != nil {
			return port.CreditSnapshot{}, err
		}
		st, err := valueobject.NewPaymentStatus(p.Status)
		if err != nil {
			return port.CreditSnapshot{}, fmt.Errorf("%w: payments[%d]: %w", model.ErrInvalidRequest, i, err)
		}
		recorded = append(recorded, model.Payment{
			ID:           uuid.NewString(),
			CreditID:     credit.ID(),
			Period:       p.PeriodNumber,
			DueDate:      due,
			PrincipalDue: p.PrincipalDue,
			InterestDue:  p.InterestDue,
			TotalDue:     p.TotalDue,
			Status:       st,
			CreatedAt:    now,
		})
	}

	return port.CreditSnapshot{Credit: credit, Rates: tl.Entries(), Payments: recorded}, nil
}

// StaticSnapshotLoader serves one snapshot regardless of tenant.
type StaticSnapshotLoader struct {
	Snapshot port.CreditSnapshot
}

func (l StaticSnapshotLoader) LoadSnapshot(_ context.Context, _, creditID string) (port.CreditSnapshot, error) {
	if creditID != l.Snapshot.Credit.ID() {
		return port.CreditSnapshot{}, fmt.Errorf("credit %s: %w", creditID, model.ErrCreditNotFound)
	}
	return l.Snapshot, nil
}
