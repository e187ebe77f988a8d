package port

import (
	"context"
	"time"

	"github.com/bibbank/credit-schedule-service/internal/domain/event"
	"github.com/bibbank/credit-schedule-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// CreditRepository persists and retrieves credits.
type CreditRepository interface {
	// Create stores a new credit together with its initial rate entries.
	Create(ctx context.Context, credit model.Credit, rates []model.RateEntry) error
	// Update saves amended terms. It fails if the stored version moved on.
	Update(ctx context.Context, credit model.Credit) error
	// UpdateWithRates saves amended terms and replaces the credit's rate
	// entries in one transaction, for amendments that move the start date.
	UpdateWithRates(ctx context.Context, credit model.Credit, rates []model.RateEntry) error
	FindByID(ctx context.Context, tenantID, id string) (model.Credit, error)
}

// RateRepository appends entries to a credit's rate timeline.
type RateRepository interface {
	Add(ctx context.Context, creditID string, entry model.RateEntry) error
}

// PaymentRepository records payments for schedule periods.
type PaymentRepository interface {
	// CreateBatch inserts one payment per payload and returns how many rows
	// were created. Periods that already have a payment are skipped.
	CreateBatch(ctx context.Context, creditID string, payloads []model.BulkPaymentPayload, createdAt time.Time) (int, error)
}

// CreditSnapshot is a credit with its rate entries and payments, read at one
// point in time.
type CreditSnapshot struct {
	Credit   model.Credit
	Rates    []model.RateEntry
	Payments []model.Payment
}

// CreditSnapshotLoader reads a consistent CreditSnapshot.
type CreditSnapshotLoader interface {
	LoadSnapshot(ctx context.Context, tenantID, creditID string) (CreditSnapshot, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Telemetry port
// ---------------------------------------------------------------------------

// ScheduleMetrics records schedule engine activity.
type ScheduleMetrics interface {
	ObserveComputation(ctx context.Context, operation, method string, rows int, elapsed time.Duration, err error)
	AddPaymentsCreated(ctx context.Context, n int)
}
