package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-schedule-service/internal/domain/event"
	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/port"
	"github.com/bibbank/credit-schedule-service/internal/domain/service"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
	"github.com/bibbank/credit-schedule-service/pkg/money"
)

// --- Mock implementations ---

type mockCreditRepository struct {
	createFunc   func(ctx context.Context, credit model.Credit, rates []model.RateEntry) error
	updateFunc   func(ctx context.Context, credit model.Credit) error
	created      []model.Credit
	createdRates [][]model.RateEntry
	updated      []model.Credit
	updatedRates [][]model.RateEntry
}

func (m *mockCreditRepository) Create(ctx context.Context, credit model.Credit, rates []model.RateEntry) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, credit, rates)
	}
	m.created = append(m.created, credit)
	m.createdRates = append(m.createdRates, rates)
	return nil
}

func (m *mockCreditRepository) Update(ctx context.Context, credit model.Credit) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, credit)
	}
	m.updated = append(m.updated, credit)
	return nil
}

func (m *mockCreditRepository) UpdateWithRates(ctx context.Context, credit model.Credit, rates []model.RateEntry) error {
	if err := m.Update(ctx, credit); err != nil {
		return err
	}
	m.updatedRates = append(m.updatedRates, rates)
	return nil
}

func (m *mockCreditRepository) FindByID(_ context.Context, _, _ string) (model.Credit, error) {
	return model.Credit{}, model.ErrCreditNotFound
}

type mockRateRepository struct {
	addFunc func(ctx context.Context, creditID string, entry model.RateEntry) error
	added   []model.RateEntry
}

func (m *mockRateRepository) Add(ctx context.Context, creditID string, entry model.RateEntry) error {
	if m.addFunc != nil {
		return m.addFunc(ctx, creditID, entry)
	}
	m.added = append(m.added, entry)
	return nil
}

type mockPaymentRepository struct {
	createBatchFunc func(ctx context.Context, creditID string, payloads []model.BulkPaymentPayload) (int, error)
	batches         [][]model.BulkPaymentPayload
}

func (m *mockPaymentRepository) CreateBatch(ctx context.Context, creditID string, payloads []model.BulkPaymentPayload, _ time.Time) (int, error) {
	m.batches = append(m.batches, payloads)
	if m.createBatchFunc != nil {
		return m.createBatchFunc(ctx, creditID, payloads)
	}
	return len(payloads), nil
}

type mockSnapshotLoader struct {
	snapshot port.CreditSnapshot
	err      error
	calls    int
}

func (m *mockSnapshotLoader) LoadSnapshot(_ context.Context, tenantID, creditID string) (port.CreditSnapshot, error) {
	m.calls++
	if m.err != nil {
		return port.CreditSnapshot{}, m.err
	}
	if creditID != m.snapshot.Credit.ID() || tenantID != m.snapshot.Credit.TenantID() {
		return port.CreditSnapshot{}, fmt.Errorf("credit %s: %w", creditID, model.ErrCreditNotFound)
	}
	return m.snapshot, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func (m *mockEventPublisher) types() []string {
	out := make([]string, len(m.publishedEvents))
	for i, e := range m.publishedEvents {
		out[i] = e.EventType()
	}
	return out
}

type observation struct {
	operation string
	method    string
	rows      int
	failed    bool
}

type mockMetrics struct {
	observations  []observation
	paymentsAdded int
}

func (m *mockMetrics) ObserveComputation(_ context.Context, operation, method string, rows int, _ time.Duration, err error) {
	m.observations = append(m.observations, observation{operation, method, rows, err != nil})
}

func (m *mockMetrics) AddPaymentsCreated(_ context.Context, n int) {
	m.paymentsAdded += n
}

// --- Fixtures ---

const (
	tenantID = "tenant-001"
	creditID = "credit-001"
)

var fixedNow = time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func storedTerms(method valueobject.CalculationMethod) model.CreditTerms {
	return model.CreditTerms{
		Principal:  dec("100000"),
		Currency:   money.USD,
		Method:     method,
		StartDate:  valueobject.MustDate(2024, time.January, 15),
		PaymentDay: 15,
		TermMonths: 12,
	}
}

func storedCredit(terms model.CreditTerms) model.Credit {
	created := time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC)
	return model.ReconstructCredit(
		creditID, tenantID, "CR-2024-001",
		terms, valueobject.CreditStatusActive, "", 3, created, created,
	)
}

// snapshotWithPaid builds a stored credit at 12% whose first paid periods
// carry PAID payments taken from its own schedule.
func snapshotWithPaid(t *testing.T, method valueobject.CalculationMethod, paid int) port.CreditSnapshot {
	t.Helper()
	terms := storedTerms(method)
	rates := []model.RateEntry{{Rate: dec("0.12"), EffectiveDate: terms.StartDate}}
	tl, err := model.NewRateTimeline(terms.StartDate, rates)
	require.NoError(t, err)

	sched, err := service.NewScheduleEngine().ComputeSchedule(terms, tl)
	require.NoError(t, err)

	payments := make([]model.Payment, 0, paid)
	for _, it := range sched.Items[:paid] {
		payments = append(payments, model.Payment{
			ID:           fmt.Sprintf("pay-%d", it.Period),
			CreditID:     creditID,
			Period:       it.Period,
			DueDate:      it.DueDate,
			PrincipalDue: it.PrincipalDue,
			InterestDue:  it.InterestDue,
			TotalDue:     it.TotalDue,
			Status:       valueobject.PaymentStatusPaid,
		})
	}
	return port.CreditSnapshot{Credit: storedCredit(terms), Rates: rates, Payments: payments}
}
