package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
	"github.com/bibbank/credit-schedule-service/internal/domain/event"
	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/port"
	"github.com/bibbank/credit-schedule-service/internal/domain/service"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
	"github.com/bibbank/credit-schedule-service/pkg/money"
)

// CreatePaymentsBulkUseCase records payments for selected unprocessed periods.
// Periods that already have a settling payment are skipped, not duplicated.
type CreatePaymentsBulkUseCase struct {
	loader      port.CreditSnapshotLoader
	paymentRepo port.PaymentRepository
	publisher   port.EventPublisher
	engine      *service.ScheduleEngine
	reconciler  *service.PeriodReconciler
	metrics     port.ScheduleMetrics
	clock       Clock
	logger      *slog.Logger
}

// NewCreatePaymentsBulkUseCase wires dependencies.
func NewCreatePaymentsBulkUseCase(
	loader port.CreditSnapshotLoader,
	paymentRepo port.PaymentRepository,
	publisher port.EventPublisher,
	engine *service.ScheduleEngine,
	reconciler *service.PeriodReconciler,
	metrics port.ScheduleMetrics,
	clock Clock,
	logger *slog.Logger,
) *CreatePaymentsBulkUseCase {
	return &CreatePaymentsBulkUseCase{
		loader:      loader,
		paymentRepo: paymentRepo,
		publisher:   publisher,
		engine:      engine,
		reconciler:  reconciler,
		metrics:     metrics,
		clock:       clock,
		logger:      logger,
	}
}

// Execute creates the payments and reports how many were new.
func (uc *CreatePaymentsBulkUseCase) Execute(ctx context.Context, req dto.CreatePaymentsBulkRequest) (resp dto.BulkCreateResponse, err error) {
	ctx, span := tracer.Start(ctx, "CreatePaymentsBulk", creditAttrs(req.TenantID, req.CreditID))
	defer func() { endSpan(span, err) }()

	resp.Requested = len(req.Payments)
	if len(req.Payments) == 0 {
		return resp, nil
	}

	snap, err := uc.loader.LoadSnapshot(ctx, req.TenantID, req.CreditID)
	if err != nil {
		return resp, fmt.Errorf("load snapshot: %w", err)
	}
	terms := snap.Credit.Terms()
	timeline := snapshotTimeline(snap.Credit, snap.Rates)
	rc, err := uc.engine.Recompute(terms, timeline, snap.Payments)
	if err != nil {
		return resp, fmt.Errorf("compute schedule: %w", err)
	}

	// Settled periods drop out here; the repository's uniqueness check covers
	// payments recorded after the snapshot was read.
	open := make(map[int]model.UnprocessedPeriod)
	for _, u := range uc.reconciler.Reconcile(rc.Schedule.Items, snap.Payments, valueobject.Date{}, nil) {
		open[u.Period] = u
	}

	selected := make([]model.UnprocessedPeriod, 0, len(req.Payments))
	seen := make(map[int]struct{}, len(req.Payments))
	for _, in := range req.Payments {
		if _, ok := model.FindItem(rc.Schedule.Items, in.PeriodNumber); !ok {
			return resp, fmt.Errorf("%w: %d", model.ErrUnknownPeriod, in.PeriodNumber)
		}
		if _, dup := seen[in.PeriodNumber]; dup {
			continue
		}
		seen[in.PeriodNumber] = struct{}{}

		u, ok := open[in.PeriodNumber]
		if !ok {
			continue
		}
		if in.DueDate != "" {
			due, err := parseDate("dueDate", in.DueDate)
			if err != nil {
				return resp, err
			}
			u.DueDate = due
		}
		// Omitted amounts take the scheduled row.
		if !amountsOmitted(in) {
			if err := checkAmounts(in, terms.Currency); err != nil {
				return resp, err
			}
			u.PrincipalDue = in.PrincipalDue
			u.InterestDue = in.InterestDue
			u.TotalDue = in.TotalDue
		}
		selected = append(selected, u)
	}

	payloads := uc.reconciler.PrepareBulkCreation(selected)
	if err := uc.checkSettlement(snap, timeline, payloads); err != nil {
		return resp, err
	}
	created := 0
	if len(payloads) > 0 {
		created, err = uc.paymentRepo.CreateBatch(ctx, snap.Credit.ID(), payloads, uc.clock())
		if err != nil {
			return resp, fmt.Errorf("create payments: %w", err)
		}
	}
	resp.Created = created
	if uc.metrics != nil {
		uc.metrics.AddPaymentsCreated(ctx, created)
	}

	periods := make([]int, len(payloads))
	for i, p := range payloads {
		periods[i] = p.Period
	}
	if err := uc.publisher.Publish(ctx, event.NewPaymentsBulkCreated(
		snap.Credit.ID(), snap.Credit.TenantID(), resp.Requested, created, periods,
	)); err != nil {
		return resp, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.InfoContext(ctx, "payments created",
		"credit_id", snap.Credit.ID(),
		"tenant_id", snap.Credit.TenantID(),
		"requested", resp.Requested,
		"created", created,
	)
	return resp, nil
}

// checkSettlement recomputes the schedule as if the payloads were already
// recorded. Payments that would leave the credit without a valid schedule are
// rejected before anything is stored.
func (uc *CreatePaymentsBulkUseCase) checkSettlement(snap port.CreditSnapshot, timeline model.RateTimeline, payloads []model.BulkPaymentPayload) error {
	if len(payloads) == 0 {
		return nil
	}
	payments := make([]model.Payment, 0, len(snap.Payments)+len(payloads))
	payments = append(payments, snap.Payments...)
	for _, p := range payloads {
		payments = append(payments, model.Payment{
			CreditID:     snap.Credit.ID(),
			Period:       p.Period,
			DueDate:      p.DueDate,
			PrincipalDue: p.PrincipalDue,
			InterestDue:  p.InterestDue,
			TotalDue:     p.TotalDue,
			Status:       valueobject.PaymentStatusScheduled,
		})
	}
	if _, err := uc.engine.Recompute(snap.Credit.Terms(), timeline, payments); err != nil {
		return fmt.Errorf("%w: payments leave no valid schedule: %w", model.ErrInvalidRequest, err)
	}
	return nil
}

func amountsOmitted(in dto.BulkPaymentInput) bool {
	return in.PrincipalDue.IsZero() && in.InterestDue.IsZero() && in.TotalDue.IsZero()
}

func checkAmounts(in dto.BulkPaymentInput, cur money.Currency) error {
	for _, v := range []decimal.Decimal{in.PrincipalDue, in.InterestDue, in.TotalDue} {
		if v.IsNegative() {
			return fmt.Errorf("%w: period %d: amount %s is negative", model.ErrInvalidRequest, in.PeriodNumber, v)
		}
		if !cur.Round(v).Equal(v) {
			return fmt.Errorf("%w: period %d: amount %s has more than %d decimals", model.ErrInvalidRequest, in.PeriodNumber, v, cur.Exponent())
		}
	}
	if !in.TotalDue.Equal(in.PrincipalDue.Add(in.InterestDue)) {
		return fmt.Errorf("%w: period %d: total %s is not principal %s plus interest %s",
			model.ErrInvalidRequest, in.PeriodNumber, in.TotalDue, in.PrincipalDue, in.InterestDue)
	}
	return nil
}
