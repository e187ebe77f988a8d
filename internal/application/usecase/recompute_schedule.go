package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
	"github.com/bibbank/credit-schedule-service/internal/domain/event"
	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/port"
	"github.com/bibbank/credit-schedule-service/internal/domain/service"
)

// RecomputeScheduleUseCase amends a credit's terms and regenerates the
// unsettled tail of its schedule.
type RecomputeScheduleUseCase struct {
	loader     port.CreditSnapshotLoader
	creditRepo port.CreditRepository
	publisher  port.EventPublisher
	engine     *service.ScheduleEngine
	metrics    port.ScheduleMetrics
	clock      Clock
	logger     *slog.Logger
}

// NewRecomputeScheduleUseCase wires dependencies.
func NewRecomputeScheduleUseCase(
	loader port.CreditSnapshotLoader,
	creditRepo port.CreditRepository,
	publisher port.EventPublisher,
	engine *service.ScheduleEngine,
	metrics port.ScheduleMetrics,
	clock Clock,
	logger *slog.Logger,
) *RecomputeScheduleUseCase {
	return &RecomputeScheduleUseCase{
		loader:     loader,
		creditRepo: creditRepo,
		publisher:  publisher,
		engine:     engine,
		metrics:    metrics,
		clock:      clock,
		logger:     logger,
	}
}

// Execute applies the amendment and returns the recomputed schedule. Changing
// principal, method or start date after a period is settled fails with
// model.ErrCannotAmendSettledPeriod. Moving the start date moves the rate
// entries effective on the old start with it.
func (uc *RecomputeScheduleUseCase) Execute(ctx context.Context, req dto.RecomputeScheduleRequest) (resp dto.ScheduleResponse, err error) {
	ctx, span := tracer.Start(ctx, "RecomputeSchedule", creditAttrs(req.TenantID, req.CreditID))
	defer func() { endSpan(span, err) }()

	// 1. Parse the amendment.
	amendment, err := parseAmendment(req)
	if err != nil {
		return dto.ScheduleResponse{}, err
	}

	// 2. Load credit, rates and payments from one snapshot.
	snap, err := uc.loader.LoadSnapshot(ctx, req.TenantID, req.CreditID)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("load snapshot: %w", err)
	}

	// 3. Amend the aggregate.
	locked := uc.engine.TermsLocked(snap.Payments)
	credit, err := snap.Credit.Amend(amendment, locked, uc.clock())
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("amend credit: %w", err)
	}
	terms := credit.Terms()

	// 4. Carry the opening rate along with a moved start date.
	timeline := snapshotTimeline(snap.Credit, snap.Rates)
	restarted := !terms.StartDate.Equal(snap.Credit.StartDate())
	if restarted {
		timeline, err = timeline.Restarted(terms.StartDate)
		if err != nil {
			return dto.ScheduleResponse{}, fmt.Errorf("move rate timeline: %w", err)
		}
	}

	// 5. Recompute the tail.
	started := time.Now()
	rc, err := uc.engine.Recompute(terms, timeline, snap.Payments)
	observe(ctx, uc.metrics, "recompute", terms.Method.String(), len(rc.Schedule.Items), started, err)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("recompute schedule: %w", err)
	}

	// 6. Persist the amended terms, and the moved timeline with them.
	if restarted {
		err = uc.creditRepo.UpdateWithRates(ctx, credit, timeline.Entries())
	} else {
		err = uc.creditRepo.Update(ctx, credit)
	}
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("save credit: %w", err)
	}

	// 7. Publish TermsAmended and ScheduleRecomputed.
	credit = credit.Record(event.NewScheduleRecomputed(
		credit.ID(), credit.TenantID(), rc.SettledPeriods,
		rc.Schedule.Totals.TotalPayments, rc.Schedule.Totals.TotalInterest,
	))
	if err := uc.publisher.Publish(ctx, credit.DomainEvents()...); err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.InfoContext(ctx, "schedule recomputed",
		"credit_id", credit.ID(),
		"tenant_id", credit.TenantID(),
		"settled_periods", rc.SettledPeriods,
		"periods", len(rc.Schedule.Items),
	)

	resp = toScheduleResponse(credit.Number(), terms, rc.Schedule)
	resp.SettledPeriods = rc.SettledPeriods
	resp.TermsLocked = rc.TermsLocked
	return resp, nil
}

func parseAmendment(req dto.RecomputeScheduleRequest) (model.Amendment, error) {
	a := model.Amendment{
		Principal:       req.Principal,
		PaymentDay:      req.PaymentDay,
		TermMonths:      req.TermMonths,
		DefermentMonths: req.DefermentMonths,
		Notes:           req.Notes,
	}
	if req.CalculationMethod != nil {
		m, err := dto.NormalizeMethod(*req.CalculationMethod)
		if err != nil {
			return model.Amendment{}, err
		}
		a.Method = &m
	}
	if req.StartDate != nil {
		d, err := parseDate("startDate", *req.StartDate)
		if err != nil {
			return model.Amendment{}, err
		}
		a.StartDate = &d
	}
	return a, nil
}
