package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/port"
	"github.com/bibbank/credit-schedule-service/internal/domain/service"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
)

// ListUnprocessedPeriodsUseCase lists schedule periods that have no recorded
// payment, classified as scheduled or overdue.
type ListUnprocessedPeriodsUseCase struct {
	loader     port.CreditSnapshotLoader
	engine     *service.ScheduleEngine
	reconciler *service.PeriodReconciler
	clock      Clock
	location   *time.Location
}

// NewListUnprocessedPeriodsUseCase wires dependencies. location is the
// business time zone used to derive today's date from the clock.
func NewListUnprocessedPeriodsUseCase(
	loader port.CreditSnapshotLoader,
	engine *service.ScheduleEngine,
	reconciler *service.PeriodReconciler,
	clock Clock,
	location *time.Location,
) *ListUnprocessedPeriodsUseCase {
	return &ListUnprocessedPeriodsUseCase{
		loader:     loader,
		engine:     engine,
		reconciler: reconciler,
		clock:      clock,
		location:   location,
	}
}

// Execute reconciles the current schedule against recorded payments.
func (uc *ListUnprocessedPeriodsUseCase) Execute(ctx context.Context, req dto.ListUnprocessedRequest) (resp dto.UnprocessedPeriodsResponse, err error) {
	ctx, span := tracer.Start(ctx, "ListUnprocessedPeriods", creditAttrs(req.TenantID, req.CreditID))
	defer func() { endSpan(span, err) }()

	today, err := resolveToday(req.Today, uc.clock, uc.location)
	if err != nil {
		return dto.UnprocessedPeriodsResponse{}, err
	}
	upstream, err := parseUpstreamStatuses(req.UpstreamStatuses)
	if err != nil {
		return dto.UnprocessedPeriodsResponse{}, err
	}

	snap, err := uc.loader.LoadSnapshot(ctx, req.TenantID, req.CreditID)
	if err != nil {
		return dto.UnprocessedPeriodsResponse{}, fmt.Errorf("load snapshot: %w", err)
	}
	rc, err := uc.engine.Recompute(snap.Credit.Terms(), snapshotTimeline(snap.Credit, snap.Rates), snap.Payments)
	if err != nil {
		return dto.UnprocessedPeriodsResponse{}, fmt.Errorf("compute schedule: %w", err)
	}

	periods := uc.reconciler.Reconcile(rc.Schedule.Items, snap.Payments, today, upstream)
	return toUnprocessedResponse(snap.Credit.ID(), today, periods), nil
}

func resolveToday(raw string, clock Clock, loc *time.Location) (valueobject.Date, error) {
	if raw != "" {
		return parseDate("today", raw)
	}
	return valueobject.DateOf(clock(), loc), nil
}

func parseUpstreamStatuses(raw map[int]string) (map[int]valueobject.PaymentStatus, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[int]valueobject.PaymentStatus, len(raw))
	for period, s := range raw {
		st, err := valueobject.NewPaymentStatus(s)
		if err != nil {
			return nil, fmt.Errorf("%w: period %d: %w", model.ErrInvalidRequest, period, err)
		}
		out[period] = st
	}
	return out, nil
}
