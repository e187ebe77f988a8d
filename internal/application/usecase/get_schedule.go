package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
	"github.com/bibbank/credit-schedule-service/internal/domain/port"
	"github.com/bibbank/credit-schedule-service/internal/domain/service"
)

// GetScheduleUseCase returns the current schedule of a stored credit: settled
// periods as recorded, the rest recomputed.
type GetScheduleUseCase struct {
	loader  port.CreditSnapshotLoader
	engine  *service.ScheduleEngine
	metrics port.ScheduleMetrics
}

// NewGetScheduleUseCase wires dependencies.
func NewGetScheduleUseCase(
	loader port.CreditSnapshotLoader,
	engine *service.ScheduleEngine,
	metrics port.ScheduleMetrics,
) *GetScheduleUseCase {
	return &GetScheduleUseCase{loader: loader, engine: engine, metrics: metrics}
}

// Execute returns the schedule for the given credit.
func (uc *GetScheduleUseCase) Execute(ctx context.Context, req dto.GetScheduleRequest) (resp dto.ScheduleResponse, err error) {
	ctx, span := tracer.Start(ctx, "GetSchedule", creditAttrs(req.TenantID, req.CreditID))
	defer func() { endSpan(span, err) }()

	snap, err := uc.loader.LoadSnapshot(ctx, req.TenantID, req.CreditID)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("load snapshot: %w", err)
	}

	terms := snap.Credit.Terms()
	started := time.Now()
	rc, err := uc.engine.Recompute(terms, snapshotTimeline(snap.Credit, snap.Rates), snap.Payments)
	observe(ctx, uc.metrics, "get", terms.Method.String(), len(rc.Schedule.Items), started, err)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("compute schedule: %w", err)
	}

	resp = toScheduleResponse(snap.Credit.Number(), terms, rc.Schedule)
	resp.SettledPeriods = rc.SettledPeriods
	resp.TermsLocked = rc.TermsLocked
	return resp, nil
}
