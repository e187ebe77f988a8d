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

// AddRateEntryUseCase appends a rate change to a floating credit and returns
// the recomputed schedule.
type AddRateEntryUseCase struct {
	loader    port.CreditSnapshotLoader
	rateRepo  port.RateRepository
	publisher port.EventPublisher
	engine    *service.ScheduleEngine
	metrics   port.ScheduleMetrics
	logger    *slog.Logger
}

// NewAddRateEntryUseCase wires dependencies.
func NewAddRateEntryUseCase(
	loader port.CreditSnapshotLoader,
	rateRepo port.RateRepository,
	publisher port.EventPublisher,
	engine *service.ScheduleEngine,
	metrics port.ScheduleMetrics,
	logger *slog.Logger,
) *AddRateEntryUseCase {
	return &AddRateEntryUseCase{
		loader:    loader,
		rateRepo:  rateRepo,
		publisher: publisher,
		engine:    engine,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute validates and stores the entry. Once periods are settled, a new
// entry must take effect after the last settled due date.
func (uc *AddRateEntryUseCase) Execute(ctx context.Context, req dto.AddRateEntryRequest) (resp dto.ScheduleResponse, err error) {
	ctx, span := tracer.Start(ctx, "AddRateEntry", creditAttrs(req.TenantID, req.CreditID))
	defer func() { endSpan(span, err) }()

	entry, err := parseRateEntry(req.Entry)
	if err != nil {
		return dto.ScheduleResponse{}, err
	}

	snap, err := uc.loader.LoadSnapshot(ctx, req.TenantID, req.CreditID)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("load snapshot: %w", err)
	}
	credit := snap.Credit
	terms := credit.Terms()

	if !terms.Method.IsFloating() {
		return dto.ScheduleResponse{}, fmt.Errorf("%w: credit uses %s", model.ErrRateNotFloating, terms.Method)
	}
	if last, ok := uc.engine.LastSettledDueDate(snap.Payments); ok && !entry.EffectiveDate.After(last) {
		return dto.ScheduleResponse{}, fmt.Errorf("%w: %s is not after %s",
			model.ErrRateInSettledHistory, entry.EffectiveDate, last)
	}

	tl, err := snapshotTimeline(credit, snap.Rates).WithEntry(entry)
	if err != nil {
		return dto.ScheduleResponse{}, err
	}

	started := time.Now()
	rc, err := uc.engine.Recompute(terms, tl, snap.Payments)
	observe(ctx, uc.metrics, "add_rate", terms.Method.String(), len(rc.Schedule.Items), started, err)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("recompute schedule: %w", err)
	}

	if err := uc.rateRepo.Add(ctx, credit.ID(), entry); err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("save rate entry: %w", err)
	}

	if err := uc.publisher.Publish(ctx,
		event.NewRateEntryAdded(credit.ID(), credit.TenantID(), entry.Rate, entry.EffectiveDate.String(), entry.Note),
		event.NewScheduleRecomputed(credit.ID(), credit.TenantID(), rc.SettledPeriods,
			rc.Schedule.Totals.TotalPayments, rc.Schedule.Totals.TotalInterest),
	); err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.InfoContext(ctx, "rate entry added",
		"credit_id", credit.ID(),
		"tenant_id", credit.TenantID(),
		"effective_date", entry.EffectiveDate.String(),
		"rate", entry.Rate.String(),
	)

	resp = toScheduleResponse(credit.Number(), terms, rc.Schedule)
	resp.SettledPeriods = rc.SettledPeriods
	resp.TermsLocked = rc.TermsLocked
	return resp, nil
}
