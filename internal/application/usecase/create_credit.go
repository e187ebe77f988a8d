package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/port"
	"github.com/bibbank/credit-schedule-service/internal/domain/service"
)

// CreateCreditUseCase registers a credit with its rate timeline and returns its
// initial schedule.
type CreateCreditUseCase struct {
	creditRepo port.CreditRepository
	publisher  port.EventPublisher
	engine     *service.ScheduleEngine
	metrics    port.ScheduleMetrics
	clock      Clock
	logger     *slog.Logger
}

// NewCreateCreditUseCase wires dependencies.
func NewCreateCreditUseCase(
	creditRepo port.CreditRepository,
	publisher port.EventPublisher,
	engine *service.ScheduleEngine,
	metrics port.ScheduleMetrics,
	clock Clock,
	logger *slog.Logger,
) *CreateCreditUseCase {
	return &CreateCreditUseCase{
		creditRepo: creditRepo,
		publisher:  publisher,
		engine:     engine,
		metrics:    metrics,
		clock:      clock,
		logger:     logger,
	}
}

// Execute validates the credit, computes its schedule, stores it and publishes
// CreditCreated.
func (uc *CreateCreditUseCase) Execute(ctx context.Context, req dto.CreateCreditRequest) (resp dto.CreditResponse, err error) {
	ctx, span := tracer.Start(ctx, "CreateCredit", creditAttrs(req.TenantID, ""))
	defer func() { endSpan(span, err) }()

	// 1. Parse and validate the boundary input.
	terms, tl, err := parseCreditInput(req.Credit)
	if err != nil {
		return dto.CreditResponse{}, err
	}

	// 2. Compute the schedule first so an uncomputable credit is never stored.
	started := time.Now()
	sched, err := uc.engine.ComputeSchedule(terms, tl)
	observe(ctx, uc.metrics, "create", terms.Method.String(), len(sched.Items), started, err)
	if err != nil {
		return dto.CreditResponse{}, fmt.Errorf("compute schedule: %w", err)
	}

	// 3. Create the aggregate.
	credit, err := model.NewCredit(req.TenantID, req.Credit.Number, terms, req.Credit.Notes, uc.clock())
	if err != nil {
		return dto.CreditResponse{}, fmt.Errorf("create credit: %w", err)
	}

	// 4. Persist credit and rate entries together.
	if err := uc.creditRepo.Create(ctx, credit, tl.Entries()); err != nil {
		return dto.CreditResponse{}, fmt.Errorf("save credit: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, credit.DomainEvents()...); err != nil {
		return dto.CreditResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.InfoContext(ctx, "credit created",
		"credit_id", credit.ID(),
		"tenant_id", credit.TenantID(),
		"method", terms.Method.String(),
		"periods", len(sched.Items),
	)
	return toCreditResponse(credit, toScheduleResponse(credit.Number(), terms, sched)), nil
}
