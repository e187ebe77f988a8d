package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
	"github.com/bibbank/credit-schedule-service/internal/domain/port"
	"github.com/bibbank/credit-schedule-service/internal/domain/service"
)

// PreviewScheduleUseCase computes a schedule for an unsaved credit-like record.
type PreviewScheduleUseCase struct {
	engine  *service.ScheduleEngine
	metrics port.ScheduleMetrics
}

// NewPreviewScheduleUseCase wires dependencies.
func NewPreviewScheduleUseCase(engine *service.ScheduleEngine, metrics port.ScheduleMetrics) *PreviewScheduleUseCase {
	return &PreviewScheduleUseCase{engine: engine, metrics: metrics}
}

// Execute returns the full schedule and totals.
func (uc *PreviewScheduleUseCase) Execute(ctx context.Context, req dto.PreviewScheduleRequest) (resp dto.ScheduleResponse, err error) {
	ctx, span := tracer.Start(ctx, "PreviewSchedule",
		trace.WithAttributes(attribute.String("method", req.Credit.CalculationMethod)))
	defer func() { endSpan(span, err) }()

	terms, tl, err := parseCreditInput(req.Credit)
	if err != nil {
		return dto.ScheduleResponse{}, err
	}

	started := time.Now()
	sched, err := uc.engine.ComputeSchedule(terms, tl)
	observe(ctx, uc.metrics, "preview", terms.Method.String(), len(sched.Items), started, err)
	if err != nil {
		return dto.ScheduleResponse{}, err
	}
	return toScheduleResponse(req.Credit.Number, terms, sched), nil
}

func observe(ctx context.Context, m port.ScheduleMetrics, op, method string, rows int, started time.Time, err error) {
	if m == nil {
		return
	}
	m.ObserveComputation(ctx, op, method, rows, time.Since(started), err)
}
