package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ScheduleMetrics implements port.ScheduleMetrics on an OpenTelemetry meter.
type ScheduleMetrics struct {
	computations metric.Int64Counter
	failures     metric.Int64Counter
	rows         metric.Int64Histogram
	duration     metric.Float64Histogram
	payments     metric.Int64Counter
}

// NewScheduleMetrics registers the schedule instruments on meter.
func NewScheduleMetrics(meter metric.Meter) (*ScheduleMetrics, error) {
	m := &ScheduleMetrics{}
	var err error

	if m.computations, err = meter.Int64Counter("credit_schedule_computations",
		metric.WithDescription("Schedule computations by operation and method")); err != nil {
		return nil, fmt.Errorf("computations counter: %w", err)
	}
	if m.failures, err = meter.Int64Counter("credit_schedule_failures",
		metric.WithDescription("Schedule computations that returned an error")); err != nil {
		return nil, fmt.Errorf("failures counter: %w", err)
	}
	if m.rows, err = meter.Int64Histogram("credit_schedule_rows",
		metric.WithDescription("Rows per computed schedule"),
		metric.WithExplicitBucketBoundaries(6, 12, 24, 36, 60, 120, 240, 360)); err != nil {
		return nil, fmt.Errorf("rows histogram: %w", err)
	}
	if m.duration, err = meter.Float64Histogram("credit_schedule_duration_seconds",
		metric.WithDescription("Time spent computing a schedule"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("duration histogram: %w", err)
	}
	if m.payments, err = meter.Int64Counter("credit_schedule_payments_created",
		metric.WithDescription("Payments inserted by bulk creation")); err != nil {
		return nil, fmt.Errorf("payments counter: %w", err)
	}
	return m, nil
}

func (m *ScheduleMetrics) ObserveComputation(ctx context.Context, operation, method string, rows int, elapsed time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("method", method),
	)
	m.computations.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
	if err != nil {
		m.failures.Add(ctx, 1, attrs)
		return
	}
	m.rows.Record(ctx, int64(rows), attrs)
}

func (m *ScheduleMetrics) AddPaymentsCreated(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	m.payments.Add(ctx, int64(n))
}
