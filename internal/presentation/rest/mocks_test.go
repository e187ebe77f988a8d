package rest_test

import (
	"context"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
)

// mockScheduleAPI answers every call with zero values unless a func is set.
type mockScheduleAPI struct {
	previewFunc     func(context.Context, dto.PreviewScheduleRequest) (dto.ScheduleResponse, error)
	createFunc      func(context.Context, dto.CreateCreditRequest) (dto.CreditResponse, error)
	getFunc         func(context.Context, dto.GetScheduleRequest) (dto.ScheduleResponse, error)
	recomputeFunc   func(context.Context, dto.RecomputeScheduleRequest) (dto.ScheduleResponse, error)
	addRateFunc     func(context.Context, dto.AddRateEntryRequest) (dto.ScheduleResponse, error)
	unprocessedFunc func(context.Context, dto.ListUnprocessedRequest) (dto.UnprocessedPeriodsResponse, error)
	bulkFunc        func(context.Context, dto.CreatePaymentsBulkRequest) (dto.BulkCreateResponse, error)
}

func (m *mockScheduleAPI) PreviewSchedule(ctx context.Context, req dto.PreviewScheduleRequest) (dto.ScheduleResponse, error) {
	if m.previewFunc != nil {
		return m.previewFunc(ctx, req)
	}
	return dto.ScheduleResponse{}, nil
}

func (m *mockScheduleAPI) CreateCredit(ctx context.Context, req dto.CreateCreditRequest) (dto.CreditResponse, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return dto.CreditResponse{}, nil
}

func (m *mockScheduleAPI) GetSchedule(ctx context.Context, req dto.GetScheduleRequest) (dto.ScheduleResponse, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, req)
	}
	return dto.ScheduleResponse{}, nil
}

func (m *mockScheduleAPI) RecomputeSchedule(ctx context.Context, req dto.RecomputeScheduleRequest) (dto.ScheduleResponse, error) {
	if m.recomputeFunc != nil {
		return m.recomputeFunc(ctx, req)
	}
	return dto.ScheduleResponse{}, nil
}

func (m *mockScheduleAPI) AddRateEntry(ctx context.Context, req dto.AddRateEntryRequest) (dto.ScheduleResponse, error) {
	if m.addRateFunc != nil {
		return m.addRateFunc(ctx, req)
	}
	return dto.ScheduleResponse{}, nil
}

func (m *mockScheduleAPI) ListUnprocessedPeriods(ctx context.Context, req dto.ListUnprocessedRequest) (dto.UnprocessedPeriodsResponse, error) {
	if m.unprocessedFunc != nil {
		return m.unprocessedFunc(ctx, req)
	}
	return dto.UnprocessedPeriodsResponse{}, nil
}

func (m *mockScheduleAPI) CreatePaymentsBulk(ctx context.Context, req dto.CreatePaymentsBulkRequest) (dto.BulkCreateResponse, error) {
	if m.bulkFunc != nil {
		return m.bulkFunc(ctx, req)
	}
	return dto.BulkCreateResponse{}, nil
}
