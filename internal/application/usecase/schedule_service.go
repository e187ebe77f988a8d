package usecase

import (
	"context"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
)

// ScheduleAPI is the set of operations exposed by the transport layers.
type ScheduleAPI interface {
	PreviewSchedule(ctx context.Context, req dto.PreviewScheduleRequest) (dto.ScheduleResponse, error)
	CreateCredit(ctx context.Context, req dto.CreateCreditRequest) (dto.CreditResponse, error)
	GetSchedule(ctx context.Context, req dto.GetScheduleRequest) (dto.ScheduleResponse, error)
	RecomputeSchedule(ctx context.Context, req dto.RecomputeScheduleRequest) (dto.ScheduleResponse, error)
	AddRateEntry(ctx context.Context, req dto.AddRateEntryRequest) (dto.ScheduleResponse, error)
	ListUnprocessedPeriods(ctx context.Context, req dto.ListUnprocessedRequest) (dto.UnprocessedPeriodsResponse, error)
	CreatePaymentsBulk(ctx context.Context, req dto.CreatePaymentsBulkRequest) (dto.BulkCreateResponse, error)
}

// ScheduleService groups the use cases behind ScheduleAPI.
type ScheduleService struct {
	Preview     *PreviewScheduleUseCase
	Create      *CreateCreditUseCase
	Get         *GetScheduleUseCase
	Recompute   *RecomputeScheduleUseCase
	AddRate     *AddRateEntryUseCase
	Unprocessed *ListUnprocessedPeriodsUseCase
	BulkCreate  *CreatePaymentsBulkUseCase
}

var _ ScheduleAPI = (*ScheduleService)(nil)

func (s *ScheduleService) PreviewSchedule(ctx context.Context, req dto.PreviewScheduleRequest) (dto.ScheduleResponse, error) {
	return s.Preview.Execute(ctx, req)
}

func (s *ScheduleService) CreateCredit(ctx context.Context, req dto.CreateCreditRequest) (dto.CreditResponse, error) {
	return s.Create.Execute(ctx, req)
}

func (s *ScheduleService) GetSchedule(ctx context.Context, req dto.GetScheduleRequest) (dto.ScheduleResponse, error) {
	return s.Get.Execute(ctx, req)
}

func (s *ScheduleService) RecomputeSchedule(ctx context.Context, req dto.RecomputeScheduleRequest) (dto.ScheduleResponse, error) {
	return s.Recompute.Execute(ctx, req)
}

func (s *ScheduleService) AddRateEntry(ctx context.Context, req dto.AddRateEntryRequest) (dto.ScheduleResponse, error) {
	return s.AddRate.Execute(ctx, req)
}

func (s *ScheduleService) ListUnprocessedPeriods(ctx context.Context, req dto.ListUnprocessedRequest) (dto.UnprocessedPeriodsResponse, error) {
	return s.Unprocessed.Execute(ctx, req)
}

func (s *ScheduleService) CreatePaymentsBulk(ctx context.Context, req dto.CreatePaymentsBulkRequest) (dto.BulkCreateResponse, error) {
	return s.BulkCreate.Execute(ctx, req)
}
