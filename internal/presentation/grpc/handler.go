package grpc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
	"github.com/bibbank/credit-schedule-service/internal/application/usecase"
	"github.com/bibbank/credit-schedule-service/internal/domain/model"
)

// tenantMetadataKey carries the tenant when the request body leaves it empty.
const tenantMetadataKey = "x-tenant-id"

// ScheduleHandler exposes schedule operations over gRPC.
type ScheduleHandler struct {
	UnimplementedScheduleServiceServer

	api    usecase.ScheduleAPI
	logger *slog.Logger
}

// NewScheduleHandler creates a handler delegating to api.
func NewScheduleHandler(api usecase.ScheduleAPI, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{api: api, logger: logger}
}

func (h *ScheduleHandler) PreviewSchedule(ctx context.Context, req *dto.PreviewScheduleRequest) (*dto.ScheduleResponse, error) {
	resp, err := h.api.PreviewSchedule(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "PreviewSchedule", err)
	}
	return &resp, nil
}

func (h *ScheduleHandler) CreateCredit(ctx context.Context, req *dto.CreateCreditRequest) (*dto.CreditResponse, error) {
	tenantID, err := resolveTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	req.TenantID = tenantID

	resp, err := h.api.CreateCredit(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "CreateCredit", err)
	}
	return &resp, nil
}

func (h *ScheduleHandler) GetSchedule(ctx context.Context, req *dto.GetScheduleRequest) (*dto.ScheduleResponse, error) {
	tenantID, err := resolveTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	req.TenantID = tenantID

	resp, err := h.api.GetSchedule(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "GetSchedule", err)
	}
	return &resp, nil
}

func (h *ScheduleHandler) RecomputeSchedule(ctx context.Context, req *dto.RecomputeScheduleRequest) (*dto.ScheduleResponse, error) {
	tenantID, err := resolveTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	req.TenantID = tenantID

	resp, err := h.api.RecomputeSchedule(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "RecomputeSchedule", err)
	}
	return &resp, nil
}

func (h *ScheduleHandler) AddRateEntry(ctx context.Context, req *dto.AddRateEntryRequest) (*dto.ScheduleResponse, error) {
	tenantID, err := resolveTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	req.TenantID = tenantID

	resp, err := h.api.AddRateEntry(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "AddRateEntry", err)
	}
	return &resp, nil
}

func (h *ScheduleHandler) ListUnprocessedPeriods(ctx context.Context, req *dto.ListUnprocessedRequest) (*dto.UnprocessedPeriodsResponse, error) {
	tenantID, err := resolveTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	req.TenantID = tenantID

	resp, err := h.api.ListUnprocessedPeriods(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "ListUnprocessedPeriods", err)
	}
	return &resp, nil
}

func (h *ScheduleHandler) CreatePaymentsBulk(ctx context.Context, req *dto.CreatePaymentsBulkRequest) (*dto.BulkCreateResponse, error) {
	tenantID, err := resolveTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	req.TenantID = tenantID

	resp, err := h.api.CreatePaymentsBulk(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "CreatePaymentsBulk", err)
	}
	return &resp, nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func resolveTenant(ctx context.Context, fromBody string) (string, error) {
	if fromBody != "" {
		return fromBody, nil
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(tenantMetadataKey); len(v) > 0 && v[0] != "" {
			return v[0], nil
		}
	}
	return "", status.Error(codes.InvalidArgument, "tenant id is required")
}

// toStatus maps domain errors to gRPC codes. Unclassified errors are logged
// and reported as Internal without their detail.
func (h *ScheduleHandler) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case model.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case model.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case model.IsConflict(err):
		return status.Error(codes.Aborted, err.Error())
	default:
		h.logger.ErrorContext(ctx, "schedule request failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
