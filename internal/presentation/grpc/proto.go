package grpc

// proto.go defines the gRPC server interface for bib.credit.v1.ScheduleService.
// Messages are the application DTOs, carried by the JSON codec registered in
// json_codec.go, so no generated protobuf types are needed.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
)

const scheduleServiceName = "bib.credit.v1.ScheduleService"

// ScheduleServiceServer is the server API for ScheduleService.
type ScheduleServiceServer interface {
	PreviewSchedule(context.Context, *dto.PreviewScheduleRequest) (*dto.ScheduleResponse, error)
	CreateCredit(context.Context, *dto.CreateCreditRequest) (*dto.CreditResponse, error)
	GetSchedule(context.Context, *dto.GetScheduleRequest) (*dto.ScheduleResponse, error)
	RecomputeSchedule(context.Context, *dto.RecomputeScheduleRequest) (*dto.ScheduleResponse, error)
	AddRateEntry(context.Context, *dto.AddRateEntryRequest) (*dto.ScheduleResponse, error)
	ListUnprocessedPeriods(context.Context, *dto.ListUnprocessedRequest) (*dto.UnprocessedPeriodsResponse, error)
	CreatePaymentsBulk(context.Context, *dto.CreatePaymentsBulkRequest) (*dto.BulkCreateResponse, error)
	mustEmbedUnimplementedScheduleServiceServer()
}

// UnimplementedScheduleServiceServer provides forward-compatible default implementations.
type UnimplementedScheduleServiceServer struct{}

func (UnimplementedScheduleServiceServer) PreviewSchedule(context.Context, *dto.PreviewScheduleRequest) (*dto.ScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PreviewSchedule not implemented")
}
func (UnimplementedScheduleServiceServer) CreateCredit(context.Context, *dto.CreateCreditRequest) (*dto.CreditResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateCredit not implemented")
}
func (UnimplementedScheduleServiceServer) GetSchedule(context.Context, *dto.GetScheduleRequest) (*dto.ScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSchedule not implemented")
}
func (UnimplementedScheduleServiceServer) RecomputeSchedule(context.Context, *dto.RecomputeScheduleRequest) (*dto.ScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecomputeSchedule not implemented")
}
func (UnimplementedScheduleServiceServer) AddRateEntry(context.Context, *dto.AddRateEntryRequest) (*dto.ScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AddRateEntry not implemented")
}
func (UnimplementedScheduleServiceServer) ListUnprocessedPeriods(context.Context, *dto.ListUnprocessedRequest) (*dto.UnprocessedPeriodsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListUnprocessedPeriods not implemented")
}
func (UnimplementedScheduleServiceServer) CreatePaymentsBulk(context.Context, *dto.CreatePaymentsBulkRequest) (*dto.BulkCreateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreatePaymentsBulk not implemented")
}
func (UnimplementedScheduleServiceServer) mustEmbedUnimplementedScheduleServiceServer() {}

// RegisterScheduleServiceServer registers the ScheduleServiceServer with the gRPC server.
func RegisterScheduleServiceServer(s grpclib.ServiceRegistrar, srv ScheduleServiceServer) {
	s.RegisterService(&_ScheduleService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _ScheduleService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: scheduleServiceName,
	HandlerType: (*ScheduleServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "PreviewSchedule", Handler: _ScheduleService_PreviewSchedule_Handler},
		{MethodName: "CreateCredit", Handler: _ScheduleService_CreateCredit_Handler},
		{MethodName: "GetSchedule", Handler: _ScheduleService_GetSchedule_Handler},
		{MethodName: "RecomputeSchedule", Handler: _ScheduleService_RecomputeSchedule_Handler},
		{MethodName: "AddRateEntry", Handler: _ScheduleService_AddRateEntry_Handler},
		{MethodName: "ListUnprocessedPeriods", Handler: _ScheduleService_ListUnprocessedPeriods_Handler},
		{MethodName: "CreatePaymentsBulk", Handler: _ScheduleService_CreatePaymentsBulk_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _ScheduleService_PreviewSchedule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.PreviewScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScheduleServiceServer).PreviewSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + scheduleServiceName + "/PreviewSchedule",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScheduleServiceServer).PreviewSchedule(ctx, req.(*dto.PreviewScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ScheduleService_CreateCredit_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.CreateCreditRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScheduleServiceServer).CreateCredit(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + scheduleServiceName + "/CreateCredit",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScheduleServiceServer).CreateCredit(ctx, req.(*dto.CreateCreditRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ScheduleService_GetSchedule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.GetScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScheduleServiceServer).GetSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + scheduleServiceName + "/GetSchedule",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScheduleServiceServer).GetSchedule(ctx, req.(*dto.GetScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ScheduleService_RecomputeSchedule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.RecomputeScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScheduleServiceServer).RecomputeSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + scheduleServiceName + "/RecomputeSchedule",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScheduleServiceServer).RecomputeSchedule(ctx, req.(*dto.RecomputeScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ScheduleService_AddRateEntry_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.AddRateEntryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScheduleServiceServer).AddRateEntry(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + scheduleServiceName + "/AddRateEntry",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScheduleServiceServer).AddRateEntry(ctx, req.(*dto.AddRateEntryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ScheduleService_ListUnprocessedPeriods_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.ListUnprocessedRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScheduleServiceServer).ListUnprocessedPeriods(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + scheduleServiceName + "/ListUnprocessedPeriods",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScheduleServiceServer).ListUnprocessedPeriods(ctx, req.(*dto.ListUnprocessedRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ScheduleService_CreatePaymentsBulk_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.CreatePaymentsBulkRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScheduleServiceServer).CreatePaymentsBulk(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + scheduleServiceName + "/CreatePaymentsBulk",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScheduleServiceServer).CreatePaymentsBulk(ctx, req.(*dto.CreatePaymentsBulkRequest))
	}
	return interceptor(ctx, in, info, handler)
}
