package grpc_server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	serviceName  = "memorymatch.mirror.v1.ProfileMirror"
	upsertMethod = "/" + serviceName + "/Upsert"
	fetchMethod  = "/" + serviceName + "/Fetch"
)

// profileMirrorServer is the server side of the ProfileMirror service. The
// messages are protobuf well-known types, so no generated code is needed.
type profileMirrorServer interface {
	Upsert(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Fetch(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

var profileMirrorServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*profileMirrorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Upsert", Handler: upsertHandler},
		{MethodName: "Fetch", Handler: fetchHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "memorymatch/mirror/v1/mirror.proto",
}

func upsertHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(profileMirrorServer).Upsert(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: upsertMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(profileMirrorServer).Upsert(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func fetchHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(profileMirrorServer).Fetch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fetchMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(profileMirrorServer).Fetch(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}
