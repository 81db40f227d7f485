// Package taskrpc describes the record store gRPC service. Messages are
// protobuf well-known types so no generated code is needed: tasks travel as
// structpb.Struct, ids and titles as wrapperspb.StringValue.
package taskrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "taskpad.records.v1.RecordStore"

const (
	ListTasksMethod  = "/" + ServiceName + "/ListTasks"
	CreateTaskMethod = "/" + ServiceName + "/CreateTask"
	UpdateTaskMethod = "/" + ServiceName + "/UpdateTask"
	DeleteTaskMethod = "/" + ServiceName + "/DeleteTask"
)

// RecordStoreServer is implemented by the server side.
type RecordStoreServer interface {
	ListTasks(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	CreateTask(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	UpdateTask(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	DeleteTask(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// RegisterRecordStoreServer attaches srv to s.
func RegisterRecordStoreServer(s grpc.ServiceRegistrar, srv RecordStoreServer) {
	s.RegisterService(&serviceDesc, srv)
}

func unary[Req any](method string, call func(RecordStoreServer, context.Context, *Req) (any, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RecordStoreServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RecordStoreServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RecordStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListTasks",
			Handler: unary(ListTasksMethod, func(s RecordStoreServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.ListTasks(ctx, in)
			}),
		},
		{
			MethodName: "CreateTask",
			Handler: unary(CreateTaskMethod, func(s RecordStoreServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
				return s.CreateTask(ctx, in)
			}),
		},
		{
			MethodName: "UpdateTask",
			Handler: unary(UpdateTaskMethod, func(s RecordStoreServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.UpdateTask(ctx, in)
			}),
		},
		{
			MethodName: "DeleteTask",
			Handler: unary(DeleteTaskMethod, func(s RecordStoreServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
				return s.DeleteTask(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "taskpad/records/v1",
}

// RecordStoreClient is a thin typed wrapper over a client connection.
type RecordStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewRecordStoreClient(cc grpc.ClientConnInterface) *RecordStoreClient {
	return &RecordStoreClient{cc: cc}
}

func (c *RecordStoreClient) ListTasks(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListTasksMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RecordStoreClient) CreateTask(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CreateTaskMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RecordStoreClient) UpdateTask(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, UpdateTaskMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RecordStoreClient) DeleteTask(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DeleteTaskMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
