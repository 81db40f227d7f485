package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskpad/internal/common"
	"github.com/dmitrijs2005/taskpad/internal/taskrpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// recordStore adapts GRPCServer to taskrpc.RecordStoreServer.
type recordStore struct {
	s *GRPCServer
}

func (r *recordStore) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorValidation), errors.Is(err, taskrpc.ErrMalformed):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		r.s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}

func (r *recordStore) ListTasks(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	tasks, err := r.s.tasks.List(ctx)
	if err != nil {
		return nil, r.toStatus(ctx, err)
	}
	return taskrpc.TasksToList(tasks), nil
}

func (r *recordStore) CreateTask(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	task, err := r.s.tasks.Create(ctx, req.GetValue())
	if err != nil {
		return nil, r.toStatus(ctx, err)
	}
	return taskrpc.TaskToStruct(task), nil
}

func (r *recordStore) UpdateTask(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	id, patch, err := taskrpc.PatchFromStruct(req)
	if err != nil {
		return nil, r.toStatus(ctx, err)
	}
	if err := r.s.tasks.Update(ctx, id, patch); err != nil {
		return nil, r.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (r *recordStore) DeleteTask(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if err := r.s.tasks.Delete(ctx, req.GetValue()); err != nil {
		return nil, r.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}
