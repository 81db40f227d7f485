// Package records is the client side of the record store: it talks to the
// taskpad server over gRPC and converts transport failures into the
// sentinels from internal/common.
package records

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskpad/internal/common"
	"github.com/dmitrijs2005/taskpad/internal/models"
	"github.com/dmitrijs2005/taskpad/internal/taskrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type GRPCClient struct {
	conn   *grpc.ClientConn
	client *taskrpc.RecordStoreClient
	health healthpb.HealthClient
}

// NewGRPCClient dials the record store lazily; the first RPC establishes the connection.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}

	return &GRPCClient{
		conn:   conn,
		client: taskrpc.NewRecordStoreClient(conn),
		health: healthpb.NewHealthClient(conn),
	}, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%w: %w", common.ErrorStore, common.ErrorNotFound)
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %w: %s", common.ErrorStore, common.ErrorValidation, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %w", common.ErrorStore, common.ErrUnavailable)
	default:
		return fmt.Errorf("%w: rpc error: %w", common.ErrorStore, err)
	}
}

func (s *GRPCClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	resp, err := s.client.ListTasks(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}

	tasks, err := taskrpc.TasksFromList(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorStore, err)
	}
	return tasks, nil
}

func (s *GRPCClient) CreateTask(ctx context.Context, title string) (models.Task, error) {
	resp, err := s.client.CreateTask(ctx, wrapperspb.String(title))
	if err != nil {
		return models.Task{}, s.mapError(err)
	}

	task, err := taskrpc.TaskFromStruct(resp)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", common.ErrorStore, err)
	}
	return task, nil
}

func (s *GRPCClient) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) error {
	_, err := s.client.UpdateTask(ctx, taskrpc.PatchToStruct(id, patch))
	return s.mapError(err)
}

func (s *GRPCClient) DeleteTask(ctx context.Context, id string) error {
	_, err := s.client.DeleteTask(ctx, wrapperspb.String(id))
	return s.mapError(err)
}

// Ping asks the standard health service whether the record store is serving.
func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: taskrpc.ServiceName})
	if err != nil {
		return s.mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", common.ErrUnavailable, resp.GetStatus())
	}
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}
