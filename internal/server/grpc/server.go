package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/taskpad/internal/logging"
	"github.com/dmitrijs2005/taskpad/internal/models"
	"github.com/dmitrijs2005/taskpad/internal/taskrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// TaskService is what the handlers need from the tasks service.
type TaskService interface {
	List(ctx context.Context) ([]*models.Task, error)
	Create(ctx context.Context, title string) (*models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) error
	Delete(ctx context.Context, id string) error
}

type GRPCServer struct {
	address string
	tasks   TaskService
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, ts TaskService) (*GRPCServer, error) {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		tasks:   ts,
	}, nil
}

// newServer builds the grpc.Server with the record store and health services.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	taskrpc.RegisterRecordStoreServer(srv, &recordStore{s: s})

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(taskrpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
