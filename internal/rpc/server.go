package rpc

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/config"
)

const probeTimeout = 5 * time.Second

// Pinger is whatever the health status is derived from.
type Pinger interface {
	Ping(ctx context.Context) error
}

type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	store  Pinger
	logger *zap.SugaredLogger
}

func NewGRPCServer(store Pinger, logger *zap.SugaredLogger) *GRPCServer {
	instance := GRPCServer{
		server: grpc.NewServer(),
		health: health.NewServer(),
		store:  store,
		logger: logger,
	}

	healthpb.RegisterHealthServer(instance.server, instance.health)
	reflection.Register(instance.server)
	instance.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	return &instance
}

func NewLifecycleGRPCServer(lc fx.Lifecycle, cfg *config.Config, store Pinger, logger *zap.SugaredLogger) *GRPCServer {
	instance := NewGRPCServer(store, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lis, err := net.Listen("tcp", cfg.GRPCAddr())
			if err != nil {
				return errors.Wrap(err, "failed to listen")
			}
			go func() {
				if err := instance.Serve(context.Background(), lis); err != nil {
					logger.Errorw("failed to serve", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping GRPC server.")
			instance.Stop()
			return nil
		},
	})

	return instance
}

// Serve probes the store once, publishes the status and blocks serving lis.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	s.Probe(ctx)
	s.logger.Infow("Starting GRPC server.", "addr", lis.Addr().String())
	return s.server.Serve(lis)
}

// Probe sets SERVING when the store answers a ping, NOT_SERVING otherwise.
func (s *GRPCServer) Probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warnw("store ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
}

func (s *GRPCServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}
