package grpc

import (
	"fmt"
	"net"

	"go.uber.org/zap"
	grpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer exposes grpc.health.v1.Health so supervisors can probe the gateway
// connection.
type HealthServer struct {
	listen   string
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
	logger   *zap.Logger
}

func NewHealthServer(listen string, logger *zap.Logger) *HealthServer {
	h := &HealthServer{
		listen: listen,
		server: grpc.NewServer(),
		health: health.NewServer(),
		logger: logger.Named("grpc"),
	}
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(h.server, h.health)
	return h
}

// Start listens and serves in the background.
func (h *HealthServer) Start() error {
	lis, err := net.Listen("tcp", h.listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", h.listen, err)
	}
	h.listener = lis

	go func() {
		if err := h.server.Serve(lis); err != nil {
			h.logger.Error("health server stopped", zap.Error(err))
		}
	}()
	h.logger.Info("health server listening", zap.String("addr", lis.Addr().String()))
	return nil
}

// Addr is the bound address, empty before Start.
func (h *HealthServer) Addr() string {
	if h.listener == nil {
		return ""
	}
	return h.listener.Addr().String()
}

func (h *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
}

func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.server.GracefulStop()
}
