package handler

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthHandler reports the serving state of the service, both overall and
// under the service's own name, for orchestrator health checks.
type HealthHandler struct {
	serviceName string
	server      *health.Server
}

func CreateHealthHandler(serviceName string) *HealthHandler {
	h := &HealthHandler{
		serviceName: serviceName,
		server:      health.NewServer(),
	}
	h.SetServing(false)

	return h
}

func (h *HealthHandler) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, h.server)
}

func (h *HealthHandler) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(h.serviceName, status)
}
