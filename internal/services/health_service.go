package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"registrydash/internal/infrastructure"
	"registrydash/pkg/contracts"
)

// StatusSource reports on the loaded registry.
type StatusSource interface {
	Status() DataStatus
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	data      StatusSource
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Uptime  string      `json:"uptime,omitempty"`
	Data    *DataStatus `json:"data,omitempty"`
}

// NewHealthService creates a new health service. data may be nil while the
// registry is still loading.
func NewHealthService(version string, data StatusSource, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version))

	return &HealthService{
		version:   version,
		data:      data,
		startTime: time.Now(),
		logger:    infrastructure.WithComponent(logger, "health_service"),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck reports ready once the registry table is loaded.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	data := hs.checkDataHealth()
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  map[string]interface{}{"data": data},
	}
	if data.Status != "ready" {
		status.Status = "not_ready"
		hs.logger.WarnContext(ctx, "ReadinessCheck: not ready",
			slog.String("reason", data.Message))
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	return map[string]interface{}{
		"version":      hs.version,
		"build_time":   info.BuildTime,
		"git_commit":   info.GitCommit,
		"go_version":   info.GoVersion,
		"os":           info.OS,
		"arch":         info.Architecture,
		"data_format":  info.DataFormat,
		"api_version":  info.APIVersion,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
}

// checkDataHealth checks whether the registry is loaded
func (hs *HealthService) checkDataHealth() ServiceHealth {
	if hs.data == nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: "registry not loaded",
		}
	}

	status := hs.data.Status()
	if !status.Loaded {
		return ServiceHealth{
			Status:  "not_ready",
			Message: "registry not loaded",
			Data:    &status,
		}
	}

	return ServiceHealth{
		Status:  "ready",
		Message: "registry loaded",
		Uptime:  time.Since(hs.startTime).String(),
		Data:    &status,
	}
}
