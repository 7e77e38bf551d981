package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// HealthService provides liveness and readiness information.
type HealthService struct {
	version   string
	buildTime string
	buildID   string
	data      *JobDataService
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

// VersionInfo describes the running build.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time,omitempty"`
	BuildID   string `json:"build_id,omitempty"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// NewHealthService creates a health service around the job data service.
func NewHealthService(version, buildTime, buildID string, data *JobDataService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		buildID:   buildID,
		data:      data,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Liveness reports process health. It succeeds as long as the process can
// respond, regardless of dataset state.
func (s *HealthService) Liveness(ctx context.Context) *HealthStatus {
	return &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(s.startTime).Seconds(),
			"goroutines":     runtime.NumGoroutine(),
			"go_version":     runtime.Version(),
		},
	}
}

// Readiness reports whether the service can answer analytics queries,
// which requires a loaded dataset.
func (s *HealthService) Readiness(ctx context.Context) (*HealthStatus, bool) {
	ready := s.data != nil && s.data.Loaded()

	status := "ready"
	dataStatus := "loaded"
	if !ready {
		status = "not_ready"
		dataStatus = "not_loaded"
	}

	return &HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   s.version,
		Services: map[string]interface{}{
			"dataset": dataStatus,
		},
	}, ready
}

// Version returns build metadata.
func (s *HealthService) Version(ctx context.Context) *VersionInfo {
	return &VersionInfo{
		Version:   s.version,
		BuildTime: s.buildTime,
		BuildID:   s.buildID,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
