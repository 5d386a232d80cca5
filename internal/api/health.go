package api

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/amtfdev/hedgecalculator/internal/hedge"
)

// HealthStatus represents the health status of a component.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "HEALTHY"
	HealthStatusDegraded  HealthStatus = "DEGRADED"
	HealthStatusUnhealthy HealthStatus = "UNHEALTHY"
)

// Degraded thresholds for the runtime checks.
const (
	memoryThresholdMB  = 256
	goroutineThreshold = 1000
)

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Name    string                 `json:"name"`
	Status  HealthStatus           `json:"status"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthReport is the /healthz body.
type HealthReport struct {
	OK         bool              `json:"ok"`
	Status     HealthStatus      `json:"status"`
	Uptime     string            `json:"uptime"`
	Components []ComponentHealth `json:"components"`
}

// health runs every check; the report is OK unless a check is unhealthy.
func (s *Server) health() HealthReport {
	components := []ComponentHealth{
		s.checkEngine(),
		checkMemory(),
		checkGoroutines(),
	}

	report := HealthReport{
		OK:         true,
		Status:     HealthStatusHealthy,
		Uptime:     time.Since(s.started).Truncate(time.Second).String(),
		Components: components,
	}
	for _, c := range components {
		switch c.Status {
		case HealthStatusUnhealthy:
			report.OK = false
			report.Status = HealthStatusUnhealthy
		case HealthStatusDegraded:
			if report.Status == HealthStatusHealthy {
				report.Status = HealthStatusDegraded
			}
		}
	}
	return report
}

func (s *Server) checkEngine() ComponentHealth {
	selftest := hedge.SelfTest(s.clock())
	health := ComponentHealth{
		Name:    "engine",
		Status:  HealthStatusHealthy,
		Message: fmt.Sprintf("%d self test checks passed", len(selftest.Results)),
	}
	if !selftest.OK {
		health.Status = HealthStatusUnhealthy
		health.Message = "self test failed"
		health.Details = map[string]interface{}{"results": selftest.Results}
	}
	return health
}

func checkMemory() ComponentHealth {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	allocMB := memStats.Alloc / 1024 / 1024

	health := ComponentHealth{
		Name: "memory",
		Details: map[string]interface{}{
			"alloc_mb": allocMB,
			"sys_mb":   memStats.Sys / 1024 / 1024,
			"num_gc":   memStats.NumGC,
		},
	}
	if allocMB > memoryThresholdMB {
		health.Status = HealthStatusDegraded
		health.Message = fmt.Sprintf("Memory usage high: %d MB", allocMB)
	} else {
		health.Status = HealthStatusHealthy
		health.Message = fmt.Sprintf("Memory usage: %d MB", allocMB)
	}
	return health
}

func checkGoroutines() ComponentHealth {
	n := runtime.NumGoroutine()
	health := ComponentHealth{
		Name:    "goroutines",
		Details: map[string]interface{}{"count": n},
	}
	if n > goroutineThreshold {
		health.Status = HealthStatusDegraded
		health.Message = fmt.Sprintf("High goroutine count: %d", n)
	} else {
		health.Status = HealthStatusHealthy
		health.Message = fmt.Sprintf("Goroutine count: %d", n)
	}
	return health
}

// recoverPanics turns a handler panic into a 500 and logs it.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().
					Str("path", r.URL.Path).
					Interface("panic", rec).
					Msg("Panic recovered")
				writeError(w, http.StatusInternalServerError, fmt.Errorf("internal error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
