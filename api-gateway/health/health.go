// Package health reports the gateway's view of the storefront instances
package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/tair/storefront/api-gateway/config"
	"github.com/tair/storefront/pkg/logger"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// InstanceHealth is the probe result for one storefront instance
type InstanceHealth struct {
	URL       string        `json:"url"`
	Status    string        `json:"status"`
	Latency   time.Duration `json:"latency_ms"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// GatewayHealth aggregates the instance probes
type GatewayHealth struct {
	Gateway   string           `json:"gateway"`
	Upstream  string           `json:"upstream"`
	Status    string           `json:"status"`
	Instances []InstanceHealth `json:"instances"`
	Uptime    time.Duration    `json:"uptime_seconds"`
}

// HealthChecker probes each instance's health endpoint
type HealthChecker struct {
	upstream  config.UpstreamConfig
	client    *http.Client
	startTime time.Time
}

// NewHealthChecker creates a checker for the upstream
func NewHealthChecker(upstream config.UpstreamConfig) *HealthChecker {
	return &HealthChecker{
		upstream:  upstream,
		client:    &http.Client{Timeout: 5 * time.Second},
		startTime: time.Now(),
	}
}

// CheckInstance probes one instance
func (h *HealthChecker) CheckInstance(ctx context.Context, baseURL string) InstanceHealth {
	start := time.Now()
	result := InstanceHealth{URL: baseURL, Status: StatusUnhealthy, Timestamp: start}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+h.upstream.HealthCheck, nil)
	if err != nil {
		result.Error = fmt.Sprintf("failed to create request: %v", err)
		return result
	}

	resp, err := h.client.Do(req)
	result.Latency = time.Since(start)
	if err != nil {
		result.Error = fmt.Sprintf("failed to reach instance: %v", err)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		result.Status = StatusHealthy
	} else {
		result.Error = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
	}
	return result
}

// CheckAll probes every instance concurrently, keeping configuration order
func (h *HealthChecker) CheckAll(ctx context.Context) GatewayHealth {
	instances := make([]InstanceHealth, len(h.upstream.Instances))
	var wg sync.WaitGroup

	for i, url := range h.upstream.Instances {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			instances[i] = h.CheckInstance(ctx, url)
			if instances[i].Status != StatusHealthy {
				logger.Warn(ctx).
					Str("instance", url).
					Str("error", instances[i].Error).
					Msg("Instance health check failed")
			}
		}(i, url)
	}
	wg.Wait()

	return GatewayHealth{
		Gateway:   "api-gateway",
		Upstream:  h.upstream.Name,
		Status:    overallStatus(instances),
		Instances: instances,
		Uptime:    time.Since(h.startTime),
	}
}

func overallStatus(instances []InstanceHealth) string {
	healthy := 0
	for _, in := range instances {
		if in.Status == StatusHealthy {
			healthy++
		}
	}
	switch {
	case len(instances) > 0 && healthy == len(instances):
		return StatusHealthy
	case healthy > 0:
		return StatusDegraded
	default:
		return StatusUnhealthy
	}
}

// QuickCheck reports the gateway itself without probing upstream
func (h *HealthChecker) QuickCheck() map[string]interface{} {
	return map[string]interface{}{
		"status":    StatusHealthy,
		"gateway":   "api-gateway",
		"uptime":    time.Since(h.startTime).Seconds(),
		"timestamp": time.Now(),
	}
}
