package dto

import "time"

// Probe statuses.
const (
	StatusHealthy  = "healthy"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"

	CheckUp   = "up"
	CheckDown = "down"
)

// HealthResponse is returned by /health and /ready.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`

	// Checks is only filled by the readiness probe.
	Checks map[string]HealthCheckResult `json:"checks,omitempty"`
}

// HealthCheckResult is the outcome of pinging one dependency.
type HealthCheckResult struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

// NewHealthCheckResult maps a ping error and its duration.
func NewHealthCheckResult(err error, elapsed time.Duration) HealthCheckResult {
	r := HealthCheckResult{Status: CheckUp, ResponseTime: elapsed.Milliseconds()}
	if err != nil {
		r.Status = CheckDown
		r.Message = err.Error()
	}
	return r
}

// Up reports whether the dependency answered.
func (r HealthCheckResult) Up() bool {
	return r.Status == CheckUp
}
