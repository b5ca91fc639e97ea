package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/hapkiduki/loadplan-go/internal/application/dto"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	version string
	started time.Time
	checks  map[string]Pinger
}

// NewHealthHandler creates the handler. checks are run by Ready.
func NewHealthHandler(version string, started time.Time, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{version: version, started: started, checks: checks}
}

// Health handles GET /health. It never touches dependencies.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, dto.HealthResponse{
		Status:  dto.StatusHealthy,
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	})
}

// Ready handles GET /ready. It answers 503 when any check fails.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	resp := dto.HealthResponse{
		Status:  dto.StatusReady,
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Checks:  make(map[string]dto.HealthCheckResult, len(h.checks)),
	}
	for name, c := range h.checks {
		start := time.Now()
		result := dto.NewHealthCheckResult(c.Ping(ctx), time.Since(start))
		if !result.Up() {
			resp.Status = dto.StatusNotReady
			status = http.StatusServiceUnavailable
		}
		resp.Checks[name] = result
	}
	respond(w, r, status, resp)
}
