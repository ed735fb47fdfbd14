package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/signcast/signcast/pkg/devicestate"
	"github.com/signcast/signcast/pkg/media"
	"github.com/signcast/signcast/pkg/signage/store"
)

// HealthCheckTimeout is the maximum time allowed for health check operations.
// This timeout applies to store health checks to prevent slow backends from
// blocking health probes indefinitely.
const HealthCheckTimeout = 5 * time.Second

// HealthHandler handles health check endpoints.
//
// Health endpoints are unauthenticated and provide:
//   - Liveness probe: Is the server process running?
//   - Readiness probe: Are the database, media store and device state
//     store reachable?
type HealthHandler struct {
	store     store.Store
	blobs     media.Store
	state     *devicestate.Store
	startTime time.Time
}

// NewHealthHandler creates a new health handler. The blobs and state
// parameters may be nil; absent backends are skipped in readiness checks.
func NewHealthHandler(s store.Store, blobs media.Store, state *devicestate.Store) *HealthHandler {
	return &HealthHandler{
		store:     s,
		blobs:     blobs,
		state:     state,
		startTime: time.Now(),
	}
}

// healthResponse is the body of every health endpoint.
type healthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Liveness handles GET /health - simple liveness probe.
//
// Returns 200 OK if the server process is running. Designed for Kubernetes
// liveness probes; it succeeds as long as the HTTP server is responsive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)
	WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"service":    "signcast",
			"started_at": h.startTime.UTC().Format(time.RFC3339),
			"uptime":     uptime.Round(time.Second).String(),
			"uptime_sec": int64(uptime.Seconds()),
		},
	})
}

// Readiness handles GET /health/ready - readiness probe.
//
// Checks all configured backends. Returns 200 OK when everything is
// reachable, 503 with per-backend status otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), HealthCheckTimeout)
	defer cancel()

	checks := map[string]any{}
	healthy := true

	checks["database"] = h.checkBackend(func() error { return h.store.Healthcheck(ctx) }, &healthy)

	if h.blobs != nil {
		checks["media"] = h.checkBackend(func() error { return h.blobs.HealthCheck(ctx) }, &healthy)
	}
	if h.state != nil {
		checks["device_state"] = h.checkBackend(func() error { return h.state.Healthcheck(ctx) }, &healthy)
	}

	status := http.StatusOK
	resp := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Data:      checks,
	}
	if !healthy {
		status = http.StatusServiceUnavailable
		resp.Status = "unhealthy"
	}
	WriteJSON(w, status, resp)
}

// checkBackend runs one backend health check and folds the result into
// the overall readiness.
func (h *HealthHandler) checkBackend(check func() error, healthy *bool) map[string]any {
	start := time.Now()
	if err := check(); err != nil {
		*healthy = false
		return map[string]any{
			"status": "unhealthy",
			"error":  err.Error(),
		}
	}
	return map[string]any{
		"status":  "healthy",
		"latency": time.Since(start).String(),
	}
}
