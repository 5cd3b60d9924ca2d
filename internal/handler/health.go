package handler

import (
	"context"
	"net/http"
	"time"
)

// readinessTimeout bounds the storage ping of /readyz
const readinessTimeout = 2 * time.Second

// Readiness check names and outcomes
const (
	checkDataset  = "dataset"
	checkDatabase = "database"

	statusOK          = "ok"
	statusUnavailable = "unavailable"
)

// HealthResponse represents the response for health endpoints. Checks is set
// by /readyz only.
type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// ReadinessChecker reports whether the service can answer cost requests
type ReadinessChecker interface {
	Ready() bool
}

// Pinger is a storage backend that can be pinged
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: statusOK})
	}
}

// HandleReadyz reports ready once the dataset is loaded and, when set, the
// database answers. The database is not pinged while the dataset is missing.
// @Summary Readiness check
// @Description Returns OK if blueprint data is loaded and override storage is reachable
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(svc ReadinessChecker, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: statusOK, Checks: map[string]string{}}

		switch {
		case !svc.Ready():
			resp.Checks[checkDataset] = statusUnavailable
			resp.Message = "dataset not loaded"
		case db != nil:
			resp.Checks[checkDataset] = statusOK
			ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				loggerFor(r).Error("Readiness check failed", "check", checkDatabase, "error", err)
				resp.Checks[checkDatabase] = statusUnavailable
				resp.Message = "database connection failed"
			} else {
				resp.Checks[checkDatabase] = statusOK
			}
		default:
			resp.Checks[checkDataset] = statusOK
		}

		status := http.StatusOK
		if resp.Message != "" {
			resp.Status = statusUnavailable
			status = http.StatusServiceUnavailable
		}
		respondJSON(w, status, resp)
	}
}
