package handler

import (
	"net/http"

	"github.com/osse101/BlueprintCost_Go/internal/costing"
)

// ReloadResponse confirms a reload with the new dataset summary
type ReloadResponse struct {
	Message string       `json:"message"`
	Dataset costing.Info `json:"dataset"`
}

// HandleReload reloads the blueprint catalog and the price table (admin only)
// @Summary Reload blueprint data
// @Description Re-reads the catalog and refetches prices, then clears cached results.
// @Description The previous data stays active when the reload fails.
// @Tags admin
// @Produce json
// @Success 200 {object} ReloadResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/admin/reload [post]
// @Security ApiKeyAuth
func HandleReload(svc costing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := loggerFor(r)
		log.Info("Reloading blueprint data")

		if err := svc.Reload(r.Context()); err != nil {
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			if statusCode == http.StatusInternalServerError {
				userMsg = ErrMsgReloadFailed
			}
			log.Error("Reload failed", "error", err)
			respondError(w, statusCode, userMsg)
			return
		}

		info, _ := svc.Info()
		respondJSON(w, http.StatusOK, ReloadResponse{Message: MsgDatasetReloaded, Dataset: info})
	}
}

// HandleGetCacheStats returns the result cache counters
// @Summary Get result cache stats
// @Tags admin
// @Produce json
// @Success 200 {object} cache.Stats
// @Router /api/v1/admin/cache/stats [get]
// @Security ApiKeyAuth
func HandleGetCacheStats(svc costing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.CacheStats())
	}
}

// HandleGetDataset describes the active catalog and price table
// @Summary Get dataset info
// @Tags admin
// @Produce json
// @Success 200 {object} costing.Info
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/dataset [get]
func HandleGetDataset(svc costing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, ok := svc.Info()
		if !ok {
			respondError(w, http.StatusServiceUnavailable, ErrMsgDatasetNotLoaded)
			return
		}
		respondJSON(w, http.StatusOK, info)
	}
}
