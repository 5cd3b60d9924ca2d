package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/BlueprintCost_Go/internal/costing"
	"github.com/osse101/BlueprintCost_Go/internal/domain"
)

// EfficiencyResponse is a blueprint's stored efficiency override
type EfficiencyResponse struct {
	BlueprintID domain.TypeID     `json:"blueprint_id"`
	Efficiency  domain.Efficiency `json:"efficiency"`
}

// EfficiencyListResponse lists every stored override
type EfficiencyListResponse struct {
	Count     int                         `json:"count"`
	Overrides []domain.EfficiencyOverride `json:"overrides"`
}

// HandleListEfficiency lists the stored overrides
// @Summary List efficiency overrides
// @Tags efficiency
// @Produce json
// @Success 200 {object} EfficiencyListResponse
// @Router /api/v1/efficiency [get]
func HandleListEfficiency(svc costing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overrides, err := svc.ListEfficiency(r.Context())
		if err != nil {
			respondServiceError(w, r, "List efficiency", err)
			return
		}
		if overrides == nil {
			overrides = []domain.EfficiencyOverride{}
		}
		respondJSON(w, http.StatusOK, EfficiencyListResponse{Count: len(overrides), Overrides: overrides})
	}
}

// HandleGetEfficiency returns a blueprint's override
// @Summary Get efficiency override
// @Tags efficiency
// @Produce json
// @Param blueprintID path int true "Blueprint type ID"
// @Success 200 {object} EfficiencyResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/efficiency/{blueprintID} [get]
func HandleGetEfficiency(svc costing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathTypeID(w, r, "blueprintID", ErrMsgInvalidBlueprintID)
		if !ok {
			return
		}

		eff, err := svc.GetEfficiency(r.Context(), id)
		if err != nil {
			respondOverrideError(w, r, "Get efficiency", err)
			return
		}

		respondJSON(w, http.StatusOK, EfficiencyResponse{BlueprintID: id, Efficiency: eff})
	}
}

// HandlePutEfficiency stores a blueprint's override
// @Summary Set efficiency override
// @Tags efficiency
// @Accept json
// @Produce json
// @Param blueprintID path int true "Blueprint type ID"
// @Param request body domain.Efficiency true "Material and time efficiency levels"
// @Success 200 {object} EfficiencyResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/efficiency/{blueprintID} [put]
func HandlePutEfficiency(svc costing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathTypeID(w, r, "blueprintID", ErrMsgInvalidBlueprintID)
		if !ok {
			return
		}

		var req domain.Efficiency
		if err := DecodeAndValidateRequest(r, w, &req, "Set efficiency"); err != nil {
			return
		}

		if err := svc.SetEfficiency(r.Context(), id, req); err != nil {
			respondServiceError(w, r, "Set efficiency", err)
			return
		}

		respondJSON(w, http.StatusOK, EfficiencyResponse{BlueprintID: id, Efficiency: req})
	}
}

// HandleDeleteEfficiency removes a blueprint's override
// @Summary Clear efficiency override
// @Tags efficiency
// @Produce json
// @Param blueprintID path int true "Blueprint type ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/efficiency/{blueprintID} [delete]
func HandleDeleteEfficiency(svc costing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathTypeID(w, r, "blueprintID", ErrMsgInvalidBlueprintID)
		if !ok {
			return
		}

		if err := svc.ClearEfficiency(r.Context(), id); err != nil {
			respondOverrideError(w, r, "Clear efficiency", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgEfficiencyCleared})
	}
}

// respondOverrideError reports a missing override as such rather than as a missing blueprint
func respondOverrideError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	if errors.Is(err, domain.ErrBlueprintNotFound) {
		respondError(w, http.StatusNotFound, ErrMsgOverrideNotFound)
		return
	}
	respondServiceError(w, r, opName, err)
}
