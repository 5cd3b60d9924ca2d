package handler

import (
	"net/http"

	"github.com/osse101/BlueprintCost_Go/internal/costing"
	"github.com/osse101/BlueprintCost_Go/internal/domain"
	"github.com/osse101/BlueprintCost_Go/internal/industry"
)

// CostResult is one blueprint's unit cost and time
type CostResult struct {
	BlueprintID domain.TypeID `json:"blueprint_id"`
	UnitCost    float64       `json:"unit_cost"`
	UnitTime    float64       `json:"unit_time"`
	Exact       bool          `json:"exact"`
	Flags       []string      `json:"flags,omitempty"`
}

// CostsResponse is the full evaluation of the catalog
type CostsResponse struct {
	Params       domain.RunParams          `json:"params"`
	Count        int                       `json:"count"`
	Approximated int                       `json:"approximated"`
	Results      []CostResult              `json:"results"`
	Conflicts    []domain.ProducerConflict `json:"conflicts"`
	Truncated    []domain.TypeID           `json:"truncated"`
}

// ConsumersResponse lists the blueprints using a type as a build material
type ConsumersResponse struct {
	TypeID    domain.TypeID   `json:"type_id"`
	Consumers []domain.TypeID `json:"consumers"`
}

func newCostsResponse(report *industry.Report) CostsResponse {
	sorted := report.Sorted()
	results := make([]CostResult, 0, len(sorted))
	for _, res := range sorted {
		out := CostResult{
			BlueprintID: res.BlueprintID,
			UnitCost:    res.UnitCost,
			UnitTime:    res.UnitTime,
			Exact:       res.Exact(),
		}
		if !res.Exact() {
			out.Flags = res.Approximation.Strings()
		}
		results = append(results, out)
	}

	resp := CostsResponse{
		Params:       report.Params,
		Count:        len(results),
		Approximated: report.Approximated(),
		Results:      results,
		Conflicts:    report.Conflicts,
		Truncated:    report.Truncated,
	}
	if resp.Conflicts == nil {
		resp.Conflicts = []domain.ProducerConflict{}
	}
	if resp.Truncated == nil {
		resp.Truncated = []domain.TypeID{}
	}
	return resp
}

// HandleGetCosts evaluates every blueprint in the catalog
// @Summary Get unit costs and times
// @Description Evaluates the whole catalog. Missing parameters use the configured defaults.
// @Tags costs
// @Produce json
// @Param me query int false "Default material efficiency (0-100)"
// @Param te query int false "Default time efficiency (0-100)"
// @Param structure_bonus query number false "Manufacturing structure time bonus percent"
// @Param rig_bonus query number false "Manufacturing rig time bonus percent"
// @Param industry_level query int false "Industry skill level (0-5)"
// @Param advanced_industry_level query int false "Advanced Industry skill level (0-5)"
// @Param reaction_structure_bonus query number false "Reaction structure time bonus percent"
// @Param reaction_rig_bonus query number false "Reaction rig time bonus percent"
// @Param reaction_level query int false "Reactions skill level (0-5)"
// @Success 200 {object} CostsResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/costs [get]
func HandleGetCosts(svc costing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, ok := runParamsFromRequest(w, r, svc.Defaults())
		if !ok {
			return
		}

		report, err := svc.Calculate(r.Context(), params)
		if err != nil {
			respondServiceError(w, r, "Calculate costs", err)
			return
		}

		respondJSON(w, http.StatusOK, newCostsResponse(report))
	}
}

// HandleGetBlueprintCost returns one blueprint's result with its material breakdown
// @Summary Get one blueprint's cost breakdown
// @Tags costs
// @Produce json
// @Param blueprintID path int true "Blueprint type ID"
// @Param me query int false "Default material efficiency (0-100)"
// @Param te query int false "Default time efficiency (0-100)"
// @Success 200 {object} costing.BlueprintCost
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/costs/{blueprintID} [get]
func HandleGetBlueprintCost(svc costing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathTypeID(w, r, "blueprintID", ErrMsgInvalidBlueprintID)
		if !ok {
			return
		}
		params, ok := runParamsFromRequest(w, r, svc.Defaults())
		if !ok {
			return
		}

		cost, err := svc.GetBlueprint(r.Context(), params, id)
		if err != nil {
			respondServiceError(w, r, "Get blueprint cost", err)
			return
		}

		respondJSON(w, http.StatusOK, cost)
	}
}

// HandleGetConsumers lists the blueprints that use a type as a build material
// @Summary Where-used lookup
// @Tags costs
// @Produce json
// @Param typeID path int true "Material type ID"
// @Success 200 {object} ConsumersResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/types/{typeID}/consumers [get]
func HandleGetConsumers(svc costing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typeID, ok := pathTypeID(w, r, "typeID", ErrMsgInvalidTypeID)
		if !ok {
			return
		}

		consumers, err := svc.WhereUsed(r.Context(), typeID)
		if err != nil {
			respondServiceError(w, r, "Where used", err)
			return
		}

		respondJSON(w, http.StatusOK, ConsumersResponse{TypeID: typeID, Consumers: consumers})
	}
}
