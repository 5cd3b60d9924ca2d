package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/BlueprintCost_Go/internal/domain"
	"github.com/osse101/BlueprintCost_Go/internal/logger"
)

func loggerFor(r *http.Request) *slog.Logger {
	return logger.FromContext(r.Context())
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If this function returns an error, the HTTP response has already been written
// and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := loggerFor(r)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// CostQuery holds the optional run parameter query values of a cost request.
// Nil fields fall back to the service defaults.
type CostQuery struct {
	ME                     *int     `json:"me" validate:"omitempty,min=0,max=100"`
	TE                     *int     `json:"te" validate:"omitempty,min=0,max=100"`
	StructureBonus         *float64 `json:"structure_bonus" validate:"omitempty,min=0,max=100"`
	RigBonus               *float64 `json:"rig_bonus" validate:"omitempty,min=0,max=100"`
	IndustryLevel          *int     `json:"industry_level" validate:"omitempty,min=0,max=5"`
	AdvancedIndustryLevel  *int     `json:"advanced_industry_level" validate:"omitempty,min=0,max=5"`
	ReactionStructureBonus *float64 `json:"reaction_structure_bonus" validate:"omitempty,min=0,max=100"`
	ReactionRigBonus       *float64 `json:"reaction_rig_bonus" validate:"omitempty,min=0,max=100"`
	ReactionLevel          *int     `json:"reaction_level" validate:"omitempty,min=0,max=5"`
}

// Apply overlays the set query values on defaults
func (q CostQuery) Apply(defaults domain.RunParams) domain.RunParams {
	p := defaults
	setInt(&p.DefaultME, q.ME)
	setInt(&p.DefaultTE, q.TE)
	setFloat(&p.StructureBonus, q.StructureBonus)
	setFloat(&p.RigBonus, q.RigBonus)
	setInt(&p.IndustryLevel, q.IndustryLevel)
	setInt(&p.AdvancedIndustryLevel, q.AdvancedIndustryLevel)
	setFloat(&p.ReactionStructureBonus, q.ReactionStructureBonus)
	setFloat(&p.ReactionRigBonus, q.ReactionRigBonus)
	setInt(&p.ReactionLevel, q.ReactionLevel)
	return p
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// parseCostQuery reads the run parameter query values. Field errors are keyed by parameter name.
func parseCostQuery(r *http.Request) (CostQuery, map[string]string) {
	var q CostQuery
	fields := make(map[string]string)
	values := r.URL.Query()

	ints := map[string]**int{
		"me":                      &q.ME,
		"te":                      &q.TE,
		"industry_level":          &q.IndustryLevel,
		"advanced_industry_level": &q.AdvancedIndustryLevel,
		"reaction_level":          &q.ReactionLevel,
	}
	for name, dst := range ints {
		raw := values.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			fields[name] = "Must be an integer"
			continue
		}
		*dst = &v
	}

	floats := map[string]**float64{
		"structure_bonus":          &q.StructureBonus,
		"rig_bonus":                &q.RigBonus,
		"reaction_structure_bonus": &q.ReactionStructureBonus,
		"reaction_rig_bonus":       &q.ReactionRigBonus,
	}
	for name, dst := range floats {
		raw := values.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fields[name] = "Must be a number"
			continue
		}
		*dst = &v
	}

	if len(fields) > 0 {
		return q, fields
	}
	if err := GetValidator().ValidateStruct(q); err != nil {
		return q, FormatValidationError(err)
	}
	return q, nil
}

// runParamsFromRequest resolves the run parameters of a request, writing a 400 on bad input
func runParamsFromRequest(w http.ResponseWriter, r *http.Request, defaults domain.RunParams) (domain.RunParams, bool) {
	q, fields := parseCostQuery(r)
	if fields != nil {
		loggerFor(r).Warn("Invalid cost query", "fields", fields)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidQuery,
			Fields: fields,
		})
		return domain.RunParams{}, false
	}
	return q.Apply(defaults), true
}

// pathTypeID parses a positive type id URL parameter, writing a 400 when it is not one
func pathTypeID(w http.ResponseWriter, r *http.Request, param, errMsg string) (domain.TypeID, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		loggerFor(r).Warn("Invalid path parameter", "param", param, "value", raw)
		respondError(w, http.StatusBadRequest, errMsg)
		return 0, false
	}
	return domain.TypeID(id), true
}
