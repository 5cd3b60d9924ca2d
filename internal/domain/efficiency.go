package domain

import (
	"fmt"
	"time"
)

// Efficiency limits accepted for a stored override
const (
	MaxEfficiencyLevel = 100
	MaxSkillLevel      = 5
	MaxBonusPercent    = 100
)

// Tier-2 blueprints come out of invention with a fixed minimum efficiency
const (
	Tier2DefaultME = 2
	Tier2DefaultTE = 2
)

// Efficiency holds the material and time efficiency levels of a blueprint
type Efficiency struct {
	ME int `json:"me" validate:"min=0,max=100"`
	TE int `json:"te" validate:"min=0,max=100"`
}

// Validate checks the levels are inside the accepted range
func (e Efficiency) Validate() error {
	if e.ME < 0 || e.ME > MaxEfficiencyLevel {
		return fmt.Errorf("%w: me must be between 0 and %d, got %d", ErrInvalidEfficiency, MaxEfficiencyLevel, e.ME)
	}
	if e.TE < 0 || e.TE > MaxEfficiencyLevel {
		return fmt.Errorf("%w: te must be between 0 and %d, got %d", ErrInvalidEfficiency, MaxEfficiencyLevel, e.TE)
	}
	return nil
}

// EfficiencyOverride is a stored per-blueprint efficiency
type EfficiencyOverride struct {
	BlueprintID TypeID     `json:"blueprint_id"`
	Efficiency  Efficiency `json:"efficiency"`
	UpdatedAt   time.Time  `json:"updated_at,omitempty"`
}

// EfficiencyOverrides maps a blueprint id to its explicit efficiency
type EfficiencyOverrides map[TypeID]Efficiency

// RunParams is the immutable configuration of one evaluation run.
// Bonuses are percents (15 means 15%), levels are skill levels.
type RunParams struct {
	DefaultME int `json:"me"`
	DefaultTE int `json:"te"`

	StructureBonus        float64 `json:"structure_bonus"`
	RigBonus              float64 `json:"rig_bonus"`
	IndustryLevel         int     `json:"industry_level"`
	AdvancedIndustryLevel int     `json:"advanced_industry_level"`

	ReactionStructureBonus float64 `json:"reaction_structure_bonus"`
	ReactionRigBonus       float64 `json:"reaction_rig_bonus"`
	ReactionLevel          int     `json:"reaction_level"`
}

// Validate rejects parameter sets outside their meaningful ranges
func (p RunParams) Validate() error {
	if p.DefaultME < 0 || p.DefaultME > MaxEfficiencyLevel {
		return fmt.Errorf("%w: me must be between 0 and %d", ErrInvalidRunParams, MaxEfficiencyLevel)
	}
	if p.DefaultTE < 0 || p.DefaultTE > MaxEfficiencyLevel {
		return fmt.Errorf("%w: te must be between 0 and %d", ErrInvalidRunParams, MaxEfficiencyLevel)
	}

	bonuses := map[string]float64{
		"structure_bonus":          p.StructureBonus,
		"rig_bonus":                p.RigBonus,
		"reaction_structure_bonus": p.ReactionStructureBonus,
		"reaction_rig_bonus":       p.ReactionRigBonus,
	}
	for name, v := range bonuses {
		if v < 0 || v > MaxBonusPercent {
			return fmt.Errorf("%w: %s must be between 0 and %d", ErrInvalidRunParams, name, MaxBonusPercent)
		}
	}

	levels := map[string]int{
		"industry_level":          p.IndustryLevel,
		"advanced_industry_level": p.AdvancedIndustryLevel,
		"reaction_level":          p.ReactionLevel,
	}
	for name, v := range levels {
		if v < 0 || v > MaxSkillLevel {
			return fmt.Errorf("%w: %s must be between 0 and %d", ErrInvalidRunParams, name, MaxSkillLevel)
		}
	}
	return nil
}
