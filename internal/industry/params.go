package industry

import (
	"math"

	"github.com/osse101/BlueprintCost_Go/internal/domain"
)

// efficiencyFactor maps an ME or TE level to its multiplier, floored at MinEfficiencyFactor
func efficiencyFactor(level int) float64 {
	if level < 0 {
		level = 0
	}
	return math.Max(MinEfficiencyFactor, 1-float64(level)*EfficiencyPerLevel)
}

// bonusFactor is 1 - level*perLevel, never negative
func bonusFactor(level, perLevel float64) float64 {
	if level < 0 {
		level = 0
	}
	return math.Max(0, 1-level*perLevel)
}

// timeFactors are the pre-multiplied facility and skill bonuses of one run
type timeFactors struct {
	manufacturing float64
	reaction      float64
}

func newTimeFactors(p domain.RunParams) timeFactors {
	return timeFactors{
		manufacturing: bonusFactor(p.StructureBonus, StructureBonusPerLevel) *
			bonusFactor(p.RigBonus, RigBonusPerLevel) *
			bonusFactor(float64(p.IndustryLevel), IndustryPerLevel) *
			bonusFactor(float64(p.AdvancedIndustryLevel), AdvancedIndustryPerLevel),
		reaction: bonusFactor(p.ReactionStructureBonus, ReactionStructureBonusPerLevel) *
			bonusFactor(p.ReactionRigBonus, ReactionRigBonusPerLevel) *
			bonusFactor(float64(p.ReactionLevel), ReactionPerLevel),
	}
}

// ResolveEfficiencies builds the per-run side table of ME/TE levels.
// Explicit overrides win, tier-2 blueprints default to their invention levels,
// everything else uses the run defaults.
func ResolveEfficiencies(catalog *domain.Catalog, idx *Index, overrides domain.EfficiencyOverrides, params domain.RunParams) map[domain.TypeID]domain.Efficiency {
	resolved := make(map[domain.TypeID]domain.Efficiency, catalog.Len())
	if catalog == nil {
		return resolved
	}
	for i := range catalog.Blueprints {
		id := catalog.Blueprints[i].ID
		resolved[id] = resolveEfficiency(id, idx, overrides, params)
	}
	return resolved
}

func resolveEfficiency(id domain.TypeID, idx *Index, overrides domain.EfficiencyOverrides, params domain.RunParams) domain.Efficiency {
	if eff, ok := overrides[id]; ok {
		return eff
	}
	if idx.IsTier2(id) {
		return domain.Efficiency{ME: domain.Tier2DefaultME, TE: domain.Tier2DefaultTE}
	}
	return domain.Efficiency{ME: params.DefaultME, TE: params.DefaultTE}
}
