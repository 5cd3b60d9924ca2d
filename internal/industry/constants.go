package industry

// ==================== Efficiency Curves ====================

// Each ME/TE level removes this share of material quantity / build time
const (
	EfficiencyPerLevel = 0.01

	// MinEfficiencyFactor is the floor applied to meFactor and teFactor
	MinEfficiencyFactor = 0.01
)

// ==================== Time Bonuses ====================

// Percent-per-level of each time bonus. Structure and rig bonuses are already
// expressed in percent, so one "level" is one percent.
const (
	StructureBonusPerLevel   = 0.01
	RigBonusPerLevel         = 0.01
	IndustryPerLevel         = 0.04
	AdvancedIndustryPerLevel = 0.03

	ReactionStructureBonusPerLevel = 0.01
	ReactionRigBonusPerLevel       = 0.01
	ReactionPerLevel               = 0.04
)

// MinMaterialQuantity is the least a blueprint ever consumes of a material it nominally needs
const MinMaterialQuantity = 1.0

// ==================== Breakdown Sources ====================

// Where a material's unit price came from in a breakdown line
const (
	SourceProducer  = "producer"
	SourceMarket    = "market"
	SourcePrototype = "prototype"
)
