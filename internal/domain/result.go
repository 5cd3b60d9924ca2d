package domain

import "strings"

// Approximation flags why a result may not be exact. Zero means exact.
type Approximation uint8

const (
	// ApproxCycle marks a value that consumed a cycle-truncated sub-result
	ApproxCycle Approximation = 1 << iota
	// ApproxMissingPrice marks a value that used a raw material without a price
	ApproxMissingPrice
)

// Exact reports whether no approximation was involved
func (a Approximation) Exact() bool {
	return a == 0
}

// Has reports whether all flags in f are set
func (a Approximation) Has(f Approximation) bool {
	return a&f == f
}

// Strings lists the set flags by name
func (a Approximation) Strings() []string {
	out := []string{}
	if a.Has(ApproxCycle) {
		out = append(out, FlagCycleTruncated)
	}
	if a.Has(ApproxMissingPrice) {
		out = append(out, FlagMissingPrice)
	}
	return out
}

func (a Approximation) String() string {
	if a.Exact() {
		return FlagExact
	}
	return strings.Join(a.Strings(), ",")
}

// Result is the per-unit cost and time of one blueprint's primary output
type Result struct {
	BlueprintID   TypeID        `json:"blueprint_id"`
	UnitCost      float64       `json:"unit_cost"`
	UnitTime      float64       `json:"unit_time"`
	Approximation Approximation `json:"-"`
}

// Exact reports whether both values were computed without approximation
func (r Result) Exact() bool {
	return r.Approximation.Exact()
}

// ProducerConflict records two blueprints claiming the same output type.
// Kept is the blueprint the index maps the type to.
type ProducerConflict struct {
	TypeID   TypeID `json:"type_id"`
	Kept     TypeID `json:"kept_blueprint_id"`
	Replaced TypeID `json:"replaced_blueprint_id"`
}
