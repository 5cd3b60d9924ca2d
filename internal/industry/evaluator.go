package industry

import (
	"math"

	"github.com/osse101/BlueprintCost_Go/internal/domain"
)

// outcome is the result of one memoized sub-evaluation: either a value, or the
// marker for a blueprint that was asked for while its own evaluation was still
// running.
type outcome struct {
	value     float64
	approx    domain.Approximation
	truncated bool
}

var cycleTruncated = outcome{truncated: true}

// memo is one memo table: traversal state plus stored values
type memo struct {
	state  map[domain.TypeID]visitState
	values map[domain.TypeID]outcome
}

func newMemo(size int) memo {
	return memo{
		state:  make(map[domain.TypeID]visitState, size),
		values: make(map[domain.TypeID]outcome, size),
	}
}

// Evaluate indexes the catalog and computes unit cost and unit time for every blueprint.
// It never fails: missing producers, missing prices and cycles degrade to zero
// contributions and are reported through Result.Approximation and Report.Truncated.
func Evaluate(catalog *domain.Catalog, overrides domain.EfficiencyOverrides, prices domain.PriceTable, params domain.RunParams) *Report {
	return EvaluateIndexed(catalog, BuildIndex(catalog), overrides, prices, params)
}

// EvaluateIndexed is Evaluate with a prebuilt index for the same catalog
func EvaluateIndexed(catalog *domain.Catalog, idx *Index, overrides domain.EfficiencyOverrides, prices domain.PriceTable, params domain.RunParams) *Report {
	order := Order(catalog, idx)
	e := &evaluator{
		idx:            idx,
		prices:         prices,
		efficiencies:   ResolveEfficiencies(catalog, idx, overrides, params),
		factors:        newTimeFactors(params),
		cost:           newMemo(len(order)),
		time:           newMemo(len(order)),
		truncatedSeen:  make(map[domain.TypeID]bool),
		truncatedEdges: make(map[edge]bool),
	}

	results := make(map[domain.TypeID]domain.Result, len(order))
	for _, id := range order {
		bp, ok := idx.Blueprint(id)
		if !ok {
			continue
		}
		cost := e.unitCost(bp)
		t := e.unitTime(bp)
		results[id] = domain.Result{
			BlueprintID:   id,
			UnitCost:      cost.value,
			UnitTime:      t.value,
			Approximation: cost.approx | t.approx,
		}
	}

	return &Report{
		Results:        results,
		Order:          order,
		Conflicts:      idx.Conflicts(),
		Truncated:      e.truncated,
		Params:         params,
		idx:            idx,
		prices:         prices,
		efficiencies:   e.efficiencies,
		factors:        e.factors,
		truncatedEdges: e.truncatedEdges,
	}
}

// edge is a (consumer blueprint, material type) pair whose cost sub-call was cut by a cycle
type edge struct {
	consumer domain.TypeID
	material domain.TypeID
}

type evaluator struct {
	idx          *Index
	prices       domain.PriceTable
	efficiencies map[domain.TypeID]domain.Efficiency
	factors      timeFactors

	cost memo
	time memo

	truncated      []domain.TypeID
	truncatedSeen  map[domain.TypeID]bool
	truncatedEdges map[edge]bool
}

func (e *evaluator) markTruncated(id domain.TypeID) {
	if e.truncatedSeen[id] {
		return
	}
	e.truncatedSeen[id] = true
	e.truncated = append(e.truncated, id)
}

func (e *evaluator) efficiency(id domain.TypeID) domain.Efficiency {
	return e.efficiencies[id]
}

// unitCost is the memoized per-unit cost of the blueprint's primary output
func (e *evaluator) unitCost(bp *domain.Blueprint) outcome {
	switch e.cost.state[bp.ID] {
	case done:
		return e.cost.values[bp.ID]
	case inProgress:
		e.markTruncated(bp.ID)
		return cycleTruncated
	}
	e.cost.state[bp.ID] = inProgress

	eff := e.efficiency(bp.ID)
	meFactor := efficiencyFactor(eff.ME)
	outputQty := bp.OutputQuantity()
	prototype, hasPrototype := e.idx.Tier1ProductOf(bp.ID)

	var total float64
	var approx domain.Approximation
	for _, m := range bp.BuildMaterials() {
		if m.TypeID == 0 {
			continue
		}

		var qty float64
		if hasPrototype && m.TypeID == prototype {
			qty = prototypeQuantity(outputQty, m.Quantity)
		} else {
			qty = requiredQuantity(m.Quantity, meFactor)
		}

		price, a := e.unitPrice(bp.ID, m.TypeID)
		approx |= a
		total += qty * price
	}

	out := outcome{value: perUnit(total, outputQty), approx: approx}
	e.cost.values[bp.ID] = out
	e.cost.state[bp.ID] = done
	return out
}

// unitPrice prices one unit of a material: the producer's unit cost when the
// material is buildable, the market price otherwise.
func (e *evaluator) unitPrice(consumer, material domain.TypeID) (float64, domain.Approximation) {
	if producer, ok := e.idx.ProducerOf(material); ok {
		sub := e.unitCost(producer)
		if sub.truncated {
			e.truncatedEdges[edge{consumer: consumer, material: material}] = true
			return 0, domain.ApproxCycle
		}
		return sub.value, sub.approx
	}

	price, ok := e.prices.Price(material)
	if !ok {
		return 0, domain.ApproxMissingPrice
	}
	return price, 0
}

// unitTime is the memoized per-unit build time including the time to build
// every buildable material
func (e *evaluator) unitTime(bp *domain.Blueprint) outcome {
	switch e.time.state[bp.ID] {
	case done:
		return e.time.values[bp.ID]
	case inProgress:
		e.markTruncated(bp.ID)
		return cycleTruncated
	}
	e.time.state[bp.ID] = inProgress

	eff := e.efficiency(bp.ID)
	outputQty := bp.OutputQuantity()
	prototype, hasPrototype := e.idx.Tier1ProductOf(bp.ID)

	var total float64
	var approx domain.Approximation
	for _, m := range bp.BuildMaterials() {
		if m.TypeID == 0 {
			continue
		}
		producer, ok := e.idx.ProducerOf(m.TypeID)
		if !ok {
			continue
		}

		var qty float64
		if hasPrototype && m.TypeID == prototype {
			qty = prototypeQuantity(outputQty, m.Quantity)
		} else {
			qty = requiredQuantity(m.Quantity, 1)
		}

		sub := e.unitTime(producer)
		if sub.truncated {
			approx |= domain.ApproxCycle
			continue
		}
		approx |= sub.approx
		total += qty * sub.value
	}

	total += ownTime(bp, eff.TE, e.factors)

	out := outcome{value: perUnit(total, outputQty), approx: approx}
	e.time.values[bp.ID] = out
	e.time.state[bp.ID] = done
	return out
}

// ownTime is the blueprint's own build duration after TE and facility bonuses.
// Manufacturing takes precedence over reaction when a blueprint has both.
func ownTime(bp *domain.Blueprint, te int, f timeFactors) float64 {
	teFactor := efficiencyFactor(te)
	switch {
	case bp.Manufacturing != nil:
		return math.Max(0, float64(bp.Manufacturing.Time)) * teFactor * f.manufacturing
	case bp.Reaction != nil:
		return math.Max(0, float64(bp.Reaction.Time)) * teFactor * f.reaction
	default:
		return 0
	}
}

// requiredQuantity applies an efficiency factor to a nominal quantity without
// ever dropping below one unit of a material the blueprint needs
func requiredQuantity(nominal int64, factor float64) float64 {
	if nominal <= 0 {
		return 0
	}
	return math.Max(MinMaterialQuantity, float64(nominal)*factor)
}

// prototypeQuantity is the fixed tier-1 consumption of a tier-2 blueprint
func prototypeQuantity(outputQty, nominal int64) float64 {
	if nominal <= 0 || outputQty <= 0 {
		return 0
	}
	return math.Ceil(float64(outputQty) * float64(nominal))
}

func perUnit(total float64, outputQty int64) float64 {
	if outputQty > 0 {
		return total / float64(outputQty)
	}
	return total
}
