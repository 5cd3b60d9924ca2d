package industry

import (
	"sort"

	"github.com/osse101/BlueprintCost_Go/internal/domain"
)

// Report is the outcome of one evaluation run
type Report struct {
	Results   map[domain.TypeID]domain.Result
	Order     []domain.TypeID
	Conflicts []domain.ProducerConflict
	// Truncated lists blueprints that were requested while their own evaluation
	// was running, in detection order
	Truncated []domain.TypeID
	Params    domain.RunParams

	idx            *Index
	prices         domain.PriceTable
	efficiencies   map[domain.TypeID]domain.Efficiency
	factors        timeFactors
	truncatedEdges map[edge]bool
}

// MaterialLine is one material of a blueprint's cost breakdown
type MaterialLine struct {
	TypeID           domain.TypeID `json:"type_id"`
	NominalQuantity  int64         `json:"nominal_quantity"`
	RequiredQuantity float64       `json:"required_quantity"`
	UnitPrice        float64       `json:"unit_price"`
	Cost             float64       `json:"cost"`
	Source           string        `json:"source"`
	ProducerID       domain.TypeID `json:"producer_id,omitempty"`
	CycleTruncated   bool          `json:"cycle_truncated,omitempty"`
	MissingPrice     bool          `json:"missing_price,omitempty"`
}

// Breakdown explains how a blueprint's unit cost was assembled
type Breakdown struct {
	Result         domain.Result     `json:"result"`
	Efficiency     domain.Efficiency `json:"efficiency"`
	Tier2          bool              `json:"tier2"`
	Tier1Product   domain.TypeID     `json:"tier1_product,omitempty"`
	Product        domain.TypeID     `json:"product_type_id,omitempty"`
	OutputQuantity int64             `json:"output_quantity"`
	OwnTime        float64           `json:"own_time"`
	Materials      []MaterialLine    `json:"materials"`
}

// Result returns the result for one blueprint
func (r *Report) Result(id domain.TypeID) (domain.Result, bool) {
	res, ok := r.Results[id]
	return res, ok
}

// Sorted returns all results ordered by blueprint id
func (r *Report) Sorted() []domain.Result {
	out := make([]domain.Result, 0, len(r.Results))
	for _, res := range r.Results {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BlueprintID < out[j].BlueprintID })
	return out
}

// Approximated counts results carrying any approximation flag
func (r *Report) Approximated() int {
	n := 0
	for _, res := range r.Results {
		if !res.Exact() {
			n++
		}
	}
	return n
}

// Explain rebuilds the material lines of a blueprint from the finished run.
// Lines whose sub-cost was cut by a cycle during the run are priced at zero,
// so the line costs add up to the reported unit cost times the output quantity.
func (r *Report) Explain(id domain.TypeID) (*Breakdown, bool) {
	res, ok := r.Results[id]
	if !ok || r.idx == nil {
		return nil, false
	}
	bp, ok := r.idx.Blueprint(id)
	if !ok {
		return nil, false
	}

	eff := r.efficiencies[id]
	meFactor := efficiencyFactor(eff.ME)
	outputQty := bp.OutputQuantity()
	prototype, hasPrototype := r.idx.Tier1ProductOf(id)

	b := &Breakdown{
		Result:         res,
		Efficiency:     eff,
		Tier2:          r.idx.IsTier2(id),
		OutputQuantity: outputQty,
		OwnTime:        ownTime(bp, eff.TE, r.factors),
		Materials:      []MaterialLine{},
	}
	if hasPrototype {
		b.Tier1Product = prototype
	}
	if p, ok := bp.PrimaryProduct(); ok {
		b.Product = p.TypeID
	}

	for _, m := range bp.BuildMaterials() {
		if m.TypeID == 0 {
			continue
		}
		line := MaterialLine{TypeID: m.TypeID, NominalQuantity: m.Quantity}

		if hasPrototype && m.TypeID == prototype {
			line.RequiredQuantity = prototypeQuantity(outputQty, m.Quantity)
		} else {
			line.RequiredQuantity = requiredQuantity(m.Quantity, meFactor)
		}

		if producer, ok := r.idx.ProducerOf(m.TypeID); ok {
			line.Source = SourceProducer
			line.ProducerID = producer.ID
			if r.truncatedEdges[edge{consumer: id, material: m.TypeID}] {
				line.CycleTruncated = true
			} else {
				line.UnitPrice = r.Results[producer.ID].UnitCost
			}
		} else {
			line.Source = SourceMarket
			price, ok := r.prices.Price(m.TypeID)
			line.UnitPrice = price
			line.MissingPrice = !ok
		}
		if hasPrototype && m.TypeID == prototype {
			line.Source = SourcePrototype
		}

		line.Cost = line.RequiredQuantity * line.UnitPrice
		b.Materials = append(b.Materials, line)
	}

	return b, true
}

// ConsumersOf exposes the where-used lookup of the index the report was built from
func (r *Report) ConsumersOf(typeID domain.TypeID) []domain.TypeID {
	if r.idx == nil {
		return nil
	}
	return r.idx.ConsumersOf(typeID)
}
