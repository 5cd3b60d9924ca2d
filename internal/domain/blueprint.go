package domain

import "math"

// TypeID identifies an item type. A blueprint is identified by its own type id.
type TypeID int32

// MaxTypeID is the largest id a TypeID can hold
const MaxTypeID = math.MaxInt32

// TypeIDFromInt converts a decoded id, reporting false when it falls outside
// 1..MaxTypeID instead of wrapping
func TypeIDFromInt(v int64) (TypeID, bool) {
	if v <= 0 || v > MaxTypeID {
		return 0, false
	}
	return TypeID(v), true
}

// ActivityKind names an industry activity a blueprint can perform
type ActivityKind string

const (
	ActivityManufacturing ActivityKind = "manufacturing"
	ActivityReaction      ActivityKind = "reaction"
	ActivityInvention     ActivityKind = "invention"
)

// Quantity is a (type, amount) pair used for both materials and products
type Quantity struct {
	TypeID   TypeID `json:"type_id"`
	Quantity int64  `json:"quantity"`
}

// Activity describes one activity of a blueprint.
// Time is the base duration in seconds (manufacturing/reaction only).
type Activity struct {
	Time      int64      `json:"time"`
	Materials []Quantity `json:"materials,omitempty"`
	Products  []Quantity `json:"products,omitempty"`
}

// FirstProduct returns the first product of the activity, if any
func (a *Activity) FirstProduct() (Quantity, bool) {
	if a == nil || len(a.Products) == 0 {
		return Quantity{}, false
	}
	return a.Products[0], true
}

// Blueprint is a production recipe with up to three activities
type Blueprint struct {
	ID            TypeID    `json:"blueprint_id"`
	Manufacturing *Activity `json:"manufacturing,omitempty"`
	Reaction      *Activity `json:"reaction,omitempty"`
	Invention     *Activity `json:"invention,omitempty"`
}

// Activity returns the activity of the given kind, or nil
func (b *Blueprint) Activity(kind ActivityKind) *Activity {
	switch kind {
	case ActivityManufacturing:
		return b.Manufacturing
	case ActivityReaction:
		return b.Reaction
	case ActivityInvention:
		return b.Invention
	default:
		return nil
	}
}

// BuildMaterials returns the manufacturing materials followed by the reaction materials.
// Invention materials are not part of the build chain.
func (b *Blueprint) BuildMaterials() []Quantity {
	var n int
	if b.Manufacturing != nil {
		n += len(b.Manufacturing.Materials)
	}
	if b.Reaction != nil {
		n += len(b.Reaction.Materials)
	}
	if n == 0 {
		return nil
	}

	materials := make([]Quantity, 0, n)
	if b.Manufacturing != nil {
		materials = append(materials, b.Manufacturing.Materials...)
	}
	if b.Reaction != nil {
		materials = append(materials, b.Reaction.Materials...)
	}
	return materials
}

// PrimaryProduct is the first manufacturing product, else the first reaction product
func (b *Blueprint) PrimaryProduct() (Quantity, bool) {
	if p, ok := b.Manufacturing.FirstProduct(); ok {
		return p, true
	}
	return b.Reaction.FirstProduct()
}

// OutputQuantity is the amount produced by one run of the primary product, else 1
func (b *Blueprint) OutputQuantity() int64 {
	if p, ok := b.PrimaryProduct(); ok {
		return p.Quantity
	}
	return 1
}

// Catalog is the ordered set of blueprints a run evaluates.
// Order matters: it is the tie-break for indexing and traversal.
type Catalog struct {
	Blueprints []Blueprint `json:"blueprints"`
}

// Len returns the number of blueprints in the catalog
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Blueprints)
}

// PriceTable maps a material type to its market reference price
type PriceTable map[TypeID]float64

// Price returns the reference price for a type and whether one was present
func (p PriceTable) Price(id TypeID) (float64, bool) {
	price, ok := p[id]
	return price, ok
}
