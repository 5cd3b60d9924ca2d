package industry

import (
	"github.com/osse101/BlueprintCost_Go/internal/domain"
)

// Index holds the lookup structures derived from a catalog.
// It is read-only once built and safe to share between runs.
type Index struct {
	byID       map[domain.TypeID]*domain.Blueprint
	producerOf map[domain.TypeID]*domain.Blueprint
	consumers  map[domain.TypeID][]domain.TypeID
	tier2      map[domain.TypeID]bool
	tier1Of    map[domain.TypeID]domain.TypeID

	conflicts []domain.ProducerConflict
}

// BuildIndex scans the catalog once and builds the producer, consumer and tier-2 indexes.
// Entries with missing activities or zero type ids contribute nothing.
func BuildIndex(catalog *domain.Catalog) *Index {
	n := catalog.Len()
	idx := &Index{
		byID:       make(map[domain.TypeID]*domain.Blueprint, n),
		producerOf: make(map[domain.TypeID]*domain.Blueprint, n),
		consumers:  make(map[domain.TypeID][]domain.TypeID),
		tier2:      make(map[domain.TypeID]bool),
		tier1Of:    make(map[domain.TypeID]domain.TypeID),
	}
	if n == 0 {
		return idx
	}

	for i := range catalog.Blueprints {
		bp := &catalog.Blueprints[i]
		idx.byID[bp.ID] = bp
		idx.addProducts(bp, bp.Manufacturing)
		idx.addProducts(bp, bp.Reaction)
		idx.addConsumer(bp)
	}

	// Tier-2 lineage needs the full id set, so it runs as a second pass
	for i := range catalog.Blueprints {
		idx.addInvention(&catalog.Blueprints[i])
	}

	return idx
}

// addProducts registers bp as the producer of every product of the activity.
// A later blueprint claiming the same output replaces the earlier one; the
// overwrite is kept as a conflict so callers can report it.
func (idx *Index) addProducts(bp *domain.Blueprint, activity *domain.Activity) {
	if activity == nil {
		return
	}
	for _, p := range activity.Products {
		if p.TypeID == 0 {
			continue
		}
		if prev, ok := idx.producerOf[p.TypeID]; ok && prev.ID != bp.ID {
			idx.conflicts = append(idx.conflicts, domain.ProducerConflict{
				TypeID:   p.TypeID,
				Kept:     bp.ID,
				Replaced: prev.ID,
			})
		}
		idx.producerOf[p.TypeID] = bp
	}
}

func (idx *Index) addConsumer(bp *domain.Blueprint) {
	seen := make(map[domain.TypeID]bool)
	for _, m := range bp.BuildMaterials() {
		if m.TypeID == 0 || seen[m.TypeID] {
			continue
		}
		seen[m.TypeID] = true
		idx.consumers[m.TypeID] = append(idx.consumers[m.TypeID], bp.ID)
	}
}

// addInvention marks every blueprint invented by bp as tier-2 and links it to
// bp's first manufacturing product, its tier-1 prototype.
func (idx *Index) addInvention(bp *domain.Blueprint) {
	if bp.Invention == nil {
		return
	}
	tier1, hasTier1 := bp.Manufacturing.FirstProduct()
	for _, p := range bp.Invention.Products {
		if p.TypeID == 0 || p.TypeID == bp.ID {
			continue
		}
		idx.tier2[p.TypeID] = true
		if hasTier1 && tier1.TypeID != 0 {
			idx.tier1Of[p.TypeID] = tier1.TypeID
		}
	}
}

// Blueprint returns the catalog entry with the given id
func (idx *Index) Blueprint(id domain.TypeID) (*domain.Blueprint, bool) {
	bp, ok := idx.byID[id]
	return bp, ok
}

// ProducerOf returns the blueprint whose manufacturing or reaction produces the type
func (idx *Index) ProducerOf(typeID domain.TypeID) (*domain.Blueprint, bool) {
	bp, ok := idx.producerOf[typeID]
	return bp, ok
}

// ConsumersOf returns the blueprints that use the type as a build material, in catalog order
func (idx *Index) ConsumersOf(typeID domain.TypeID) []domain.TypeID {
	ids := idx.consumers[typeID]
	out := make([]domain.TypeID, len(ids))
	copy(out, ids)
	return out
}

// IsTier2 reports whether the blueprint is produced by another blueprint's invention
func (idx *Index) IsTier2(id domain.TypeID) bool {
	return idx.tier2[id]
}

// Tier1ProductOf returns the prototype type a tier-2 blueprint consumes
func (idx *Index) Tier1ProductOf(id domain.TypeID) (domain.TypeID, bool) {
	t, ok := idx.tier1Of[id]
	return t, ok
}

// Conflicts returns every output type claimed by more than one blueprint
func (idx *Index) Conflicts() []domain.ProducerConflict {
	out := make([]domain.ProducerConflict, len(idx.conflicts))
	copy(out, idx.conflicts)
	return out
}

// Len returns the number of indexed blueprints
func (idx *Index) Len() int {
	return len(idx.byID)
}
