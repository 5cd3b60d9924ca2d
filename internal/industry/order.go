package industry

import (
	"github.com/osse101/BlueprintCost_Go/internal/domain"
)

// visitState is the per-blueprint traversal mark shared by the orderer and evaluator
type visitState uint8

const (
	notStarted visitState = iota
	inProgress
	done
)

// Order returns every blueprint id exactly once, producers before consumers.
// Blueprints are otherwise visited in catalog order. A producer that is already
// being visited is skipped, which breaks cycles; the order inside a cycle is
// therefore only partially dependency-respecting.
func Order(catalog *domain.Catalog, idx *Index) []domain.TypeID {
	o := &orderer{
		idx:   idx,
		state: make(map[domain.TypeID]visitState, catalog.Len()),
		out:   make([]domain.TypeID, 0, catalog.Len()),
	}
	if catalog == nil {
		return o.out
	}
	for i := range catalog.Blueprints {
		o.visit(&catalog.Blueprints[i])
	}
	return o.out
}

type orderer struct {
	idx   *Index
	state map[domain.TypeID]visitState
	out   []domain.TypeID
}

func (o *orderer) visit(bp *domain.Blueprint) {
	if o.state[bp.ID] != notStarted {
		return
	}
	o.state[bp.ID] = inProgress

	for _, m := range bp.BuildMaterials() {
		if m.TypeID == 0 {
			continue
		}
		if producer, ok := o.idx.ProducerOf(m.TypeID); ok {
			o.visit(producer)
		}
	}

	o.state[bp.ID] = done
	o.out = append(o.out, bp.ID)
}
