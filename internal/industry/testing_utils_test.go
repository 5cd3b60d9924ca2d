package industry

import (
	"github.com/osse101/BlueprintCost_Go/internal/domain"
)

// q is shorthand for a material/product pair
func q(id domain.TypeID, n int64) domain.Quantity {
	return domain.Quantity{TypeID: id, Quantity: n}
}

// manufacturing builds a blueprint with only a manufacturing activity
func manufacturing(id domain.TypeID, time int64, product domain.Quantity, materials ...domain.Quantity) domain.Blueprint {
	return domain.Blueprint{
		ID: id,
		Manufacturing: &domain.Activity{
			Time:      time,
			Products:  []domain.Quantity{product},
			Materials: materials,
		},
	}
}

// reaction builds a blueprint with only a reaction activity
func reaction(id domain.TypeID, time int64, product domain.Quantity, materials ...domain.Quantity) domain.Blueprint {
	return domain.Blueprint{
		ID: id,
		Reaction: &domain.Activity{
			Time:      time,
			Products:  []domain.Quantity{product},
			Materials: materials,
		},
	}
}

// withInvention adds an invention activity producing the given blueprint ids
func withInvention(bp domain.Blueprint, invented ...domain.TypeID) domain.Blueprint {
	products := make([]domain.Quantity, 0, len(invented))
	for _, id := range invented {
		products = append(products, q(id, 1))
	}
	bp.Invention = &domain.Activity{Time: 1000, Products: products}
	return bp
}

func catalogOf(bps ...domain.Blueprint) *domain.Catalog {
	return &domain.Catalog{Blueprints: bps}
}

// positionOf returns the index of id in order, or -1
func positionOf(order []domain.TypeID, id domain.TypeID) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}
