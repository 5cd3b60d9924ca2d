package industry

import (
	"testing"

	"github.com/osse101/BlueprintCost_Go/internal/domain"
)

// benchCatalog builds a layered catalog where every blueprint consumes the
// products of the two blueprints before it plus one raw material
func benchCatalog(n int) (*domain.Catalog, domain.PriceTable) {
	bps := make([]domain.Blueprint, 0, n)
	for i := 1; i <= n; i++ {
		id := domain.TypeID(i)
		materials := []domain.Quantity{q(tritanium, int64(i%50+1))}
		if i > 1 {
			materials = append(materials, q(domain.TypeID(100000+i-1), 2))
		}
		if i > 2 {
			materials = append(materials, q(domain.TypeID(100000+i-2), 3))
		}
		bps = append(bps, manufacturing(id, int64(60*i), q(domain.TypeID(100000+i), 1), materials...))
	}
	// Reverse so the orderer has to reach producers through recursion
	for i, j := 0, len(bps)-1; i < j; i, j = i+1, j-1 {
		bps[i], bps[j] = bps[j], bps[i]
	}
	return catalogOf(bps...), domain.PriceTable{tritanium: 4.2}
}

func BenchmarkEvaluate(b *testing.B) {
	cat, prices := benchCatalog(2000)
	params := domain.RunParams{DefaultME: 10, DefaultTE: 20, StructureBonus: 1, IndustryLevel: 5}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Evaluate(cat, nil, prices, params)
	}
}

func BenchmarkEvaluateIndexed(b *testing.B) {
	cat, prices := benchCatalog(2000)
	idx := BuildIndex(cat)
	params := domain.RunParams{DefaultME: 10, DefaultTE: 20}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = EvaluateIndexed(cat, idx, nil, prices, params)
	}
}

func BenchmarkBuildIndex(b *testing.B) {
	cat, _ := benchCatalog(2000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildIndex(cat)
	}
}
