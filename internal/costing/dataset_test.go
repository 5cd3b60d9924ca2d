package costing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BlueprintCost_Go/internal/catalog"
	"github.com/osse101/BlueprintCost_Go/internal/pricing"
	"github.com/osse101/BlueprintCost_Go/internal/validation"
)

const (
	sampleCatalog = "../../configs/blueprints.json"
	samplePrices  = "../../configs/prices.json"
)

func newCatalogLoader(t *testing.T) catalog.Loader {
	t.Helper()
	l, err := catalog.NewLoader(validation.NewSchemaValidator())
	require.NoError(t, err)
	return l
}

func TestDatasetLoader_SampleConfigs(t *testing.T) {
	loader := NewDatasetLoader(newCatalogLoader(t), sampleCatalog, &pricing.FileSource{Path: samplePrices})

	ds, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 6, ds.Catalog.Len())
	assert.Equal(t, 6, ds.Index.Len())
	assert.NotEmpty(t, ds.Prices)
	assert.NotEmpty(t, ds.CatalogVersion)
	assert.NotEmpty(t, ds.PricesVersion)
	assert.Equal(t, "file:"+samplePrices, ds.PriceSource)
	assert.False(t, ds.LoadedAt.IsZero())

	info := ds.Info()
	assert.Equal(t, 6, info.Blueprints)
	assert.Equal(t, len(ds.Prices), info.PricedTypes)
}

func TestDatasetLoader_Errors(t *testing.T) {
	tests := []struct {
		name        string
		catalogPath string
		pricesPath  string
		wantErr     string
	}{
		{
			name:        "missing catalog",
			catalogPath: "does-not-exist.json",
			pricesPath:  samplePrices,
			wantErr:     "failed to load catalog",
		},
		{
			name:        "missing prices",
			catalogPath: sampleCatalog,
			pricesPath:  "does-not-exist.json",
			wantErr:     "failed to fetch prices",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewDatasetLoader(newCatalogLoader(t), tt.catalogPath, &pricing.FileSource{Path: tt.pricesPath})

			ds, err := loader.Load(context.Background())

			require.Error(t, err)
			assert.Nil(t, ds)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
