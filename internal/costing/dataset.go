package costing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/BlueprintCost_Go/internal/catalog"
	"github.com/osse101/BlueprintCost_Go/internal/domain"
	"github.com/osse101/BlueprintCost_Go/internal/industry"
	"github.com/osse101/BlueprintCost_Go/internal/pricing"
)

// Dataset is one immutable catalog + price table pair with its prebuilt index
type Dataset struct {
	Catalog        *domain.Catalog
	Index          *industry.Index
	Prices         domain.PriceTable
	CatalogVersion string
	PricesVersion  string
	PriceSource    string
	LoadedAt       time.Time
}

// Info summarizes a dataset for status endpoints
type Info struct {
	CatalogVersion    string    `json:"catalog_version"`
	PricesVersion     string    `json:"prices_version"`
	PriceSource       string    `json:"price_source"`
	Blueprints        int       `json:"blueprints"`
	PricedTypes       int       `json:"priced_types"`
	ProducerConflicts int       `json:"producer_conflicts"`
	LoadedAt          time.Time `json:"loaded_at"`
}

// Info returns the dataset summary
func (d *Dataset) Info() Info {
	return Info{
		CatalogVersion:    d.CatalogVersion,
		PricesVersion:     d.PricesVersion,
		PriceSource:       d.PriceSource,
		Blueprints:        d.Catalog.Len(),
		PricedTypes:       len(d.Prices),
		ProducerConflicts: len(d.Index.Conflicts()),
		LoadedAt:          d.LoadedAt,
	}
}

// DatasetLoader produces a fresh Dataset
type DatasetLoader interface {
	Load(ctx context.Context) (*Dataset, error)
}

type datasetLoader struct {
	catalogs    catalog.Loader
	catalogPath string
	prices      pricing.Source
}

// NewDatasetLoader reads the catalog at catalogPath and fetches prices from source
func NewDatasetLoader(catalogs catalog.Loader, catalogPath string, source pricing.Source) DatasetLoader {
	return &datasetLoader{
		catalogs:    catalogs,
		catalogPath: catalogPath,
		prices:      source,
	}
}

// Load fetches the catalog and the prices concurrently and indexes the catalog
func (l *datasetLoader) Load(ctx context.Context) (*Dataset, error) {
	var (
		loaded   *catalog.Loaded
		snapshot *pricing.Snapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		loaded, err = l.catalogs.Load(l.catalogPath)
		if err != nil {
			return fmt.Errorf("failed to load catalog %s: %w", l.catalogPath, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snapshot, err = l.prices.Fetch(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch prices from %s: %w", l.prices.Name(), err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dataset{
		Catalog:        loaded.Catalog,
		Index:          industry.BuildIndex(loaded.Catalog),
		Prices:         snapshot.Prices,
		CatalogVersion: loaded.Version,
		PricesVersion:  snapshot.Version,
		PriceSource:    l.prices.Name(),
		LoadedAt:       time.Now().UTC(),
	}, nil
}
