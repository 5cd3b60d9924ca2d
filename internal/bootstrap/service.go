package bootstrap

import (
	"fmt"

	"github.com/osse101/BlueprintCost_Go/internal/cache"
	"github.com/osse101/BlueprintCost_Go/internal/catalog"
	"github.com/osse101/BlueprintCost_Go/internal/concurrency"
	"github.com/osse101/BlueprintCost_Go/internal/config"
	"github.com/osse101/BlueprintCost_Go/internal/costing"
	"github.com/osse101/BlueprintCost_Go/internal/efficiency"
	"github.com/osse101/BlueprintCost_Go/internal/pricing"
	"github.com/osse101/BlueprintCost_Go/internal/validation"
)

// BuildService wires the costing service from configuration. The returned
// service has no dataset until Reload is called.
func BuildService(cfg *config.Config, repo efficiency.Repository) (costing.Service, error) {
	catalogs, err := catalog.NewLoader(validation.NewSchemaValidator())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCatalogLoader, err)
	}

	source := pricing.NewSource(cfg.PricesPath, cfg.PricesURL, cfg.PricesTimeout)
	loader := costing.NewDatasetLoader(catalogs, cfg.CatalogPath, source)

	results := cache.New(cache.CacheConfig{
		Size:       cfg.CacheSize,
		TTL:        cfg.CacheTTL,
		SlidingTTL: cfg.CacheSlidingTTL,
	})

	return costing.NewService(loader, repo, results, concurrency.NewLockManager(), cfg.Defaults), nil
}
