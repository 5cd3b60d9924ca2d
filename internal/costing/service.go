// Package costing serves cost and time evaluations over the loaded dataset.
package costing

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/osse101/BlueprintCost_Go/internal/cache"
	"github.com/osse101/BlueprintCost_Go/internal/concurrency"
	"github.com/osse101/BlueprintCost_Go/internal/domain"
	"github.com/osse101/BlueprintCost_Go/internal/efficiency"
	"github.com/osse101/BlueprintCost_Go/internal/industry"
	"github.com/osse101/BlueprintCost_Go/internal/logger"
	"github.com/osse101/BlueprintCost_Go/internal/metrics"
)

// BlueprintCost is one blueprint's result with its material breakdown
type BlueprintCost struct {
	industry.Breakdown
	Flags     []string        `json:"flags"`
	Consumers []domain.TypeID `json:"consumers"`
}

// Service defines the interface for costing operations
type Service interface {
	Calculate(ctx context.Context, params domain.RunParams) (*industry.Report, error)
	GetBlueprint(ctx context.Context, params domain.RunParams, id domain.TypeID) (*BlueprintCost, error)
	WhereUsed(ctx context.Context, typeID domain.TypeID) ([]domain.TypeID, error)

	GetEfficiency(ctx context.Context, id domain.TypeID) (domain.Efficiency, error)
	SetEfficiency(ctx context.Context, id domain.TypeID, eff domain.Efficiency) error
	ClearEfficiency(ctx context.Context, id domain.TypeID) error
	ListEfficiency(ctx context.Context) ([]domain.EfficiencyOverride, error)

	Reload(ctx context.Context) error
	Defaults() domain.RunParams
	Ready() bool
	Info() (Info, bool)
	CacheStats() cache.Stats
}

type service struct {
	loader   DatasetLoader
	repo     efficiency.Repository
	results  *cache.ResultCache
	locks    *concurrency.LockManager
	defaults domain.RunParams

	dataset atomic.Pointer[Dataset]
}

// NewService creates a new costing service. No dataset is loaded until Reload succeeds.
func NewService(loader DatasetLoader, repo efficiency.Repository, results *cache.ResultCache, locks *concurrency.LockManager, defaults domain.RunParams) Service {
	return &service{
		loader:   loader,
		repo:     repo,
		results:  results,
		locks:    locks,
		defaults: defaults,
	}
}

func (s *service) current() (*Dataset, error) {
	ds := s.dataset.Load()
	if ds == nil {
		return nil, domain.ErrCatalogNotLoaded
	}
	return ds, nil
}

// Calculate returns the report for params, evaluating at most once per distinct input set
func (s *service) Calculate(ctx context.Context, params domain.RunParams) (*industry.Report, error) {
	log := logger.FromContext(ctx)

	if err := params.Validate(); err != nil {
		return nil, err
	}
	ds, err := s.current()
	if err != nil {
		return nil, err
	}

	overrides, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadOverrides, err)
	}

	key := cache.Key(params, overrides, ds.CatalogVersion, ds.PricesVersion)
	unlock := s.locks.Lock(key)
	defer unlock()

	report, outcome := s.results.Get(key)
	metrics.CacheLookupsTotal.WithLabelValues(outcome).Inc()
	log.Debug(LogMsgCacheLookup, logger.AttrKeyCacheKey, key, "outcome", outcome)
	if report != nil {
		metrics.EvaluationsTotal.WithLabelValues(metrics.ResultCached).Inc()
		return report, nil
	}

	start := time.Now()
	report = industry.EvaluateIndexed(ds.Catalog, ds.Index, overrides, ds.Prices, params)
	elapsed := time.Since(start)

	metrics.EvaluationDuration.Observe(elapsed.Seconds())
	metrics.EvaluationsTotal.WithLabelValues(metrics.ResultComputed).Inc()
	metrics.CycleTruncationsTotal.Add(float64(len(report.Truncated)))
	metrics.ApproximatedResults.Set(float64(report.Approximated()))

	if len(report.Truncated) > 0 {
		log.Warn(LogMsgCycleTruncated, logger.AttrKeyBlueprints, report.Truncated)
	}
	log.Info(LogMsgEvaluationComplete,
		logger.AttrKeyBlueprints, len(report.Results),
		"approximated", report.Approximated(),
		"overrides", len(overrides),
		logger.AttrKeyDuration, elapsed)

	s.results.Set(key, report)
	return report, nil
}

// GetBlueprint returns one blueprint's result and how its cost was assembled
func (s *service) GetBlueprint(ctx context.Context, params domain.RunParams, id domain.TypeID) (*BlueprintCost, error) {
	report, err := s.Calculate(ctx, params)
	if err != nil {
		return nil, err
	}

	breakdown, ok := report.Explain(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrBlueprintNotFound, id)
	}

	cost := &BlueprintCost{
		Breakdown: *breakdown,
		Flags:     breakdown.Result.Approximation.Strings(),
		Consumers: []domain.TypeID{},
	}
	if breakdown.Product != 0 {
		if consumers := report.ConsumersOf(breakdown.Product); consumers != nil {
			cost.Consumers = consumers
		}
	}
	return cost, nil
}

// WhereUsed lists the blueprints consuming typeID, in catalog order
func (s *service) WhereUsed(_ context.Context, typeID domain.TypeID) ([]domain.TypeID, error) {
	ds, err := s.current()
	if err != nil {
		return nil, err
	}
	consumers := ds.Index.ConsumersOf(typeID)
	if consumers == nil {
		consumers = []domain.TypeID{}
	}
	return consumers, nil
}

// GetEfficiency returns the stored override of a blueprint
func (s *service) GetEfficiency(ctx context.Context, id domain.TypeID) (domain.Efficiency, error) {
	return s.repo.Get(ctx, id)
}

// SetEfficiency stores an override for a blueprint present in the loaded catalog
func (s *service) SetEfficiency(ctx context.Context, id domain.TypeID, eff domain.Efficiency) error {
	log := logger.FromContext(ctx)

	if err := eff.Validate(); err != nil {
		return err
	}
	if err := s.requireBlueprint(id); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, id, eff); err != nil {
		return err
	}

	log.Info("Efficiency override stored", logger.AttrKeyBlueprintID, id, "me", eff.ME, "te", eff.TE)
	return nil
}

// ClearEfficiency removes the override of a blueprint
func (s *service) ClearEfficiency(ctx context.Context, id domain.TypeID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Efficiency override cleared", logger.AttrKeyBlueprintID, id)
	return nil
}

// ListEfficiency returns every stored override
func (s *service) ListEfficiency(ctx context.Context) ([]domain.EfficiencyOverride, error) {
	return s.repo.List(ctx)
}

func (s *service) requireBlueprint(id domain.TypeID) error {
	ds, err := s.current()
	if err != nil {
		return err
	}
	if _, ok := ds.Index.Blueprint(id); !ok {
		return fmt.Errorf("%w: %d", domain.ErrBlueprintNotFound, id)
	}
	return nil
}

// Reload loads a new dataset and swaps it in. On failure the previous dataset stays active.
func (s *service) Reload(ctx context.Context) error {
	log := logger.FromContext(ctx)

	ds, err := s.loader.Load(ctx)
	if err != nil {
		metrics.DatasetReloads.WithLabelValues(metrics.ResultFailure).Inc()
		log.Error(LogMsgDatasetLoadFailed, "error", err)
		return fmt.Errorf("%s: %w", ErrContextReload, err)
	}

	s.dataset.Store(ds)
	s.results.Clear()

	conflicts := ds.Index.Conflicts()
	for _, c := range conflicts {
		log.Warn(LogMsgProducerConflict, "type_id", c.TypeID, "kept", c.Kept, "replaced", c.Replaced)
	}

	metrics.DatasetReloads.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.CatalogBlueprints.Set(float64(ds.Catalog.Len()))
	metrics.ProducerConflicts.Set(float64(len(conflicts)))
	metrics.PriceEntries.Set(float64(len(ds.Prices)))

	log.Info(LogMsgDatasetLoaded,
		logger.AttrKeyBlueprints, ds.Catalog.Len(),
		"priced_types", len(ds.Prices),
		"conflicts", len(conflicts),
		"catalog_version", ds.CatalogVersion,
		"prices_version", ds.PricesVersion,
		"price_source", ds.PriceSource)
	return nil
}

// Defaults returns the run parameters used when a request leaves them out
func (s *service) Defaults() domain.RunParams {
	return s.defaults
}

// Ready reports whether a dataset is loaded
func (s *service) Ready() bool {
	return s.dataset.Load() != nil
}

// Info describes the active dataset
func (s *service) Info() (Info, bool) {
	ds := s.dataset.Load()
	if ds == nil {
		return Info{}, false
	}
	return ds.Info(), true
}

// CacheStats returns the result cache counters
func (s *service) CacheStats() cache.Stats {
	return s.results.GetStats()
}
