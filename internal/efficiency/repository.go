// Package efficiency stores per-blueprint ME/TE overrides.
package efficiency

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osse101/BlueprintCost_Go/internal/domain"
)

// Repository persists efficiency overrides
type Repository interface {
	GetAll(ctx context.Context) (domain.EfficiencyOverrides, error)
	List(ctx context.Context) ([]domain.EfficiencyOverride, error)
	Get(ctx context.Context, blueprintID domain.TypeID) (domain.Efficiency, error)
	Upsert(ctx context.Context, blueprintID domain.TypeID, eff domain.Efficiency) error
	Delete(ctx context.Context, blueprintID domain.TypeID) error
}

// MemoryRepository keeps overrides in process memory
type MemoryRepository struct {
	mu        sync.RWMutex
	overrides map[domain.TypeID]domain.EfficiencyOverride
	now       func() time.Time
}

// NewMemoryRepository creates an empty MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		overrides: make(map[domain.TypeID]domain.EfficiencyOverride),
		now:       time.Now,
	}
}

func (r *MemoryRepository) GetAll(_ context.Context) (domain.EfficiencyOverrides, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(domain.EfficiencyOverrides, len(r.overrides))
	for id, o := range r.overrides {
		out[id] = o.Efficiency
	}
	return out, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]domain.EfficiencyOverride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.EfficiencyOverride, 0, len(r.overrides))
	for _, o := range r.overrides {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BlueprintID < out[j].BlueprintID })
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, blueprintID domain.TypeID) (domain.Efficiency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.overrides[blueprintID]
	if !ok {
		return domain.Efficiency{}, domain.ErrBlueprintNotFound
	}
	return o.Efficiency, nil
}

func (r *MemoryRepository) Upsert(_ context.Context, blueprintID domain.TypeID, eff domain.Efficiency) error {
	if err := eff.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.overrides[blueprintID] = domain.EfficiencyOverride{
		BlueprintID: blueprintID,
		Efficiency:  eff,
		UpdatedAt:   r.now().UTC(),
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, blueprintID domain.TypeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.overrides[blueprintID]; !ok {
		return domain.ErrBlueprintNotFound
	}
	delete(r.overrides, blueprintID)
	return nil
}
