// Package cache keeps finished evaluation reports keyed by their inputs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/BlueprintCost_Go/internal/domain"
	"github.com/osse101/BlueprintCost_Go/internal/industry"
)

// CacheSchemaVersion is the current version of the cached report layout.
// Increment this when Report changes shape to drop old entries.
const CacheSchemaVersion = "1.0"

// Lookup outcomes
const (
	OutcomeHit     = "hit"
	OutcomeMiss    = "miss"
	OutcomeExpired = "expired"
)

// sweepFactor scales TTL into the LRU's own background expiry
const sweepFactor = 2

// CacheConfig sizes the cache and its two expirations
type CacheConfig struct {
	Size int
	// TTL is the absolute lifetime of an entry
	TTL time.Duration
	// SlidingTTL drops an entry that has not been read for this long; 0 disables it
	SlidingTTL time.Duration
}

// DefaultCacheConfig returns the defaults used when nothing is configured
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Size:       64,
		TTL:        30 * time.Minute,
		SlidingTTL: 5 * time.Minute,
	}
}

// Stats are cumulative lookup counters
type Stats struct {
	Hits    int64
	Misses  int64
	Expired int64
	Size    int
}

type cachedReport struct {
	Version    string
	Report     *industry.Report
	CachedAt   time.Time
	lastAccess time.Time
}

// ResultCache is a bounded LRU of evaluation reports with absolute and sliding expiration
type ResultCache struct {
	lru        *expirable.LRU[string, *cachedReport]
	ttl        time.Duration
	slidingTTL time.Duration
	now        func() time.Time

	// mu guards lastAccess on entries
	mu sync.Mutex

	hits    atomic.Int64
	misses  atomic.Int64
	expired atomic.Int64
}

// New creates a ResultCache
func New(cfg CacheConfig) *ResultCache {
	size := cfg.Size
	if size <= 0 {
		size = DefaultCacheConfig().Size
	}
	// The LRU sweeps at twice the lifetime so Get still sees an entry that
	// just passed its TTL and can report it as expired
	sweep := cfg.TTL
	if sweep > 0 {
		sweep *= sweepFactor
	}
	return &ResultCache{
		lru:        expirable.NewLRU[string, *cachedReport](size, nil, sweep),
		ttl:        cfg.TTL,
		slidingTTL: cfg.SlidingTTL,
		now:        time.Now,
	}
}

// Get returns the cached report for key and the lookup outcome
func (c *ResultCache) Get(key string) (*industry.Report, string) {
	entry, found := c.lru.Get(key)
	if !found {
		c.misses.Add(1)
		return nil, OutcomeMiss
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		c.misses.Add(1)
		return nil, OutcomeMiss
	}

	now := c.now()
	if c.ttl > 0 && now.Sub(entry.CachedAt) > c.ttl {
		c.lru.Remove(key)
		c.expired.Add(1)
		return nil, OutcomeExpired
	}

	c.mu.Lock()
	idle := now.Sub(entry.lastAccess)
	if c.slidingTTL > 0 && idle > c.slidingTTL {
		c.mu.Unlock()
		c.lru.Remove(key)
		c.expired.Add(1)
		return nil, OutcomeExpired
	}
	entry.lastAccess = now
	c.mu.Unlock()

	c.hits.Add(1)
	return entry.Report, OutcomeHit
}

// Set stores a report, replacing any entry under the same key
func (c *ResultCache) Set(key string, report *industry.Report) {
	now := c.now()
	c.lru.Add(key, &cachedReport{
		Version:    CacheSchemaVersion,
		Report:     report,
		CachedAt:   now,
		lastAccess: now,
	})
}

// Invalidate removes one entry
func (c *ResultCache) Invalidate(key string) {
	c.lru.Remove(key)
}

// Clear removes all entries
func (c *ResultCache) Clear() {
	c.lru.Purge()
}

// Len is the number of stored entries, expired ones included until they are swept
func (c *ResultCache) Len() int {
	return c.lru.Len()
}

// GetStats returns the lookup counters
func (c *ResultCache) GetStats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Expired: c.expired.Load(),
		Size:    c.lru.Len(),
	}
}

// Key identifies one evaluation by every input that can change its result.
// Fields are written in a fixed order and overrides sorted by blueprint id.
func Key(params domain.RunParams, overrides domain.EfficiencyOverrides, catalogVersion, pricesVersion string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "v=%s|catalog=%s|prices=%s|", CacheSchemaVersion, catalogVersion, pricesVersion)
	fmt.Fprintf(&b, "me=%d|te=%d|sb=%g|rb=%g|ind=%d|adv=%d|rsb=%g|rrb=%g|rl=%d|",
		params.DefaultME, params.DefaultTE,
		params.StructureBonus, params.RigBonus, params.IndustryLevel, params.AdvancedIndustryLevel,
		params.ReactionStructureBonus, params.ReactionRigBonus, params.ReactionLevel)

	ids := make([]domain.TypeID, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		eff := overrides[id]
		fmt.Fprintf(&b, "%d:%d:%d;", id, eff.ME, eff.TE)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
