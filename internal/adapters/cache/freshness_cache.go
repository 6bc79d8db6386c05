package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/medqueue/medqueue-go/internal/domain/entities"
	"github.com/medqueue/medqueue-go/internal/domain/providers"
	"github.com/medqueue/medqueue-go/internal/infrastructure/observability"
)

const (
	// DefaultKey is the fixed key the cache entry lives under in the
	// durable store.
	DefaultKey = "medqueue_hospitals_cache"

	// DefaultTTL is the freshness window for the hospital snapshot.
	DefaultTTL = 2 * time.Minute
)

// entry is the single cached hospital snapshot. The wire shape matches the
// stored JSON: a fetch timestamp in unix milliseconds plus the records.
type entry struct {
	Timestamp int64               `json:"ts"`
	Hospitals []entities.Hospital `json:"data"`
}

// FreshnessCache is a single-slot, time-boxed cache over the directory's
// read path. A fresh entry is served without touching the network; a failed
// refresh degrades to the previous entry (even stale) or, with nothing
// stored, to a fixed placeholder set. Get never fails.
//
// The slot is persisted under a fixed key in the durable store so it
// survives a restart. Two instances sharing the same store race
// last-write-wins; that approximation is accepted.
type FreshnessCache struct {
	directory providers.DirectoryClient
	store     providers.KeyValueStore
	key       string
	ttl       time.Duration

	mu   sync.Mutex
	slot *entry
}

// NewFreshnessCache creates a cache over the given directory client, backed
// by the given store. Zero key/ttl select the defaults.
func NewFreshnessCache(directory providers.DirectoryClient, store providers.KeyValueStore, key string, ttl time.Duration) *FreshnessCache {
	if key == "" {
		key = DefaultKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FreshnessCache{
		directory: directory,
		store:     store,
		key:       key,
		ttl:       ttl,
	}
}

// Get returns the hospital listing. A fresh cached snapshot is returned
// without a network call; otherwise the directory is asked once, and on
// failure the previous snapshot (even stale) or the placeholder set is
// returned instead. Errors never propagate to the caller.
func (c *FreshnessCache) Get(ctx context.Context) []entities.Hospital {
	c.mu.Lock()
	defer c.mu.Unlock()

	logger := observability.LoggerFromContext(ctx)

	if c.slot == nil {
		c.slot = c.load(ctx)
	}

	if c.slot != nil && c.fresh(c.slot) {
		return c.slot.Hospitals
	}

	hospitals, err := c.directory.ListHospitals(ctx)
	if err == nil {
		c.slot = &entry{
			Timestamp: time.Now().UnixMilli(),
			Hospitals: hospitals,
		}
		c.persist(ctx, c.slot)
		return hospitals
	}

	if c.slot != nil {
		logger.Warn().Err(err).Msg("directory read failed, serving stale hospital snapshot")
		return c.slot.Hospitals
	}

	logger.Warn().Err(err).Msg("directory read failed with empty cache, serving placeholder listing")
	return Placeholder()
}

// Invalidate discards the cached snapshot unconditionally so the next Get
// re-fetches. Called after every successful mutating operation.
func (c *FreshnessCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.slot = nil
	if err := c.store.Remove(ctx, c.key); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to remove cached hospital snapshot")
	}
}

// Placeholder returns the fixed minimal record set served when no snapshot
// has ever been stored and the directory is unreachable, so the listing
// never renders empty.
func Placeholder() []entities.Hospital {
	return []entities.Hospital{
		{
			ID:           1,
			Name:         "Городская поликлиника №1",
			Type:         "Поликлиника",
			Address:      "ул. Абая, 45",
			WaitingTime:  12,
			CurrentQueue: 5,
		},
	}
}

func (c *FreshnessCache) fresh(e *entry) bool {
	age := time.Now().UnixMilli() - e.Timestamp
	return age >= 0 && time.Duration(age)*time.Millisecond < c.ttl
}

// load reads the persisted slot. Corrupt or unparsable stored state counts
// as no entry.
func (c *FreshnessCache) load(ctx context.Context) *entry {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil
	}
	stored := &entry{}
	if err := json.Unmarshal(data, stored); err != nil || stored.Hospitals == nil {
		return nil
	}
	return stored
}

func (c *FreshnessCache) persist(ctx context.Context, e *entry) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to persist hospital snapshot")
	}
}
